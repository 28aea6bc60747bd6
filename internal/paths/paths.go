// Package paths converts between absolute file paths and the forward-slash,
// root-relative paths used to identify Python modules in findings and graphs.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// SourceExt is the extension of analyzable source files.
const SourceExt = ".py"

// CanonicalizePath converts an absolute path to a root-relative canonical path
// - Resolves symlinks to real paths
// - Makes path relative to the project root
// - Returns the relative path with forward slashes
func CanonicalizePath(absolutePath string, root string) (string, error) {
	resolved, err := filepath.EvalSymlinks(absolutePath)
	if err != nil {
		if os.IsNotExist(err) {
			resolved = absolutePath
		} else {
			return "", err
		}
	}

	rootResolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		if os.IsNotExist(err) {
			rootResolved = root
		} else {
			return "", err
		}
	}

	rel, err := filepath.Rel(rootResolved, resolved)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// IsWithinRoot checks that path, after symlink resolution, lies under root.
func IsWithinRoot(path string, root string) bool {
	canonical, err := CanonicalizePath(path, root)
	if err != nil {
		return false
	}
	return canonical != ".." && !strings.HasPrefix(canonical, "../")
}

// Relative returns path relative to root with forward slashes, without
// resolving symlinks. Relative paths are returned normalized; paths outside
// root are returned as given.
func Relative(root, path string) string {
	if !filepath.IsAbs(path) {
		return NormalizePath(filepath.Clean(path))
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return NormalizePath(path)
	}
	return NormalizePath(rel)
}

// NormalizePath converts backslashes to forward slashes
func NormalizePath(path string) string {
	return strings.ReplaceAll(filepath.ToSlash(path), "\\", "/")
}

// JoinRootPath joins a project root with a canonical path
func JoinRootPath(root string, canonicalPath string) string {
	parts := strings.Split(NormalizePath(canonicalPath), "/")
	return filepath.Join(append([]string{root}, parts...)...)
}

// ModuleFile maps a dotted module name to its candidate source file path,
// e.g. "pkg.sub.mod" -> "pkg/sub/mod.py".
func ModuleFile(module string) string {
	return strings.ReplaceAll(module, ".", "/") + SourceExt
}

// IsSourceFile reports whether name has the analyzable source extension.
func IsSourceFile(name string) bool {
	return strings.HasSuffix(name, SourceExt)
}
