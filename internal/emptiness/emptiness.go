// Package emptiness flags Python files without code and directories
// without files.
package emptiness

import (
	"bufio"
	"bytes"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"codehunter/internal/findings"
	"codehunter/internal/paths"
	"codehunter/internal/walker"
)

// HasCode reports whether source contains at least one statement that is
// neither a comment nor part of an import. Parenthesized and
// backslash-continued imports are followed to their end.
func HasCode(source []byte) bool {
	sc := bufio.NewScanner(bytes.NewReader(source))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	inImport := false
	depth := 0
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !inImport {
			if !isImportLine(line) {
				return true
			}
			inImport = true
			depth = 0
		}
		depth += strings.Count(line, "(") - strings.Count(line, ")")
		if depth <= 0 && !strings.HasSuffix(line, "\\") {
			inImport = false
		}
	}
	return false
}

func isImportLine(line string) bool {
	for _, kw := range []string{"import", "from"} {
		if rest, ok := strings.CutPrefix(line, kw); ok {
			if rest == "" || rest[0] == ' ' || rest[0] == '\t' || rest[0] == '(' || rest[0] == '\\' {
				return true
			}
		}
	}
	return false
}

// CheckFiles reports every walked Python file other than __init__.py that
// has no code. Unreadable and non-UTF-8 files are skipped; they are
// reported by the parser pass.
func CheckFiles(c *findings.Collector, root string, entries []walker.Entry) {
	for _, rel := range walker.SourceFiles(entries) {
		if path.Base(rel) == "__init__.py" {
			continue
		}
		source, err := os.ReadFile(paths.JoinRootPath(root, rel))
		if err != nil || !utf8.Valid(source) {
			continue
		}
		if !HasCode(source) {
			c.Add(findings.RuleEmptyFile, findings.Warning,
				"empty Python file or file with no useful code",
				filepath.Join(root, filepath.FromSlash(rel)), 1,
				"Remove the file or implement its logic.")
		}
	}
}

// CheckFolders reports every walked directory below the root that holds
// no files.
func CheckFolders(c *findings.Collector, root string, entries []walker.Entry) {
	for _, e := range entries {
		if e.Dir == "." || len(e.Files) > 0 {
			continue
		}
		c.Add(findings.RuleEmptyFolder, findings.Warning,
			"empty folder detected",
			filepath.Join(root, filepath.FromSlash(e.Dir)), 0,
			"Remove the folder if it is not used.")
	}
}
