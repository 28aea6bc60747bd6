// Package walker enumerates a project tree as (directory, files) pairs,
// skipping ignored directories and excluded paths.
package walker

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"

	"codehunter/internal/paths"
)

// DefaultIgnoreDirs are directory names never descended into, wherever
// they appear. Hidden directories are always skipped as well.
var DefaultIgnoreDirs = []string{
	".venv",
	"venv",
	"__pycache__",
	".git",
	"site-packages",
	"cache",
	"memory",
	"recall",
}

// Options configures a Walker.
type Options struct {
	// IgnoreDirs replaces DefaultIgnoreDirs when non-nil.
	IgnoreDirs []string

	// Exclude holds glob patterns matched against both the root-relative
	// slash path and the base name of every file and directory.
	Exclude []string
}

// Entry is one walked directory.
type Entry struct {
	// Dir is the root-relative slash path; "." for the root itself.
	Dir string
	// Files lists the base names of every non-excluded file, sorted.
	Files []string
}

// Walker walks one project root.
type Walker struct {
	root     string
	ignore   map[string]bool
	excludes []glob.Glob
}

// New returns a walker for root. It fails on invalid exclude patterns.
func New(root string, opts Options) (*Walker, error) {
	ignoreDirs := opts.IgnoreDirs
	if ignoreDirs == nil {
		ignoreDirs = DefaultIgnoreDirs
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %q: %w", root, err)
	}
	w := &Walker{
		root:   abs,
		ignore: make(map[string]bool, len(ignoreDirs)),
	}
	for _, d := range ignoreDirs {
		w.ignore[d] = true
	}
	for _, p := range opts.Exclude {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		w.excludes = append(w.excludes, g)
	}
	return w, nil
}

// ValidatePatterns reports the first exclude pattern that does not compile.
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if _, err := glob.Compile(p, '/'); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
	}
	return nil
}

// Root returns the walked root.
func (w *Walker) Root() string {
	return w.root
}

// Walk calls fn once per directory in lexical order, parents before
// children. Unreadable subdirectories are skipped; an unreadable root is an
// error. The walk stops at the first error returned by fn or when ctx is
// done.
func (w *Walker) Walk(ctx context.Context, fn func(Entry) error) error {
	var order []string
	byDir := make(map[string]*Entry)

	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == w.root {
				return walkErr
			}
			return nil //nolint:nilerr // skip unreadable entries
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel := paths.Relative(w.root, path)
		if d.IsDir() {
			if rel != "." && w.skipDir(rel, d.Name()) {
				return filepath.SkipDir
			}
			order = append(order, rel)
			byDir[rel] = &Entry{Dir: rel, Files: []string{}}
			return nil
		}

		if w.excluded(rel, d.Name()) {
			return nil
		}
		if parent, ok := byDir[paths.Relative(w.root, filepath.Dir(path))]; ok {
			parent.Files = append(parent.Files, d.Name())
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, dir := range order {
		e := byDir[dir]
		sort.Strings(e.Files)
		if err := fn(*e); err != nil {
			return err
		}
	}
	return nil
}

// Entries collects every walked directory.
func (w *Walker) Entries(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	err := w.Walk(ctx, func(e Entry) error {
		entries = append(entries, e)
		return nil
	})
	return entries, err
}

func (w *Walker) skipDir(rel, name string) bool {
	if w.ignore[name] || strings.HasPrefix(name, ".") {
		return true
	}
	return w.excluded(rel, name)
}

func (w *Walker) excluded(rel, name string) bool {
	for _, g := range w.excludes {
		if g.Match(rel) || g.Match(name) {
			return true
		}
	}
	return false
}

// SourceFiles returns the root-relative slash paths of every Python source
// file in entries, in walk order.
func SourceFiles(entries []Entry) []string {
	var out []string
	for _, e := range entries {
		for _, f := range e.Files {
			if !paths.IsSourceFile(f) {
				continue
			}
			if e.Dir == "." {
				out = append(out, f)
			} else {
				out = append(out, e.Dir+"/"+f)
			}
		}
	}
	return out
}
