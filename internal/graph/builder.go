package graph

import (
	"context"
	"log/slog"
	"path"
	"path/filepath"
	"strings"

	"codehunter/internal/parser"
	"codehunter/internal/paths"
	"codehunter/internal/slogutil"
)

// Builder accumulates the import graph of one project. Every walked source
// file becomes a node; an edge is added only when an import resolves to a
// walked file that lies under the root once symlinks are resolved.
type Builder struct {
	root   string
	known  map[string]bool
	graph  *Graph
	logger *slog.Logger
}

// NewBuilder returns a builder for the given root-relative slash paths.
// The files are added as nodes in the order given.
func NewBuilder(root string, files []string, logger *slog.Logger) *Builder {
	b := &Builder{
		root:   root,
		known:  make(map[string]bool, len(files)),
		graph:  NewGraph(),
		logger: slogutil.OrDiscard(logger),
	}
	for _, f := range files {
		b.known[f] = true
		b.graph.AddNode(f)
	}
	return b
}

// AddImports records the edges contributed by the imports of file.
func (b *Builder) AddImports(file string, imports []parser.Import) {
	if !b.known[file] {
		b.known[file] = true
		b.graph.AddNode(file)
	}
	for _, imp := range imports {
		if imp.Future {
			continue
		}
		for _, target := range b.Resolve(file, imp) {
			b.graph.AddEdge(file, target)
		}
	}
}

// Graph returns the graph built so far.
func (b *Builder) Graph() *Graph {
	return b.graph
}

// Resolve maps one import statement of file to the walked modules it
// refers to. Absolute modules resolve against the root, relative ones
// against the importing file's directory, one level up per extra dot.
// For "from X import a" where X itself is not a module file, each name is
// tried as a submodule X.a.
func (b *Builder) Resolve(file string, imp parser.Import) []string {
	base := ""
	if imp.Level > 0 {
		var parts []string
		if dir := path.Dir(file); dir != "." {
			parts = strings.Split(dir, "/")
		}
		up := imp.Level - 1
		if up > len(parts) {
			return nil
		}
		base = strings.Join(parts[:len(parts)-up], "/")
	}

	var out []string
	if !imp.From {
		for _, name := range imp.Names {
			if target, ok := b.lookup(base, name.Name); ok {
				out = append(out, target)
			}
		}
		return out
	}

	if imp.Module != "" {
		if target, ok := b.lookup(base, imp.Module); ok {
			return []string{target}
		}
	}
	for _, name := range imp.Names {
		module := name.Name
		if imp.Module != "" {
			module = imp.Module + "." + name.Name
		}
		if target, ok := b.lookup(base, module); ok {
			out = append(out, target)
		}
	}
	return out
}

func (b *Builder) lookup(base, module string) (string, bool) {
	candidate := paths.ModuleFile(module)
	if base != "" {
		candidate = path.Join(base, candidate)
	}
	if !b.known[candidate] {
		return "", false
	}
	if !paths.IsWithinRoot(paths.JoinRootPath(b.root, candidate), b.root) {
		b.logger.Debug("Import target escapes project root",
			"module", module,
			"candidate", candidate,
		)
		return "", false
	}
	return candidate, true
}

// Build parses every file and returns the project's import graph. Files
// that fail to parse remain nodes without edges.
func Build(ctx context.Context, root string, files []string, logger *slog.Logger) *Graph {
	b := NewBuilder(root, files, logger)
	p := parser.NewParser()
	for _, rel := range files {
		if ctx.Err() != nil {
			break
		}
		unit, err := p.ParseFile(ctx, filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			b.logger.Debug("Skipping unparseable module", "file", rel, "error", err)
			continue
		}
		b.AddImports(rel, unit.Imports())
		unit.Close()
	}
	return b.Graph()
}
