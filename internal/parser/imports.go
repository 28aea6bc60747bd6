package parser

import "strings"

// ImportedName is one name listed by an import statement.
type ImportedName struct {
	Name  string // dotted name as written, e.g. "os.path"
	Alias string // "as" alias, empty when absent
}

// Import is a decoded import statement.
type Import struct {
	Line     int
	From     bool           // from X import ...
	Module   string         // X without leading dots; empty for "from . import y"
	Level    int            // number of leading dots in a relative import
	Names    []ImportedName // empty for wildcard imports
	Wildcard bool
	Future   bool // from __future__ import ...
}

// Bound returns the local name the statement binds for n: the alias if any,
// otherwise the first component for "import a.b" and the name itself for
// "from x import a".
func (imp Import) Bound(n ImportedName) string {
	if n.Alias != "" {
		return n.Alias
	}
	if imp.From {
		return n.Name
	}
	if i := strings.IndexByte(n.Name, '.'); i >= 0 {
		return n.Name[:i]
	}
	return n.Name
}

// Origin returns the dotted module a binding comes from, with leading dots
// for relative imports.
func (imp Import) Origin(n ImportedName) string {
	if !imp.From {
		return n.Name
	}
	return strings.Repeat(".", imp.Level) + imp.Module
}
