//go:build cgo

package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// IsImportNode reports whether n is any kind of import statement.
func IsImportNode(n *sitter.Node) bool {
	switch n.Type() {
	case "import_statement", "import_from_statement", "future_import_statement":
		return true
	}
	return false
}

// DecodeImport decodes an import statement node. ok is false when n is not
// an import statement.
func DecodeImport(n *sitter.Node, source []byte) (Import, bool) {
	imp := Import{Line: StartLine(n)}

	switch n.Type() {
	case "import_statement":
		imp.Names = decodeNames(n, 0, source)

	case "future_import_statement":
		imp.From = true
		imp.Future = true
		imp.Module = "__future__"
		imp.Names = decodeNames(n, 0, source)

	case "import_from_statement":
		imp.From = true
		module := n.ChildByFieldName("module_name")
		if module != nil {
			imp.Module, imp.Level = decodeModule(module, source)
		}
		if imp.Module == "__future__" && imp.Level == 0 {
			imp.Future = true
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if n.NamedChild(i).Type() == "wildcard_import" {
				imp.Wildcard = true
				return imp, true
			}
		}
		imp.Names = decodeNames(n, 1, source)

	default:
		return Import{}, false
	}

	return imp, true
}

// decodeNames reads dotted_name and aliased_import children starting at the
// given named-child index.
func decodeNames(n *sitter.Node, from int, source []byte) []ImportedName {
	var names []ImportedName
	for i := from; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "dotted_name":
			names = append(names, ImportedName{Name: child.Content(source)})
		case "aliased_import":
			name := child.ChildByFieldName("name")
			alias := child.ChildByFieldName("alias")
			if name == nil {
				continue
			}
			in := ImportedName{Name: name.Content(source)}
			if alias != nil {
				in.Alias = alias.Content(source)
			}
			names = append(names, in)
		}
	}
	return names
}

// decodeModule splits a module_name node into its dotted name and the
// relative import level.
func decodeModule(module *sitter.Node, source []byte) (string, int) {
	if module.Type() != "relative_import" {
		return module.Content(source), 0
	}
	level := 0
	name := ""
	for i := 0; i < int(module.NamedChildCount()); i++ {
		child := module.NamedChild(i)
		switch child.Type() {
		case "import_prefix":
			level = strings.Count(child.Content(source), ".")
		case "dotted_name":
			name = child.Content(source)
		}
	}
	return name, level
}

// Imports returns every import statement in the unit, at any depth, in
// document order.
func (u *Unit) Imports() []Import {
	var out []Import
	Walk(u.Root, func(n *sitter.Node) bool {
		if !IsImportNode(n) {
			return true
		}
		if imp, ok := DecodeImport(n, u.Source); ok {
			out = append(out, imp)
		}
		return false
	})
	return out
}
