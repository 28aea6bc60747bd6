//go:build cgo

package imports

import (
	sitter "github.com/smacker/go-tree-sitter"

	"codehunter/internal/parser"
)

// Analyze traverses the unit once and collects import bindings and name
// references.
func Analyze(unit *parser.Unit) *Usage {
	u := newUsage()
	v := &visitor{usage: u, source: unit.Source}
	v.visit(unit.Root, false, false)
	return u
}

type visitor struct {
	usage  *Usage
	source []byte
}

func (v *visitor) bind(b Binding) {
	u := v.usage
	if _, seen := u.Bindings[b.Name]; seen {
		u.Duplicates = append(u.Duplicates, b)
	} else {
		u.order = append(u.order, b.Name)
	}
	u.Bindings[b.Name] = b
	if b.InFunction {
		u.FunctionLocal = append(u.FunctionLocal, b)
	}
}

func (v *visitor) reference(name string, annotation bool) {
	if annotation {
		v.usage.Annotated[name] = true
		return
	}
	v.usage.Used[name] = true
}

func (v *visitor) visit(n *sitter.Node, inFunction, inAnnotation bool) {
	if n == nil {
		return
	}

	switch n.Type() {
	case "import_statement", "import_from_statement":
		v.importStatement(n, inFunction)
		return

	case "future_import_statement", "comment", "global_statement", "nonlocal_statement":
		return

	case "identifier":
		v.reference(n.Content(v.source), inAnnotation)
		return

	case "attribute":
		v.visit(n.ChildByFieldName("object"), inFunction, inAnnotation)
		return

	case "keyword_argument":
		v.visit(n.ChildByFieldName("value"), inFunction, inAnnotation)
		return

	case "function_definition":
		v.visit(n.ChildByFieldName("parameters"), inFunction, inAnnotation)
		v.visit(n.ChildByFieldName("return_type"), inFunction, true)
		v.visit(n.ChildByFieldName("body"), true, false)
		return

	case "class_definition":
		v.visit(n.ChildByFieldName("superclasses"), inFunction, inAnnotation)
		v.visit(n.ChildByFieldName("body"), inFunction, false)
		return

	case "parameters", "lambda_parameters":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			child := n.NamedChild(i)
			switch child.Type() {
			case "identifier", "list_splat_pattern", "dictionary_splat_pattern",
				"keyword_separator", "positional_separator":
				continue
			}
			v.visit(child, inFunction, inAnnotation)
		}
		return

	case "typed_parameter":
		v.visit(n.ChildByFieldName("type"), inFunction, true)
		return

	case "default_parameter":
		v.visit(n.ChildByFieldName("value"), inFunction, inAnnotation)
		return

	case "typed_default_parameter":
		v.visit(n.ChildByFieldName("type"), inFunction, true)
		v.visit(n.ChildByFieldName("value"), inFunction, inAnnotation)
		return

	case "assignment":
		if typ := n.ChildByFieldName("type"); typ != nil {
			v.visit(n.ChildByFieldName("left"), inFunction, inAnnotation)
			v.visit(typ, inFunction, true)
			v.visit(n.ChildByFieldName("right"), inFunction, inAnnotation)
			return
		}
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		v.visit(n.NamedChild(i), inFunction, inAnnotation)
	}
}

func (v *visitor) importStatement(n *sitter.Node, inFunction bool) {
	imp, ok := parser.DecodeImport(n, v.source)
	if !ok || imp.Future {
		return
	}
	if imp.Wildcard {
		v.usage.Wildcards = append(v.usage.Wildcards, Binding{
			Origin:     imp.Origin(parser.ImportedName{}),
			Line:       imp.Line,
			InFunction: inFunction,
		})
		return
	}
	for _, name := range imp.Names {
		v.bind(Binding{
			Name:       imp.Bound(name),
			Origin:     imp.Origin(name),
			Line:       imp.Line,
			InFunction: inFunction,
		})
	}
}
