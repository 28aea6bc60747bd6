// Package imports classifies the names bound by import statements in one
// Python file: unused, duplicated, function-local, annotation-only, wildcard.
package imports

// Binding is one name bound by an import statement.
type Binding struct {
	Name       string
	Origin     string // dotted module the name comes from; leading dots when relative
	Line       int
	InFunction bool
}

// Usage is the result of one traversal of a file's syntax tree.
type Usage struct {
	// Bindings maps each imported name to its most recent binding.
	Bindings map[string]Binding
	// Duplicates holds every re-binding of an already imported name.
	Duplicates []Binding
	// FunctionLocal holds every binding made inside a function body.
	FunctionLocal []Binding
	// Wildcards holds "from X import *" statements; Origin is X.
	Wildcards []Binding

	// Used holds names referenced as runtime values: bare names and the
	// root object of attribute chains.
	Used map[string]bool
	// Annotated holds names referenced inside type annotations.
	Annotated map[string]bool

	order []string
}

func newUsage() *Usage {
	return &Usage{
		Bindings:  make(map[string]Binding),
		Used:      make(map[string]bool),
		Annotated: make(map[string]bool),
	}
}

// Unused returns bindings never referenced, at runtime or in annotations,
// in first-binding order.
func (u *Usage) Unused() []Binding {
	var out []Binding
	for _, name := range u.order {
		if !u.Used[name] && !u.Annotated[name] {
			out = append(out, u.Bindings[name])
		}
	}
	return out
}

// AnnotationOnly returns bindings referenced only inside type annotations.
func (u *Usage) AnnotationOnly() []Binding {
	var out []Binding
	for _, name := range u.order {
		if !u.Used[name] && u.Annotated[name] {
			out = append(out, u.Bindings[name])
		}
	}
	return out
}
