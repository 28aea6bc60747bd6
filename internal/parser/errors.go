// Package parser turns Python source files into tree-sitter syntax trees and
// isolates per-file failures as *ParseError values.
package parser

import (
	"errors"
	"fmt"
)

// ErrNoCGO is returned when the binary was built without cgo and therefore
// without the tree-sitter Python grammar.
var ErrNoCGO = errors.New("parsing Python requires cgo (tree-sitter)")

// ErrorCategory names the kind of per-file failure.
type ErrorCategory string

const (
	SyntaxError   ErrorCategory = "SyntaxError"
	EncodingError ErrorCategory = "UnicodeDecodeError"
	ReadError     ErrorCategory = "OSError"
	Unavailable   ErrorCategory = "ParserUnavailable"
)

// ParseError describes why a file produced no syntax tree.
type ParseError struct {
	Path     string
	Category ErrorCategory
	Line     int // first offending line for syntax errors, 0 otherwise
	Err      error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s at line %d", e.Path, e.Category, e.Line)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Category, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Category)
}

func (e *ParseError) Unwrap() error { return e.Err }

// CategoryOf returns the category of a *ParseError in err's chain, or
// ReadError for anything else.
func CategoryOf(err error) ErrorCategory {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Category
	}
	return ReadError
}
