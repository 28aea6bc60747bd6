//go:build !cgo

package parser

import (
	"context"
	"os"
)

// Parser is the non-cgo stand-in: every parse fails with ErrNoCGO.
type Parser struct{}

// NewParser returns a parser that cannot parse.
func NewParser() *Parser {
	return &Parser{}
}

// IsAvailable reports whether Python parsing is compiled in.
func IsAvailable() bool {
	return false
}

// ParseFile reads path so that read failures keep their category, then
// reports the parser as unavailable.
func (p *Parser) ParseFile(ctx context.Context, path string) (*Unit, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Category: ReadError, Err: err}
	}
	return p.ParseSource(ctx, path, source)
}

// ParseSource always fails with ErrNoCGO.
func (p *Parser) ParseSource(ctx context.Context, path string, source []byte) (*Unit, error) {
	return nil, &ParseError{Path: path, Category: Unavailable, Err: ErrNoCGO}
}

// Unit is never produced without cgo; it exists so callers compile.
type Unit struct {
	Path   string
	Source []byte
}

// Close is a no-op.
func (u *Unit) Close() {}

// Imports returns nil.
func (u *Unit) Imports() []Import {
	return nil
}
