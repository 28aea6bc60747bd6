//go:build cgo

package parser

import (
	"context"
	"os"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Parser wraps a tree-sitter parser configured for Python.
// A Parser is not safe for concurrent use.
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a Python parser.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	return &Parser{parser: p}
}

// IsAvailable reports whether Python parsing is compiled in.
func IsAvailable() bool {
	return true
}

// ParseFile reads and parses one file.
func (p *Parser) ParseFile(ctx context.Context, path string) (*Unit, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Path: path, Category: ReadError, Err: err}
	}
	return p.ParseSource(ctx, path, source)
}

// ParseSource parses source already in memory. Source that is not valid
// UTF-8 or that contains syntax errors yields a *ParseError.
func (p *Parser) ParseSource(ctx context.Context, path string, source []byte) (*Unit, error) {
	if !utf8.Valid(source) {
		return nil, &ParseError{Path: path, Category: EncodingError}
	}

	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, &ParseError{Path: path, Category: SyntaxError, Err: err}
	}

	root := tree.RootNode()
	if root.HasError() {
		line := firstErrorLine(root)
		tree.Close()
		return nil, &ParseError{Path: path, Category: SyntaxError, Line: line}
	}

	return &Unit{
		Path:   path,
		Source: source,
		Root:   root,
		tree:   tree,
	}, nil
}

// firstErrorLine finds the first ERROR or MISSING node, 1-based.
func firstErrorLine(n *sitter.Node) int {
	if n.Type() == "ERROR" || n.IsMissing() {
		return int(n.StartPoint().Row) + 1
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil || !child.HasError() && !child.IsMissing() {
			continue
		}
		if line := firstErrorLine(child); line > 0 {
			return line
		}
	}
	return 0
}

// Unit is one parsed source file. It is owned by whichever pass is
// processing it; call Close when done.
type Unit struct {
	Path   string
	Source []byte
	Root   *sitter.Node

	tree *sitter.Tree
}

// Close releases the syntax tree.
func (u *Unit) Close() {
	if u.tree != nil {
		u.tree.Close()
		u.tree = nil
	}
}

// Text returns the exact source text of n.
func (u *Unit) Text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(u.Source)
}

// ContentText returns the source text of n up to the end of ContentEnd(n),
// leaving out trailing comments.
func (u *Unit) ContentText(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return string(u.Source[n.StartByte():ContentEnd(n).EndByte()])
}

// StartLine returns the 1-based first line of n.
func StartLine(n *sitter.Node) int {
	return int(n.StartPoint().Row) + 1
}

// EndLine returns the 1-based last line containing text of n.
func EndLine(n *sitter.Node) int {
	end := n.EndPoint()
	row := int(end.Row)
	if end.Column == 0 && row > int(n.StartPoint().Row) {
		row--
	}
	return row + 1
}

// ContentEnd returns the last descendant of n that is not a comment.
// Comments after the final statement of a block are children of that
// block, so they would otherwise extend the span of the enclosing
// definition.
func ContentEnd(n *sitter.Node) *sitter.Node {
	for {
		var last *sitter.Node
		for i := int(n.ChildCount()) - 1; i >= 0; i-- {
			child := n.Child(i)
			if child == nil || child.Type() == "comment" || child.StartByte() == child.EndByte() {
				continue
			}
			last = child
			break
		}
		if last == nil {
			return n
		}
		n = last
	}
}

// Walk calls fn for n and every descendant in document order. Returning
// false from fn skips the node's children.
func Walk(n *sitter.Node, fn func(*sitter.Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		Walk(n.NamedChild(i), fn)
	}
}
