//go:build cgo

package profile

import (
	sitter "github.com/smacker/go-tree-sitter"

	"codehunter/internal/parser"
)

func (b *Builder) countDefinitions(unit *parser.Unit) {
	parser.Walk(unit.Root, func(n *sitter.Node) bool {
		switch n.Type() {
		case "function_definition":
			b.structure.Functions++
		case "class_definition":
			b.structure.Classes++
		}
		return true
	})
}
