//go:build cgo

package functions

import (
	sitter "github.com/smacker/go-tree-sitter"

	"codehunter/internal/findings"
	"codehunter/internal/parser"
)

// Analyze indexes every function in unit, nested and async ones included,
// and reports those larger than MaxLines. A function ends at its last
// statement; trailing comments count toward neither its size nor its
// hash. It returns the number of functions indexed.
func (a *Analyzer) Analyze(c *findings.Collector, idx *Index, unit *parser.Unit) int {
	count := 0
	parser.Walk(unit.Root, func(n *sitter.Node) bool {
		if n.Type() != "function_definition" {
			return true
		}
		nameNode := n.ChildByFieldName("name")
		if nameNode == nil {
			return true
		}
		name := unit.Text(nameNode)
		if a.ignored[name] {
			return true
		}

		start, end := parser.StartLine(n), parser.EndLine(parser.ContentEnd(n))
		occ := Occurrence{
			File: unit.Path,
			Line: start,
			Size: end - start + 1,
			Hash: Hash(Normalize(unit.ContentText(n))),
		}
		idx.Add(name, occ)
		count++

		if occ.Size > a.MaxLines {
			c.Addf(findings.RuleFunctionTooLarge, findings.Warning, occ.File, findings.Line(occ.Line),
				"Split the function into smaller responsibilities.",
				"Function too large: %s (%d lines)", name, occ.Size)
		}
		return true
	})
	return count
}
