//go:build !cgo

package functions

import (
	"codehunter/internal/findings"
	"codehunter/internal/parser"
)

// Analyze indexes nothing: without cgo no unit is ever parsed.
func (a *Analyzer) Analyze(c *findings.Collector, idx *Index, unit *parser.Unit) int {
	return 0
}
