//go:build !cgo

package imports

import "codehunter/internal/parser"

// Analyze returns an empty usage: without cgo no unit is ever parsed.
func Analyze(unit *parser.Unit) *Usage {
	return newUsage()
}
