// Package functions indexes function definitions across a project to find
// oversized functions and functions defined more than once.
package functions

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"

	"codehunter/internal/findings"
)

// DefaultMaxLines is the largest function size, in lines, not reported.
const DefaultMaxLines = 80

// DefaultIgnored lists special methods that are expected to repeat across
// classes.
var DefaultIgnored = []string{"__init__", "__str__", "__repr__", "__eq__", "__hash__", "__len__"}

// Occurrence is one definition of a function.
type Occurrence struct {
	File string
	Line int
	Size int
	Hash string
}

// Index accumulates occurrences by function name for one diagnosis run.
// It keys on the bare identifier: methods of unrelated classes that share
// a name are treated as the same function.
type Index struct {
	byName map[string][]Occurrence
	order  []string
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{byName: make(map[string][]Occurrence)}
}

// Add records an occurrence under name.
func (idx *Index) Add(name string, occ Occurrence) {
	if _, ok := idx.byName[name]; !ok {
		idx.order = append(idx.order, name)
	}
	idx.byName[name] = append(idx.byName[name], occ)
}

// Occurrences returns the occurrences recorded for name.
func (idx *Index) Occurrences(name string) []Occurrence {
	return idx.byName[name]
}

// Names returns every indexed name in first-seen order.
func (idx *Index) Names() []string {
	out := make([]string, len(idx.order))
	copy(out, idx.order)
	return out
}

// Len returns the total number of occurrences.
func (idx *Index) Len() int {
	n := 0
	for _, occs := range idx.byName {
		n += len(occs)
	}
	return n
}

// Analyzer extracts functions from parsed units into a shared index.
type Analyzer struct {
	MaxLines int
	ignored  map[string]bool
}

// NewAnalyzer returns an analyzer. A non-positive maxLines selects
// DefaultMaxLines; a nil ignored list selects DefaultIgnored.
func NewAnalyzer(maxLines int, ignored []string) *Analyzer {
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}
	if ignored == nil {
		ignored = DefaultIgnored
	}
	a := &Analyzer{MaxLines: maxLines, ignored: make(map[string]bool, len(ignored))}
	for _, name := range ignored {
		a.ignored[name] = true
	}
	return a
}

// Normalize strips each line, drops blank lines and joins the rest.
func Normalize(body string) string {
	var kept []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// Hash returns the hex BLAKE2b-256 digest of a normalized body.
func Hash(normalized string) string {
	sum := blake2b.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// DetectDuplicates reports every occurrence of a name defined more than
// once: WARNING when all bodies are identical, CRITICAL when they diverge.
func DetectDuplicates(c *findings.Collector, idx *Index) {
	for _, name := range idx.order {
		occs := idx.byName[name]
		if len(occs) < 2 {
			continue
		}

		rule, level := findings.RuleDuplicateFunction, findings.Warning
		message := "Function '" + name + "' duplicated across files"
		if distinctHashes(occs) > 1 {
			rule, level = findings.RuleDivergingFunction, findings.Critical
			message = "Function '" + name + "' duplicated with diverging implementations"
		}
		for _, occ := range occs {
			c.Add(rule, level, message, occ.File, findings.Line(occ.Line),
				"Centralize this function in a single module.")
		}
	}
}

func distinctHashes(occs []Occurrence) int {
	seen := make(map[string]struct{}, len(occs))
	for _, occ := range occs {
		seen[occ.Hash] = struct{}{}
	}
	return len(seen)
}
