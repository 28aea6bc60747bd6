package graph

import (
	"sort"
	"strings"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"codehunter/internal/findings"
)

// CycleSeparator joins the members of a cycle for display.
const CycleSeparator = " → "

// Cycle is a closed import chain in traversal order. The last member
// imports the first.
type Cycle []string

// String returns the members joined by CycleSeparator.
func (c Cycle) String() string {
	return strings.Join(c, CycleSeparator)
}

// FindCycles runs a depth-first search from every node in insertion
// order, visiting neighbors in name order. Each back-edge to a module on
// the current path yields the path slice from that module to the top.
// Modules fully explored by an earlier search are not explored again, so
// a cycle is reported once per back-edge found, not once per rotation.
func (g *Graph) FindCycles() []Cycle {
	visited := make([]bool, len(g.nodes))
	onStack := make([]int, len(g.nodes)) // position+1 on the path, 0 when absent
	var stack []int
	var cycles []Cycle

	var visit func(n int)
	visit = func(n int) {
		if pos := onStack[n]; pos > 0 {
			cycle := make(Cycle, 0, len(stack)-pos+1)
			for _, m := range stack[pos-1:] {
				cycle = append(cycle, g.nodes[m])
			}
			cycles = append(cycles, cycle)
			return
		}
		if visited[n] {
			return
		}

		visited[n] = true
		stack = append(stack, n)
		onStack[n] = len(stack)

		for _, next := range g.sortedOut(n) {
			visit(next)
		}

		stack = stack[:len(stack)-1]
		onStack[n] = 0
	}

	for n := range g.nodes {
		visit(n)
	}
	return cycles
}

// ReportCycles appends one CRITICAL finding per cycle.
func ReportCycles(c *findings.Collector, cycles []Cycle) {
	for _, cycle := range cycles {
		c.Add(findings.RuleCircularImport, findings.Critical,
			"Circular dependency detected", cycle.String(), findings.NoLine,
			"Reorganize imports to remove the circular dependency.")
	}
}

// StronglyConnected returns the groups of two or more modules that can all
// reach each other. Self-imports are not included. Members of each group
// are sorted, and groups are ordered by their first member.
func (g *Graph) StronglyConnected() [][]string {
	dg := simple.NewDirectedGraph()
	for i := range g.nodes {
		dg.AddNode(simple.Node(int64(i)))
	}
	for key := range g.edgeSet {
		if key[0] == key[1] {
			continue
		}
		dg.SetEdge(simple.Edge{F: simple.Node(int64(key[0])), T: simple.Node(int64(key[1]))})
	}

	var groups [][]string
	for _, scc := range topo.TarjanSCC(dg) {
		if len(scc) < 2 {
			continue
		}
		idxs := make([]int, len(scc))
		for i, n := range scc {
			idxs[i] = int(n.ID())
		}
		groups = append(groups, g.names(idxs))
	}
	sortGroups(groups)
	return groups
}

func sortGroups(groups [][]string) {
	sort.Slice(groups, func(i, j int) bool { return groups[i][0] < groups[j][0] })
}
