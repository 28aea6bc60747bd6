// Package graph builds the internal import graph of a Python project and
// finds the import cycles in it.
package graph

import "sort"

// Graph is a directed graph of modules, identified by their root-relative
// slash paths. Nodes keep insertion order; edges are deduplicated.
type Graph struct {
	nodes   []string
	nodeIdx map[string]int

	// outEdges[i] lists the targets of node i in insertion order.
	outEdges [][]int
	inEdges  [][]int
	edgeSet  map[[2]int]struct{}
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodeIdx: make(map[string]int),
		edgeSet: make(map[[2]int]struct{}),
	}
}

// FromMap builds a graph from an adjacency mapping. Nodes are added in
// sorted key order so the result does not depend on map iteration.
func FromMap(adj map[string][]string) *Graph {
	g := NewGraph()
	keys := make([]string, 0, len(adj))
	for k := range adj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		g.AddNode(k)
	}
	for _, k := range keys {
		for _, to := range adj[k] {
			g.AddEdge(k, to)
		}
	}
	return g
}

// AddNode adds a node if it doesn't exist, returns its index.
func (g *Graph) AddNode(id string) int {
	if idx, ok := g.nodeIdx[id]; ok {
		return idx
	}
	idx := len(g.nodes)
	g.nodes = append(g.nodes, id)
	g.nodeIdx[id] = idx
	g.outEdges = append(g.outEdges, nil)
	g.inEdges = append(g.inEdges, nil)
	return idx
}

// AddEdge adds a directed edge from src to dst, adding missing nodes.
func (g *Graph) AddEdge(src, dst string) {
	srcIdx := g.AddNode(src)
	dstIdx := g.AddNode(dst)

	key := [2]int{srcIdx, dstIdx}
	if _, ok := g.edgeSet[key]; ok {
		return
	}
	g.edgeSet[key] = struct{}{}
	g.outEdges[srcIdx] = append(g.outEdges[srcIdx], dstIdx)
	g.inEdges[dstIdx] = append(g.inEdges[dstIdx], srcIdx)
}

// NumNodes returns the number of nodes in the graph.
func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

// NumEdges returns the total number of edges.
func (g *Graph) NumEdges() int {
	return len(g.edgeSet)
}

// Nodes returns all node IDs in insertion order.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// HasNode checks if a node exists in the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodeIdx[id]
	return ok
}

// HasEdge reports whether src imports dst.
func (g *Graph) HasEdge(src, dst string) bool {
	s, ok := g.nodeIdx[src]
	if !ok {
		return false
	}
	d, ok := g.nodeIdx[dst]
	if !ok {
		return false
	}
	_, ok = g.edgeSet[[2]int{s, d}]
	return ok
}

// Neighbors returns the modules imported by id, sorted.
func (g *Graph) Neighbors(id string) []string {
	idx, ok := g.nodeIdx[id]
	if !ok {
		return nil
	}
	return g.names(g.outEdges[idx])
}

// Importers returns the modules that import id, sorted.
func (g *Graph) Importers(id string) []string {
	idx, ok := g.nodeIdx[id]
	if !ok {
		return nil
	}
	return g.names(g.inEdges[idx])
}

// Map returns the adjacency mapping with sorted target lists. Every node
// is a key, including those without imports.
func (g *Graph) Map() map[string][]string {
	out := make(map[string][]string, len(g.nodes))
	for i, id := range g.nodes {
		out[id] = g.names(g.outEdges[i])
	}
	return out
}

func (g *Graph) names(idxs []int) []string {
	out := make([]string, len(idxs))
	for i, idx := range idxs {
		out[i] = g.nodes[idx]
	}
	sort.Strings(out)
	return out
}

// sortedOut returns the out-edges of node i ordered by target name.
func (g *Graph) sortedOut(i int) []int {
	out := make([]int, len(g.outEdges[i]))
	copy(out, g.outEdges[i])
	sort.Slice(out, func(a, b int) bool {
		return g.nodes[out[a]] < g.nodes[out[b]]
	})
	return out
}
