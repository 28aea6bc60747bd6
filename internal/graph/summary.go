package graph

// Summary describes the import graph in the full report.
type Summary struct {
	Modules           int        `json:"modules" yaml:"modules"`
	Edges             int        `json:"edges" yaml:"edges"`
	Cycles            int        `json:"cycles" yaml:"cycles"`
	StronglyConnected [][]string `json:"strongly_connected" yaml:"strongly_connected"`
	Central           []Ranked   `json:"central" yaml:"central"`
}

// Summarize builds the summary of g given the cycles already found in it.
func (g *Graph) Summarize(cycles []Cycle) Summary {
	scc := g.StronglyConnected()
	if scc == nil {
		scc = [][]string{}
	}
	central := g.Rank(DefaultRankOptions())
	if central == nil {
		central = []Ranked{}
	}
	return Summary{
		Modules:           g.NumNodes(),
		Edges:             g.NumEdges(),
		Cycles:            len(cycles),
		StronglyConnected: scc,
		Central:           central,
	}
}
