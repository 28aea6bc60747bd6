package graph

import "sort"

// RankOptions configures PageRank over the import graph.
type RankOptions struct {
	// Damping is the probability of following an edge vs teleporting (default: 0.85)
	Damping float64

	// MaxIterations is the maximum number of power iterations (default: 50)
	MaxIterations int

	// Tolerance for convergence detection (default: 1e-6)
	Tolerance float64

	// TopK is the number of top results to return (default: 5)
	TopK int
}

// DefaultRankOptions returns the defaults used for the full report.
func DefaultRankOptions() RankOptions {
	return RankOptions{
		Damping:       0.85,
		MaxIterations: 50,
		Tolerance:     1e-6,
		TopK:          5,
	}
}

// Ranked is a module with its centrality score.
type Ranked struct {
	Module string  `json:"module" yaml:"module"`
	Score  float64 `json:"score" yaml:"score"`
}

// Rank computes PageRank with uniform teleport and returns the TopK most
// central modules. Score flows from importer to imported module, so
// widely depended-upon modules rank highest. Ties are broken by name.
func (g *Graph) Rank(opts RankOptions) []Ranked {
	n := len(g.nodes)
	if n == 0 {
		return nil
	}

	if opts.Damping <= 0 || opts.Damping >= 1 {
		opts.Damping = 0.85
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = 50
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = 1e-6
	}
	if opts.TopK <= 0 {
		opts.TopK = 5
	}

	uniform := 1.0 / float64(n)
	scores := make([]float64, n)
	for i := range scores {
		scores[i] = uniform
	}
	next := make([]float64, n)

	for range opts.MaxIterations {
		// Modules without imports spread their score evenly.
		dangling := 0.0
		for i := range next {
			next[i] = 0
		}
		for i, edges := range g.outEdges {
			if len(edges) == 0 {
				dangling += scores[i]
				continue
			}
			contrib := scores[i] / float64(len(edges))
			for _, target := range edges {
				next[target] += contrib
			}
		}

		maxDiff := 0.0
		for i := range next {
			next[i] = opts.Damping*(next[i]+dangling*uniform) + (1-opts.Damping)*uniform
			diff := next[i] - scores[i]
			if diff < 0 {
				diff = -diff
			}
			if diff > maxDiff {
				maxDiff = diff
			}
		}
		scores, next = next, scores

		if maxDiff < opts.Tolerance {
			break
		}
	}

	ranked := make([]Ranked, n)
	for i, s := range scores {
		ranked[i] = Ranked{Module: g.nodes[i], Score: s}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Module < ranked[j].Module
	})
	if len(ranked) > opts.TopK {
		ranked = ranked[:opts.TopK]
	}
	return ranked
}
