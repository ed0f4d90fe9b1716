// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ranking scores every node of the relationship graph by centrality
// and converts the scores into percentile-based impact and display size.
package ranking

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/pdiddy/rich-context/internal/graph"
	"github.com/pdiddy/rich-context/internal/logging"
	"github.com/pdiddy/rich-context/pkg/types"
)

var (
	// ErrNotConverged means the power iteration hit its iteration limit.
	ErrNotConverged = errors.New("centrality did not converge")

	// ErrDegenerateGraph means the graph is too small to rank.
	ErrDegenerateGraph = errors.New("degenerate graph")
)

// Entry is the scale of one node.
type Entry struct {
	Size   int     `json:"size" yaml:"size"`
	Impact float64 `json:"impact" yaml:"impact"`
	Bucket int     `json:"bucket" yaml:"bucket"`
}

// Table maps a node index to its scale.
type Table map[int]Entry

// Impact returns the impact of node i, or 0 for nodes outside the table.
func (t Table) Impact(i int) float64 {
	return t[i].Impact
}

// Report describes a ranking run.
type Report struct {
	Algorithm  types.CentralityAlgorithm `json:"algorithm"`
	Iterations int                       `json:"iterations"`
	Nodes      int                       `json:"nodes"`
	Edges      int                       `json:"edges"`
	Quantiles  []float64                 `json:"quantiles"`
	Elapsed    time.Duration             `json:"elapsed"`
}

// Rank computes a centrality score per node of g with the configured
// algorithm and returns the resulting scale table. Graphs with fewer than
// two nodes or no edges are rejected.
func Rank(g *graph.Graph, cfg types.RankingConfig) (Table, Report, error) {
	start := time.Now()
	cfg = cfg.WithDefaults()
	report := Report{
		Algorithm: cfg.Algorithm,
		Nodes:     g.NodeCount(),
		Edges:     g.EdgeCount(),
	}

	if g.NodeCount() < 2 || g.EdgeCount() == 0 {
		return nil, report, fmt.Errorf("ranking %d nodes, %d edges: %w", g.NodeCount(), g.EdgeCount(), ErrDegenerateGraph)
	}

	adj := newAdjacency(g)
	var (
		scores []float64
		err    error
	)
	switch cfg.Algorithm {
	case types.AlgorithmEigenvector:
		scores, report.Iterations, err = eigenvector(adj, cfg.MaxIterations, cfg.Tolerance)
	case types.AlgorithmPageRank:
		scores, report.Iterations, err = pagerank(adj, cfg.Damping, cfg.MaxIterations, cfg.Tolerance)
	default:
		return nil, report, fmt.Errorf("unknown centrality algorithm %q", cfg.Algorithm)
	}
	if err != nil {
		logging.Error().
			Str("algorithm", string(cfg.Algorithm)).
			Int("iterations", report.Iterations).
			Float64("tolerance", cfg.Tolerance).
			Int("nodes", report.Nodes).
			Msg("centrality failed")
		return nil, report, fmt.Errorf("%s after %d iterations: %w", cfg.Algorithm, report.Iterations, err)
	}

	sorted := slices.Clone(scores)
	slices.Sort(sorted)
	report.Quantiles = quantiles(sorted, cfg.Quantiles)

	table := make(Table, len(scores))
	for k, score := range scores {
		pct := percentile(sorted, score)
		table[adj.nodes[k]] = Entry{
			Size:   visualSize(pct, len(report.Quantiles), cfg.ScaleFactor),
			Impact: pct / 100,
			Bucket: bucket(report.Quantiles, score),
		}
	}

	report.Elapsed = time.Since(start)
	logging.Debug().
		Str("algorithm", string(cfg.Algorithm)).
		Int("iterations", report.Iterations).
		Dur("elapsed", report.Elapsed).
		Msg("centrality converged")
	return table, report, nil
}
