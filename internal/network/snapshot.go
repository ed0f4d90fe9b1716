// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package network assembles the immutable computed state shared by every
// query: the entity store, the relationship graph, and the scale table.
package network

import (
	"fmt"
	"time"

	"github.com/pdiddy/rich-context/internal/corpus"
	"github.com/pdiddy/rich-context/internal/graph"
	"github.com/pdiddy/rich-context/internal/logging"
	"github.com/pdiddy/rich-context/internal/ranking"
	"github.com/pdiddy/rich-context/internal/relevance"
	"github.com/pdiddy/rich-context/pkg/types"
)

// Snapshot is the fully computed state. After Build or Restore returns it
// is never written again and may be shared across goroutines.
type Snapshot struct {
	Store   *corpus.Store
	Graph   *graph.Graph
	Scale   ranking.Table
	Ranking types.RankingConfig
	Report  ranking.Report
}

// Build runs the one-shot pipeline over a loaded store: relevance
// estimates, graph construction, and ranking. The store is mutated in
// place and owned by the snapshot afterwards.
func Build(s *corpus.Store, cfg types.RankingConfig) (*Snapshot, error) {
	cfg = cfg.WithDefaults()
	log := logging.With().Str("component", "network").Logger()

	start := time.Now()
	relevance.Propagate(s)
	log.Info().Dur("elapsed", time.Since(start)).Msg("relevance estimates propagated")

	start = time.Now()
	g := graph.Build(s)
	log.Info().
		Int("nodes", g.NodeCount()).
		Int("edges", g.EdgeCount()).
		Dur("elapsed", time.Since(start)).
		Msg("graph built")

	table, report, err := ranking.Rank(g, cfg)
	if err != nil {
		return nil, fmt.Errorf("ranking graph: %w", err)
	}
	log.Info().
		Str("algorithm", string(report.Algorithm)).
		Int("iterations", report.Iterations).
		Dur("elapsed", report.Elapsed).
		Msg("graph ranked")

	for i := range s.Index.Len() {
		s.SetRank(i, table.Impact(i))
	}

	return &Snapshot{Store: s, Graph: g, Scale: table, Ranking: cfg, Report: report}, nil
}

// Restore wraps previously computed parts into a snapshot without
// recomputing anything.
func Restore(s *corpus.Store, g *graph.Graph, scale ranking.Table, cfg types.RankingConfig) *Snapshot {
	return &Snapshot{
		Store:   s,
		Graph:   g,
		Scale:   scale,
		Ranking: cfg.WithDefaults(),
		Report: ranking.Report{
			Algorithm: cfg.WithDefaults().Algorithm,
			Nodes:     g.NodeCount(),
			Edges:     g.EdgeCount(),
		},
	}
}

// Title returns the label of node i.
func (n *Snapshot) Title(i int) string {
	return n.Store.Index.Label(i)
}

// Impact returns the global importance of node i in [0, 1].
func (n *Snapshot) Impact(i int) float64 {
	return n.Scale.Impact(i)
}

// Size returns the display size of node i.
func (n *Snapshot) Size(i int) int {
	return n.Scale[i].Size
}

// Visible reports whether node i may appear in results: it is a used
// entity or a publication and it is part of the graph.
func (n *Snapshot) Visible(i int) bool {
	return n.Store.Used(i) && n.Graph.HasNode(i)
}
