// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"github.com/pdiddy/rich-context/internal/corpus"
	"github.com/pdiddy/rich-context/internal/logging"
	"github.com/pdiddy/rich-context/pkg/types"
)

// Edge weights by relationship.
const (
	WeightProvider = 10 // dataset - provider
	WeightDataset  = 20 // publication - dataset
	WeightAuthor   = 20 // publication - author
	WeightTopic    = 10 // publication - topic
	WeightJournal  = 1  // publication - journal
)

// Build returns the relationship graph of a loaded store: one node per used
// provider, dataset, journal, author, and topic, one node per publication,
// and one edge per link. A repeated pair keeps the last weight added.
func Build(s *corpus.Store) *Graph {
	g := New()

	for id, p := range s.Providers {
		if p.Used {
			g.AddNode(s.Pos(id))
		}
	}
	for id, d := range s.Datasets {
		if d.Used {
			i := s.Pos(id)
			g.AddEdge(i, s.Pos(d.Provider), WeightProvider)
		}
	}
	for id, j := range s.Journals {
		if j.Used && !j.Sentinel() {
			g.AddNode(s.Pos(id))
		}
	}
	for id, a := range s.Authors {
		if a.Used {
			g.AddNode(s.Pos(id))
		}
	}
	for id, t := range s.Topics {
		if t.Used {
			g.AddNode(s.Pos(id))
		}
	}

	for _, i := range s.Members(types.KindPublication) {
		id, _ := s.Index.ID(i)
		p := s.Publications[id]
		g.AddNode(i)
		for _, d := range p.Datasets {
			g.AddEdge(i, s.Pos(d), WeightDataset)
		}
		for _, a := range p.Authors {
			g.AddEdge(i, s.Pos(a), WeightAuthor)
		}
		for _, t := range p.Topics {
			g.AddEdge(i, s.Pos(t), WeightTopic)
		}
		if p.Journal != "" {
			g.AddEdge(i, s.Pos(p.Journal), WeightJournal)
		}
	}

	logging.Debug().
		Int("nodes", g.NodeCount()).
		Int("edges", g.EdgeCount()).
		Msg("relationship graph built")
	return g
}
