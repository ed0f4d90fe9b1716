// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package links builds the one-hop link view of every entity: its direct
// neighbors, ranked, in a kind-specific shape for an external renderer.
package links

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/pdiddy/rich-context/internal/network"
	"github.com/pdiddy/rich-context/internal/relevance"
	"github.com/pdiddy/rich-context/pkg/types"
)

// ErrNotFound marks an id or index with no link view.
var ErrNotFound = errors.New("entity not found")

// Identifier URL prefixes stripped for display.
const (
	rorPrefix   = "https://ror.org/"
	orcidPrefix = "https://orcid.org/"
	issnPrefix  = "https://portal.issn.org/resource/ISSN/"
	doiPrefix   = "https://doi.org/"
)

type viewOptions struct {
	context    int
	hasContext bool
}

// Option adjusts a link view.
type Option func(*viewOptions)

// WithContext orders publication lists by co-occurrence with the entity at
// index context before impact.
func WithContext(context int) Option {
	return func(o *viewOptions) {
		o.context = context
		o.hasContext = true
	}
}

// Recommender builds link views from a snapshot. It is safe for
// concurrent use.
type Recommender struct {
	snap *network.Snapshot
}

// NewRecommender returns a recommender over snap.
func NewRecommender(snap *network.Snapshot) *Recommender {
	return &Recommender{snap: snap}
}

// View returns the link view of the entity at index. ok is false for
// indices that are out of range, unused, or not part of the graph.
func (r *Recommender) View(index int, opts ...Option) (types.LinkView, bool) {
	if !r.snap.Visible(index) {
		return nil, false
	}
	var o viewOptions
	for _, opt := range opts {
		opt(&o)
	}

	s := r.snap.Store
	kind, _ := s.Kind(index)
	id, _ := s.Index.ID(index)
	header := types.LinkHeader{
		ID:    id,
		Title: s.Index.Label(index),
		Rank:  fmt.Sprintf("%.4f", r.snap.Impact(index)),
	}

	switch kind {
	case types.KindProvider:
		return r.provider(index, header), true
	case types.KindDataset:
		return r.dataset(index, header), true
	case types.KindAuthor:
		a := s.Authors[id]
		return types.AuthorLinks{
			LinkHeader:   header,
			URL:          a.ORCID,
			ORCID:        strings.TrimPrefix(a.ORCID, orcidPrefix),
			Publications: r.publications(index, o),
		}, true
	case types.KindJournal:
		j := s.Journals[id]
		issn := strings.TrimPrefix(j.ISSN, issnPrefix)
		url := j.URL
		if url == "" {
			url = issn
		}
		return types.JournalLinks{
			LinkHeader:   header,
			URL:          url,
			ISSN:         issn,
			Publications: r.publications(index, o),
		}, true
	case types.KindTopic:
		return types.TopicLinks{
			LinkHeader:   header,
			Publications: r.publications(index, o),
		}, true
	case types.KindPublication:
		return r.publication(id, header), true
	}
	return nil, false
}

// ByID returns the link view of the entity with the given corpus id.
func (r *Recommender) ByID(id string, opts ...Option) (types.LinkView, error) {
	i, ok := r.snap.Store.Index.Position(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	v, ok := r.View(i, opts...)
	if !ok {
		return nil, fmt.Errorf("%w: %q has no links", ErrNotFound, id)
	}
	return v, nil
}

func (r *Recommender) link(i int) types.Link {
	id, _ := r.snap.Store.Index.ID(i)
	return types.Link{
		Index: i,
		ID:    id,
		Title: r.snap.Title(i),
		Score: r.snap.Impact(i),
	}
}

// byScore orders links by score, highest first, then by index.
func byScore(a, b types.Link) int {
	if a.Score != b.Score {
		if a.Score > b.Score {
			return -1
		}
		return 1
	}
	return a.Index - b.Index
}

func (r *Recommender) provider(index int, header types.LinkHeader) types.ProviderLinks {
	p := r.snap.Store.Providers[header.ID]
	out := types.ProviderLinks{
		LinkHeader: header,
		URL:        p.ROR,
		ROR:        strings.TrimPrefix(p.ROR, rorPrefix),
		Datasets:   []types.Link{},
	}
	for _, n := range r.snap.Graph.Neighbors(index) {
		out.Datasets = append(out.Datasets, r.link(n))
	}
	slices.SortFunc(out.Datasets, byScore)
	return out
}

func (r *Recommender) dataset(index int, header types.LinkHeader) types.DatasetLinks {
	s := r.snap.Store
	d := s.Datasets[header.ID]
	prov := s.Pos(d.Provider)
	out := types.DatasetLinks{
		LinkHeader:   header,
		URL:          d.URL,
		Provider:     r.link(prov),
		Publications: []types.Link{},
	}
	for _, n := range r.snap.Graph.Neighbors(index) {
		if n != prov {
			out.Publications = append(out.Publications, r.link(n))
		}
	}
	slices.SortFunc(out.Publications, byScore)
	return out
}

// publications lists the neighbors of an author, journal, or topic. With a
// context they are ordered by rank tuple, otherwise by impact.
func (r *Recommender) publications(index int, o viewOptions) []types.Link {
	out := []types.Link{}
	for _, n := range r.snap.Graph.Neighbors(index) {
		l := r.link(n)
		if o.hasContext {
			rank := types.RankTuple{Impact: l.Score}
			rank.Count, rank.Estimate = relevance.Lookup(r.snap.Store, n, o.context)
			l.Rank = &rank
		}
		out = append(out, l)
	}
	if !o.hasContext {
		slices.SortFunc(out, byScore)
		return out
	}
	slices.SortFunc(out, func(a, b types.Link) int {
		if c := b.Rank.Compare(*a.Rank); c != 0 {
			return c
		}
		return a.Index - b.Index
	})
	return out
}

func (r *Recommender) publication(id string, header types.LinkHeader) types.PublicationLinks {
	s := r.snap.Store
	p := s.Publications[id]
	out := types.PublicationLinks{
		LinkHeader: header,
		URL:        p.DOI,
		DOI:        strings.TrimPrefix(p.DOI, doiPrefix),
		PDF:        p.PDF,
		Abstract:   p.Abstract,
		Authors:    make([]types.Link, 0, len(p.Authors)),
		Datasets:   []types.Link{},
		Topics:     make([]types.Link, 0, len(p.Topics)),
	}
	if p.Journal != "" {
		j := r.link(s.Pos(p.Journal))
		out.Journal = &j
	}
	for _, a := range p.Authors {
		out.Authors = append(out.Authors, r.link(s.Pos(a)))
	}
	seen := make(map[int]bool, len(p.Datasets))
	for _, d := range p.Datasets {
		i := s.Pos(d)
		if !seen[i] {
			seen[i] = true
			out.Datasets = append(out.Datasets, r.link(i))
		}
	}
	for _, t := range p.Topics {
		out.Topics = append(out.Topics, r.link(s.Pos(t)))
	}
	slices.SortFunc(out.Datasets, byScore)
	slices.SortFunc(out.Topics, byScore)
	return out
}
