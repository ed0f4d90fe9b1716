// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package neighborhood answers bounded-radius queries around a named entity:
// the entities within the radius, ranked per kind, plus a diagram of the
// subgraph.
package neighborhood

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/rich-context/internal/network"
	"github.com/pdiddy/rich-context/internal/relevance"
	"github.com/pdiddy/rich-context/pkg/types"
)

// Radius bounds.
const (
	MinRadius     = 1
	MaxRadius     = 10
	DefaultRadius = 2
)

// MaxTitleLen is the publication title length beyond which result lists
// abbreviate the title.
const MaxTitleLen = 100

// Diagram colors by entity kind.
var kindColors = map[types.EntityKind]string{
	types.KindProvider:    "orange",
	types.KindDataset:     "red",
	types.KindAuthor:      "purple",
	types.KindTopic:       "cyan",
	types.KindJournal:     "green",
	types.KindPublication: "blue",
}

const edgeColor = "gray"

// ParseRadius reads a radius, substituting DefaultRadius for non-numeric
// input and clamping the result to [MinRadius, MaxRadius].
func ParseRadius(s string) int {
	r, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return DefaultRadius
	}
	return ClampRadius(r)
}

// ClampRadius limits r to [MinRadius, MaxRadius].
func ClampRadius(r int) int {
	return max(MinRadius, min(r, MaxRadius))
}

// Result is the outcome of one query.
type Result struct {
	// Center is the matched node, or -1 when the term matched nothing.
	Center  int
	Radius  int
	Hood    types.Neighborhood
	Diagram types.Diagram
}

// Matched reports whether the query term named an entity in the graph.
func (r Result) Matched() bool {
	return r.Center >= 0
}

type queryOptions struct {
	rerank    int
	hasRerank bool
}

// Option adjusts a query.
type Option func(*queryOptions)

// WithRerank scores co-occurrence against the entity at index context
// instead of the query center, as when a user chains from an earlier query.
func WithRerank(context int) Option {
	return func(o *queryOptions) {
		o.rerank = context
		o.hasRerank = true
	}
}

// Engine runs neighborhood queries against a snapshot. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	snap *network.Snapshot
}

// NewEngine returns an engine over snap.
func NewEngine(snap *network.Snapshot) *Engine {
	return &Engine{snap: snap}
}

// Snapshot returns the state the engine queries.
func (e *Engine) Snapshot() *network.Snapshot {
	return e.snap
}

// Find returns the first graph node, in index order, whose title is term.
func (e *Engine) Find(term string) (int, bool) {
	labels := e.snap.Store.Index
	for i := range labels.Len() {
		if labels.Label(i) == term && e.snap.Graph.HasNode(i) {
			return i, true
		}
	}
	return -1, false
}

// Query returns every visible entity within radius hops of the entity
// titled term. radius is clamped to [MinRadius, MaxRadius]. An unmatched
// term yields empty lists, not an error.
func (e *Engine) Query(term string, radius int, opts ...Option) Result {
	radius = ClampRadius(radius)
	res := Result{Center: -1, Radius: radius, Hood: emptyHood(), Diagram: emptyDiagram()}

	center, ok := e.Find(term)
	if !ok {
		return res
	}
	res.Center = center

	o := queryOptions{rerank: center}
	for _, opt := range opts {
		opt(&o)
	}

	dist := e.snap.Graph.Within(center, radius)
	nodes := make([]int, 0, len(dist))
	for n := range dist {
		if e.snap.Visible(n) {
			nodes = append(nodes, n)
		}
	}
	slices.Sort(nodes)

	shown := make(map[int]int, len(nodes))
	for _, n := range nodes {
		entry, kind := e.entry(n, radius-dist[n], o.rerank)
		switch kind {
		case types.KindProvider:
			res.Hood.Providers = append(res.Hood.Providers, entry)
		case types.KindDataset:
			res.Hood.Datasets = append(res.Hood.Datasets, entry)
		case types.KindJournal:
			res.Hood.Journals = append(res.Hood.Journals, entry)
		case types.KindAuthor:
			res.Hood.Authors = append(res.Hood.Authors, entry)
		case types.KindTopic:
			res.Hood.Topics = append(res.Hood.Topics, entry)
		case types.KindPublication:
			res.Hood.Publications = append(res.Hood.Publications, entry)
		default:
			continue
		}
		shown[n] = dist[n]
	}

	for _, list := range []*[]types.NeighborEntry{
		&res.Hood.Providers, &res.Hood.Datasets, &res.Hood.Publications,
		&res.Hood.Journals, &res.Hood.Authors, &res.Hood.Topics,
	} {
		sortEntries(*list)
	}

	res.Diagram = e.diagram(res.Hood, shown)
	return res
}

// sortEntries orders entries by rank tuple, largest first, then by index.
func sortEntries(entries []types.NeighborEntry) {
	slices.SortStableFunc(entries, func(a, b types.NeighborEntry) int {
		if c := b.Rank.Compare(a.Rank); c != 0 {
			return c
		}
		return a.Index - b.Index
	})
}

func (e *Engine) entry(n, proximity, context int) (types.NeighborEntry, types.EntityKind) {
	s := e.snap.Store
	kind, _ := s.Kind(n)
	id, _ := s.Index.ID(n)
	impact := e.snap.Impact(n)

	entry := types.NeighborEntry{
		Index:  n,
		Impact: fmt.Sprintf("%.4f", impact),
		Title:  s.Index.Label(n),
		Shown:  true,
	}
	rank := types.RankTuple{Proximity: proximity, Impact: impact}
	rank.Count, rank.Estimate = relevance.Lookup(s, n, context)

	switch kind {
	case types.KindProvider:
		entry.Detail = s.Providers[id].ROR
	case types.KindDataset:
		if pos, ok := s.Index.Position(s.Datasets[id].Provider); ok {
			entry.Detail = s.Index.Label(pos)
		}
	case types.KindJournal:
		j := s.Journals[id]
		entry.Detail = j.ISSN
		entry.Shown = !j.Sentinel()
	case types.KindAuthor:
		entry.Detail = s.Authors[id].ORCID
	case types.KindPublication:
		entry.Detail = s.Publications[id].DOI
		entry.Title = abbreviate(entry.Title, MaxTitleLen)
	}
	entry.Rank = rank
	return entry, kind
}

// abbreviate cuts titles of at least limit runes to limit runes plus "...".
func abbreviate(title string, limit int) string {
	if utf8.RuneCountInString(title) < limit {
		return title
	}
	runes := []rune(title)
	return string(runes[:limit]) + "..."
}

func (e *Engine) diagram(hood types.Neighborhood, shown map[int]int) types.Diagram {
	d := types.Diagram{
		Nodes: make([]types.DiagramNode, 0, hood.Len()),
		Edges: []types.DiagramEdge{},
	}
	add := func(kind types.EntityKind, entries []types.NeighborEntry) {
		for _, en := range entries {
			d.Nodes = append(d.Nodes, types.DiagramNode{
				ID:     en.Index,
				Kind:   kind,
				Label:  e.snap.Title(en.Index),
				Impact: e.snap.Impact(en.Index),
				Detail: en.Detail,
				Color:  kindColors[kind],
				Size:   e.snap.Size(en.Index),
			})
		}
	}
	add(types.KindProvider, hood.Providers)
	add(types.KindDataset, hood.Datasets)
	add(types.KindAuthor, hood.Authors)
	add(types.KindTopic, hood.Topics)
	add(types.KindJournal, hood.Journals)
	add(types.KindPublication, hood.Publications)

	for _, edge := range e.snap.Graph.Subgraph(shown) {
		d.Edges = append(d.Edges, types.DiagramEdge{From: edge.From, To: edge.To, Color: edgeColor})
	}
	return d
}

func emptyHood() types.Neighborhood {
	return types.Neighborhood{
		Providers:    []types.NeighborEntry{},
		Datasets:     []types.NeighborEntry{},
		Publications: []types.NeighborEntry{},
		Journals:     []types.NeighborEntry{},
		Authors:      []types.NeighborEntry{},
		Topics:       []types.NeighborEntry{},
	}
}

func emptyDiagram() types.Diagram {
	return types.Diagram{Nodes: []types.DiagramNode{}, Edges: []types.DiagramEdge{}}
}
