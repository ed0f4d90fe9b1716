// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"cmp"

	"github.com/goccy/go-json"
)

// RankTuple is the sort key of a neighborhood result. Components compare
// lexicographically, left to right, larger first.
type RankTuple struct {
	// Proximity is radius minus the hop distance from the query center.
	Proximity int

	// Count is the co-occurrence count with the reranking context.
	Count int

	// Estimate is the smoothed co-occurrence estimate with the context.
	Estimate float64

	// Impact is the global importance percentile in [0, 1].
	Impact float64
}

// Compare returns -1, 0, or +1 as t sorts before, equal to, or after u in
// ascending order.
func (t RankTuple) Compare(u RankTuple) int {
	if c := cmp.Compare(t.Proximity, u.Proximity); c != 0 {
		return c
	}
	if c := cmp.Compare(t.Count, u.Count); c != 0 {
		return c
	}
	if c := cmp.Compare(t.Estimate, u.Estimate); c != 0 {
		return c
	}
	return cmp.Compare(t.Impact, u.Impact)
}

// MarshalJSON encodes the tuple as a four-element array.
func (t RankTuple) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]any{t.Proximity, t.Count, t.Estimate, t.Impact})
}

// UnmarshalJSON decodes the four-element array form.
func (t *RankTuple) UnmarshalJSON(data []byte) error {
	var raw [4]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.Proximity = int(raw[0])
	t.Count = int(raw[1])
	t.Estimate = raw[2]
	t.Impact = raw[3]
	return nil
}

// NeighborEntry is one ranked entity within a neighborhood category.
type NeighborEntry struct {
	Index int       `json:"index"`
	Rank  RankTuple `json:"rank"`

	// Impact is the impact formatted to four decimals.
	Impact string `json:"impact"`

	Title string `json:"title"`

	// Detail is the identifying field of the entity: ROR for providers,
	// the provider title for datasets, ORCID, ISSN, or DOI. Empty for topics.
	Detail string `json:"detail"`

	// Shown is false for entries a renderer must not display.
	Shown bool `json:"shown"`
}

// Neighborhood is the categorized, sorted result of a neighborhood query.
type Neighborhood struct {
	Providers    []NeighborEntry `json:"prov"`
	Datasets     []NeighborEntry `json:"data"`
	Publications []NeighborEntry `json:"publ"`
	Journals     []NeighborEntry `json:"jour"`
	Authors      []NeighborEntry `json:"auth"`
	Topics       []NeighborEntry `json:"topi"`

	// Token references the diagram artifact in the query cache.
	Token string `json:"toke"`

	// Elapsed is the query time in milliseconds, formatted to two decimals.
	Elapsed string `json:"time"`
}

// Len returns the total number of entries across all categories.
func (n *Neighborhood) Len() int {
	return len(n.Providers) + len(n.Datasets) + len(n.Publications) +
		len(n.Journals) + len(n.Authors) + len(n.Topics)
}

// DiagramNode is a node of the neighborhood diagram.
type DiagramNode struct {
	ID     int        `json:"id"`
	Kind   EntityKind `json:"kind"`
	Label  string     `json:"label"`
	Impact float64    `json:"impact"`
	Detail string     `json:"detail,omitempty"`
	Color  string     `json:"color"`
	Size   int        `json:"size"`
}

// DiagramEdge is an edge of the neighborhood diagram.
type DiagramEdge struct {
	From  int    `json:"from"`
	To    int    `json:"to"`
	Color string `json:"color"`
}

// Diagram is the node/edge list an external renderer draws.
type Diagram struct {
	Nodes []DiagramNode `json:"nodes"`
	Edges []DiagramEdge `json:"edges"`
}
