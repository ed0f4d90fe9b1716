// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"fmt"

	"github.com/goccy/go-json"
)

type nodeLinkNode struct {
	ID int `json:"id"`
}

// nodeLink is the node-link document form of a graph.
type nodeLink struct {
	Directed   bool           `json:"directed"`
	Multigraph bool           `json:"multigraph"`
	Nodes      []nodeLinkNode `json:"nodes"`
	Links      []Edge         `json:"links"`
}

// MarshalJSON encodes g as a node-link document.
func (g *Graph) MarshalJSON() ([]byte, error) {
	doc := nodeLink{
		Nodes: make([]nodeLinkNode, 0, g.NodeCount()),
		Links: g.Edges(),
	}
	for _, n := range g.Nodes() {
		doc.Nodes = append(doc.Nodes, nodeLinkNode{ID: n})
	}
	return json.Marshal(doc)
}

// UnmarshalJSON decodes a node-link document into g, replacing its contents.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var doc nodeLink
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if doc.Directed || doc.Multigraph {
		return fmt.Errorf("decoding graph: directed=%t multigraph=%t not supported", doc.Directed, doc.Multigraph)
	}
	*g = *New()
	for _, n := range doc.Nodes {
		g.AddNode(n.ID)
	}
	for _, e := range doc.Links {
		g.AddEdge(e.From, e.To, e.Weight)
	}
	return nil
}
