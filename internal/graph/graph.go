// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package graph holds the weighted undirected relationship graph over corpus
// entities. Nodes are dense corpus indices; an edge carries one weight and
// is stored in both directions.
package graph

import (
	"slices"
)

// Graph is a weighted undirected graph without multi-edges or self-loops.
// It is built once and then only read.
type Graph struct {
	adj   map[int]map[int]float64
	edges int
}

// Edge is one undirected edge, reported with From < To.
type Edge struct {
	From   int     `json:"source"`
	To     int     `json:"target"`
	Weight float64 `json:"weight"`
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{adj: make(map[int]map[int]float64)}
}

// AddNode adds n if absent.
func (g *Graph) AddNode(n int) {
	if _, ok := g.adj[n]; !ok {
		g.adj[n] = make(map[int]float64)
	}
}

// AddEdge links u and v, adding either node if absent. An existing edge
// keeps its endpoints and takes the new weight. Self-loops are ignored.
func (g *Graph) AddEdge(u, v int, w float64) {
	if u == v {
		return
	}
	g.AddNode(u)
	g.AddNode(v)
	if _, ok := g.adj[u][v]; !ok {
		g.edges++
	}
	g.adj[u][v] = w
	g.adj[v][u] = w
}

// HasNode reports whether n is in the graph.
func (g *Graph) HasNode(n int) bool {
	_, ok := g.adj[n]
	return ok
}

// HasEdge reports whether u and v are adjacent.
func (g *Graph) HasEdge(u, v int) bool {
	_, ok := g.adj[u][v]
	return ok
}

// Weight returns the weight of edge u-v.
func (g *Graph) Weight(u, v int) (float64, bool) {
	w, ok := g.adj[u][v]
	return w, ok
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.adj)
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	return g.edges
}

// Nodes returns every node in ascending order.
func (g *Graph) Nodes() []int {
	out := make([]int, 0, len(g.adj))
	for n := range g.adj {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// Neighbors returns the nodes adjacent to n in ascending order.
func (g *Graph) Neighbors(n int) []int {
	out := make([]int, 0, len(g.adj[n]))
	for m := range g.adj[n] {
		out = append(out, m)
	}
	slices.Sort(out)
	return out
}

// Degree returns the number of neighbors of n.
func (g *Graph) Degree(n int) int {
	return len(g.adj[n])
}

// Strength returns the sum of the weights of the edges at n.
func (g *Graph) Strength(n int) float64 {
	var sum float64
	for _, w := range g.adj[n] {
		sum += w
	}
	return sum
}

// Edges returns every edge once, ordered by (From, To).
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.edges)
	for _, u := range g.Nodes() {
		for _, v := range g.Neighbors(u) {
			if u < v {
				out = append(out, Edge{From: u, To: v, Weight: g.adj[u][v]})
			}
		}
	}
	return out
}

// Within returns the shortest hop distance from src to every node at most
// radius hops away, src included at distance 0. An unknown src or a
// negative radius yields an empty map.
func (g *Graph) Within(src, radius int) map[int]int {
	dist := make(map[int]int)
	if !g.HasNode(src) || radius < 0 {
		return dist
	}
	dist[src] = 0
	frontier := []int{src}
	for d := 1; d <= radius && len(frontier) > 0; d++ {
		var next []int
		for _, u := range frontier {
			for v := range g.adj[u] {
				if _, seen := dist[v]; seen {
					continue
				}
				dist[v] = d
				next = append(next, v)
			}
		}
		frontier = next
	}
	return dist
}

// Subgraph returns the edges whose endpoints are both in nodes, ordered by
// (From, To).
func (g *Graph) Subgraph(nodes map[int]int) []Edge {
	var out []Edge
	for _, e := range g.Edges() {
		_, a := nodes[e.From]
		_, b := nodes[e.To]
		if a && b {
			out = append(out, e)
		}
	}
	return out
}
