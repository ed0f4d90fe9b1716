// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ranking

import (
	"math"

	"github.com/pdiddy/rich-context/internal/graph"
)

// adjacency is a dense copy of a graph for the power iterations: node k of
// the slices is nodes[k].
type adjacency struct {
	nodes     []int
	neighbors [][]int
	weights   [][]float64
	strength  []float64
}

func newAdjacency(g *graph.Graph) *adjacency {
	nodes := g.Nodes()
	pos := make(map[int]int, len(nodes))
	for k, n := range nodes {
		pos[n] = k
	}
	a := &adjacency{
		nodes:     nodes,
		neighbors: make([][]int, len(nodes)),
		weights:   make([][]float64, len(nodes)),
		strength:  make([]float64, len(nodes)),
	}
	for k, n := range nodes {
		for _, m := range g.Neighbors(n) {
			w, _ := g.Weight(n, m)
			a.neighbors[k] = append(a.neighbors[k], pos[m])
			a.weights[k] = append(a.weights[k], w)
			a.strength[k] += w
		}
	}
	return a
}

// eigenvector computes weighted eigenvector centrality by power iteration on
// A+I, which has the same dominant eigenvector as A but cannot oscillate on
// bipartite graphs. Scores are L2-normalized.
func eigenvector(a *adjacency, maxIter int, tol float64) ([]float64, int, error) {
	n := len(a.nodes)
	x := make([]float64, n)
	for k := range x {
		x[k] = 1 / float64(n)
	}
	last := make([]float64, n)

	for iter := 1; iter <= maxIter; iter++ {
		copy(last, x)
		for k := range n {
			for e, m := range a.neighbors[k] {
				x[m] += last[k] * a.weights[k][e]
			}
		}

		var norm float64
		for _, v := range x {
			norm += v * v
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			norm = 1
		}
		var diff float64
		for k := range x {
			x[k] /= norm
			diff += math.Abs(x[k] - last[k])
		}
		if diff < float64(n)*tol {
			return x, iter, nil
		}
	}
	return nil, maxIter, ErrNotConverged
}

// pagerank computes weighted pagerank with uniform teleport. The mass held
// by isolated nodes is spread evenly over every node.
func pagerank(a *adjacency, damping float64, maxIter int, tol float64) ([]float64, int, error) {
	n := len(a.nodes)
	N := float64(n)
	x := make([]float64, n)
	for k := range x {
		x[k] = 1 / N
	}
	last := make([]float64, n)

	for iter := 1; iter <= maxIter; iter++ {
		copy(last, x)

		var dangling float64
		for k := range n {
			if a.strength[k] == 0 {
				dangling += last[k]
			}
		}
		base := damping*dangling/N + (1-damping)/N
		for k := range x {
			x[k] = base
		}
		for k := range n {
			if a.strength[k] == 0 {
				continue
			}
			share := damping * last[k] / a.strength[k]
			for e, m := range a.neighbors[k] {
				x[m] += share * a.weights[k][e]
			}
		}

		var diff float64
		for k := range x {
			diff += math.Abs(x[k] - last[k])
		}
		if diff < N*tol {
			return x, iter, nil
		}
	}
	return nil, maxIter, ErrNotConverged
}
