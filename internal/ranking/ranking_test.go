// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/rich-context/internal/graph"
	"github.com/pdiddy/rich-context/pkg/types"
)

// minimalGraph mirrors the one-publication corpus: P1=0, D1=1, J1=2, A1=3,
// Pub1=4.
func minimalGraph() *graph.Graph {
	g := graph.New()
	g.AddEdge(1, 0, graph.WeightProvider)
	g.AddEdge(4, 1, graph.WeightDataset)
	g.AddEdge(4, 3, graph.WeightAuthor)
	g.AddEdge(4, 2, graph.WeightJournal)
	return g
}

func TestRank_Eigenvector(t *testing.T) {
	table, report, err := Rank(minimalGraph(), types.RankingConfig{})
	require.NoError(t, err)

	assert.Equal(t, types.AlgorithmEigenvector, report.Algorithm)
	assert.Positive(t, report.Iterations)
	require.Len(t, table, 5)

	// Pub1 > D1 > A1 > P1 > J1
	want := map[int]Entry{
		4: {Size: 45, Impact: 1.0, Bucket: 9},
		1: {Size: 39, Impact: 0.8, Bucket: 7},
		3: {Size: 33, Impact: 0.6, Bucket: 5},
		0: {Size: 27, Impact: 0.4, Bucket: 3},
		2: {Size: 21, Impact: 0.2, Bucket: 1},
	}
	for n, e := range want {
		assert.Equal(t, e.Size, table[n].Size, "node %d size", n)
		assert.InDelta(t, e.Impact, table[n].Impact, 1e-9, "node %d impact", n)
		assert.Equal(t, e.Bucket, table[n].Bucket, "node %d bucket", n)
	}
}

func TestRank_PageRank(t *testing.T) {
	g := minimalGraph()
	g.AddNode(7) // isolated

	cfg := types.RankingConfig{Algorithm: types.AlgorithmPageRank}
	table, report, err := Rank(g, cfg)
	require.NoError(t, err)
	assert.Equal(t, types.AlgorithmPageRank, report.Algorithm)

	assert.Greater(t, table.Impact(4), table.Impact(1))
	assert.Greater(t, table.Impact(1), table.Impact(3))
	assert.Greater(t, table.Impact(0), table.Impact(2))
	assert.Contains(t, table, 7)
}

func TestPagerank_SumsToOne(t *testing.T) {
	g := minimalGraph()
	g.AddNode(9)

	scores, _, err := pagerank(newAdjacency(g), 0.85, 100, 1e-9)
	require.NoError(t, err)

	var sum float64
	for _, s := range scores {
		assert.GreaterOrEqual(t, s, 0.0)
		sum += s
	}
	assert.InDelta(t, 1.0, sum, 1e-6)
}

func TestEigenvector_NonNegativeUnitNorm(t *testing.T) {
	scores, _, err := eigenvector(newAdjacency(minimalGraph()), 1000, 1e-6)
	require.NoError(t, err)

	var norm float64
	for _, s := range scores {
		assert.GreaterOrEqual(t, s, 0.0)
		norm += s * s
	}
	assert.InDelta(t, 1.0, norm, 1e-9)
}

func TestRank_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		g    func() *graph.Graph
	}{
		{"empty", graph.New},
		{"single node", func() *graph.Graph {
			g := graph.New()
			g.AddNode(1)
			return g
		}},
		{"no edges", func() *graph.Graph {
			g := graph.New()
			g.AddNode(1)
			g.AddNode(2)
			return g
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Rank(tt.g(), types.RankingConfig{})
			assert.ErrorIs(t, err, ErrDegenerateGraph)
		})
	}
}

func TestRank_NotConverged(t *testing.T) {
	cfg := types.RankingConfig{MaxIterations: 2, Tolerance: 1e-15}
	_, report, err := Rank(minimalGraph(), cfg)
	assert.ErrorIs(t, err, ErrNotConverged)
	assert.Equal(t, 2, report.Iterations)
}

func TestRank_UnknownAlgorithm(t *testing.T) {
	_, _, err := Rank(minimalGraph(), types.RankingConfig{Algorithm: "katz"})
	assert.ErrorContains(t, err, "katz")
}

func TestPercentile(t *testing.T) {
	sorted := []float64{1, 2, 2, 3}

	assert.Equal(t, 25.0, percentile(sorted, 1))
	assert.Equal(t, 75.0, percentile(sorted, 2), "ties count as <=")
	assert.Equal(t, 100.0, percentile(sorted, 3))
	assert.Equal(t, 0.0, percentile(sorted, 0.5))
	assert.Equal(t, 0.0, percentile(nil, 1))
}

func TestQuantiles(t *testing.T) {
	sorted := []float64{10, 20, 30, 40, 50}

	got := quantiles(sorted, 10)
	assert.Equal(t, []float64{10, 10, 20, 20, 30, 30, 40, 40, 50, 50}, got)
	assert.Equal(t, []float64{10, 30, 50}, quantiles(sorted, 3))
	assert.Nil(t, quantiles(nil, 10))
}

func TestBucket(t *testing.T) {
	cuts := []float64{10, 10, 20, 20, 30, 30, 40, 40, 50, 50}

	tests := []struct {
		score float64
		want  int
	}{
		{5, 0},
		{10, 1},
		{25, 3},
		{40, 7},
		{50, 9},
		{99, 9},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, bucket(cuts, tt.score), "score %v", tt.score)
	}
}

func TestVisualSize(t *testing.T) {
	assert.Equal(t, 15, visualSize(0, 10, 3))
	assert.Equal(t, 45, visualSize(100, 10, 3))
	assert.Equal(t, 30, visualSize(50, 10, 3))
}
