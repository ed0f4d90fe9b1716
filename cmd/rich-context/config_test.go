// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/rich-context/internal/codec"
	"github.com/pdiddy/rich-context/internal/testutil"
	"github.com/pdiddy/rich-context/pkg/types"
)

func testConfig(t *testing.T) types.EngineConfig {
	t.Helper()
	return types.EngineConfig{
		Corpus:   testutil.WriteFile(t, testutil.Rich),
		Artifact: filepath.Join(t.TempDir(), "precomp.json"),
		Workers:  2,
		Ranking:  types.RankingConfig{}.WithDefaults(),
	}
}

func TestLoadSnapshot_BuildsWithoutArtifact(t *testing.T) {
	cfg := testConfig(t)
	var out bytes.Buffer

	snap, payloads, err := loadSnapshot(context.Background(), cfg, &out)
	require.NoError(t, err)
	assert.Equal(t, 16, snap.Graph.NodeCount())
	assert.Len(t, payloads, 16)
	assert.Contains(t, out.String(), "loaded corpus")
}

func TestLoadSnapshot_UsesArtifact(t *testing.T) {
	cfg := testConfig(t)
	snap, payloads, err := buildSnapshot(context.Background(), cfg, &bytes.Buffer{})
	require.NoError(t, err)
	_, err = codec.Save(cfg.Artifact, snap, payloads)
	require.NoError(t, err)

	// The corpus is gone, so only the artifact can satisfy the load.
	require.NoError(t, os.Remove(cfg.Corpus))

	var out bytes.Buffer
	got, _, err := loadSnapshot(context.Background(), cfg, &out)
	require.NoError(t, err)
	assert.Equal(t, snap.Store.Index.IDs(), got.Store.Index.IDs())
	assert.Empty(t, out.String())
}

func TestLoadSnapshot_RebuildsIncompatible(t *testing.T) {
	cfg := testConfig(t)
	snap, payloads, err := buildSnapshot(context.Background(), cfg, &bytes.Buffer{})
	require.NoError(t, err)
	_, err = codec.Save(cfg.Artifact, snap, payloads)
	require.NoError(t, err)

	cfg.Ranking.Algorithm = types.AlgorithmPageRank
	var out bytes.Buffer
	got, _, err := loadSnapshot(context.Background(), cfg, &out)
	require.NoError(t, err)
	assert.Equal(t, types.AlgorithmPageRank, got.Ranking.Algorithm)
	assert.Contains(t, out.String(), "loaded corpus")
}

func TestLoadSnapshot_MissingCorpus(t *testing.T) {
	cfg := testConfig(t)
	cfg.Corpus = filepath.Join(t.TempDir(), "none.jsonld")

	_, _, err := loadSnapshot(context.Background(), cfg, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestPrintNeighborhood(t *testing.T) {
	hood := types.Neighborhood{
		Datasets: []types.NeighborEntry{
			{Index: 4, Title: "Food Survey", Impact: "0.9000", Detail: "prov-a", Shown: true,
				Rank: types.RankTuple{Proximity: 2, Count: 1}},
			{Index: 9, Title: "hidden", Shown: false},
		},
		Token:   "hood-0123456789abcdef0123",
		Elapsed: "0.12",
	}
	var out bytes.Buffer
	printNeighborhood(&out, hood)

	s := out.String()
	assert.Contains(t, s, "Datasets (2)")
	assert.Contains(t, s, "[4] Food Survey  impact=0.9000 prox=2 count=1  prov-a")
	assert.NotContains(t, s, "hidden")
	assert.NotContains(t, s, "Providers")
	assert.Contains(t, s, "token: hood-0123456789abcdef0123 (0.12 ms)")
}
