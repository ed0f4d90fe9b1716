// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package links_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/rich-context/internal/links"
	"github.com/pdiddy/rich-context/internal/network"
	"github.com/pdiddy/rich-context/internal/testutil"
	"github.com/pdiddy/rich-context/pkg/types"
)

func setup(t *testing.T) (*network.Snapshot, *links.Recommender) {
	t.Helper()
	snap, err := network.Build(testutil.Load(t, testutil.Rich), types.RankingConfig{})
	require.NoError(t, err)
	return snap, links.NewRecommender(snap)
}

func ids(ls []types.Link) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.ID
	}
	return out
}

func assertSortedByScore(t *testing.T, ls []types.Link) {
	t.Helper()
	for i := 1; i < len(ls); i++ {
		assert.GreaterOrEqual(t, ls[i-1].Score, ls[i].Score)
	}
}

func TestView_Provider(t *testing.T) {
	snap, rec := setup(t)

	v, ok := rec.View(testutil.Pos(t, snap.Store, "prov-a"))
	require.True(t, ok)
	p, ok := v.(types.ProviderLinks)
	require.True(t, ok)

	assert.Equal(t, "Provider A", p.Title)
	assert.Equal(t, "000aaa", p.ROR)
	assert.Equal(t, "https://ror.org/000aaa", p.URL)
	assert.ElementsMatch(t, []string{"data-1", "data-2"}, ids(p.Datasets))
	assertSortedByScore(t, p.Datasets)
}

func TestView_DatasetExcludesProvider(t *testing.T) {
	snap, rec := setup(t)

	v, ok := rec.View(testutil.Pos(t, snap.Store, "data-1"))
	require.True(t, ok)
	d := v.(types.DatasetLinks)

	assert.Equal(t, "prov-a", d.Provider.ID)
	assert.Equal(t, "https://example.org/data/1", d.URL)
	assert.ElementsMatch(t, []string{"publ-1", "publ-2", "publ-4"}, ids(d.Publications))
	assertSortedByScore(t, d.Publications)
}

func TestView_Publication(t *testing.T) {
	snap, rec := setup(t)
	s := snap.Store

	v, ok := rec.View(testutil.Pos(t, s, "publ-1"))
	require.True(t, ok)
	p := v.(types.PublicationLinks)

	assert.Equal(t, "10.1000/fd.1", p.DOI)
	assert.Equal(t, "https://doi.org/10.1000/fd.1", p.URL)
	assert.Equal(t, "https://example.org/pdf/1.pdf", p.PDF)
	require.NotNil(t, p.Journal)
	assert.Equal(t, "jour-1", p.Journal.ID)
	assert.Equal(t, []string{"auth-2", "auth-1"}, ids(p.Authors), "authors keep source order")
	assert.ElementsMatch(t, []string{"data-1", "data-2"}, ids(p.Datasets))
	assertSortedByScore(t, p.Datasets)
	assert.Equal(t, []string{"topi-1"}, ids(p.Topics))

	v, _ = rec.View(testutil.Pos(t, s, "publ-2"))
	assert.Nil(t, v.(types.PublicationLinks).Journal, "sentinel journal is never linked")

	v, _ = rec.View(testutil.Pos(t, s, "publ-4"))
	assert.Len(t, v.(types.PublicationLinks).Datasets, 2, "repeated citations collapse")
}

func TestView_Journal(t *testing.T) {
	snap, rec := setup(t)

	v, ok := rec.View(testutil.Pos(t, snap.Store, "jour-1"))
	require.True(t, ok)
	j := v.(types.JournalLinks)
	assert.Equal(t, "https://example.org/jfood", j.URL)
	assert.Equal(t, "1234-5678", j.ISSN)
	assert.ElementsMatch(t, []string{"publ-1", "publ-4"}, ids(j.Publications))

	v, _ = rec.View(testutil.Pos(t, snap.Store, "jour-2"))
	assert.Equal(t, "8765-4321", v.(types.JournalLinks).URL, "URL falls back to the ISSN")
}

func TestView_AuthorWithContext(t *testing.T) {
	snap, rec := setup(t)
	s := snap.Store

	a1 := testutil.Pos(t, s, "auth-1")
	v, ok := rec.View(a1)
	require.True(t, ok)
	a := v.(types.AuthorLinks)
	assert.Equal(t, "0000-0001-0000-0001", a.ORCID)
	assertSortedByScore(t, a.Publications)
	for _, l := range a.Publications {
		assert.Nil(t, l.Rank)
	}

	v, _ = rec.View(a1, links.WithContext(testutil.Pos(t, s, "data-3")))
	a = v.(types.AuthorLinks)
	require.Len(t, a.Publications, 3)
	assert.Equal(t, "publ-4", a.Publications[0].ID)
	require.NotNil(t, a.Publications[0].Rank)
	assert.Equal(t, 1, a.Publications[0].Rank.Count)
}

func TestView_Topic(t *testing.T) {
	snap, rec := setup(t)

	v, ok := rec.View(testutil.Pos(t, snap.Store, "topi-2"))
	require.True(t, ok)
	assert.Equal(t, types.KindTopic, v.Kind())
	assert.ElementsMatch(t, []string{"publ-2", "publ-3"}, ids(v.(types.TopicLinks).Publications))
}

func TestView_NotFound(t *testing.T) {
	snap, rec := setup(t)

	for _, id := range []string{"prov-idle", "data-idle", "auth-idle", "topi-idle", "jour-unknown", "note-1"} {
		_, ok := rec.View(testutil.Pos(t, snap.Store, id))
		assert.False(t, ok, id)

		_, err := rec.ByID(id)
		assert.ErrorIs(t, err, links.ErrNotFound, id)
	}

	_, ok := rec.View(-1)
	assert.False(t, ok)
	_, ok = rec.View(10_000)
	assert.False(t, ok)

	_, err := rec.ByID("missing")
	assert.ErrorIs(t, err, links.ErrNotFound)

	v, err := rec.ByID("auth-3")
	require.NoError(t, err)
	assert.Equal(t, types.KindAuthor, v.Kind())
}

func TestRenderAll(t *testing.T) {
	snap, rec := setup(t)

	payloads, err := rec.RenderAll(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, payloads, snap.Graph.NodeCount())

	raw, ok := payloads.Lookup(snap, testutil.Pos(t, snap.Store, "publ-1"))
	require.True(t, ok)
	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "Food Deserts and Diet", got["title"])
	assert.Equal(t, "publ-1", got["id"])

	_, ok = payloads.Lookup(snap, testutil.Pos(t, snap.Store, "auth-idle"))
	assert.False(t, ok)
	_, ok = payloads.Lookup(snap, 9999)
	assert.False(t, ok)
}

func TestRenderAll_Cancelled(t *testing.T) {
	_, rec := setup(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := rec.RenderAll(ctx, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExport(t *testing.T) {
	_, rec := setup(t)
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "out", "links.json")
	require.NoError(t, rec.ExportFile(jsonPath))
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal(data, &entries))
	require.Len(t, entries, 16)
	assert.Equal(t, "auth-1", entries[0]["id"])
	for i := 1; i < len(entries); i++ {
		assert.Less(t, entries[i-1]["id"], entries[i]["id"])
	}

	yamlPath := filepath.Join(dir, "links.yaml")
	require.NoError(t, rec.ExportFile(yamlPath))
	data, err = os.ReadFile(yamlPath)
	require.NoError(t, err)

	var yentries []map[string]any
	require.NoError(t, yaml.Unmarshal(data, &yentries))
	require.Len(t, yentries, 16)
	first := yentries[0]["links"].(map[string]any)
	assert.Equal(t, "Ada Smith", first["title"])
	assert.Equal(t, "0000-0001-0000-0001", first["orcid"])
}

func TestDownload(t *testing.T) {
	snap, _ := setup(t)

	data, name, err := links.Download(snap.Store, "data-1")
	require.NoError(t, err)
	assert.Equal(t, "FOODSURV", name)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"dataset", "publication", "journal", "url", "abstract"}, rows[0])
	assert.Equal(t, []string{"Food Survey", "Food Deserts and Diet", "Journal of Food",
		"https://doi.org/10.1000/fd.1", "Where people buy food."}, rows[1])
	assert.Equal(t, "", rows[2][2], "no journal for the sentinel")

	_, _, err = links.Download(snap.Store, "nope")
	assert.ErrorIs(t, err, links.ErrNotFound)
}
