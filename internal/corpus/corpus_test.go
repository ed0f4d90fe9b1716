// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/rich-context/internal/corpus"
	"github.com/pdiddy/rich-context/internal/testutil"
	"github.com/pdiddy/rich-context/pkg/types"
)

func TestLoad_IndexBijection(t *testing.T) {
	s := testutil.Load(t, testutil.Rich)

	require.Equal(t, 22, s.Index.Len())
	for i := range s.Index.Len() {
		id, ok := s.Index.ID(i)
		require.True(t, ok)
		pos, ok := s.Index.Position(id)
		require.True(t, ok)
		assert.Equal(t, i, pos, "id %q", id)
	}

	first, _ := s.Index.ID(0)
	assert.Equal(t, "prov-a", first)
	assert.Equal(t, "Provider A", s.Index.Label(0))
	assert.Equal(t, "", s.Index.Label(99))

	_, ok := s.Index.ID(-1)
	assert.False(t, ok)
}

func TestLoad_UsedFlags(t *testing.T) {
	s := testutil.Load(t, testutil.Rich)

	assert.True(t, s.Providers["prov-a"].Used)
	assert.True(t, s.Providers["prov-b"].Used)
	assert.False(t, s.Providers["prov-idle"].Used)
	assert.True(t, s.Datasets["data-2"].Used)
	assert.False(t, s.Datasets["data-idle"].Used)
	assert.False(t, s.Authors["auth-idle"].Used)
	assert.False(t, s.Topics["topi-idle"].Used)
	assert.True(t, s.Journals["jour-2"].Used)

	assert.False(t, s.Used(testutil.Pos(t, s, "prov-idle")))
	assert.True(t, s.Used(testutil.Pos(t, s, "publ-3")))
	assert.False(t, s.Used(testutil.Pos(t, s, "note-1")))
}

func TestLoad_SentinelJournal(t *testing.T) {
	s := testutil.Load(t, testutil.Rich)

	unknown := s.Journals["jour-unknown"]
	require.NotNil(t, unknown)
	assert.True(t, unknown.Sentinel())
	assert.False(t, unknown.Used)
	assert.False(t, s.Used(testutil.Pos(t, s, "jour-unknown")))
	assert.Equal(t, "", s.Publications["publ-2"].Journal)
	assert.Equal(t, "jour-1", s.Publications["publ-1"].Journal)
}

func TestLoad_BareObjectLinks(t *testing.T) {
	s := testutil.Load(t, testutil.Rich)

	p := s.Publications["publ-2"]
	assert.Equal(t, []string{"data-1"}, p.Datasets)
	assert.Equal(t, []string{"auth-1"}, p.Authors)
	assert.Equal(t, []string{"topi-1", "topi-2"}, p.Topics)

	assert.Equal(t, []string{"topi-2"}, s.Publications["publ-3"].Topics)
}

func TestLoad_PublicationFields(t *testing.T) {
	s := testutil.Load(t, testutil.Rich)

	p := s.Publications["publ-1"]
	assert.Equal(t, "Food Deserts and Diet", p.Title)
	assert.Equal(t, "https://doi.org/10.1000/fd.1", p.DOI)
	assert.Equal(t, "https://example.org/pdf/1.pdf", p.PDF)
	assert.Equal(t, "Where people buy food.", p.Abstract)
	assert.Equal(t, []string{"auth-2", "auth-1"}, p.Authors, "author order is preserved")

	p4 := s.Publications["publ-4"]
	assert.Equal(t, []string{"data-3", "data-1", "data-1"}, p4.Datasets)
	assert.Empty(t, p4.Topics)
	assert.NotNil(t, p4.Topics)

	d := s.Datasets["data-1"]
	assert.Equal(t, "prov-a", d.Provider)
	assert.Equal(t, "https://example.org/data/1", d.URL)
	assert.Equal(t, "", s.Datasets["data-2"].URL)
	assert.Equal(t, "https://ror.org/000aaa", s.Providers["prov-a"].ROR)
}

func TestLoad_UnknownTypeIndexedButSkipped(t *testing.T) {
	s := testutil.Load(t, testutil.Rich)

	i := testutil.Pos(t, s, "note-1")
	_, ok := s.Kind(i)
	assert.False(t, ok)
	assert.Equal(t, "Ignored", s.Index.Label(i))
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{
			name: "missing title",
			doc:  `{"@graph": [{"@id": "x#a", "@type": "Topic"}]}`,
			want: corpus.ErrMissingField,
		},
		{
			name: "missing type",
			doc:  `{"@graph": [{"@id": "x#a", "dct:title": {"@value": "A"}}]}`,
			want: corpus.ErrMissingField,
		},
		{
			name: "missing id",
			doc:  `{"@graph": [{"@type": "Topic", "dct:title": {"@value": "A"}}]}`,
			want: corpus.ErrMissingField,
		},
		{
			name: "dataset without provider",
			doc:  `{"@graph": [{"@id": "x#d", "@type": "Dataset", "dct:title": {"@value": "D"}}]}`,
			want: corpus.ErrMissingField,
		},
		{
			name: "duplicate id",
			doc: `{"@graph": [
				{"@id": "x#a", "@type": "Topic", "dct:title": {"@value": "A"}},
				{"@id": "y#a", "@type": "Topic", "dct:title": {"@value": "B"}}]}`,
			want: corpus.ErrDuplicateID,
		},
		{
			name: "unknown dataset",
			doc: `{"@graph": [{"@id": "x#p", "@type": "ResearchPublication", "dct:title": {"@value": "P"},
				"cito:citesAsDataSource": {"@id": "x#nope"}}]}`,
			want: corpus.ErrUnknownReference,
		},
		{
			name: "unknown author",
			doc: `{"@graph": [{"@id": "x#p", "@type": "ResearchPublication", "dct:title": {"@value": "P"},
				"dct:creator": [{"@id": "x#nope"}]}]}`,
			want: corpus.ErrUnknownReference,
		},
		{
			name: "unknown journal",
			doc: `{"@graph": [{"@id": "x#p", "@type": "ResearchPublication", "dct:title": {"@value": "P"},
				"dct:publisher": {"@id": "x#nope"}}]}`,
			want: corpus.ErrUnknownReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := corpus.Load(strings.NewReader(tt.doc))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoad_MalformedJSON(t *testing.T) {
	_, err := corpus.Load(strings.NewReader(`{"@graph": [`))
	assert.Error(t, err)
}

func TestIndex_Find(t *testing.T) {
	s := testutil.Load(t, testutil.Rich)

	i, ok := s.Index.Find("Retail Scans")
	require.True(t, ok)
	assert.Equal(t, testutil.Pos(t, s, "data-3"), i)

	_, ok = s.Index.Find("retail scans")
	assert.False(t, ok, "title match is exact")
}

func TestRestoreIndex(t *testing.T) {
	x, err := corpus.RestoreIndex([]string{"a", "b"}, []string{"A", "B"})
	require.NoError(t, err)
	i, ok := x.Position("b")
	require.True(t, ok)
	assert.Equal(t, 1, i)

	_, err = corpus.RestoreIndex([]string{"a"}, nil)
	assert.Error(t, err)

	_, err = corpus.RestoreIndex([]string{"a", "a"}, []string{"A", "B"})
	assert.ErrorIs(t, err, corpus.ErrDuplicateID)
}

func TestStore_EntitiesRestore(t *testing.T) {
	s := testutil.Load(t, testutil.Rich)
	s.SetRank(testutil.Pos(t, s, "auth-1"), 0.75)

	idx, err := corpus.RestoreIndex(s.Index.IDs(), s.Index.Labels())
	require.NoError(t, err)
	r, err := corpus.Restore(idx, s.Entities())
	require.NoError(t, err)

	assert.Equal(t, s.Publications, r.Publications)
	assert.Equal(t, s.Journals, r.Journals)
	assert.Equal(t, 0.75, r.Authors["auth-1"].Rank)
	for i := range s.Index.Len() {
		wantKind, wantOK := s.Kind(i)
		gotKind, gotOK := r.Kind(i)
		assert.Equal(t, wantOK, gotOK)
		assert.Equal(t, wantKind, gotKind)
		assert.Equal(t, s.Used(i), r.Used(i))
	}
}

func TestStore_Members(t *testing.T) {
	s := testutil.Load(t, testutil.Rich)

	pubs := s.Members(types.KindPublication)
	require.Len(t, pubs, 4)
	assert.Equal(t, testutil.Pos(t, s, "publ-1"), pubs[0])
	assert.Len(t, s.Members(types.KindJournal), 3)
}

func TestOpen_File(t *testing.T) {
	path := testutil.WriteFile(t, testutil.Minimal)

	s, err := corpus.LoadSource(context.Background(), nil, path)
	require.NoError(t, err)
	assert.Equal(t, 5, s.Index.Len())
}

func TestOpen_URL(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/ld+json")
		io.WriteString(w, testutil.Minimal)
	}))
	defer ts.Close()

	s, err := corpus.LoadSource(context.Background(), ts.Client(), ts.URL+"/corpus.jsonld")
	require.NoError(t, err)
	assert.Contains(t, s.Publications, "Pub1")
}

func TestOpen_URLNotFound(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	_, err := corpus.Open(context.Background(), ts.Client(), ts.URL)
	assert.ErrorContains(t, err, "HTTP 404")
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := corpus.Open(context.Background(), nil, "/nonexistent/corpus.jsonld")
	assert.Error(t, err)
}
