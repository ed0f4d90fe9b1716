// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package testutil holds sample corpora shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pdiddy/rich-context/internal/corpus"
)

// Base is the identifier prefix used by the sample corpora.
const Base = "https://example.org/graph#"

// Minimal is the smallest useful corpus: one provider, one dataset, one
// publication with a single author and journal. Titles equal bare ids.
const Minimal = `{
  "@context": {"dct": "http://purl.org/dc/terms/", "cito": "http://purl.org/spar/cito/"},
  "@graph": [
    {"@id": "https://example.org/graph#P1", "@type": "Provider",
     "dct:title": {"@value": "P1"}},
    {"@id": "https://example.org/graph#D1", "@type": "Dataset",
     "dct:title": {"@value": "D1"}, "dct:publisher": {"@value": "P1"}},
    {"@id": "https://example.org/graph#J1", "@type": "Journal",
     "dct:title": {"@value": "J1"}},
    {"@id": "https://example.org/graph#A1", "@type": "Author",
     "dct:title": {"@value": "A1"}},
    {"@id": "https://example.org/graph#Pub1", "@type": "ResearchPublication",
     "dct:title": {"@value": "Pub1"},
     "cito:citesAsDataSource": {"@id": "https://example.org/graph#D1"},
     "dct:creator": [{"@id": "https://example.org/graph#A1"}],
     "dct:publisher": {"@id": "https://example.org/graph#J1"}}
  ]
}`

// LongTitle is the title of publ-4 in Rich, long enough to be abbreviated.
var LongTitle = "Longitudinal Effects of Supermarket Access on Household Purchasing Patterns " +
	"Across Rural and Urban Counties in the Midwest"

// Rich exercises every entity kind, the sentinel journal, unused entities,
// bare-object links, repeated dataset citations, and an unrecognized type.
var Rich = `{
  "@graph": [
    {"@id": "https://example.org/graph#prov-a", "@type": "Provider",
     "dct:title": {"@value": "Provider A"},
     "dct:identifier": {"@value": "https://ror.org/000aaa"}},
    {"@id": "https://example.org/graph#prov-b", "@type": "Provider",
     "dct:title": {"@value": "Provider B"}},
    {"@id": "https://example.org/graph#prov-idle", "@type": "Provider",
     "dct:title": {"@value": "Idle Provider"}},

    {"@id": "https://example.org/graph#data-1", "@type": "Dataset",
     "dct:title": {"@value": "Food Survey"}, "dct:publisher": {"@value": "prov-a"},
     "foaf:page": {"@value": "https://example.org/data/1"}},
    {"@id": "https://example.org/graph#data-2", "@type": "Dataset",
     "dct:title": {"@value": "Health Survey"}, "dct:publisher": {"@value": "prov-a"}},
    {"@id": "https://example.org/graph#data-3", "@type": "Dataset",
     "dct:title": {"@value": "Retail Scans"}, "dct:publisher": {"@value": "prov-b"}},
    {"@id": "https://example.org/graph#data-idle", "@type": "Dataset",
     "dct:title": {"@value": "Orphan Data"}, "dct:publisher": {"@value": "prov-idle"}},

    {"@id": "https://example.org/graph#jour-unknown", "@type": "Journal",
     "dct:title": {"@value": "unknown"}},
    {"@id": "https://example.org/graph#jour-1", "@type": "Journal",
     "dct:title": {"@value": "Journal of Food"},
     "dct:identifier": {"@value": "https://portal.issn.org/resource/ISSN/1234-5678"},
     "foaf:page": {"@value": "https://example.org/jfood"}},
    {"@id": "https://example.org/graph#jour-2", "@type": "Journal",
     "dct:title": {"@value": "Health Letters"},
     "dct:identifier": {"@value": "https://portal.issn.org/resource/ISSN/8765-4321"}},

    {"@id": "https://example.org/graph#auth-1", "@type": "Author",
     "dct:title": {"@value": "Ada Smith"},
     "dct:identifier": {"@value": "https://orcid.org/0000-0001-0000-0001"}},
    {"@id": "https://example.org/graph#auth-2", "@type": "Author",
     "dct:title": {"@value": "Ben Jones"}},
    {"@id": "https://example.org/graph#auth-3", "@type": "Author",
     "dct:title": {"@value": "Cy Lee"}},
    {"@id": "https://example.org/graph#auth-idle", "@type": "Author",
     "dct:title": {"@value": "Nobody"}},

    {"@id": "https://example.org/graph#topi-1", "@type": "Topic",
     "dct:title": {"@value": "Nutrition"}},
    {"@id": "https://example.org/graph#topi-2", "@type": "Topic",
     "dct:title": {"@value": "Obesity"}},
    {"@id": "https://example.org/graph#topi-idle", "@type": "Topic",
     "dct:title": {"@value": "Astronomy"}},

    {"@id": "https://example.org/graph#note-1", "@type": "EditorialNote",
     "dct:title": {"@value": "Ignored"}},

    {"@id": "https://example.org/graph#publ-1", "@type": "ResearchPublication",
     "dct:title": {"@value": "Food Deserts and Diet"},
     "dct:identifier": {"@value": "https://doi.org/10.1000/fd.1"},
     "openAccess": {"@value": "https://example.org/pdf/1.pdf"},
     "cito:description": {"@value": "Where people buy food."},
     "cito:citesAsDataSource": [
       {"@id": "https://example.org/graph#data-1"},
       {"@id": "https://example.org/graph#data-2"}],
     "dct:creator": [
       {"@id": "https://example.org/graph#auth-2"},
       {"@id": "https://example.org/graph#auth-1"}],
     "dct:subject": [{"@id": "https://example.org/graph#topi-1"}],
     "dct:publisher": {"@id": "https://example.org/graph#jour-1"}},
    {"@id": "https://example.org/graph#publ-2", "@type": "ResearchPublication",
     "dct:title": {"@value": "Diet Quality Index"},
     "cito:citesAsDataSource": {"@id": "https://example.org/graph#data-1"},
     "dct:creator": {"@id": "https://example.org/graph#auth-1"},
     "dct:subject": [
       {"@id": "https://example.org/graph#topi-1"},
       {"@id": "https://example.org/graph#topi-2"}],
     "dct:publisher": {"@id": "https://example.org/graph#jour-unknown"}},
    {"@id": "https://example.org/graph#publ-3", "@type": "ResearchPublication",
     "dct:title": {"@value": "Retail Prices"},
     "cito:citesAsDataSource": [{"@id": "https://example.org/graph#data-3"}],
     "dct:creator": [{"@id": "https://example.org/graph#auth-3"}],
     "dct:subject": {"@id": "https://example.org/graph#topi-2"},
     "dct:publisher": {"@id": "https://example.org/graph#jour-2"}},
    {"@id": "https://example.org/graph#publ-4", "@type": "ResearchPublication",
     "dct:title": {"@value": "` + LongTitle + `"},
     "cito:citesAsDataSource": [
       {"@id": "https://example.org/graph#data-3"},
       {"@id": "https://example.org/graph#data-1"},
       {"@id": "https://example.org/graph#data-1"}],
     "dct:creator": [{"@id": "https://example.org/graph#auth-1"}],
     "dct:publisher": {"@id": "https://example.org/graph#jour-1"}}
  ]
}`

// Load parses a sample corpus and fails the test on error.
func Load(t testing.TB, doc string) *corpus.Store {
	t.Helper()
	s, err := corpus.Load(strings.NewReader(doc))
	require.NoError(t, err)
	return s
}

// WriteFile writes doc into a temporary directory and returns its path.
func WriteFile(t testing.TB, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.jsonld")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

// Pos returns the index of id in s and fails the test when it is absent.
func Pos(t testing.TB, s *corpus.Store, id string) int {
	t.Helper()
	i, ok := s.Index.Position(id)
	require.True(t, ok, "id %q not indexed", id)
	return i
}
