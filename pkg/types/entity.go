// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the rich-context engine.
// Entity records are tagged variants, one struct per kind, each with a fixed
// schema. Link views and neighborhood results are the structured outputs
// handed to external renderers.
package types

// EntityKind is the linked-data type discriminator of a corpus node.
type EntityKind string

const (
	KindProvider    EntityKind = "Provider"
	KindDataset     EntityKind = "Dataset"
	KindJournal     EntityKind = "Journal"
	KindAuthor      EntityKind = "Author"
	KindTopic       EntityKind = "Topic"
	KindPublication EntityKind = "ResearchPublication"
)

// Kinds lists every entity kind in the order the loader dispatches them.
var Kinds = []EntityKind{
	KindProvider, KindDataset, KindJournal, KindAuthor, KindTopic, KindPublication,
}

// UnknownJournal is the title of the sentinel journal. It never becomes part
// of the graph or of any output.
const UnknownJournal = "unknown"

// Estimate is a smoothed co-occurrence estimate between an entity and one
// dataset: the raw citation count and the point estimate derived from it.
type Estimate struct {
	Count int     `json:"count" yaml:"count"`
	Value float64 `json:"value" yaml:"value"`
}

// MLE maps a dataset index to the estimate for that dataset.
type MLE map[int]Estimate

// Provider is an organization that publishes datasets.
type Provider struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`

	// ROR is the research-organization registry identifier, usually a URL.
	ROR string `json:"ror" yaml:"ror"`

	Used bool    `json:"used" yaml:"used"`
	Rank float64 `json:"rank" yaml:"rank"`
}

// Dataset is a data source cited by publications.
type Dataset struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Provider string `json:"provider" yaml:"provider"`
	URL      string `json:"url" yaml:"url"`

	Used bool    `json:"used" yaml:"used"`
	Rank float64 `json:"rank" yaml:"rank"`
}

// Journal is a publication venue.
type Journal struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	ISSN  string `json:"issn" yaml:"issn"`
	URL   string `json:"url" yaml:"url"`

	Used bool    `json:"used" yaml:"used"`
	Rank float64 `json:"rank" yaml:"rank"`
	MLE  MLE     `json:"mle" yaml:"mle"`
}

// Sentinel reports whether this is the placeholder "unknown" journal.
func (j *Journal) Sentinel() bool {
	return j.Title == UnknownJournal
}

// Author is a publication creator.
type Author struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	ORCID string `json:"orcid" yaml:"orcid"`

	Used bool    `json:"used" yaml:"used"`
	Rank float64 `json:"rank" yaml:"rank"`
	MLE  MLE     `json:"mle" yaml:"mle"`
}

// Topic is a subject heading attached to publications.
type Topic struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`

	Used bool    `json:"used" yaml:"used"`
	Rank float64 `json:"rank" yaml:"rank"`
	MLE  MLE     `json:"mle" yaml:"mle"`
}

// Publication is a research publication. Publications are always part of
// the graph, so they carry no used flag.
type Publication struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	DOI      string `json:"doi" yaml:"doi"`
	PDF      string `json:"pdf" yaml:"pdf"`
	Abstract string `json:"abstract" yaml:"abstract"`

	// Journal is empty when the publication has no journal or when it was
	// published in the sentinel "unknown" journal.
	Journal string `json:"journal" yaml:"journal"`

	// Datasets and Authors keep source order; duplicates are preserved.
	Datasets []string `json:"datasets" yaml:"datasets"`
	Authors  []string `json:"authors" yaml:"authors"`
	Topics   []string `json:"topics" yaml:"topics"`

	Rank float64 `json:"rank" yaml:"rank"`
}
