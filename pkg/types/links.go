// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Link is one neighbor in a link view.
type Link struct {
	Index int    `json:"index" yaml:"index"`
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`

	// Score is the neighbor's impact. Entries ordered by a rank tuple
	// carry the tuple in Rank as well.
	Score float64    `json:"score" yaml:"score"`
	Rank  *RankTuple `json:"rank,omitempty" yaml:"-"`
}

// LinkView is the one-hop recommendation view of a single entity. Each
// entity kind has its own concrete view type.
type LinkView interface {
	Kind() EntityKind
}

// LinkHeader holds the fields shared by every link view.
type LinkHeader struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`

	// Rank is the entity's impact formatted to four decimals.
	Rank string `json:"rank" yaml:"rank"`
}

// ProviderLinks lists the datasets a provider publishes.
type ProviderLinks struct {
	LinkHeader `yaml:",inline"`
	URL        string `json:"url,omitempty" yaml:"url,omitempty"`
	ROR        string `json:"ror,omitempty" yaml:"ror,omitempty"`
	Datasets   []Link `json:"data" yaml:"data"`
}

func (ProviderLinks) Kind() EntityKind { return KindProvider }

// DatasetLinks lists the publications citing a dataset.
type DatasetLinks struct {
	LinkHeader   `yaml:",inline"`
	URL          string `json:"url,omitempty" yaml:"url,omitempty"`
	Provider     Link   `json:"prov" yaml:"prov"`
	Publications []Link `json:"publ" yaml:"publ"`
}

func (DatasetLinks) Kind() EntityKind { return KindDataset }

// AuthorLinks lists the publications of an author.
type AuthorLinks struct {
	LinkHeader   `yaml:",inline"`
	URL          string `json:"url,omitempty" yaml:"url,omitempty"`
	ORCID        string `json:"orcid,omitempty" yaml:"orcid,omitempty"`
	Publications []Link `json:"publ" yaml:"publ"`
}

func (AuthorLinks) Kind() EntityKind { return KindAuthor }

// JournalLinks lists the publications in a journal.
type JournalLinks struct {
	LinkHeader   `yaml:",inline"`
	URL          string `json:"url,omitempty" yaml:"url,omitempty"`
	ISSN         string `json:"issn,omitempty" yaml:"issn,omitempty"`
	Publications []Link `json:"publ" yaml:"publ"`
}

func (JournalLinks) Kind() EntityKind { return KindJournal }

// TopicLinks lists the publications about a topic.
type TopicLinks struct {
	LinkHeader   `yaml:",inline"`
	Publications []Link `json:"publ" yaml:"publ"`
}

func (TopicLinks) Kind() EntityKind { return KindTopic }

// PublicationLinks lists everything a publication links to. Authors keep
// their source order.
type PublicationLinks struct {
	LinkHeader `yaml:",inline"`
	URL        string `json:"url,omitempty" yaml:"url,omitempty"`
	DOI        string `json:"doi,omitempty" yaml:"doi,omitempty"`
	PDF        string `json:"pdf,omitempty" yaml:"pdf,omitempty"`
	Abstract   string `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	Journal    *Link  `json:"jour" yaml:"jour"`
	Authors    []Link `json:"auth" yaml:"auth"`
	Datasets   []Link `json:"data" yaml:"data"`
	Topics     []Link `json:"topi" yaml:"topi"`
}

func (PublicationLinks) Kind() EntityKind { return KindPublication }
