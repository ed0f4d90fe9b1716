// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package corpus parses a JSON-LD linked-data corpus into typed entity
// records and assigns each node a dense integer index in document order.
package corpus

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/goccy/go-json"

	"github.com/pdiddy/rich-context/internal/logging"
	"github.com/pdiddy/rich-context/pkg/types"
)

var (
	// ErrMissingField marks a node lacking @type, @id, or a title.
	ErrMissingField = errors.New("missing required field")

	// ErrUnknownReference marks a link to an id absent from its store.
	ErrUnknownReference = errors.New("unknown reference")

	// ErrDuplicateID marks an identifier that occurs twice in the corpus.
	ErrDuplicateID = errors.New("duplicate identifier")
)

// document is the top level of a JSON-LD corpus.
type document struct {
	Graph []node `json:"@graph"`
}

// literal is a JSON-LD value object.
type literal struct {
	Value string `json:"@value"`
}

// ref is a JSON-LD node reference. Datasets name their provider by @value,
// publications name their journal by @id; both forms are accepted.
type ref struct {
	ID    string `json:"@id"`
	Value string `json:"@value"`
}

func (r ref) target() string {
	if r.ID != "" {
		return bareID(r.ID)
	}
	return bareID(r.Value)
}

// refList normalizes a JSON-LD link that may be a single object or an
// array of objects into a list.
type refList []ref

func (l *refList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	switch {
	case trimmed == "null":
		*l = nil
		return nil
	case strings.HasPrefix(trimmed, "{"):
		var one ref
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		*l = refList{one}
		return nil
	}
	var many []ref
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*l = many
	return nil
}

type node struct {
	ID          string   `json:"@id"`
	Type        string   `json:"@type"`
	Title       *literal `json:"dct:title"`
	Identifier  *literal `json:"dct:identifier"`
	Page        *literal `json:"foaf:page"`
	Publisher   *ref     `json:"dct:publisher"`
	Description *literal `json:"cito:description"`
	OpenAccess  *literal `json:"openAccess"`
	Datasets    refList  `json:"cito:citesAsDataSource"`
	Creators    refList  `json:"dct:creator"`
	Subjects    refList  `json:"dct:subject"`
}

// bareID returns the suffix after the last '#' of a full identifier.
func bareID(full string) string {
	if i := strings.LastIndexByte(full, '#'); i >= 0 {
		return full[i+1:]
	}
	return full
}

func value(l *literal) string {
	if l == nil {
		return ""
	}
	return l.Value
}

// LoadFile parses the corpus at path.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening corpus: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses a JSON-LD corpus. A missing required field, a duplicate id,
// or a publication linking to an unknown entity fails the whole load.
func Load(r io.Reader) (*Store, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding corpus: %w", err)
	}

	s := newStore()
	s.kinds = make([]types.EntityKind, 0, len(doc.Graph))

	for n, elem := range doc.Graph {
		if elem.Type == "" || elem.ID == "" || elem.Title == nil {
			return nil, fmt.Errorf("node %d (%q): %w", n, elem.ID, ErrMissingField)
		}
		if _, err := s.Index.add(bareID(elem.ID), elem.Title.Value); err != nil {
			return nil, fmt.Errorf("node %d: %w", n, err)
		}
		s.kinds = append(s.kinds, knownKind(elem.Type))
	}

	// Publications reference every other kind, so they are linked last.
	for _, kind := range types.Kinds {
		for n := range doc.Graph {
			if s.kinds[n] != kind {
				continue
			}
			if err := s.addNode(&doc.Graph[n]); err != nil {
				return nil, err
			}
		}
	}

	return s, nil
}

func knownKind(t string) types.EntityKind {
	for _, k := range types.Kinds {
		if string(k) == t {
			return k
		}
	}
	logging.Debug().Str("type", t).Msg("skipping node of unrecognized type")
	return ""
}

func (s *Store) addNode(elem *node) error {
	id := bareID(elem.ID)
	title := elem.Title.Value

	switch types.EntityKind(elem.Type) {
	case types.KindProvider:
		s.Providers[id] = &types.Provider{ID: id, Title: title, ROR: value(elem.Identifier)}

	case types.KindDataset:
		if elem.Publisher == nil || elem.Publisher.target() == "" {
			return fmt.Errorf("dataset %q provider: %w", id, ErrMissingField)
		}
		s.Datasets[id] = &types.Dataset{
			ID:       id,
			Title:    title,
			Provider: elem.Publisher.target(),
			URL:      value(elem.Page),
		}

	case types.KindJournal:
		s.Journals[id] = &types.Journal{
			ID:    id,
			Title: title,
			ISSN:  value(elem.Identifier),
			URL:   value(elem.Page),
		}

	case types.KindAuthor:
		s.Authors[id] = &types.Author{ID: id, Title: title, ORCID: value(elem.Identifier)}

	case types.KindTopic:
		s.Topics[id] = &types.Topic{ID: id, Title: title}

	case types.KindPublication:
		return s.addPublication(id, title, elem)
	}
	return nil
}

func (s *Store) addPublication(id, title string, elem *node) error {
	p := &types.Publication{
		ID:       id,
		Title:    title,
		DOI:      value(elem.Identifier),
		PDF:      value(elem.OpenAccess),
		Abstract: value(elem.Description),
		Datasets: make([]string, 0, len(elem.Datasets)),
		Authors:  make([]string, 0, len(elem.Creators)),
		Topics:   make([]string, 0, len(elem.Subjects)),
	}

	for _, r := range elem.Datasets {
		dataID := r.target()
		d, ok := s.Datasets[dataID]
		if !ok {
			return fmt.Errorf("publication %q cites dataset %q: %w", id, dataID, ErrUnknownReference)
		}
		prov, ok := s.Providers[d.Provider]
		if !ok {
			return fmt.Errorf("dataset %q provider %q: %w", dataID, d.Provider, ErrUnknownReference)
		}
		d.Used = true
		prov.Used = true
		p.Datasets = append(p.Datasets, dataID)
	}

	for _, r := range elem.Creators {
		authID := r.target()
		a, ok := s.Authors[authID]
		if !ok {
			return fmt.Errorf("publication %q author %q: %w", id, authID, ErrUnknownReference)
		}
		a.Used = true
		p.Authors = append(p.Authors, authID)
	}

	for _, r := range elem.Subjects {
		topiID := r.target()
		t, ok := s.Topics[topiID]
		if !ok {
			return fmt.Errorf("publication %q topic %q: %w", id, topiID, ErrUnknownReference)
		}
		t.Used = true
		if !slices.Contains(p.Topics, topiID) {
			p.Topics = append(p.Topics, topiID)
		}
	}

	if elem.Publisher != nil && elem.Publisher.target() != "" {
		jourID := elem.Publisher.target()
		j, ok := s.Journals[jourID]
		if !ok {
			return fmt.Errorf("publication %q journal %q: %w", id, jourID, ErrUnknownReference)
		}
		if !j.Sentinel() {
			j.Used = true
			p.Journal = jourID
		}
	}

	s.Publications[id] = p
	return nil
}
