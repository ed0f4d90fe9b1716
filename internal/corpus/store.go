// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"fmt"

	"github.com/pdiddy/rich-context/pkg/types"
)

// Store holds the typed entities of a corpus, keyed by identifier, along
// with the id/index table. After loading it is read-only.
type Store struct {
	Index *Index

	Providers    map[string]*types.Provider
	Datasets     map[string]*types.Dataset
	Journals     map[string]*types.Journal
	Authors      map[string]*types.Author
	Topics       map[string]*types.Topic
	Publications map[string]*types.Publication

	// kinds is aligned with Index; nodes of unrecognized type have "".
	kinds []types.EntityKind
}

func newStore() *Store {
	return &Store{
		Index:        NewIndex(),
		Providers:    make(map[string]*types.Provider),
		Datasets:     make(map[string]*types.Dataset),
		Journals:     make(map[string]*types.Journal),
		Authors:      make(map[string]*types.Author),
		Topics:       make(map[string]*types.Topic),
		Publications: make(map[string]*types.Publication),
	}
}

// Kind returns the entity kind at position i.
func (s *Store) Kind(i int) (types.EntityKind, bool) {
	if i < 0 || i >= len(s.kinds) || s.kinds[i] == "" {
		return "", false
	}
	return s.kinds[i], true
}

// Pos returns the index of id. It panics on an id missing from the index,
// which cannot happen for ids held by a loaded store.
func (s *Store) Pos(id string) int {
	i, ok := s.Index.Position(id)
	if !ok {
		panic(fmt.Sprintf("corpus: id %q not indexed", id))
	}
	return i
}

// Used reports whether the entity at position i takes part in the graph.
// Publications are always used; the sentinel journal never is.
func (s *Store) Used(i int) bool {
	kind, ok := s.Kind(i)
	if !ok {
		return false
	}
	id, _ := s.Index.ID(i)
	switch kind {
	case types.KindProvider:
		return s.Providers[id].Used
	case types.KindDataset:
		return s.Datasets[id].Used
	case types.KindJournal:
		j := s.Journals[id]
		return j.Used && !j.Sentinel()
	case types.KindAuthor:
		return s.Authors[id].Used
	case types.KindTopic:
		return s.Topics[id].Used
	case types.KindPublication:
		return true
	}
	return false
}

// MLE returns the estimate table of the entity at position i, if its kind
// carries one.
func (s *Store) MLE(i int) (types.MLE, bool) {
	kind, ok := s.Kind(i)
	if !ok {
		return nil, false
	}
	id, _ := s.Index.ID(i)
	switch kind {
	case types.KindAuthor:
		return s.Authors[id].MLE, true
	case types.KindJournal:
		return s.Journals[id].MLE, true
	case types.KindTopic:
		return s.Topics[id].MLE, true
	}
	return nil, false
}

// Members returns the positions of all entities of kind, in index order.
func (s *Store) Members(kind types.EntityKind) []int {
	var out []int
	for i, k := range s.kinds {
		if k == kind {
			out = append(out, i)
		}
	}
	return out
}

// SetRank records the global importance of the entity at position i.
// It is only called while the snapshot is being built.
func (s *Store) SetRank(i int, rank float64) {
	kind, ok := s.Kind(i)
	if !ok {
		return
	}
	id, _ := s.Index.ID(i)
	switch kind {
	case types.KindProvider:
		s.Providers[id].Rank = rank
	case types.KindDataset:
		s.Datasets[id].Rank = rank
	case types.KindJournal:
		s.Journals[id].Rank = rank
	case types.KindAuthor:
		s.Authors[id].Rank = rank
	case types.KindTopic:
		s.Topics[id].Rank = rank
	case types.KindPublication:
		s.Publications[id].Rank = rank
	}
}

// Entities is the flat, index-ordered form of a store's entity records.
type Entities struct {
	Providers    []types.Provider    `json:"prov"`
	Datasets     []types.Dataset     `json:"data"`
	Journals     []types.Journal     `json:"jour"`
	Authors      []types.Author      `json:"auth"`
	Topics       []types.Topic       `json:"topi"`
	Publications []types.Publication `json:"publ"`
}

// Entities copies every entity record out of the store in index order.
func (s *Store) Entities() Entities {
	var e Entities
	for i, kind := range s.kinds {
		id, _ := s.Index.ID(i)
		switch kind {
		case types.KindProvider:
			e.Providers = append(e.Providers, *s.Providers[id])
		case types.KindDataset:
			e.Datasets = append(e.Datasets, *s.Datasets[id])
		case types.KindJournal:
			e.Journals = append(e.Journals, *s.Journals[id])
		case types.KindAuthor:
			e.Authors = append(e.Authors, *s.Authors[id])
		case types.KindTopic:
			e.Topics = append(e.Topics, *s.Topics[id])
		case types.KindPublication:
			e.Publications = append(e.Publications, *s.Publications[id])
		}
	}
	return e
}

// Restore rebuilds a store from an index and entity records previously
// produced by Store.Entities. Every record must be present in the index.
func Restore(index *Index, e Entities) (*Store, error) {
	s := newStore()
	s.Index = index
	s.kinds = make([]types.EntityKind, index.Len())

	mark := func(id string, kind types.EntityKind) error {
		i, ok := index.Position(id)
		if !ok {
			return fmt.Errorf("restoring %s %q: %w", kind, id, ErrUnknownReference)
		}
		s.kinds[i] = kind
		return nil
	}

	for _, v := range e.Providers {
		if err := mark(v.ID, types.KindProvider); err != nil {
			return nil, err
		}
		s.Providers[v.ID] = &v
	}
	for _, v := range e.Datasets {
		if err := mark(v.ID, types.KindDataset); err != nil {
			return nil, err
		}
		s.Datasets[v.ID] = &v
	}
	for _, v := range e.Journals {
		if err := mark(v.ID, types.KindJournal); err != nil {
			return nil, err
		}
		s.Journals[v.ID] = &v
	}
	for _, v := range e.Authors {
		if err := mark(v.ID, types.KindAuthor); err != nil {
			return nil, err
		}
		s.Authors[v.ID] = &v
	}
	for _, v := range e.Topics {
		if err := mark(v.ID, types.KindTopic); err != nil {
			return nil, err
		}
		s.Topics[v.ID] = &v
	}
	for _, v := range e.Publications {
		if err := mark(v.ID, types.KindPublication); err != nil {
			return nil, err
		}
		s.Publications[v.ID] = &v
	}
	return s, nil
}
