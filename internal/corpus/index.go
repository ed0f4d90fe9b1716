// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"fmt"
)

// Index is the bijection between corpus identifiers and dense integer
// positions. Position i is the i-th node in document order.
type Index struct {
	ids    []string
	labels []string
	pos    map[string]int
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{pos: make(map[string]int)}
}

// RestoreIndex rebuilds an index from its id and label lists, as written
// by Index.IDs and Index.Labels.
func RestoreIndex(ids, labels []string) (*Index, error) {
	if len(ids) != len(labels) {
		return nil, fmt.Errorf("restoring index: %d ids but %d labels", len(ids), len(labels))
	}
	x := &Index{
		ids:    make([]string, 0, len(ids)),
		labels: make([]string, 0, len(labels)),
		pos:    make(map[string]int, len(ids)),
	}
	for i, id := range ids {
		if _, err := x.add(id, labels[i]); err != nil {
			return nil, fmt.Errorf("restoring index: %w", err)
		}
	}
	return x, nil
}

func (x *Index) add(id, label string) (int, error) {
	if _, ok := x.pos[id]; ok {
		return 0, fmt.Errorf("%w: %q", ErrDuplicateID, id)
	}
	i := len(x.ids)
	x.ids = append(x.ids, id)
	x.labels = append(x.labels, label)
	x.pos[id] = i
	return i, nil
}

// Position returns the index of id.
func (x *Index) Position(id string) (int, bool) {
	i, ok := x.pos[id]
	return i, ok
}

// ID returns the identifier at position i.
func (x *Index) ID(i int) (string, bool) {
	if i < 0 || i >= len(x.ids) {
		return "", false
	}
	return x.ids[i], true
}

// Label returns the title at position i, or "" when out of range.
func (x *Index) Label(i int) string {
	if i < 0 || i >= len(x.labels) {
		return ""
	}
	return x.labels[i]
}

// Find returns the first position, in index order, whose label equals title.
func (x *Index) Find(title string) (int, bool) {
	for i, l := range x.labels {
		if l == title {
			return i, true
		}
	}
	return -1, false
}

// Len returns the number of indexed identifiers.
func (x *Index) Len() int {
	return len(x.ids)
}

// IDs returns a copy of the identifier list.
func (x *Index) IDs() []string {
	return append([]string(nil), x.ids...)
}

// Labels returns a copy of the label list, aligned with IDs.
func (x *Index) Labels() []string {
	return append([]string(nil), x.labels...)
}
