// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package links

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/rich-context/internal/corpus"
	"github.com/pdiddy/rich-context/pkg/types"
)

// ExportEntry is one entity of a links export.
type ExportEntry struct {
	ID    string           `json:"id" yaml:"id"`
	Kind  types.EntityKind `json:"kind" yaml:"kind"`
	Links types.LinkView   `json:"links" yaml:"links"`
}

// Entries returns the link view of every entity that has one, sorted by id.
func (r *Recommender) Entries() []ExportEntry {
	var entries []ExportEntry
	for _, n := range r.snap.Graph.Nodes() {
		view, ok := r.View(n)
		if !ok {
			continue
		}
		id, _ := r.snap.Store.Index.ID(n)
		entries = append(entries, ExportEntry{ID: id, Kind: view.Kind(), Links: view})
	}
	slices.SortFunc(entries, func(a, b ExportEntry) int { return strings.Compare(a.ID, b.ID) })
	return entries
}

// ExportYAML writes every link view to w as YAML.
func (r *Recommender) ExportYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r.Entries()); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// ExportJSON writes every link view to w as indented JSON.
func (r *Recommender) ExportJSON(w io.Writer) error {
	data, err := json.MarshalIndent(r.Entries(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// ExportFile writes every link view to path; a .yaml or .yml extension
// selects YAML, anything else JSON.
func (r *Recommender) ExportFile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating export directory: %w", err)
		}
	}
	var buf bytes.Buffer
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := r.ExportYAML(&buf); err != nil {
			return err
		}
	default:
		if err := r.ExportJSON(&buf); err != nil {
			return err
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// downloadColumns is the header row of a dataset download.
var downloadColumns = []string{"dataset", "publication", "journal", "url", "abstract"}

// Download returns CSV rows for every publication citing the dataset with
// the given id, plus a short file stem derived from the dataset title.
func Download(s *corpus.Store, datasetID string) ([]byte, string, error) {
	d, ok := s.Datasets[datasetID]
	if !ok {
		return nil, "", fmt.Errorf("%w: dataset %q", ErrNotFound, datasetID)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(downloadColumns); err != nil {
		return nil, "", fmt.Errorf("writing CSV header: %w", err)
	}
	for _, i := range s.Members(types.KindPublication) {
		id, _ := s.Index.ID(i)
		p := s.Publications[id]
		if !slices.Contains(p.Datasets, datasetID) {
			continue
		}
		var journal string
		if j, ok := s.Journals[p.Journal]; ok {
			journal = j.Title
		}
		if err := w.Write([]string{d.Title, p.Title, journal, p.DOI, p.Abstract}); err != nil {
			return nil, "", fmt.Errorf("writing CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("flushing CSV: %w", err)
	}
	return buf.Bytes(), stem(d.Title), nil
}

// stem is the title without spaces, cut to eight runes and upper-cased.
func stem(title string) string {
	r := []rune(strings.ReplaceAll(title, " ", ""))
	if len(r) > 8 {
		r = r[:8]
	}
	return strings.ToUpper(string(r))
}
