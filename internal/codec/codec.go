// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package codec saves and restores the complete computed state as one
// artifact: a JSON envelope holding a versioned header and the
// gzip-compressed state, verified by a SHA-256 checksum.
package codec

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"

	"github.com/pdiddy/rich-context/internal/corpus"
	"github.com/pdiddy/rich-context/internal/graph"
	"github.com/pdiddy/rich-context/internal/links"
	"github.com/pdiddy/rich-context/internal/logging"
	"github.com/pdiddy/rich-context/internal/network"
	"github.com/pdiddy/rich-context/internal/ranking"
	"github.com/pdiddy/rich-context/pkg/types"
)

// FormatVersion changes whenever the state layout changes.
const FormatVersion = 1

var (
	// ErrChecksumMismatch means the state does not match its header.
	ErrChecksumMismatch = errors.New("artifact checksum mismatch")

	// ErrIncompatibleArtifact means the artifact was written by another
	// format version or ranking configuration and must be rebuilt.
	ErrIncompatibleArtifact = errors.New("incompatible artifact")
)

// Header describes an artifact.
type Header struct {
	FormatVersion int                       `json:"format_version"`
	Algorithm     types.CentralityAlgorithm `json:"algorithm"`
	ScaleFactor   float64                   `json:"scale_factor"`
	Checksum      string                    `json:"checksum"`
	CreatedAt     time.Time                 `json:"created_at"`
	Nodes         int                       `json:"nodes"`
	Edges         int                       `json:"edges"`
}

type envelope struct {
	Header Header `json:"header"`
	Data   []byte `json:"data"`
}

type indexState struct {
	IDs    []string `json:"ids"`
	Labels []string `json:"labels"`
}

type state struct {
	Index    indexState          `json:"index"`
	Entities corpus.Entities     `json:"entities"`
	Graph    *graph.Graph        `json:"graph"`
	Scale    ranking.Table       `json:"scale"`
	Ranking  types.RankingConfig `json:"ranking"`
	Links    links.Payloads      `json:"links"`
}

// Save writes snap and its rendered link payloads to path. The file is
// written to a temporary name and renamed into place.
func Save(path string, snap *network.Snapshot, payloads links.Payloads) (Header, error) {
	st := state{
		Index: indexState{
			IDs:    snap.Store.Index.IDs(),
			Labels: snap.Store.Index.Labels(),
		},
		Entities: snap.Store.Entities(),
		Graph:    snap.Graph,
		Scale:    snap.Scale,
		Ranking:  snap.Ranking,
		Links:    payloads,
	}
	raw, err := json.Marshal(st)
	if err != nil {
		return Header{}, fmt.Errorf("encoding state: %w", err)
	}
	sum := sha256.Sum256(raw)

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(raw); err != nil {
		return Header{}, fmt.Errorf("compressing state: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return Header{}, fmt.Errorf("finalizing compression: %w", err)
	}

	env := envelope{
		Header: Header{
			FormatVersion: FormatVersion,
			Algorithm:     snap.Ranking.Algorithm,
			ScaleFactor:   snap.Ranking.ScaleFactor,
			Checksum:      hex.EncodeToString(sum[:]),
			CreatedAt:     time.Now().UTC(),
			Nodes:         snap.Graph.NodeCount(),
			Edges:         snap.Graph.EdgeCount(),
		},
		Data: compressed.Bytes(),
	}
	data, err := json.Marshal(env)
	if err != nil {
		return Header{}, fmt.Errorf("encoding artifact: %w", err)
	}

	if err := writeAtomic(path, data); err != nil {
		return Header{}, err
	}
	logging.Info().
		Str("path", path).
		Int("bytes", len(data)).
		Int("payloads", len(payloads)).
		Msg("artifact saved")
	return env.Header, nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating artifact directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp artifact: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing artifact: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming artifact: %w", err)
	}
	return nil
}

// ReadHeader returns the header of the artifact at path without decoding
// its state.
func ReadHeader(path string) (Header, error) {
	env, err := readEnvelope(path)
	if err != nil {
		return Header{}, err
	}
	return env.Header, nil
}

func readEnvelope(path string) (*envelope, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading artifact: %w", err)
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decoding artifact: %w", err)
	}
	return &env, nil
}

// Load restores the snapshot and link payloads saved at path. The artifact
// must have been written by this format version with the same centrality
// algorithm and scale factor as expect.
func Load(path string, expect types.RankingConfig) (*network.Snapshot, links.Payloads, error) {
	expect = expect.WithDefaults()
	env, err := readEnvelope(path)
	if err != nil {
		return nil, nil, err
	}
	h := env.Header
	switch {
	case h.FormatVersion != FormatVersion:
		return nil, nil, fmt.Errorf("%w: format version %d, want %d", ErrIncompatibleArtifact, h.FormatVersion, FormatVersion)
	case h.Algorithm != expect.Algorithm:
		return nil, nil, fmt.Errorf("%w: ranked by %s, want %s", ErrIncompatibleArtifact, h.Algorithm, expect.Algorithm)
	case h.ScaleFactor != expect.ScaleFactor:
		return nil, nil, fmt.Errorf("%w: scale factor %g, want %g", ErrIncompatibleArtifact, h.ScaleFactor, expect.ScaleFactor)
	}

	gzr, err := gzip.NewReader(bytes.NewReader(env.Data))
	if err != nil {
		return nil, nil, fmt.Errorf("decompressing state: %w", err)
	}
	defer gzr.Close()
	raw, err := io.ReadAll(gzr)
	if err != nil {
		return nil, nil, fmt.Errorf("reading decompressed state: %w", err)
	}

	sum := sha256.Sum256(raw)
	if got := hex.EncodeToString(sum[:]); got != h.Checksum {
		return nil, nil, fmt.Errorf("%w: header %s, data %s", ErrChecksumMismatch, h.Checksum, got)
	}

	var st state
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, nil, fmt.Errorf("decoding state: %w", err)
	}
	if st.Graph == nil {
		return nil, nil, fmt.Errorf("decoding state: missing graph")
	}

	index, err := corpus.RestoreIndex(st.Index.IDs, st.Index.Labels)
	if err != nil {
		return nil, nil, err
	}
	store, err := corpus.Restore(index, st.Entities)
	if err != nil {
		return nil, nil, err
	}
	if st.Links == nil {
		st.Links = links.Payloads{}
	}

	logging.Info().
		Str("path", path).
		Time("created_at", h.CreatedAt).
		Int("nodes", st.Graph.NodeCount()).
		Msg("artifact loaded")
	return network.Restore(store, st.Graph, st.Scale, st.Ranking), st.Links, nil
}
