// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package querycache stores rendered query artifacts under a deterministic
// fingerprint of the query inputs. Values for a key are always identical,
// so concurrent writers may race freely.
package querycache

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"golang.org/x/crypto/blake2b"

	"github.com/pdiddy/rich-context/pkg/types"
)

// ErrNotFound is returned by backends when a key is absent. Cache.Get
// translates it into ok == false.
var ErrNotFound = errors.New("cache key not found")

// DigestSize is the fingerprint hash length in bytes.
const DigestSize = 10

// DefaultDir holds cache files when no directory is configured.
const DefaultDir = "cache"

// Fingerprint hashes a set of query strings into a stable key. Each
// string is lower-cased and trimmed, and the set is sorted before hashing,
// so order, case, and surrounding whitespace do not matter.
func Fingerprint(values []string, prefix string) string {
	norm := make([]string, len(values))
	for i, v := range values {
		norm[i] = strings.TrimSpace(strings.ToLower(v))
	}
	slices.Sort(norm)

	h, err := blake2b.New(DigestSize, nil)
	if err != nil {
		// Only reachable with an invalid digest size.
		panic(err)
	}
	for _, v := range norm {
		h.Write([]byte(v))
	}
	return prefix + hex.EncodeToString(h.Sum(nil))
}

// Cache is a key-value store for rendered artifacts.
type Cache interface {
	// Get returns the value for key; ok is false when it is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	Close() error
}

// Open returns the backend named by cfg, creating its directory if needed.
func Open(cfg types.CacheConfig) (Cache, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = DefaultDir
	}

	switch cfg.Backend {
	case types.CacheMemory:
		return NewMemory(), nil
	case types.CacheSQLite:
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
		return OpenSQLite(dir)
	case types.CacheBadger, "":
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
		return OpenBadger(dir)
	}
	return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
}

// Memory is an in-process cache.
type Memory struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemory returns an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string][]byte)}
}

// Get implements Cache.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(v), true, nil
}

// Put implements Cache.
func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = slices.Clone(value)
	return nil
}

// Close implements Cache.
func (m *Memory) Close() error {
	return nil
}
