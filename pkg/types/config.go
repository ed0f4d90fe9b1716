// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// CentralityAlgorithm names the global importance scoring algorithm.
type CentralityAlgorithm string

const (
	AlgorithmEigenvector CentralityAlgorithm = "eigenvector"
	AlgorithmPageRank    CentralityAlgorithm = "pagerank"
)

// RankingConfig holds settings for the importance ranker.
type RankingConfig struct {
	// Algorithm selects eigenvector centrality or weighted pagerank.
	Algorithm CentralityAlgorithm `json:"algorithm" yaml:"algorithm"`

	// MaxIterations bounds the power iteration (default 1000).
	MaxIterations int `json:"max_iterations" yaml:"max_iterations"`

	// Tolerance is the per-node convergence threshold (default 1e-6).
	Tolerance float64 `json:"tolerance" yaml:"tolerance"`

	// Damping is the pagerank damping factor (default 0.85).
	Damping float64 `json:"damping" yaml:"damping"`

	// ScaleFactor multiplies the visual size (default 3).
	ScaleFactor float64 `json:"scale_factor" yaml:"scale_factor"`

	// Quantiles is the number of quantile buckets (default 10).
	Quantiles int `json:"quantiles" yaml:"quantiles"`
}

// WithDefaults returns a copy with zero fields replaced by defaults.
func (c RankingConfig) WithDefaults() RankingConfig {
	if c.Algorithm == "" {
		c.Algorithm = AlgorithmEigenvector
	}
	if c.MaxIterations <= 0 {
		c.MaxIterations = 1000
	}
	if c.Tolerance <= 0 {
		c.Tolerance = 1e-6
	}
	if c.Damping <= 0 || c.Damping >= 1 {
		c.Damping = 0.85
	}
	if c.ScaleFactor <= 0 {
		c.ScaleFactor = 3
	}
	if c.Quantiles <= 1 {
		c.Quantiles = 10
	}
	return c
}

// CacheBackend selects the query cache implementation.
type CacheBackend string

const (
	CacheBadger CacheBackend = "badger"
	CacheSQLite CacheBackend = "sqlite"
	CacheMemory CacheBackend = "memory"
)

// CacheConfig holds settings for the query cache.
type CacheConfig struct {
	Backend CacheBackend `json:"backend" yaml:"backend"`

	// Dir is the directory holding the cache files (default "cache").
	Dir string `json:"dir" yaml:"dir"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `json:"level" yaml:"level"`

	// Format is json or console.
	Format string `json:"format" yaml:"format"`
}

// EngineConfig groups everything the CLI needs to build or load a snapshot.
type EngineConfig struct {
	// Corpus is the JSON-LD corpus path or http(s) URL.
	Corpus string `json:"corpus" yaml:"corpus"`

	// Artifact is the precomputed state file.
	Artifact string `json:"artifact" yaml:"artifact"`

	// Links is the links export file; its extension selects JSON or YAML.
	Links string `json:"links" yaml:"links"`

	// FetchTimeout bounds a corpus download (default 60s).
	FetchTimeout time.Duration `json:"fetch_timeout" yaml:"fetch_timeout"`

	// Workers bounds parallel link rendering (default 4).
	Workers int `json:"workers" yaml:"workers"`

	Ranking RankingConfig `json:"ranking" yaml:"ranking"`
	Cache   CacheConfig   `json:"cache" yaml:"cache"`
	Log     LogConfig     `json:"log" yaml:"log"`
}
