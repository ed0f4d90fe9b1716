// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/rich-context/internal/codec"
	"github.com/pdiddy/rich-context/internal/corpus"
	"github.com/pdiddy/rich-context/internal/httputil"
	"github.com/pdiddy/rich-context/internal/links"
	"github.com/pdiddy/rich-context/internal/logging"
	"github.com/pdiddy/rich-context/internal/network"
	"github.com/pdiddy/rich-context/pkg/types"
)

const (
	defaultCorpus   = "full.jsonld"
	defaultArtifact = "precomp.json"
	defaultLinks    = "links.json"
	defaultCacheDir = "cache"
)

func init() {
	viper.SetDefault("links", defaultLinks)
	viper.SetDefault("fetch_timeout", 60*time.Second)
	viper.SetDefault("workers", links.DefaultWorkers)
	viper.SetDefault("ranking.max_iterations", 1000)
	viper.SetDefault("ranking.tolerance", 1e-6)
	viper.SetDefault("ranking.damping", 0.85)
	viper.SetDefault("ranking.scale_factor", 3)
	viper.SetDefault("ranking.quantiles", 10)
}

func bindFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

// engineConfig reads the effective configuration from flags, environment,
// and config file.
func engineConfig() types.EngineConfig {
	return types.EngineConfig{
		Corpus:       viper.GetString("corpus"),
		Artifact:     viper.GetString("artifact"),
		Links:        viper.GetString("links"),
		FetchTimeout: viper.GetDuration("fetch_timeout"),
		Workers:      viper.GetInt("workers"),
		Ranking: types.RankingConfig{
			Algorithm:     types.CentralityAlgorithm(viper.GetString("ranking.algorithm")),
			MaxIterations: viper.GetInt("ranking.max_iterations"),
			Tolerance:     viper.GetFloat64("ranking.tolerance"),
			Damping:       viper.GetFloat64("ranking.damping"),
			ScaleFactor:   viper.GetFloat64("ranking.scale_factor"),
			Quantiles:     viper.GetInt("ranking.quantiles"),
		}.WithDefaults(),
		Cache: types.CacheConfig{
			Backend: types.CacheBackend(viper.GetString("cache.backend")),
			Dir:     viper.GetString("cache.dir"),
		},
		Log: types.LogConfig{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
		},
	}
}

// buildSnapshot loads the corpus and runs the full pipeline, including
// link rendering.
func buildSnapshot(ctx context.Context, cfg types.EngineConfig, w io.Writer) (*network.Snapshot, links.Payloads, error) {
	start := time.Now()
	client := httputil.NewClient(cfg.FetchTimeout)
	store, err := corpus.LoadSource(ctx, client, cfg.Corpus)
	if err != nil {
		return nil, nil, err
	}
	fmt.Fprintf(w, "loaded corpus: %d entities, %d publications (%s)\n",
		store.Index.Len(), len(store.Publications), time.Since(start).Round(time.Millisecond))

	snap, err := network.Build(store, cfg.Ranking)
	if err != nil {
		return nil, nil, err
	}
	fmt.Fprintf(w, "ranked graph: %d nodes, %d edges, %s in %d iterations\n",
		snap.Graph.NodeCount(), snap.Graph.EdgeCount(), snap.Report.Algorithm, snap.Report.Iterations)

	payloads, err := links.NewRecommender(snap).RenderAll(ctx, cfg.Workers)
	if err != nil {
		return nil, nil, fmt.Errorf("rendering links: %w", err)
	}
	return snap, payloads, nil
}

// loadSnapshot restores the artifact when it exists and matches the
// configuration, and otherwise rebuilds from the corpus.
func loadSnapshot(ctx context.Context, cfg types.EngineConfig, w io.Writer) (*network.Snapshot, links.Payloads, error) {
	if cfg.Artifact != "" {
		snap, payloads, err := codec.Load(cfg.Artifact, cfg.Ranking)
		switch {
		case err == nil:
			return snap, payloads, nil
		case errors.Is(err, os.ErrNotExist):
			logging.Info().Str("artifact", cfg.Artifact).Msg("no artifact, building from corpus")
		case errors.Is(err, codec.ErrIncompatibleArtifact), errors.Is(err, codec.ErrChecksumMismatch):
			logging.Warn().Err(err).Str("artifact", cfg.Artifact).Msg("artifact unusable, building from corpus")
		default:
			return nil, nil, err
		}
	}
	return buildSnapshot(ctx, cfg, w)
}
