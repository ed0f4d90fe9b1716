// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package neighborhood

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/pdiddy/rich-context/internal/logging"
	"github.com/pdiddy/rich-context/internal/querycache"
	"github.com/pdiddy/rich-context/pkg/types"
)

// TokenPrefix starts every diagram cache token.
const TokenPrefix = "hood-"

// Service wraps an Engine with the query cache: each matched query stores
// its diagram under a token derived from the query inputs.
type Service struct {
	engine *Engine
	cache  querycache.Cache
}

// NewService returns a service answering queries with engine and storing
// diagrams in cache.
func NewService(engine *Engine, cache querycache.Cache) *Service {
	return &Service{engine: engine, cache: cache}
}

// Token returns the cache token of a query for entity at radius.
func Token(entity string, radius int) string {
	return querycache.Fingerprint([]string{entity, strconv.Itoa(radius)}, TokenPrefix)
}

// Query parses radius, runs the query, and stores the diagram. The
// returned neighborhood carries the token and the elapsed milliseconds.
func (s *Service) Query(ctx context.Context, entity, radius string, opts ...Option) (types.Neighborhood, error) {
	start := time.Now()
	r := ParseRadius(radius)
	res := s.engine.Query(entity, r, opts...)

	hood := res.Hood
	hood.Token = Token(entity, r)

	// Titles differing only in case share a token, so only a real match
	// may write one.
	if res.Matched() {
		data, err := json.Marshal(res.Diagram)
		if err != nil {
			return types.Neighborhood{}, fmt.Errorf("encoding diagram: %w", err)
		}
		if err := s.cache.Put(ctx, hood.Token, data); err != nil {
			return types.Neighborhood{}, fmt.Errorf("caching diagram: %w", err)
		}
	}

	hood.Elapsed = fmt.Sprintf("%.2f", float64(time.Since(start).Microseconds())/1000)
	logging.Debug().
		Str("entity", entity).
		Int("radius", r).
		Bool("matched", res.Matched()).
		Int("results", hood.Len()).
		Str("token", hood.Token).
		Msg("neighborhood query")
	return hood, nil
}

// Diagram returns the diagram stored under token; ok is false when no
// query has produced it.
func (s *Service) Diagram(ctx context.Context, token string) (types.Diagram, bool, error) {
	data, ok, err := s.cache.Get(ctx, token)
	if err != nil || !ok {
		return types.Diagram{}, false, err
	}
	var d types.Diagram
	if err := json.Unmarshal(data, &d); err != nil {
		return types.Diagram{}, false, fmt.Errorf("decoding diagram %s: %w", token, err)
	}
	return d, true, nil
}
