// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package links

import (
	"context"
	"fmt"
	"sync"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/rich-context/internal/logging"
	"github.com/pdiddy/rich-context/internal/network"
)

// DefaultWorkers bounds RenderAll when no worker count is given.
const DefaultWorkers = 4

// Payloads maps an entity id to its pre-rendered link view.
type Payloads map[string]json.RawMessage

// Lookup returns the payload of the entity at index.
func (p Payloads) Lookup(snap *network.Snapshot, index int) (json.RawMessage, bool) {
	id, ok := snap.Store.Index.ID(index)
	if !ok {
		return nil, false
	}
	data, ok := p[id]
	return data, ok
}

// RenderAll encodes the link view of every entity that has one, using up
// to workers goroutines.
func (r *Recommender) RenderAll(ctx context.Context, workers int) (Payloads, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	nodes := r.snap.Graph.Nodes()

	var mu sync.Mutex
	out := make(Payloads, len(nodes))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, n := range nodes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			view, ok := r.View(n)
			if !ok {
				return nil
			}
			data, err := json.Marshal(view)
			if err != nil {
				return fmt.Errorf("encoding links of node %d: %w", n, err)
			}
			id, _ := r.snap.Store.Index.ID(n)
			mu.Lock()
			out[id] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logging.Debug().Int("payloads", len(out)).Int("workers", workers).Msg("link views rendered")
	return out, nil
}
