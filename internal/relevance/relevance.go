// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package relevance estimates how strongly authors, journals, and topics
// co-occur with each dataset, as smoothed conditional probabilities.
package relevance

import (
	"github.com/pdiddy/rich-context/internal/corpus"
	"github.com/pdiddy/rich-context/pkg/types"
)

// Z975 is the two-sided 97.5th percentile of the standard normal.
const Z975 = 1.959964

// Neutral is the estimate returned when there is no evidence.
const Neutral = 0.5

// PointEstimate returns the smoothed probability of x successes in n
// trials: (x + z) / (n + 2z). It is Neutral when x = n = 0 and tends to
// x/n as n grows.
func PointEstimate(x, n int) float64 {
	return (float64(x) + Z975) / (float64(n) + 2*Z975)
}

type tally struct {
	trials int
	counts map[int]int
}

// Propagate attaches an MLE table to every author, journal, and topic of s.
// For entity e, the trials are all dataset citations of the publications
// linking e, repeated citations included, and the count for dataset d is
// how many of those citations are d.
func Propagate(s *corpus.Store) {
	tallies := make(map[string]*tally)
	add := func(key string, datasets []string) {
		t, ok := tallies[key]
		if !ok {
			t = &tally{counts: make(map[int]int)}
			tallies[key] = t
		}
		t.trials += len(datasets)
		for _, d := range datasets {
			t.counts[s.Pos(d)]++
		}
	}

	for _, p := range s.Publications {
		for _, a := range p.Authors {
			add("auth:"+a, p.Datasets)
		}
		if p.Journal != "" {
			add("jour:"+p.Journal, p.Datasets)
		}
		for _, t := range p.Topics {
			add("topi:"+t, p.Datasets)
		}
	}

	for id, a := range s.Authors {
		a.MLE = estimates(tallies["auth:"+id])
	}
	for id, j := range s.Journals {
		j.MLE = estimates(tallies["jour:"+id])
	}
	for id, t := range s.Topics {
		t.MLE = estimates(tallies["topi:"+id])
	}
}

func estimates(t *tally) types.MLE {
	mle := make(types.MLE)
	if t == nil {
		return mle
	}
	for d, x := range t.counts {
		mle[d] = types.Estimate{Count: x, Value: PointEstimate(x, t.trials)}
	}
	return mle
}

// Lookup returns the co-occurrence count and estimate of the entity at
// position entity against the entity at position context. Authors,
// journals, and topics consult their MLE table; a publication is scored by
// how many of its dataset citations are context. Anything else, or a
// context with no evidence, yields (0, Neutral).
func Lookup(s *corpus.Store, entity, context int) (int, float64) {
	if context < 0 {
		return 0, Neutral
	}
	if mle, ok := s.MLE(entity); ok {
		if e, ok := mle[context]; ok {
			return e.Count, e.Value
		}
		return 0, Neutral
	}

	kind, ok := s.Kind(entity)
	if !ok || kind != types.KindPublication {
		return 0, Neutral
	}
	id, _ := s.Index.ID(entity)
	p := s.Publications[id]
	var x int
	for _, d := range p.Datasets {
		if pos, ok := s.Index.Position(d); ok && pos == context {
			x++
		}
	}
	if x == 0 {
		return 0, Neutral
	}
	return x, PointEstimate(x, len(p.Datasets))
}
