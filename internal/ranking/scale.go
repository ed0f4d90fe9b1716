// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ranking

import (
	"math"
	"slices"
	"sort"
)

// percentile returns the share of values in sorted that are <= score,
// as a percentage. sorted must be ascending.
func percentile(sorted []float64, score float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	n := sort.Search(len(sorted), func(i int) bool { return sorted[i] > score })
	return float64(n) / float64(len(sorted)) * 100
}

// quantiles returns count cut points over sorted at evenly spaced
// probabilities from 0 to 1 inclusive, each taken as the nearest sample
// (halfway positions round to even). sorted must be ascending.
func quantiles(sorted []float64, count int) []float64 {
	if len(sorted) == 0 || count < 1 {
		return nil
	}
	out := make([]float64, count)
	last := float64(len(sorted) - 1)
	for i := range count {
		p := 1.0
		if count > 1 {
			p = float64(i) / float64(count-1)
		}
		out[i] = sorted[int(math.RoundToEven(p*last))]
	}
	return out
}

// bucket returns the 0-based quantile interval holding score: the number
// of cut points <= score minus one, clamped to the valid range.
func bucket(cuts []float64, score float64) int {
	n, _ := slices.BinarySearchFunc(cuts, score, func(c, s float64) int {
		if c <= s {
			return -1
		}
		return 1
	})
	return max(0, min(n-1, len(cuts)-1))
}

// visualSize maps a percentile onto a display size.
func visualSize(pct float64, numQuantiles int, scaleFactor float64) int {
	return int(math.RoundToEven((pct/float64(numQuantiles) + 5) * scaleFactor))
}
