// Package stats describes samples of simulated endpoints.
package stats

import (
	"math"
	"slices"
)

// Percentiles returns the requested percentiles (0-100) of values, using
// linear interpolation between closest ranks. values is left unsorted.
func Percentiles(values []float64, ps ...float64) []float64 {
	out := make([]float64, len(ps))
	if len(values) == 0 {
		return out
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	for i, p := range ps {
		out[i] = rank(sorted, p)
	}
	return out
}

// Percentile returns a single percentile of values
func Percentile(values []float64, p float64) float64 {
	return Percentiles(values, p)[0]
}

func rank(sorted []float64, p float64) float64 {
	q := math.Min(math.Max(p, 0), 100) / 100
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	frac := pos - float64(lo)
	if frac == 0 {
		return sorted[lo]
	}
	return sorted[lo] + (sorted[lo+1]-sorted[lo])*frac
}
