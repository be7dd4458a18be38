// Package report summarizes heightfields: descriptive statistics, a
// grayscale PGM preview and a histogram plot.
package report

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"torus-rally/internal/heightfield"
)

// Stats describes the distribution of a heightfield's samples.
type Stats struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
	Median float64
}

// Summarize computes Stats for f.
func Summarize(f *heightfield.Heightfield) Stats {
	vals := toFloat64(f.Values())
	mean, std := stat.MeanStdDev(vals, nil)
	sort.Float64s(vals)
	return Stats{
		Count:  len(vals),
		Min:    floats.Min(vals),
		Max:    floats.Max(vals),
		Mean:   mean,
		StdDev: std,
		Median: stat.Quantile(0.5, stat.Empirical, vals, nil),
	}
}

func (s Stats) String() string {
	return fmt.Sprintf("n=%d min=%.4f max=%.4f mean=%.4f std=%.4f median=%.4f",
		s.Count, s.Min, s.Max, s.Mean, s.StdDev, s.Median)
}

func toFloat64(vals []float32) []float64 {
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = float64(v)
	}
	return out
}
