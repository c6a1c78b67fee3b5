// Package stats computes descriptive statistics over decoded samples.
package stats

import (
	"errors"
	"math"
	"slices"
)

// ErrEmptyInput is returned when statistics are requested over no samples.
var ErrEmptyInput = errors.New("no samples")

// Summary holds the statistics of one layer.
type Summary struct {
	Count  int     `json:"count" yaml:"count"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
	Mean   float64 `json:"mean" yaml:"mean"`
	StdDev float64 `json:"stddev" yaml:"stddev"`
	Median float64 `json:"median" yaml:"median"`
}

// Compute returns min, max, mean, population standard deviation and median.
// samples is not modified.
func Compute(samples []float64) (Summary, error) {
	if len(samples) == 0 {
		return Summary{}, ErrEmptyInput
	}

	s := Summary{
		Count: len(samples),
		Min:   samples[0],
		Max:   samples[0],
	}

	var sum float64
	for _, v := range samples {
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
		sum += v
	}
	s.Mean = sum / float64(len(samples))

	var sq float64
	for _, v := range samples {
		d := v - s.Mean
		sq += d * d
	}
	s.StdDev = math.Sqrt(sq / float64(len(samples)))

	sorted := slices.Clone(samples)
	slices.Sort(sorted)
	s.Median = Median(sorted)

	return s, nil
}

// Median returns the middle element of an ascending-sorted, non-empty slice.
// For even lengths it returns sorted[n/2], the upper of the two middle
// elements, without averaging.
func Median(sorted []float64) float64 {
	return sorted[len(sorted)/2]
}
