// Package stats aggregates morphometric features into the statistics
// document: per-soma scalars, per-neurite-type counts, and {mean, std, min,
// max} summaries of array-valued features.
package stats

import (
	"math"

	"github.com/neurobench/morphstats/internal/morph"
)

// Summary reduces an array-valued feature to four scalars.
type Summary struct {
	Mean float64 `yaml:"mean" json:"mean"`
	Std  float64 `yaml:"std" json:"std"`
	Min  float64 `yaml:"min" json:"min"`
	Max  float64 `yaml:"max" json:"max"`
}

// FileStats maps statistic name to its value for one morphology: a scalar
// for soma statistics, or a per-neurite-type sub-mapping of scalars
// (counts) or Summary values (array features).
type FileStats map[string]any

// Document maps input file path to its FileStats. This is the serialized
// output of the whole run.
type Document map[string]FileStats

// Extract computes every statistic in the fixed name tables for one
// morphology. Neurite types with no data are omitted from the per-type
// sub-mappings; counts are always reported, zero included.
func Extract(m *morph.Morphology) (FileStats, error) {
	fs := make(FileStats)

	for _, name := range morph.SomaFeatureNames() {
		v, err := morph.SomaFeature(name, m)
		if err != nil {
			return nil, err
		}
		fs[name] = v
	}

	for _, name := range morph.NeuriteCountNames() {
		byType := make(map[string]any)
		for _, t := range morph.NeuriteTypes() {
			v, err := morph.NeuriteCount(name, m, t)
			if err != nil {
				return nil, err
			}
			byType[t.String()] = v
		}
		fs[name] = byType
	}

	for _, name := range morph.NeuriteFeatureNames() {
		byType := make(map[string]any)
		for _, t := range morph.NeuriteTypes() {
			values, err := morph.NeuriteFeature(name, m, t)
			if err != nil {
				return nil, err
			}
			if s, ok := Summarize(values); ok {
				byType[t.String()] = s
			}
		}
		fs[name] = byType
	}

	return fs, nil
}

// Summarize reduces values to a Summary using the population standard
// deviation. The second return is false for empty input, where the four
// scalars are undefined.
func Summarize(values []float64) (Summary, bool) {
	if len(values) == 0 {
		return Summary{}, false
	}

	n := float64(len(values))
	min, max := values[0], values[0]
	var sum float64
	for _, v := range values {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	mean := sum / n

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}

	return Summary{
		Mean: mean,
		Std:  math.Sqrt(sq / n),
		Min:  min,
		Max:  max,
	}, true
}
