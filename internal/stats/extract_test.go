package stats

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurobench/morphstats/internal/config"
	"github.com/neurobench/morphstats/internal/morph"
)

// Same shape as the morph package fixture: soma, Y-shaped axon, straight
// basal dendrite.
const sampleNeuron = `1 1 0 0 0 1.0 -1
2 2 0 0 0 0.5 1
3 2 3 0 0 0.4 2
4 2 3 4 0 0.3 3
5 2 6 0 0 0.3 3
6 3 0 0 0 0.2 1
7 3 0 0 5 0.2 6
`

func testMorphology(t *testing.T) *morph.Morphology {
	t.Helper()
	m, err := morph.ParseSWC([]byte(sampleNeuron), "test.swc")
	require.NoError(t, err)
	return m
}

func TestSummarize(t *testing.T) {
	s, ok := Summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	require.True(t, ok)
	assert.InDelta(t, 5.0, s.Mean, 1e-12)
	assert.InDelta(t, 2.0, s.Std, 1e-12) // population std
	assert.Equal(t, 2.0, s.Min)
	assert.Equal(t, 9.0, s.Max)
}

func TestSummarize_SingleValue(t *testing.T) {
	s, ok := Summarize([]float64{3.5})
	require.True(t, ok)
	assert.Equal(t, Summary{Mean: 3.5, Std: 0, Min: 3.5, Max: 3.5}, s)
}

func TestSummarize_Empty(t *testing.T) {
	_, ok := Summarize(nil)
	assert.False(t, ok)
}

func TestExtract_FixedKeySet(t *testing.T) {
	fs, err := Extract(testMorphology(t))
	require.NoError(t, err)

	var want []string
	want = append(want, morph.SomaFeatureNames()...)
	want = append(want, morph.NeuriteCountNames()...)
	want = append(want, morph.NeuriteFeatureNames()...)

	assert.Len(t, fs, len(want))
	for _, name := range want {
		assert.Contains(t, fs, name)
	}
}

func TestExtract_Values(t *testing.T) {
	fs, err := Extract(testMorphology(t))
	require.NoError(t, err)

	assert.InDelta(t, 1.0, fs["soma_radius"].(float64), 1e-12)
	assert.InDelta(t, 4*math.Pi, fs["soma_surface_area"].(float64), 1e-12)

	counts := fs["number_of_sections"].(map[string]any)
	assert.Equal(t, 3, counts["axon"])
	assert.Equal(t, 1, counts["basal_dendrite"])
	assert.Equal(t, 0, counts["apical_dendrite"]) // counts always reported
	assert.Equal(t, 4, counts["all"])

	lengths := fs["section_lengths"].(map[string]any)
	axon := lengths["axon"].(Summary)
	assert.InDelta(t, 10.0/3.0, axon.Mean, 1e-12)
	assert.Equal(t, 3.0, axon.Min)
	assert.Equal(t, 4.0, axon.Max)

	// No apical neurites → the summary for that type is omitted.
	assert.NotContains(t, lengths, "apical_dendrite")
	assert.Contains(t, lengths, "all")
}

func TestEncode_YAML(t *testing.T) {
	fs, err := Extract(testMorphology(t))
	require.NoError(t, err)
	doc := Document{"cells/test.swc": fs}

	out, err := Encode(doc, config.FormatYAML)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "cells/test.swc:")
	assert.Contains(t, text, "soma_radius:")
	assert.Contains(t, text, "section_lengths:")
	assert.Contains(t, text, "mean:")
}

func TestEncode_JSON(t *testing.T) {
	fs, err := Extract(testMorphology(t))
	require.NoError(t, err)
	doc := Document{"test.swc": fs}

	out, err := Encode(doc, config.FormatJSON)
	require.NoError(t, err)

	text := string(out)
	assert.True(t, strings.HasPrefix(text, "{"))
	assert.Contains(t, text, `"soma_surface_area"`)
	assert.Contains(t, text, `"std"`)
	assert.True(t, strings.HasSuffix(text, "\n"))
}

func TestEncode_Deterministic(t *testing.T) {
	fs, err := Extract(testMorphology(t))
	require.NoError(t, err)
	doc := Document{"a.swc": fs, "b.swc": fs}

	first, err := Encode(doc, config.FormatYAML)
	require.NoError(t, err)
	second, err := Encode(doc, config.FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
