package morph

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_SWC(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "neuron.swc")
	require.NoError(t, os.WriteFile(path, []byte(sampleNeuron), 0o644))

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "neuron.swc", m.Name)
	assert.Len(t, m.Neurites, 2)
}

func TestLoad_UnsupportedFormats(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"neuron.h5", "neuron.dat"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

		_, err := Load(path)
		assert.True(t, errors.Is(err, ErrUnsupportedFormat), "%s: %v", name, err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.swc"))
	assert.Error(t, err)
}
