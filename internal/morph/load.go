package morph

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned by Load for morphology formats the loader
// recognizes but cannot read (currently HDF5) and for unknown extensions.
var ErrUnsupportedFormat = errors.New("unsupported morphology format")

// Load reads a morphology file, dispatching on extension. Only SWC is parsed
// in-repo; .h5 files are discovered but rejected with ErrUnsupportedFormat so
// the caller can count them as skipped rather than failed.
func Load(path string) (*Morphology, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".swc":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %q: %w", path, err)
		}
		m, err := ParseSWC(data, filepath.Base(path))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return m, nil
	case ".h5":
		return nil, fmt.Errorf("%s: %w (no HDF5 reader)", path, ErrUnsupportedFormat)
	}
	return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
}
