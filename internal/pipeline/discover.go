package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrInvalidInput is returned when the input path is neither a regular file
// nor a directory.
var ErrInvalidInput = errors.New("input path is neither a file nor a directory")

// Supported morphology file extensions (lowercase, with leading dot).
var morphologyExtensions = map[string]bool{
	".swc": true,
	".h5":  true,
}

// Discover resolves the input path into the list of morphology files to
// process. A regular file is returned as-is (the loader validates it); a
// directory is walked recursively, keeping files with morphology extensions,
// pruning hidden directories, and sorting the paths lexicographically for
// deterministic output order.
func Discover(inputPath string) ([]string, error) {
	fi, err := os.Stat(inputPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", inputPath, ErrInvalidInput)
	}

	if fi.Mode().IsRegular() {
		return []string{inputPath}, nil
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("%s: %w", inputPath, ErrInvalidInput)
	}

	var files []string
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != inputPath && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if morphologyExtensions[ext] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
