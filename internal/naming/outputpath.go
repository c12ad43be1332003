// Package naming builds output file paths for rendered artifacts and
// resolves basename collisions between inputs from different directories.
package naming

import (
	"path/filepath"
	"strings"
)

// SVGOutputPath returns the dendrogram SVG destination for an input
// morphology: <outputDir>/<input basename without extension>.svg.
func SVGOutputPath(inputPath, outputDir string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outputDir, stem+".svg")
}
