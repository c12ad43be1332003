// Package pipeline orchestrates file discovery, per-file statistics
// extraction, and serialization of the aggregated document.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/neurobench/morphstats/internal/config"
	"github.com/neurobench/morphstats/internal/dendrogram"
	"github.com/neurobench/morphstats/internal/display"
	"github.com/neurobench/morphstats/internal/logging"
	"github.com/neurobench/morphstats/internal/morph"
	"github.com/neurobench/morphstats/internal/naming"
	"github.com/neurobench/morphstats/internal/stats"
)

// Run is the top-level batch entry point: discover → per file load and
// extract → serialize the document to stdout or cfg.OutputPath. Returns
// aggregate stats; the caller maps Failed > 0 to the exit code.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) RunStats {
	var rs RunStats

	files, err := Discover(cfg.InputPath)
	if err != nil {
		log.Error("%v", err)
		rs.Failed++
		return rs
	}
	rs.Total = len(files)
	if len(files) == 0 {
		log.Warn("No morphology files found in %s", cfg.InputPath)
	}

	var resolver *naming.Resolver
	if cfg.DendrogramDir != "" {
		if err := os.MkdirAll(cfg.DendrogramDir, 0o755); err != nil {
			log.Error("Cannot create dendrogram directory: %s", cfg.DendrogramDir)
			rs.Failed++
			return rs
		}
		resolver = naming.NewResolver()
	}

	doc := make(stats.Document, len(files))

	for i, path := range files {
		rs.Current = i + 1

		if ctx.Err() != nil {
			log.Warn("Interrupted")
			break
		}

		processFile(cfg, log, path, &rs, doc, resolver)
	}

	if err := writeDocument(cfg, doc); err != nil {
		log.Error("%v", err)
		rs.Failed++
	}

	logSummary(log, &rs)
	return rs
}

// processFile handles one morphology file: load → extract → record, plus the
// optional dendrogram rendering.
func processFile(
	cfg *config.Config,
	log *logging.Logger,
	path string,
	rs *RunStats,
	doc stats.Document,
	resolver *naming.Resolver,
) {
	basename := filepath.Base(path)
	log.Info("[%d/%d] %s", rs.Current, rs.Total, basename)

	m, err := morph.Load(path)
	if err != nil {
		if errors.Is(err, morph.ErrUnsupportedFormat) {
			log.Warn("Skip: %v", err)
			rs.Skipped++
			return
		}
		log.Error("%v", err)
		rs.Failed++
		return
	}

	fileStats, err := stats.Extract(m)
	if err != nil {
		log.Error("%s: %v", path, err)
		rs.Failed++
		return
	}
	doc[path] = fileStats
	rs.Analyzed++

	segments := 0
	for _, n := range m.Neurites {
		segments += n.NSegments()
	}
	log.Debug("%s: %s, %s, soma %s / %s", basename,
		display.FormatCount(len(m.Neurites), "neurite"),
		display.FormatCount(segments, "segment"),
		display.FormatMicrons(m.Soma.Radius()),
		display.FormatArea(m.Soma.SurfaceArea()))

	if resolver != nil {
		out := resolver.Resolve(path, naming.SVGOutputPath(path, cfg.DendrogramDir))
		if err := dendrogram.WriteSVG(m, out); err != nil {
			log.Error("%s: %v", basename, err)
			rs.Failed++
			return
		}
		log.Debug("%s: dendrogram written to %s", basename, out)
	}
}

// writeDocument serializes the aggregated document to stdout or the
// configured output file. An empty run still emits an (empty) document so
// downstream parsers always get valid input.
func writeDocument(cfg *config.Config, doc stats.Document) error {
	out, err := stats.Encode(doc, cfg.Format)
	if err != nil {
		return err
	}
	if cfg.OutputPath == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(cfg.OutputPath, out, 0o644); err != nil {
		return fmt.Errorf("write %q: %w", cfg.OutputPath, err)
	}
	return nil
}

// logSummary reports the batch counters once the run is complete.
func logSummary(log *logging.Logger, rs *RunStats) {
	log.Info("Analyzed %d of %d files", rs.Analyzed, rs.Total)
	if rs.Skipped > 0 {
		log.Warn("Skipped %d unreadable file(s)", rs.Skipped)
	}
	if rs.Failed > 0 {
		log.Error("Failed on %d file(s)", rs.Failed)
	}
}
