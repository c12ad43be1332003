// Command morphstats is the CLI entrypoint for the morphology statistics
// extractor.
//
// It parses flags, validates configuration and the input path, and runs
// either quality checks (--check), the outlier analysis table (--analyze),
// or the extraction pipeline that emits the statistics document.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/neurobench/morphstats/internal/check"
	"github.com/neurobench/morphstats/internal/config"
	"github.com/neurobench/morphstats/internal/display"
	"github.com/neurobench/morphstats/internal/logging"
	"github.com/neurobench/morphstats/internal/pipeline"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build" (no make), these retain their defaults.
var (
	version = "1.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap — the logger doesn't exist yet, so errors go
	// directly to stderr via fmt. Once NewLogger succeeds, all diagnostics
	// go through the logger for consistent formatting and log-file capture.
	cfg := config.DefaultConfig()
	if err := config.ApplyEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "morphstats: %v\n", err)
		return 1
	}
	if err := config.ParseFlags(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "morphstats: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "morphstats: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "morphstats: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available — all diagnostics go through log from here
	// on. The statistics document itself is the only thing on stdout.
	if cfg.Verbosity >= config.VerbosityInfo {
		display.PrintBanner()
	}

	// The input path must exist up front; a bad path is the one error case
	// with a dedicated exit contract.
	if _, err := os.Stat(cfg.InputPath); err != nil {
		log.Error("Input not found: %s", cfg.InputPath)
		return 1
	}

	log.Info("=== morphstats v%s (%s) ===", version, commit)
	log.Info("In: %s", cfg.InputPath)
	if cfg.OutputPath != "" {
		log.Info("Out: %s", cfg.OutputPath)
	}

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log) {
			return 1
		}
		return 0
	}

	// Phase 3: Signal handling — cancel context on SIGINT/SIGTERM so the
	// pipeline can stop between files without emitting a torn document.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, finishing current file…")
		cancel()
	}()

	// Phase 4: Run the requested mode.
	var rs pipeline.RunStats
	if cfg.AnalyzeOnly {
		rs = pipeline.Analyze(ctx, &cfg, log)
	} else {
		rs = pipeline.Run(ctx, &cfg, log)
	}

	if rs.Failed > 0 {
		return 1
	}
	return 0
}
