package pipeline

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/neurobench/morphstats/internal/config"
	"github.com/neurobench/morphstats/internal/display"
	"github.com/neurobench/morphstats/internal/logging"
	"github.com/neurobench/morphstats/internal/morph"
	"github.com/neurobench/morphstats/internal/term"
)

// fileRow holds the per-file summary data for the analysis table.
type fileRow struct {
	Name     string
	TotalLen float64 // total neurite length, µm
	Sections int
	MaxOrder int
}

// Analyze discovers morphology files, loads each one, and prints a tabular
// size report with statistical outlier highlighting. Outliers often point at
// truncated reconstructions or unit mix-ups in a batch.
func Analyze(ctx context.Context, cfg *config.Config, log *logging.Logger) RunStats {
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
		return rs
	}

	log.Info("Analyzing %d files in %s …", rs.Total, cfg.InputPath)
	fmt.Println()

	var rows []fileRow
	var lenVals, secVals []float64

	for i, path := range files {
		rs.Current = i + 1

		if ctx.Err() != nil {
			log.Warn("Interrupted")
			return rs
		}

		m, err := morph.Load(path)
		if err != nil {
			rs.Skipped++
			log.Warn("Skip (load failed): %s", filepath.Base(path))
			continue
		}

		row := fileRow{Name: filepath.Base(path)}
		for _, n := range m.Neurites {
			for _, s := range n.Sections() {
				row.TotalLen += s.Length()
				row.Sections++
				if o := s.BranchOrder(); o > row.MaxOrder {
					row.MaxOrder = o
				}
			}
		}

		rows = append(rows, row)
		rs.Analyzed++
		lenVals = append(lenVals, row.TotalLen)
		secVals = append(secVals, float64(row.Sections))
	}

	if len(rows) == 0 {
		log.Warn("No files could be loaded")
		return rs
	}

	lStats := computeBounds(lenVals)
	sStats := computeBounds(secVals)

	printAnalysisTable(rows, lStats, sStats)
	printAnalysisSummary(log, rows, lStats, sStats)
	return rs
}

// iqrBounds holds the IQR-based thresholds for outlier classification.
type iqrBounds struct {
	q1, q3    float64
	outlierLo float64 // Q1 - 1.5*IQR
	outlierHi float64 // Q3 + 1.5*IQR
	extremeLo float64 // Q1 - 3.0*IQR
	extremeHi float64 // Q3 + 3.0*IQR
	valid     bool
}

func computeBounds(vals []float64) iqrBounds {
	if len(vals) < 4 {
		return iqrBounds{}
	}

	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	q1 := percentile(sorted, 25)
	q3 := percentile(sorted, 75)
	iqr := q3 - q1

	return iqrBounds{
		q1:        q1,
		q3:        q3,
		outlierLo: q1 - 1.5*iqr,
		outlierHi: q3 + 1.5*iqr,
		extremeLo: q1 - 3.0*iqr,
		extremeHi: q3 + 3.0*iqr,
		valid:     iqr > 0,
	}
}

// classify returns "" (normal), "outlier", or "extreme" for a value.
func (b *iqrBounds) classify(v float64) string {
	if !b.valid {
		return ""
	}
	if v < b.extremeLo || v > b.extremeHi {
		return "extreme"
	}
	if v < b.outlierLo || v > b.outlierHi {
		return "outlier"
	}
	return ""
}

func printAnalysisTable(rows []fileRow, lStats, sStats iqrBounds) {
	nameW := len("File")
	tlW := len("Total Length")
	scW := len("Sections")
	boW := len("Max Order")

	for _, r := range rows {
		if len(r.Name) > nameW {
			nameW = len(r.Name)
		}
		tlStr := display.FormatMicrons(r.TotalLen)
		if len(tlStr) > tlW {
			tlW = len(tlStr)
		}
		scStr := fmt.Sprintf("%d", r.Sections)
		if len(scStr) > scW {
			scW = len(scStr)
		}
	}

	if nameW > 50 {
		nameW = 50
	}

	header := fmt.Sprintf("  %-*s  %-*s  %-*s  %-*s",
		nameW, "File",
		tlW, "Total Length",
		scW, "Sections",
		boW, "Max Order",
	)
	separator := "  " + strings.Repeat("─", len(header)-2)

	fmt.Println(header)
	fmt.Println(separator)

	for _, r := range rows {
		name := r.Name
		if len(name) > nameW {
			name = name[:nameW-1] + "…"
		}

		tlPlain := display.FormatMicrons(r.TotalLen)
		scPlain := fmt.Sprintf("%d", r.Sections)

		lClass := lStats.classify(r.TotalLen)
		sClass := sStats.classify(float64(r.Sections))

		flagStr := formatFlag(worstFlag(lClass, sClass))

		// Pad the plain text first, then wrap in ANSI color. This avoids
		// the alignment bug where %-*s counts escape bytes as visible width.
		tlCell := colorPad(tlPlain, tlW, lClass)
		scCell := colorPad(scPlain, scW, sClass)

		fmt.Printf("  %-*s  %s  %s  %-*d  %s\n",
			nameW, name,
			tlCell,
			scCell,
			boW, r.MaxOrder,
			flagStr,
		)
	}
	fmt.Println()
}

func printAnalysisSummary(log *logging.Logger, rows []fileRow, lStats, sStats iqrBounds) {
	var outliers, extremes int
	for _, r := range rows {
		switch worstFlag(lStats.classify(r.TotalLen), sStats.classify(float64(r.Sections))) {
		case "extreme":
			extremes++
		case "outlier":
			outliers++
		}
	}

	log.Info("Analyzed %d files", len(rows))
	if lStats.valid {
		log.Info("  Total length IQR: %.0f – %.0f µm (outlier < %.0f or > %.0f)",
			lStats.q1, lStats.q3, lStats.outlierLo, lStats.outlierHi)
	}
	if sStats.valid {
		log.Info("  Section count IQR: %.0f – %.0f (outlier < %.0f or > %.0f)",
			sStats.q1, sStats.q3, sStats.outlierLo, sStats.outlierHi)
	}
	if outliers > 0 {
		log.Outlier("  %d outlier(s) flagged [*]", outliers)
	}
	if extremes > 0 {
		log.Error("  %d extreme outlier(s) flagged [!]", extremes)
	}
	if outliers == 0 && extremes == 0 {
		log.Success("  No outliers detected")
	}
}

func worstFlag(classes ...string) string {
	worst := ""
	for _, c := range classes {
		if c == "extreme" {
			return "extreme"
		}
		if c == "outlier" {
			worst = "outlier"
		}
	}
	return worst
}

func formatFlag(flag string) string {
	switch flag {
	case "extreme":
		return term.Red + "[!]" + term.NC
	case "outlier":
		return term.Orange + "[*]" + term.NC
	default:
		return ""
	}
}

// colorPad pads a plain string to width, then wraps in ANSI color. This
// ensures %-*s-style alignment works correctly regardless of escape sequences.
func colorPad(s string, width int, class string) string {
	padded := fmt.Sprintf("%-*s", width, s)
	switch class {
	case "extreme":
		return term.Red + padded + term.NC
	case "outlier":
		return term.Orange + padded + term.NC
	default:
		return padded
	}
}

// percentile computes the p-th percentile using linear interpolation.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	rank := (p / 100) * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi || hi >= len(sorted) {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
