// Package config holds runtime configuration: defaults, environment seeding,
// CLI flag parsing, and validation.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// --- Enum types for validated string fields ---

// OutputFormat selects the serialization of the statistics document.
type OutputFormat string

const (
	FormatYAML OutputFormat = "yaml" // Indented YAML (default).
	FormatJSON OutputFormat = "json" // Two-space indented JSON.
)

// FlatMethod selects the flatness estimation used by --check.
type FlatMethod string

const (
	FlatTolerance FlatMethod = "tolerance" // Any principal extent below tolerance (default).
	FlatRatio     FlatMethod = "ratio"     // Ratio of the two smallest extents below tolerance.
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Verbosity levels mapped from the -v count.
const (
	VerbosityWarn  = 0 // Warnings and errors only.
	VerbosityInfo  = 1 // Per-file progress.
	VerbosityDebug = 2 // Everything, including per-neurite detail.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally seeded by [ApplyEnv], and then mutated by [ParseFlags] before
// being passed (by pointer) to packages that need it.
type Config struct {
	// Input (set from the positional arg). A morphology file or a directory.
	InputPath string

	// Statistics output.
	Format     OutputFormat // Default: "yaml".
	OutputPath string       // Optional file destination; empty means stdout.

	// Modes. Mutually exclusive; default is statistics extraction.
	CheckOnly   bool // --check: run morphology quality checks.
	AnalyzeOnly bool // --analyze: per-file summary table with outlier flags.

	// Optional dendrogram rendering (runs alongside extraction).
	DendrogramDir string // Directory for per-file SVGs; empty disables.

	// Check tuning.
	FlatTol    float64    // Default: 0.1 µm (tolerance) / 0.1 (ratio).
	FlatMethod FlatMethod // Default: "tolerance".
	MonoTol    float64    // Default: 1e-6 µm radius slack.

	// Display and logging.
	Verbosity int       // 0=warn, 1=info, 2+=debug.
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
}

// DefaultConfig returns a Config with the baseline settings, applied
// before [ApplyEnv] and [ParseFlags] overrides.
func DefaultConfig() Config {
	return Config{
		Format:     FormatYAML,
		FlatTol:    0.1,
		FlatMethod: FlatTolerance,
		MonoTol:    1e-6,
		Verbosity:  VerbosityWarn,
		ColorMode:  ColorAuto,
	}
}

// ApplyEnv seeds cfg from a .env file (if present) and MORPHSTATS_*
// environment variables. Flags parsed afterwards still win. A missing .env
// is not an error; a malformed value is, so typos fail loudly rather than
// silently falling back to defaults.
func ApplyEnv(cfg *Config) error {
	// godotenv only populates variables that are not already set, so real
	// environment variables take precedence over the .env file. A missing
	// file is fine; an unparseable one is not.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	if v := os.Getenv("MORPHSTATS_FORMAT"); v != "" {
		f, err := ParseFormat(v)
		if err != nil {
			return fmt.Errorf("MORPHSTATS_FORMAT: %w", err)
		}
		cfg.Format = f
	}
	if v := os.Getenv("MORPHSTATS_COLOR"); v != "" {
		c, err := ParseColorMode(v)
		if err != nil {
			return fmt.Errorf("MORPHSTATS_COLOR: %w", err)
		}
		cfg.ColorMode = c
	}
	if v := os.Getenv("MORPHSTATS_LOG"); v != "" {
		cfg.LogFile = v
	}
	return nil
}

// ParseFormat converts a user string into an OutputFormat.
func ParseFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("invalid format %q (use 'yaml' or 'json')", s)
}

// ParseColorMode converts a user string into a ColorMode.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	}
	return "", fmt.Errorf("invalid color mode %q (use 'auto', 'always' or 'never')", s)
}

// ParseFlatMethod converts a user string into a FlatMethod.
func ParseFlatMethod(s string) (FlatMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tolerance":
		return FlatTolerance, nil
	case "ratio":
		return FlatRatio, nil
	}
	return "", fmt.Errorf("invalid flat method %q (use 'tolerance' or 'ratio')", s)
}

// NormalizeDirArg strips trailing slashes from a path argument.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// Validate checks that enum fields hold valid values, tolerances are
// positive, modes are not combined, and the input path is set.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatYAML, FormatJSON:
		// valid
	default:
		return errors.New("invalid format (use 'yaml' or 'json')")
	}

	switch c.FlatMethod {
	case FlatTolerance, FlatRatio:
		// valid
	default:
		return errors.New("invalid flat method (use 'tolerance' or 'ratio')")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.FlatTol <= 0 {
		return errors.New("flat tolerance must be positive")
	}
	if c.MonoTol < 0 {
		return errors.New("monotonicity tolerance must not be negative")
	}

	if c.CheckOnly && c.AnalyzeOnly {
		return errors.New("--check and --analyze are mutually exclusive")
	}
	if c.DendrogramDir != "" && (c.CheckOnly || c.AnalyzeOnly) {
		return errors.New("--dendrogram only applies to statistics extraction")
	}

	if c.InputPath == "" {
		return errors.New("need an input file or directory")
	}
	return nil
}
