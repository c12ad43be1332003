package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into output, mode, check-tuning, display, and utility.
// The -v flag counts occurrences (-v -v == --verbosity 2).

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// version is shown in --version and help; override at build time with
// -ldflags "-X .../internal/config.version=...".
var version = "1.0.0-dev"

// ParseFlags parses os.Args into cfg. On --help or --version it prints and exits.
// On error it returns non-nil (e.g. unknown flag, missing positional arg).
func ParseFlags(cfg *Config) error {
	fs := flag.NewFlagSet("morphstats", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	var util utilityFlags

	defineOutputFlags(fs, cfg)
	defineModeFlags(fs, cfg)
	defineCheckFlags(fs, cfg)
	defineDisplayFlags(fs, cfg, &util)
	defineUtilityFlags(fs, &util)

	if err := fs.Parse(expandVerbosity(os.Args[1:])); err != nil {
		return err
	}

	applyUtilityFlags(cfg, &util)

	if util.showHelp {
		printUsage(fs)
		os.Exit(0)
	}
	if util.showVersion {
		fmt.Fprintln(os.Stdout, "morphstats v"+version)
		os.Exit(0)
	}

	return parsePositionalArg(fs, cfg)
}

// utilityFlags holds flags that are applied after Parse: color overrides
// and the exit-triggering help/version switches.
type utilityFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineOutputFlags registers --format and -o/--output.
func defineOutputFlags(fs *flag.FlagSet, cfg *Config) {
	fs.Var(&formatValue{&cfg.Format}, "format", "Output format: yaml | json")
	fs.StringVar(&cfg.OutputPath, "output", "", "Write the statistics document to a file")
	fs.StringVar(&cfg.OutputPath, "o", "", "Same as --output")
}

// defineModeFlags registers --check, --analyze, and --dendrogram.
func defineModeFlags(fs *flag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run morphology quality checks instead of extraction")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
	fs.BoolVar(&cfg.AnalyzeOnly, "analyze", false, "Print a per-file summary table with outlier flags")
	fs.BoolVar(&cfg.AnalyzeOnly, "a", false, "Same as --analyze")
	fs.StringVar(&cfg.DendrogramDir, "dendrogram", "", "Render a dendrogram SVG per file into this directory")
}

// defineCheckFlags registers the --check tuning knobs.
func defineCheckFlags(fs *flag.FlagSet, cfg *Config) {
	fs.Float64Var(&cfg.FlatTol, "flat-tol", cfg.FlatTol, "Flatness tolerance (µm or ratio)")
	fs.Var(&flatMethodValue{&cfg.FlatMethod}, "flat-method", "Flatness method: tolerance | ratio")
	fs.Float64Var(&cfg.MonoTol, "mono-tol", cfg.MonoTol, "Radius slack for the monotonicity check (µm)")
}

// defineDisplayFlags registers --verbosity/-v, --color, --no-color, and --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, u *utilityFlags) {
	fs.IntVar(&cfg.Verbosity, "verbosity", cfg.Verbosity, "Log verbosity: 0=warn, 1=info, 2=debug")
	fs.Var(&verbosityValue{&cfg.Verbosity}, "v", "Increase verbosity (repeatable)")
	fs.BoolVar(&u.forceColor, "color", false, "Force colored logs")
	fs.BoolVar(&u.noColor, "no-color", false, "Disable colored logs")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Append logs to file")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "Same as --log")
}

// defineUtilityFlags registers --version and --help (exit after printing).
func defineUtilityFlags(fs *flag.FlagSet, u *utilityFlags) {
	fs.BoolVar(&u.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&u.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&u.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&u.showHelp, "h", false, "Same as --help")
}

// applyUtilityFlags copies color override flags into cfg.
func applyUtilityFlags(cfg *Config, u *utilityFlags) {
	if u.noColor {
		cfg.ColorMode = ColorNever
	} else if u.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArg sets InputPath from the single positional argument.
func parsePositionalArg(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	if len(args) != 1 {
		return fmt.Errorf("need exactly one input file or directory")
	}
	cfg.InputPath = NormalizeDirArg(args[0])
	return nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet) {
	const col1 = 30 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "morphstats v" + version + " — neuron morphology statistics extractor"},
		{"", ""},
		{"  morphstats [OPTIONS] <input_path>", ""},
		{"", ""},
		{"Output", ""},
		{"  --format <yaml|json>", "Statistics document format (default: yaml)"},
		{"  -o, --output <path>", "Write the document to a file instead of stdout"},
		{"", ""},
		{"Modes", ""},
		{"  -c, --check", "Run morphology quality checks and exit"},
		{"  -a, --analyze", "Per-file summary table with outlier flags"},
		{"  --dendrogram <dir>", "Also render a dendrogram SVG per file"},
		{"", ""},
		{"Check tuning", ""},
		{"  --flat-tol <value>", "Flatness tolerance (default: 0.1)"},
		{"  --flat-method <name>", "Flatness method: tolerance | ratio"},
		{"  --mono-tol <value>", "Monotonicity radius slack (default: 1e-6)"},
		{"", ""},
		{"Display", ""},
		{"  -v", "Increase verbosity (repeatable; -v -v for debug)"},
		{"  --verbosity <n>", "Explicit verbosity: 0=warn, 1=info, 2=debug"},
		{"  --color", "Force colored logs"},
		{"  --no-color", "Disable colored logs"},
		{"", ""},
		{"Utility", ""},
		{"  -l, --log <path>", "Append logs to file"},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapters so we can use enum types (OutputFormat, FlatMethod)
// with flag.Var, plus the counting -v flag.

type formatValue struct{ p *OutputFormat }

func (f *formatValue) String() string { return string(*f.p) }
func (f *formatValue) Set(s string) error {
	v, err := ParseFormat(s)
	if err != nil {
		return err
	}
	*f.p = v
	return nil
}

type flatMethodValue struct{ p *FlatMethod }

func (f *flatMethodValue) String() string { return string(*f.p) }
func (f *flatMethodValue) Set(s string) error {
	v, err := ParseFlatMethod(s)
	if err != nil {
		return err
	}
	*f.p = v
	return nil
}

// expandVerbosity rewrites stacked -vv / -vvv spellings into repeated -v
// arguments, which is the only form the flag package accepts. Arguments
// after a "--" terminator are left untouched.
func expandVerbosity(args []string) []string {
	out := make([]string, 0, len(args))
	for i, a := range args {
		if a == "--" {
			return append(out, args[i:]...)
		}
		if len(a) > 2 && a[0] == '-' && strings.Count(a[1:], "v") == len(a)-1 {
			for j := 1; j < len(a); j++ {
				out = append(out, "-v")
			}
			continue
		}
		out = append(out, a)
	}
	return out
}

// verbosityValue makes -v a counting flag: each bare occurrence bumps the
// level, while "-v=2" sets it directly.
type verbosityValue struct{ p *int }

func (v *verbosityValue) String() string {
	if v.p == nil {
		return "0"
	}
	return strconv.Itoa(*v.p)
}

func (v *verbosityValue) Set(s string) error {
	if s == "true" || s == "" {
		*v.p++
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return fmt.Errorf("verbosity must be a non-negative number (got %q)", s)
	}
	*v.p = n
	return nil
}

func (v *verbosityValue) IsBoolFlag() bool { return true }
