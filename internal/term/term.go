// Package term holds the shared ANSI color state for log and table output.
//
// The logger and the display helpers both concatenate these package-level
// variables into their output, so they are set once at startup by
// [Configure] and left alone afterwards. Disabled colors are empty strings,
// which makes the concatenation a no-op.
//
// All colored output in this program goes to stderr (stdout carries the
// statistics document), so auto mode keys off the stderr TTY, not stdout.
package term

import (
	"os"
	"strings"

	"github.com/neurobench/morphstats/internal/config"
)

// ANSI sequences, empty while colors are disabled.
var (
	Red     = ""
	Green   = ""
	Yellow  = ""
	Orange  = ""
	Blue    = ""
	Cyan    = ""
	Magenta = ""
	NC      = "" // reset
)

// Configure resolves mode and flips the package color state accordingly.
func Configure(mode config.ColorMode) {
	if !resolve(mode) {
		Red, Green, Yellow, Orange, Blue, Cyan, Magenta, NC =
			"", "", "", "", "", "", "", ""
		return
	}
	Red = "\033[1;91m"
	Green = "\033[1;92m"
	Yellow = "\033[1;93m"
	Orange = "\033[1;38;5;208m"
	Blue = "\033[1;94m"
	Cyan = "\033[1;96m"
	Magenta = "\033[1;95m"
	NC = "\033[0m"
}

// Enabled reports whether ANSI colors are currently active.
func Enabled() bool { return NC != "" }

// resolve decides whether colors should be on. Auto mode requires stderr to
// be a TTY, honors the NO_COLOR convention (https://no-color.org), and backs
// off on TERM=dumb.
func resolve(mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	return IsTerminal(os.Stderr) &&
		os.Getenv("NO_COLOR") == "" &&
		strings.ToLower(os.Getenv("TERM")) != "dumb"
}

// IsTerminal reports whether f is attached to a character device.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
