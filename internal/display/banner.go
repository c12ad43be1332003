// Package display provides value formatting and the startup banner.
package display

import (
	"fmt"
	"os"

	"github.com/neurobench/morphstats/internal/term"
)

// PrintBanner prints the ASCII art banner to stderr; uses Magenta if colors
// are enabled. Stderr keeps the statistics document on stdout clean.
func PrintBanner() {
	if term.Enabled() {
		fmt.Fprint(os.Stderr, term.Magenta)
	}
	fmt.Fprint(os.Stderr, `                             _         _        _
 _ __ ___   ___  _ __ _ __ | |__  ___| |_ __ _| |_ ___
| '_ `+"`"+` _ \ / _ \| '__| '_ \| '_ \/ __| __/ _`+"`"+` | __/ __|
| | | | | | (_) | |  | |_) | | | \__ \ || (_| | |_\__ \
|_| |_| |_|\___/|_|  | .__/|_| |_|___/\__\__,_|\__|___/
                     |_|
`)
	if term.Enabled() {
		fmt.Fprintln(os.Stderr, term.NC)
	}
}
