package display

import (
	"fmt"
)

// FormatMicrons returns a human-readable length (µm, mm above 1000 µm).
func FormatMicrons(um float64) string {
	if um < 0 {
		return "-" + FormatMicrons(-um)
	}
	if um >= 1000 {
		return fmt.Sprintf("%.2f mm", um/1000)
	}
	return fmt.Sprintf("%.1f µm", um)
}

// FormatArea returns a surface area label in µm².
func FormatArea(um2 float64) string {
	return fmt.Sprintf("%.1f µm²", um2)
}

// FormatCount returns a count with its singular/plural noun (e.g. "1 section",
// "12 sections").
func FormatCount(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
