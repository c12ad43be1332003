package pipeline

// RunStats tracks aggregate counters across a batch run.
type RunStats struct {
	Total    int // Files discovered.
	Current  int // 1-based index of the file being processed.
	Analyzed int // Files that produced statistics.
	Skipped  int // Recognized but unreadable formats (.h5).
	Failed   int // Load or extraction failures.
}
