package main

// Defaults for CLI commands.
const (
	DefaultScheduleSpec = "0 6 * * 1"
	// ImportHistoryLimit is how many import_log rows `push --history` shows.
	ImportHistoryLimit = 10
)
