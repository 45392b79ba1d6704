// Package logging constructs the slog loggers used by the daemon and CLI.
//
// It provides a console handler with TTY-aware color output, a JSON handler
// for machine consumption, level parsing, and multi-destination writers so
// logs can land on stdout and a per-run log file at the same time.
package logging
