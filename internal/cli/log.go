// Package cli implements the binwrap entry points.
//
// Run forwards every argument to the native binary untouched and is
// dispatched directly from os.Args. The install command is a cobra command
// that only makes sure a binary is present; it runs as a package
// postinstall hook.
//
// # Logging
//
// Logs go to stderr through charmbracelet/log. The level comes from
// BINWRAP_LOG_LEVEL (default "warn") so the wrapper stays silent in the
// common case; the install command also accepts --verbose.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing to w at the given level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix:          "binwrap",
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// parseLevel maps a configured level name to a log.Level. Unknown names fall
// back to warn.
func parseLevel(name string) (log.Level, bool) {
	level, err := log.ParseLevel(name)
	if err != nil {
		return log.WarnLevel, false
	}
	return level, true
}
