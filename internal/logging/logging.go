// Package logging builds the charmbracelet logger used across codefmt.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Level maps the -v / -vv verbosity count to a log level.
func Level(verbosity int) log.Level {
	switch {
	case verbosity >= 2:
		return log.DebugLevel
	case verbosity == 1:
		return log.InfoLevel
	default:
		return log.WarnLevel
	}
}

// New returns a logger writing to w.
func New(w io.Writer, verbosity int) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           Level(verbosity),
		Prefix:          "codefmt",
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
}

// OpenFile opens (appending) a log file and returns a logger on it. An empty
// path yields a logger that discards everything, which is what the TUI wants
// since it owns the terminal. The returned close func is never nil.
func OpenFile(path string, verbosity int, version string) (*log.Logger, func() error, error) {
	if path == "" {
		return log.New(io.Discard), func() error { return nil }, nil
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		_ = os.MkdirAll(dir, 0o755)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return log.New(io.Discard), func() error { return nil }, fmt.Errorf("open log file: %w", err)
	}
	_, _ = fmt.Fprintf(f, "=== codefmt %s started at %s ===\n", version, time.Now().Format(time.RFC3339))
	l := log.NewWithOptions(f, log.Options{
		Level:           Level(verbosity),
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       log.LogfmtFormatter,
	})
	return l, f.Close, nil
}
