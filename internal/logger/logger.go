// Package logger configures the process-wide structured logger.
package logger

import (
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/log"
)

// New returns a slog.Logger that writes through a charmbracelet handler at the given level.
// Unknown levels fall back to info.
func New(w io.Writer, level string, production bool) *slog.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}

	opts := log.Options{
		Level:           lvl,
		TimeFormat:      time.RFC3339,
		ReportTimestamp: true,
		TimeFunction:    log.NowUTC,
		ReportCaller:    !production,
	}
	handler := log.NewWithOptions(w, opts)
	if production {
		handler.SetFormatter(log.JSONFormatter)
	}

	return slog.New(handler)
}

// Setup builds a logger with New and installs it as the slog default.
func Setup(w io.Writer, level string, production bool) *slog.Logger {
	l := New(w, level, production)
	slog.SetDefault(l)
	return l
}
