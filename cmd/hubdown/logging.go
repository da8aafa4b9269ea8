package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/alnah/go-hubdown/internal/config"
)

// newLogger returns the diagnostics logger. Warnings are shown by default,
// --verbose adds debug records and --quiet keeps errors only.
func newLogger(w io.Writer, format string, quiet, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, config.LogJSON) {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
