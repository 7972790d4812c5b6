// Package logging builds the slog handlers used by the depot command.
package logging

import (
	"io"
	"log/slog"
)

// NewHandler writes text records at level to console and, when file is
// non-nil, a debug-level copy of every record to file.
func NewHandler(console io.Writer, level slog.Level, file io.Writer) slog.Handler {
	handlers := []slog.Handler{
		slog.NewTextHandler(console, &slog.HandlerOptions{Level: level}),
	}
	if file != nil {
		handlers = append(handlers, slog.NewTextHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.NewMultiHandler(handlers...)
}

// ParseLevel maps "debug", "info", "warn" and "error" to a slog.Level.
// The empty string yields info.
func ParseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, err
	}
	return level, nil
}
