// Package logging holds the slog conventions used across vepanno.
//
// Loggers are dependency-injected, never global: main() decides the
// handler and level, components receive a scoped logger and default to
// discarding when given none. Nothing here logs inside per-record
// loops; lifecycle boundaries (startup, table load, teardown) are the
// intended log points.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// discardHandler drops all records.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

// Discard returns a logger that discards all output.
func Discard() *slog.Logger { return slog.New(discardHandler{}) }

// Default returns logger if non-nil, otherwise a discard logger.
func Default(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return Discard()
}

// New returns a text logger writing to w at the named level. Unknown
// level names fall back to info.
func New(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
