// Package logging configures structured logging and carries loggers through
// context values.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// DebugLogPath is the default file debug logs are written to.
const DebugLogPath = "almanac-debug.log"

type contextKey struct{}

// ContextWithLogger returns a derived context that carries the provided logger.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	if ctx == nil || logger == nil {
		return ctx
	}
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext extracts a logger previously attached to the context.
// Falls back to slog.Default when none is attached.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// New returns a JSON logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return New(io.Discard, slog.LevelError+1)
}

// Setup builds the process logger. With debug enabled, debug-level JSON
// records are appended to path; otherwise logging is discarded so the
// terminal UI is never disturbed. The returned close function must be called
// on exit.
func Setup(debug bool, path string) (*slog.Logger, func() error, error) {
	if !debug {
		return Discard(), func() error { return nil }, nil
	}
	if path == "" {
		path = DebugLogPath
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("creating debug log: %w", err)
	}

	logger := New(f, slog.LevelDebug)
	logger.Debug("debug logging started", "log_file", path, "pid", os.Getpid())
	return logger, f.Close, nil
}
