// Package ctxlog carries a slog.Logger through a context.Context so that
// deeply nested load paths can log without threading a logger argument.
package ctxlog

import (
	"context"
	"log/slog"
)

// key is unexported to keep this package's context entry collision-free.
type key struct{}

var loggerKey = key{}

// WithLogger returns a child context carrying the given logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger placed by WithLogger. Contexts without a
// logger fall back to slog.Default so callers never need a nil check.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
