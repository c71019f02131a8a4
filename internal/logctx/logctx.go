// Package logctx carries a *slog.Logger through a context.Context, for
// the handful of ambient call sites (observation hooks) that want structured logging without the core graph/task/coroutine
// types taking a context.Context of their own.
package logctx

import (
	"context"
	"log/slog"
)

type key struct{}

var loggerKey = key{}

// WithLogger returns a new context with logger embedded.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger embedded in ctx. Unlike a context key
// that is load-bearing for correctness, a missing logger here just means
// nobody asked for one yet, so this falls back to slog.Default() instead
// of panicking.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
