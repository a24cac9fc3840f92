// Package logs builds the application logger and carries request-scoped loggers through contexts.
package logs

import (
	"context"
	"log/slog"
)

type contextKey string

const keyLogger contextKey = "logger"

// WithLogger returns a new context with the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, keyLogger, logger)
}

// FromContext extracts the request-scoped logger from context.Context.
// If not found, returns nil.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(keyLogger).(*slog.Logger); ok {
		return logger
	}

	return nil
}

// FromContextOr extracts the request-scoped logger, falling back to the provided logger.
func FromContextOr(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := FromContext(ctx); logger != nil {
		return logger
	}

	return fallback
}
