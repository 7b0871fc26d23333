package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type loggerKey struct{}

// WithLogger stores logger in ctx. A nil logger stores the default.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger stored in ctx, or the default logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(*zerolog.Logger); ok && logger != nil {
			return logger
		}
	}
	return Default()
}

// WithFields returns a context whose logger carries fields on every event.
func WithFields(ctx context.Context, fields map[string]any) context.Context {
	logger := FromContext(ctx).With().Fields(fields).Logger()
	return WithLogger(ctx, &logger)
}

func withString(ctx context.Context, key, value string) context.Context {
	logger := FromContext(ctx).With().Str(key, value).Logger()
	return WithLogger(ctx, &logger)
}

// WithBrand tags events with the brand partition being worked on.
func WithBrand(ctx context.Context, brand string) context.Context {
	return withString(ctx, "brand", brand)
}

// WithSource tags events with the reader that produced the rows.
func WithSource(ctx context.Context, source string) context.Context {
	return withString(ctx, "source", source)
}

// WithOperation tags events with the catalog operation: import, dedupe,
// rename, clean-prefix or sync-brands.
func WithOperation(ctx context.Context, operation string) context.Context {
	return withString(ctx, "operation", operation)
}

// WithRunID tags every event of a reconciliation pass with its run id.
func WithRunID(ctx context.Context, runID string) context.Context {
	return withString(ctx, "run_id", runID)
}
