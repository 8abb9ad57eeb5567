package http

import (
	"cmp"
	"context"
	"log/slog"
)

func defaultLogger(logger *slog.Logger) *slog.Logger {
	return cmp.Or(logger, slog.Default())
}

// requestLogger prefers the request scoped logger installed by the logging
// middleware and tags every record with the handler, the operation and
// whether a profile is signed in.
func requestLogger(ctx context.Context, fallback *slog.Logger, handler, operation string, attrs ...any) *slog.Logger {
	logger := cmp.Or(LoggerFromContext(ctx), fallback, slog.Default())

	tags := make([]any, 0, 6+len(attrs))
	tags = append(tags, "component", "http", "handler", handler)
	if operation != "" {
		tags = append(tags, "operation", operation)
	}
	_, signedIn := ProfileFromContext(ctx)
	tags = append(tags, "signed_in", signedIn)
	return logger.With(append(tags, attrs...)...)
}
