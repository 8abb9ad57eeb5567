package http

import (
	"context"
	"log/slog"

	"github.com/example/neurosync/internal/application"
	"github.com/example/neurosync/internal/logging"
)

type contextKey string

const (
	profileContextKey       contextKey = "profile"
	reservationIDContextKey contextKey = "reservation_id"
)

// ContextWithProfile returns a derived context carrying the signed-in profile.
func ContextWithProfile(ctx context.Context, profile application.UserProfile) context.Context {
	return context.WithValue(ctx, profileContextKey, profile)
}

// ProfileFromContext extracts the signed-in profile if available.
func ProfileFromContext(ctx context.Context) (application.UserProfile, bool) {
	profile, ok := ctx.Value(profileContextKey).(application.UserProfile)
	return profile, ok
}

// ContextWithReservationID injects the reservation identifier resolved from the request path.
func ContextWithReservationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, reservationIDContextKey, id)
}

// ReservationIDFromContext extracts a reservation identifier previously associated with the context.
func ReservationIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(reservationIDContextKey).(string)
	return id, ok
}

// ContextWithLogger attaches a request scoped logger.
func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return logging.ContextWithLogger(ctx, logger)
}

// LoggerFromContext returns the request scoped logger, or nil.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	return logging.FromContext(ctx)
}
