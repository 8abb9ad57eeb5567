package http

import (
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/example/neurosync/internal/application"
)

// ReadinessChecker reports whether the initial load has completed.
type ReadinessChecker interface {
	Ready() bool
}

// ProfileSource returns the signed-in profile.
type ProfileSource interface {
	Current() (application.UserProfile, bool)
}

// RequireReady answers 503 until checker reports ready.
func RequireReady(checker ReadinessChecker, logger *slog.Logger) func(http.Handler) http.Handler {
	responder := newResponder(logger)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if checker != nil && !checker.Ready() && r.URL.Path != "/healthz" {
				w.Header().Set("Retry-After", "1")
				responder.handleServiceError(r.Context(), w, application.ErrNotReady)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireProfile rejects requests with 401 while nobody is signed in and
// otherwise stores the profile in the request context.
func RequireProfile(source ProfileSource, logger *slog.Logger) func(http.Handler) http.Handler {
	responder := newResponder(logger)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profile, ok := source.Current()
			if !ok {
				responder.handleServiceError(r.Context(), w, application.ErrUnauthorized)
				return
			}
			ctx := ContextWithProfile(r.Context(), profile)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// RequestLogger attaches a request scoped logger and logs request start and completion.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	var counter atomic.Uint64

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := counter.Add(1)
			logger := base.With(
				"request_id", id,
				"method", r.Method,
				"path", r.URL.Path,
			)

			ctx := ContextWithLogger(r.Context(), logger)
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			logger.DebugContext(ctx, "request started")
			next.ServeHTTP(recorder, r.WithContext(ctx))
			logger.InfoContext(ctx, "request completed", "status", recorder.status, "duration", time.Since(start))
		})
	}
}
