package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/example/neurosync/internal/application"
)

type readyFlag bool

func (r readyFlag) Ready() bool { return bool(r) }

type profileStub struct {
	profile application.UserProfile
	ok      bool
}

func (p profileStub) Current() (application.UserProfile, bool) { return p.profile, p.ok }

func TestRequestLoggerAttachesRequestScope(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	var sawLogger bool
	handler := RequestLogger(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawLogger = LoggerFromContext(r.Context()) != nil
		w.WriteHeader(http.StatusTeapot)
	}))

	for i := 0; i < 2; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/rooms", nil))
	}
	if !sawLogger {
		t.Fatalf("expected a logger in the request context")
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected one completion line per request, got %d: %s", len(lines), buf.String())
	}
	for i, line := range lines {
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("decode log line: %v", err)
		}
		if entry["request_id"] != float64(i+1) {
			t.Fatalf("unexpected request_id in %v", entry)
		}
		if entry["status"] != float64(http.StatusTeapot) || entry["path"] != "/rooms" {
			t.Fatalf("unexpected log entry %v", entry)
		}
	}
}

func TestRequireReady(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	rec := httptest.NewRecorder()
	RequireReady(readyFlag(false), nil)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/theme", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	RequireReady(readyFlag(false), nil)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected healthz to bypass readiness, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	RequireReady(readyFlag(true), nil)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/theme", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 once ready, got %d", rec.Code)
	}
}

func TestRequireProfile(t *testing.T) {
	var got application.UserProfile
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = ProfileFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	RequireProfile(profileStub{}, nil)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reservations", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	profile := application.UserProfile{Name: "Ana", Email: "ana@x.com", SensoryProfile: application.SensoryAudio}
	rec = httptest.NewRecorder()
	RequireProfile(profileStub{profile: profile, ok: true}, nil)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/reservations", nil))
	if rec.Code != http.StatusOK || got != profile {
		t.Fatalf("expected profile in context, got %d %+v", rec.Code, got)
	}
}

func TestLocalizedStatusMessage(t *testing.T) {
	if got := localizedStatusMessage(http.StatusServiceUnavailable); got != "Carregando dados. Tente novamente em instantes." {
		t.Fatalf("unexpected message %q", got)
	}
	if got := localizedStatusMessage(http.StatusTeapot); got != "Ocorreu um erro interno no servidor." {
		t.Fatalf("unexpected fallback %q", got)
	}
	if got := translateValidationMessage("unknown", "weird"); got != "weird" {
		t.Fatalf("expected passthrough, got %q", got)
	}
}
