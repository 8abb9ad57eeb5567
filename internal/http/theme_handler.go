package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/example/neurosync/internal/application"
)

type themeService interface {
	Current() application.Theme
	Toggle(ctx context.Context) (application.Theme, error)
}

type ThemeHandler struct {
	service   themeService
	responder responder
	logger    *slog.Logger
}

func NewThemeHandler(service themeService, logger *slog.Logger) *ThemeHandler {
	base := defaultLogger(logger)
	return &ThemeHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *ThemeHandler) Show(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toThemeResponse(h.service.Current()))
}

// Toggle flips the theme. A persistence failure is logged and the new theme
// is still returned, matching what the in-memory state now holds.
func (h *ThemeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := requestLogger(r.Context(), h.logger, "ThemeHandler", "Toggle")
	theme, err := h.service.Toggle(r.Context())
	if err != nil {
		logger.WarnContext(r.Context(), "theme not persisted", "error", err, "error_kind", application.ErrorKind(err))
	}

	logger.InfoContext(r.Context(), "theme toggled", "theme", string(theme))
	h.responder.writeJSON(r.Context(), w, http.StatusOK, toThemeResponse(theme))
}

type themeResponse struct {
	Theme  string `json:"theme"`
	IsDark bool   `json:"isDark"`
}

func toThemeResponse(theme application.Theme) themeResponse {
	return themeResponse{Theme: string(theme), IsDark: theme == application.ThemeDark}
}
