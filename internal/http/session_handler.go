package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/neurosync/internal/application"
)

type sessionService interface {
	Register(ctx context.Context, profile application.UserProfile) (application.UserProfile, error)
	Login(ctx context.Context, email string) (bool, error)
	Logout(ctx context.Context) error
	Current() (application.UserProfile, bool)
}

// SessionHandler serves profile registration, login and logout.
type SessionHandler struct {
	service   sessionService
	responder responder
	logger    *slog.Logger
}

func NewSessionHandler(service sessionService, logger *slog.Logger) *SessionHandler {
	base := defaultLogger(logger)
	return &SessionHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *SessionHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return requestLogger(ctx, h.logger, "SessionHandler", operation, attrs...)
}

func (h *SessionHandler) Register(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Register", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode register request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Register")
	input := req.toProfile()
	if err := application.ValidateProfile(input); err != nil {
		logger.WarnContext(r.Context(), "registration rejected", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	profile, err := h.service.Register(r.Context(), input)
	switch {
	case errors.Is(err, application.ErrNotPersisted):
		logger.WarnContext(r.Context(), "profile kept in memory only", "error", err, "error_kind", application.ErrorKind(err))
	case err != nil:
		logger.ErrorContext(r.Context(), "registration failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "profile registered")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, profileResponse{Profile: toProfileDTO(profile)})
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Login", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode login request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Login")
	email := strings.TrimSpace(req.Email)
	if email == "" {
		logger.WarnContext(r.Context(), "login without email", "error_kind", "validation")
		h.responder.writeJSON(r.Context(), w, http.StatusUnprocessableEntity, errorResponse{
			Message: "Por favor, preencha o email.",
			Errors:  map[string]string{"email": translateValidationMessage("email", "required")},
		})
		return
	}

	ok, err := h.service.Login(r.Context(), email)
	if err != nil {
		logger.ErrorContext(r.Context(), "login failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	if !ok {
		logger.InfoContext(r.Context(), "login rejected")
		h.responder.writeJSON(r.Context(), w, http.StatusUnauthorized, errorResponse{
			ErrorCode: "LOGIN_FAILED",
			Message:   "Email não encontrado. Faça o cadastro primeiro.",
		})
		return
	}

	profile, _ := h.service.Current()
	logger.InfoContext(r.Context(), "login accepted")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, profileResponse{Profile: toProfileDTO(profile)})
}

func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	profile, ok := h.service.Current()
	if !ok {
		h.responder.handleServiceError(r.Context(), w, application.ErrUnauthorized)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, profileResponse{Profile: toProfileDTO(profile)})
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	logger := h.log(r.Context(), "Logout")
	err := h.service.Logout(r.Context())
	switch {
	case errors.Is(err, application.ErrNotPersisted):
		logger.WarnContext(r.Context(), "stored profile not removed", "error", err, "error_kind", application.ErrorKind(err))
	case err != nil:
		logger.ErrorContext(r.Context(), "logout failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "signed out")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type registerRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	SensoryProfile string `json:"sensoryProfile"`
}

// toProfile keeps name and email exactly as sent. The sensory profile is an
// enum token, so its case is folded and an empty choice means none.
func (r registerRequest) toProfile() application.UserProfile {
	sensory := application.SensoryProfile(strings.ToLower(strings.TrimSpace(r.SensoryProfile)))
	if sensory == "" {
		sensory = application.SensoryNone
	}
	return application.UserProfile{Name: r.Name, Email: r.Email, SensoryProfile: sensory}
}

type loginRequest struct {
	Email string `json:"email"`
}

type profileDTO struct {
	Name                string `json:"name"`
	Email               string `json:"email"`
	SensoryProfile      string `json:"sensoryProfile"`
	SensoryProfileLabel string `json:"sensoryProfileLabel"`
}

type profileResponse struct {
	Profile profileDTO `json:"profile"`
}

func toProfileDTO(profile application.UserProfile) profileDTO {
	return profileDTO{
		Name:                profile.Name,
		Email:               profile.Email,
		SensoryProfile:      string(profile.SensoryProfile),
		SensoryProfileLabel: profile.SensoryProfile.Label(),
	}
}
