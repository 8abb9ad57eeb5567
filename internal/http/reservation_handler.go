package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/neurosync/internal/application"
)

type reservationService interface {
	List() []application.Reservation
	Get(id string) (application.Reservation, bool)
	Create(ctx context.Context, input application.ReservationInput) (application.Reservation, error)
	Cancel(ctx context.Context, id string) error
	Complete(ctx context.Context, id string) error
	Update(ctx context.Context, id string, patch application.ReservationPatch) error
}

type roomLookup interface {
	Get(ctx context.Context, id string) (application.Room, error)
}

// ReservationHandler serves the signed-in user's reservations.
type ReservationHandler struct {
	service   reservationService
	rooms     roomLookup
	responder responder
	logger    *slog.Logger
}

// NewReservationHandler builds the handler. rooms may be nil; when set, a
// create request naming a roomId copies the room's labels into the reservation.
func NewReservationHandler(service reservationService, rooms roomLookup, logger *slog.Logger) *ReservationHandler {
	base := defaultLogger(logger)
	return &ReservationHandler{service: service, rooms: rooms, responder: newResponder(base), logger: base}
}

func (h *ReservationHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	if profile, ok := ProfileFromContext(ctx); ok {
		attrs = append(attrs, "sensory_profile", string(profile.SensoryProfile))
	}
	return requestLogger(ctx, h.logger, "ReservationHandler", operation, attrs...)
}

func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	reservations := h.service.List()
	if raw := strings.TrimSpace(r.URL.Query().Get("date")); raw != "" {
		day, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			h.log(r.Context(), "List", "error_kind", "bad_request").WarnContext(r.Context(), "invalid date filter", "date", raw)
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDate)
			return
		}
		reservations = application.FilterByDate(reservations, day)
	}

	resp := reservationListResponse{Reservations: make([]reservationDTO, 0, len(reservations))}
	for _, reservation := range reservations {
		resp.Reservations = append(resp.Reservations, toReservationDTO(reservation))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, resp)
}

func (h *ReservationHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req createReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Create", "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode reservation request", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Create")
	input := req.toInput()
	if roomID := strings.TrimSpace(req.RoomID); roomID != "" && h.rooms != nil {
		room, err := h.rooms.Get(r.Context(), roomID)
		if err != nil {
			logger.WarnContext(r.Context(), "unknown room", "room_id", roomID, "error_kind", application.ErrorKind(err))
			h.responder.handleServiceError(r.Context(), w, err)
			return
		}
		input.RoomName = room.Name
		input.Local = room.Location
		input.Ruido = room.Noise
		input.Luz = room.Light
	}

	if err := application.ValidateReservationInput(input); err != nil {
		logger.WarnContext(r.Context(), "reservation rejected", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	reservation, err := h.service.Create(r.Context(), input)
	switch {
	case errors.Is(err, application.ErrNotPersisted):
		logger.WarnContext(r.Context(), "reservation kept in memory only", "reservation_id", reservation.ID, "error", err, "error_kind", application.ErrorKind(err))
	case err != nil:
		logger.ErrorContext(r.Context(), "reservation creation failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("reservation_id", reservation.ID).InfoContext(r.Context(), "reservation created")
	h.responder.writeJSON(r.Context(), w, http.StatusCreated, reservationResponse{Reservation: toReservationDTO(reservation)})
}

func (h *ReservationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, existing, ok := h.resolve(w, r, "Update")
	if !ok {
		return
	}

	var req updateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log(r.Context(), "Update", "reservation_id", id, "error_kind", "bad_request").ErrorContext(r.Context(), "failed to decode reservation update", "error", err)
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	logger := h.log(r.Context(), "Update", "reservation_id", id)
	patch := req.toPatch()
	if patch.TouchesSchedule() && !existing.Editable() {
		logger.WarnContext(r.Context(), "schedule change refused", "status", string(existing.Status), "error_kind", "conflict")
		h.responder.writeJSON(r.Context(), w, http.StatusConflict, errorResponse{
			ErrorCode: "SCHEDULE_LOCKED",
			Message:   errScheduleLocked.Error(),
		})
		return
	}

	err := h.service.Update(r.Context(), id, patch)
	switch {
	case errors.Is(err, application.ErrNotPersisted):
		logger.WarnContext(r.Context(), "reservation update kept in memory only", "error", err, "error_kind", application.ErrorKind(err))
	case err != nil:
		logger.ErrorContext(r.Context(), "reservation update failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	updated, _ := h.service.Get(id)
	logger.InfoContext(r.Context(), "reservation updated")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, reservationResponse{Reservation: toReservationDTO(updated)})
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.transition(w, r, "Cancel", h.service.Cancel)
}

func (h *ReservationHandler) Complete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.transition(w, r, "Complete", h.service.Complete)
}

func (h *ReservationHandler) transition(w http.ResponseWriter, r *http.Request, operation string, apply func(context.Context, string) error) {
	id, _, ok := h.resolve(w, r, operation)
	if !ok {
		return
	}

	logger := h.log(r.Context(), operation, "reservation_id", id)
	err := apply(r.Context(), id)
	switch {
	case errors.Is(err, application.ErrNotPersisted):
		logger.WarnContext(r.Context(), "reservation status kept in memory only", "error", err, "error_kind", application.ErrorKind(err))
	case err != nil:
		logger.ErrorContext(r.Context(), "reservation status change failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.InfoContext(r.Context(), "reservation status changed")
	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// resolve reads the reservation id from the context and looks it up. Unknown
// ids answer 404 before the service is called.
func (h *ReservationHandler) resolve(w http.ResponseWriter, r *http.Request, operation string) (string, application.Reservation, bool) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return "", application.Reservation{}, false
	}

	id, ok := ReservationIDFromContext(r.Context())
	id = strings.TrimSpace(id)
	if !ok || id == "" {
		h.log(r.Context(), operation, "error_kind", "bad_request").ErrorContext(r.Context(), "missing reservation id")
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidReservation)
		return "", application.Reservation{}, false
	}

	existing, found := h.service.Get(id)
	if !found {
		h.log(r.Context(), operation, "reservation_id", id, "error_kind", "not_found").WarnContext(r.Context(), "reservation not found")
		h.responder.handleServiceError(r.Context(), w, application.ErrNotFound)
		return "", application.Reservation{}, false
	}
	return id, existing, true
}

type createReservationRequest struct {
	RoomID   string `json:"roomId"`
	RoomName string `json:"roomName"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Local    string `json:"local"`
	Ruido    string `json:"ruido"`
	Luz      string `json:"luz"`
}

func (r createReservationRequest) toInput() application.ReservationInput {
	return application.ReservationInput{
		RoomName: r.RoomName,
		Date:     r.Date,
		Time:     r.Time,
		Local:    r.Local,
		Ruido:    r.Ruido,
		Luz:      r.Luz,
	}
}

type updateReservationRequest struct {
	RoomName *string `json:"roomName"`
	Date     *string `json:"date"`
	Time     *string `json:"time"`
	Local    *string `json:"local"`
	Ruido    *string `json:"ruido"`
	Luz      *string `json:"luz"`
	Status   *string `json:"status"`
}

func (r updateReservationRequest) toPatch() application.ReservationPatch {
	patch := application.ReservationPatch{
		RoomName: r.RoomName,
		Date:     r.Date,
		Time:     r.Time,
		Local:    r.Local,
		Ruido:    r.Ruido,
		Luz:      r.Luz,
	}
	if r.Status != nil {
		status := application.ReservationStatus(strings.ToLower(strings.TrimSpace(*r.Status)))
		patch.Status = &status
	}
	return patch
}

type reservationDTO struct {
	ID       string `json:"id"`
	RoomName string `json:"roomName"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Status   string `json:"status"`
	Local    string `json:"local,omitempty"`
	Ruido    string `json:"ruido,omitempty"`
	Luz      string `json:"luz,omitempty"`
	Editable bool   `json:"editable"`
}

type reservationResponse struct {
	Reservation reservationDTO `json:"reservation"`
}

type reservationListResponse struct {
	Reservations []reservationDTO `json:"reservations"`
}

func toReservationDTO(r application.Reservation) reservationDTO {
	return reservationDTO{
		ID:       r.ID,
		RoomName: r.RoomName,
		Date:     r.Date,
		Time:     r.Time,
		Status:   string(r.Status),
		Local:    r.Local,
		Ruido:    r.Ruido,
		Luz:      r.Luz,
		Editable: r.Editable(),
	}
}
