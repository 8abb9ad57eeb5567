package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/neurosync/internal/application"
)

type roomCatalog interface {
	List(ctx context.Context, filter application.RoomFilter) []application.Room
	Get(ctx context.Context, id string) (application.Room, error)
	AvailableCount(ctx context.Context, filter application.RoomFilter) int
}

type RoomHandler struct {
	catalog   roomCatalog
	responder responder
	logger    *slog.Logger
}

func NewRoomHandler(catalog roomCatalog, logger *slog.Logger) *RoomHandler {
	base := defaultLogger(logger)
	return &RoomHandler{catalog: catalog, responder: newResponder(base), logger: base}
}

func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.catalog == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	filter := application.RoomFilter{
		Noise: strings.TrimSpace(query.Get("noise")),
		Light: strings.TrimSpace(query.Get("light")),
	}

	rooms := h.catalog.List(r.Context(), filter)
	resp := roomListResponse{
		Rooms:     make([]roomDTO, 0, len(rooms)),
		Available: h.catalog.AvailableCount(r.Context(), filter),
	}
	for _, room := range rooms {
		resp.Rooms = append(resp.Rooms, toRoomDTO(room))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, resp)
}

func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request, id string) {
	if h == nil || h.catalog == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	room, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		requestLogger(r.Context(), h.logger, "RoomHandler", "Get", "room_id", id).
			WarnContext(r.Context(), "room lookup failed", "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, roomResponse{Room: toRoomDTO(room)})
}

type roomDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Ruido    string `json:"ruido"`
	Luz      string `json:"luz"`
	Local    string `json:"local"`
	Reserved bool   `json:"reserved"`
}

type roomResponse struct {
	Room roomDTO `json:"room"`
}

type roomListResponse struct {
	Rooms     []roomDTO `json:"rooms"`
	Available int       `json:"available"`
}

func toRoomDTO(room application.Room) roomDTO {
	return roomDTO{
		ID:       room.ID,
		Name:     room.Name,
		Ruido:    room.Noise,
		Luz:      room.Light,
		Local:    room.Location,
		Reserved: room.Reserved,
	}
}
