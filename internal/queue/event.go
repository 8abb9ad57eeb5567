// Package queue carries reservation change events over RabbitMQ.
package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/neurosync/internal/application"
)

// ReservationEvent is the message published for every persisted reservation change.
type ReservationEvent struct {
	ReservationID string `json:"reservation_id"`
	Action        string `json:"action"`
	RoomName      string `json:"room_name"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Status        string `json:"status"`
	Local         string `json:"local,omitempty"`
	OccurredAt    string `json:"occurred_at"`
}

// EventFromChange converts an application change into its wire form.
func EventFromChange(change application.ReservationChange) ReservationEvent {
	r := change.Reservation
	return ReservationEvent{
		ReservationID: r.ID,
		Action:        string(change.Action),
		RoomName:      r.RoomName,
		Date:          r.Date,
		Time:          r.Time,
		Status:        string(r.Status),
		Local:         r.Local,
		OccurredAt:    change.OccurredAt.UTC().Format(time.RFC3339),
	}
}

// DecodeEvent parses a message body.
func DecodeEvent(body []byte) (ReservationEvent, error) {
	var ev ReservationEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return ReservationEvent{}, fmt.Errorf("unmarshal: %w", err)
	}
	if ev.ReservationID == "" || ev.Action == "" {
		return ReservationEvent{}, fmt.Errorf("event is missing reservation_id or action")
	}
	return ev, nil
}
