package application

import (
	"context"
	"time"
)

// ReservationAction names the mutation that produced a ReservationChange.
type ReservationAction string

const (
	ActionCreated   ReservationAction = "created"
	ActionCancelled ReservationAction = "cancelled"
	ActionCompleted ReservationAction = "completed"
	ActionUpdated   ReservationAction = "updated"
)

// ReservationChange describes one applied reservation mutation.
type ReservationChange struct {
	Action      ReservationAction
	Reservation Reservation
	OccurredAt  time.Time
}

// ReservationNotifier receives reservation changes after they are persisted.
// Delivery is best effort; errors are logged by the caller and never undo a change.
type ReservationNotifier interface {
	ReservationChanged(ctx context.Context, change ReservationChange) error
}

// NopNotifier discards every change.
type NopNotifier struct{}

// ReservationChanged implements ReservationNotifier.
func (NopNotifier) ReservationChanged(context.Context, ReservationChange) error { return nil }
