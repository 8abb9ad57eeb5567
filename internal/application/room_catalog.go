package application

import (
	"context"
	"log/slog"
	"strings"
)

// ReservationLister is the read side of the reservation store.
type ReservationLister interface {
	List() []Reservation
}

// RoomCatalog serves the fixed room list. A room reads as reserved when its
// catalog entry says so or an active reservation names it.
type RoomCatalog struct {
	rooms        []Room
	reservations ReservationLister
	logger       *slog.Logger
}

// NewRoomCatalog constructs a catalog over rooms. reservations may be nil.
func NewRoomCatalog(rooms []Room, reservations ReservationLister, logger *slog.Logger) *RoomCatalog {
	return &RoomCatalog{
		rooms:        append([]Room(nil), rooms...),
		reservations: reservations,
		logger:       defaultLogger(logger),
	}
}

// List returns the rooms matching filter in catalog order.
func (c *RoomCatalog) List(ctx context.Context, filter RoomFilter) []Room {
	if c == nil {
		return nil
	}

	booked := c.bookedNames()
	rooms := make([]Room, 0, len(c.rooms))
	for _, room := range c.rooms {
		if !filter.matches(room) {
			continue
		}
		if booked[strings.ToLower(room.Name)] {
			room.Reserved = true
		}
		rooms = append(rooms, room)
	}

	serviceLogger(ctx, c.logger, "RoomCatalog", "List",
		"noise", filter.Noise,
		"light", filter.Light,
	).DebugContext(ctx, "rooms listed", "count", len(rooms))
	return rooms
}

// Get returns the room with id.
func (c *RoomCatalog) Get(ctx context.Context, id string) (Room, error) {
	for _, room := range c.List(ctx, RoomFilter{}) {
		if room.ID == id {
			return room, nil
		}
	}
	return Room{}, ErrNotFound
}

// AvailableCount counts matching rooms that are not reserved.
func (c *RoomCatalog) AvailableCount(ctx context.Context, filter RoomFilter) int {
	count := 0
	for _, room := range c.List(ctx, filter) {
		if !room.Reserved {
			count++
		}
	}
	return count
}

func (c *RoomCatalog) bookedNames() map[string]bool {
	booked := make(map[string]bool)
	if c.reservations == nil {
		return booked
	}
	for _, r := range c.reservations.List() {
		if r.Status == StatusActive {
			booked[strings.ToLower(r.RoomName)] = true
		}
	}
	return booked
}
