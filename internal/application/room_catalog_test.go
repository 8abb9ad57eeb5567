package application

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type listerStub []Reservation

func (l listerStub) List() []Reservation { return l }

func catalogRooms() []Room {
	return []Room{
		{ID: "1", Name: "Sala Zen 1A", Noise: "CALMO", Light: "BAIXA", Location: "Andar 1"},
		{ID: "2", Name: "Sala Foco B", Noise: "MODERADO", Light: "ALTA", Location: "Andar 2"},
		{ID: "3", Name: "Cabine Silêncio 3", Noise: "MÁXIMO", Light: "MÉDIA", Location: "Térreo", Reserved: true},
		{ID: "4", Name: "Sala Terapia C", Noise: "CALMO", Light: "MÉDIA", Location: "Andar 3"},
	}
}

func roomIDs(rooms []Room) []string {
	ids := make([]string, 0, len(rooms))
	for _, room := range rooms {
		ids = append(ids, room.ID)
	}
	return ids
}

func TestRoomCatalog(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("filters by noise and light", func(t *testing.T) {
		t.Parallel()
		catalog := NewRoomCatalog(catalogRooms(), nil, discardLogger())

		if diff := cmp.Diff([]string{"1", "4"}, roomIDs(catalog.List(ctx, RoomFilter{Noise: "CALMO"}))); diff != "" {
			t.Fatalf("unexpected noise filter (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"3", "4"}, roomIDs(catalog.List(ctx, RoomFilter{Light: "MÉDIA"}))); diff != "" {
			t.Fatalf("unexpected light filter (-want +got):\n%s", diff)
		}
		if got := catalog.List(ctx, RoomFilter{Noise: "calmo"}); len(got) != 0 {
			t.Fatalf("expected labels to match exactly, got %v", roomIDs(got))
		}
		if got := catalog.List(ctx, RoomFilter{Noise: "CALMO", Light: "ALTA"}); len(got) != 0 {
			t.Fatalf("expected no rooms, got %v", roomIDs(got))
		}
	})

	t.Run("active reservations mark rooms reserved", func(t *testing.T) {
		t.Parallel()
		lister := listerStub{
			{ID: "a", RoomName: "Sala Zen 1A", Status: StatusActive},
			{ID: "b", RoomName: "Sala Foco B", Status: StatusCancelled},
		}
		catalog := NewRoomCatalog(catalogRooms(), lister, discardLogger())

		room, err := catalog.Get(ctx, "1")
		if err != nil || !room.Reserved {
			t.Fatalf("expected Sala Zen 1A reserved, got %#v, %v", room, err)
		}
		if room, _ := catalog.Get(ctx, "2"); room.Reserved {
			t.Fatalf("cancelled reservation must not reserve a room")
		}
		if got := catalog.AvailableCount(ctx, RoomFilter{}); got != 2 {
			t.Fatalf("expected 2 available rooms, got %d", got)
		}
	})

	t.Run("unknown room", func(t *testing.T) {
		t.Parallel()
		if _, err := NewRoomCatalog(catalogRooms(), nil, nil).Get(ctx, "99"); err != ErrNotFound {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestSensoryProfileLabel(t *testing.T) {
	t.Parallel()

	cases := map[SensoryProfile]string{
		SensoryVisual: "Sensível à Luz",
		SensoryAudio:  "Sensível a Ruído",
		SensoryBoth:   "Sensível à Luz e Ruído",
		SensoryNone:   "Sem sensibilidade específica",
		"":            "Não definido",
	}
	for profile, want := range cases {
		if got := profile.Label(); got != want {
			t.Fatalf("Label(%q) = %q, want %q", profile, got, want)
		}
	}
}
