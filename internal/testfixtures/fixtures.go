package testfixtures

import (
	"time"

	"github.com/example/neurosync/internal/application"
)

var referenceTime = time.Date(2025, time.November, 19, 14, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// ProfileOption customises a profile fixture.
type ProfileOption func(*application.UserProfile)

// NewProfile returns Ana, an audio-sensitive user, with opts applied.
func NewProfile(opts ...ProfileOption) application.UserProfile {
	profile := application.UserProfile{
		Name:           "Ana",
		Email:          "ana@x.com",
		SensoryProfile: application.SensoryAudio,
	}
	for _, opt := range opts {
		opt(&profile)
	}
	return profile
}

// WithProfileName overrides the name.
func WithProfileName(name string) ProfileOption {
	return func(p *application.UserProfile) { p.Name = name }
}

// WithProfileEmail overrides the email.
func WithProfileEmail(email string) ProfileOption {
	return func(p *application.UserProfile) { p.Email = email }
}

// WithSensoryProfile overrides the sensory profile.
func WithSensoryProfile(sp application.SensoryProfile) ProfileOption {
	return func(p *application.UserProfile) { p.SensoryProfile = sp }
}

// ReservationOption customises a reservation input fixture.
type ReservationOption func(*application.ReservationInput)

// NewReservationInput returns a booking of Sala Zen 1A with opts applied.
func NewReservationInput(opts ...ReservationOption) application.ReservationInput {
	input := application.ReservationInput{
		RoomName: "Sala Zen 1A",
		Date:     "19 Nov, 2025",
		Time:     "14:00 - 15:00",
		Local:    "Andar 1",
		Ruido:    "CALMO",
		Luz:      "BAIXA",
	}
	for _, opt := range opts {
		opt(&input)
	}
	return input
}

// WithRoomName overrides the room name.
func WithRoomName(name string) ReservationOption {
	return func(in *application.ReservationInput) { in.RoomName = name }
}

// WithSlot overrides date and time.
func WithSlot(date, slot string) ReservationOption {
	return func(in *application.ReservationInput) {
		in.Date = date
		in.Time = slot
	}
}

// Rooms returns the default calm room catalog.
func Rooms() []application.Room {
	return []application.Room{
		{ID: "1", Name: "Sala Zen 1A", Noise: "CALMO", Light: "BAIXA", Location: "Andar 1"},
		{ID: "2", Name: "Sala Foco B", Noise: "MODERADO", Light: "ALTA", Location: "Andar 2"},
		{ID: "3", Name: "Cabine Silêncio 3", Noise: "MÁXIMO", Light: "MÉDIA", Location: "Térreo", Reserved: true},
		{ID: "4", Name: "Sala Terapia C", Noise: "CALMO", Light: "MÉDIA", Location: "Andar 3"},
		{ID: "5", Name: "Sala Criativa D", Noise: "MODERADO", Light: "MÉDIA", Location: "Andar 1"},
	}
}
