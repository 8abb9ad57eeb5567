package application

import "github.com/example/neurosync/internal/persistence"

// SensoryProfile describes which stimuli a user is sensitive to.
type SensoryProfile string

const (
	SensoryVisual SensoryProfile = "visual"
	SensoryAudio  SensoryProfile = "audio"
	SensoryBoth   SensoryProfile = "both"
	SensoryNone   SensoryProfile = "none"
)

// Valid reports whether p is one of the known profiles.
func (p SensoryProfile) Valid() bool {
	switch p {
	case SensoryVisual, SensoryAudio, SensoryBoth, SensoryNone:
		return true
	}
	return false
}

// Label returns the pt-BR description shown on the profile screen.
func (p SensoryProfile) Label() string {
	switch p {
	case SensoryVisual:
		return "Sensível à Luz"
	case SensoryAudio:
		return "Sensível a Ruído"
	case SensoryBoth:
		return "Sensível à Luz e Ruído"
	case SensoryNone:
		return "Sem sensibilidade específica"
	}
	return "Não definido"
}

// UserProfile is the signed-in user.
type UserProfile struct {
	Name           string
	Email          string
	SensoryProfile SensoryProfile
}

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	StatusActive    ReservationStatus = "active"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// canTransition reports whether a reservation in status from may move to to.
// Only active reservations change state; repeating the current state is allowed.
func canTransition(from, to ReservationStatus) bool {
	if from == to {
		return true
	}
	return from == StatusActive && (to == StatusCancelled || to == StatusCompleted)
}

// Reservation is a booked time slot in a room. Local, Ruido and Luz copy the
// room's location, noise and light labels at booking time.
type Reservation struct {
	ID       string
	RoomName string
	Date     string
	Time     string
	Status   ReservationStatus
	Local    string
	Ruido    string
	Luz      string
}

// Editable reports whether date and time may still be changed.
func (r Reservation) Editable() bool {
	return r.Status == StatusActive
}

// ReservationInput carries the caller supplied fields of a new reservation.
type ReservationInput struct {
	RoomName string
	Date     string
	Time     string
	Local    string
	Ruido    string
	Luz      string
}

// ReservationPatch lists the fields to overwrite; nil fields are kept.
type ReservationPatch struct {
	RoomName *string
	Date     *string
	Time     *string
	Local    *string
	Ruido    *string
	Luz      *string
	Status   *ReservationStatus
}

// TouchesSchedule reports whether the patch changes date or time.
func (p ReservationPatch) TouchesSchedule() bool {
	return p.Date != nil || p.Time != nil
}

func (p ReservationPatch) apply(r Reservation) Reservation {
	assign := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	assign(&r.RoomName, p.RoomName)
	assign(&r.Date, p.Date)
	assign(&r.Time, p.Time)
	assign(&r.Local, p.Local)
	assign(&r.Ruido, p.Ruido)
	assign(&r.Luz, p.Luz)
	if p.Status != nil {
		r.Status = *p.Status
	}
	return r
}

// Theme is the visual color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether t is light or dark.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Opposite returns the other theme.
func (t Theme) Opposite() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Room is a calm room offered by the catalog.
type Room struct {
	ID       string
	Name     string
	Noise    string
	Light    string
	Location string
	Reserved bool
}

// RoomFilter narrows the catalog by exact noise and light labels. Empty
// fields match everything.
type RoomFilter struct {
	Noise string
	Light string
}

func (f RoomFilter) matches(room Room) bool {
	if f.Noise != "" && f.Noise != room.Noise {
		return false
	}
	if f.Light != "" && f.Light != room.Light {
		return false
	}
	return true
}

func profileFromRecord(record persistence.UserRecord) UserProfile {
	return UserProfile{
		Name:           record.Name,
		Email:          record.Email,
		SensoryProfile: SensoryProfile(record.SensoryProfile),
	}
}

func profileToRecord(profile UserProfile) persistence.UserRecord {
	return persistence.UserRecord{
		Name:           profile.Name,
		Email:          profile.Email,
		SensoryProfile: string(profile.SensoryProfile),
	}
}

func reservationFromRecord(record persistence.ReservationRecord) Reservation {
	return Reservation{
		ID:       string(record.ID),
		RoomName: record.RoomName,
		Date:     record.Date,
		Time:     record.Time,
		Status:   ReservationStatus(record.Status),
		Local:    record.Local,
		Ruido:    record.Ruido,
		Luz:      record.Luz,
	}
}

func reservationToRecord(r Reservation) persistence.ReservationRecord {
	return persistence.ReservationRecord{
		ID:       persistence.RecordID(r.ID),
		RoomName: r.RoomName,
		Date:     r.Date,
		Time:     r.Time,
		Status:   string(r.Status),
		Local:    r.Local,
		Ruido:    r.Ruido,
		Luz:      r.Luz,
	}
}
