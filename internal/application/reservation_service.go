package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/neurosync/internal/persistence"
)

// ReservationService holds the ordered reservation list, newest first, and
// persists the whole list after every mutation.
type ReservationService struct {
	storage     *StorageService
	idGenerator func() string
	now         func() time.Time
	notifier    ReservationNotifier
	logger      *slog.Logger

	mu    sync.Mutex
	items []Reservation
}

// NewReservationService constructs a reservation store. A nil idGenerator
// yields random UUIDs and a nil notifier disables notifications.
func NewReservationService(storage *StorageService, idGenerator func() string, now func() time.Time, notifier ReservationNotifier, logger *slog.Logger) *ReservationService {
	if idGenerator == nil {
		idGenerator = uuid.NewString
	}
	if now == nil {
		now = time.Now
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &ReservationService{
		storage:     storage,
		idGenerator: idGenerator,
		now:         now,
		notifier:    notifier,
		logger:      defaultLogger(logger),
	}
}

func (s *ReservationService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "ReservationService", operation, attrs...)
}

// Load replaces the in-memory list with the persisted one. An absent or
// unreadable list leaves the store empty; read failures are returned.
func (s *ReservationService) Load(ctx context.Context) error {
	if s == nil {
		return fmt.Errorf("ReservationService is nil")
	}

	var records []persistence.ReservationRecord
	found, err := s.storage.Get(ctx, persistence.KeyReservations, &records)

	items := make([]Reservation, 0, len(records))
	if found {
		for _, record := range records {
			items = append(items, reservationFromRecord(record))
		}
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()

	s.loggerWith(ctx, "Load").DebugContext(ctx, "reservations loaded", "count", len(items))
	return err
}

// List returns a copy of the reservations, newest first.
func (s *ReservationService) List() []Reservation {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Reservation(nil), s.items...)
}

// Get returns the reservation with id.
func (s *ReservationService) Get(id string) (Reservation, bool) {
	if s == nil {
		return Reservation{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexLocked(id); idx >= 0 {
		return s.items[idx], true
	}
	return Reservation{}, false
}

// Create prepends a new active reservation built from input as given and
// persists the list. No availability check is made; overlapping reservations
// are accepted. Callers validate input with ValidateReservationInput first.
func (s *ReservationService) Create(ctx context.Context, input ReservationInput) (reservation Reservation, err error) {
	if s == nil {
		err = fmt.Errorf("ReservationService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Create", "room_name", input.RoomName)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create reservation", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("reservation_id", reservation.ID).InfoContext(ctx, "reservation created")
	}()

	reservation = Reservation{
		ID:       s.idGenerator(),
		RoomName: input.RoomName,
		Date:     input.Date,
		Time:     input.Time,
		Status:   StatusActive,
		Local:    input.Local,
		Ruido:    input.Ruido,
		Luz:      input.Luz,
	}

	s.mu.Lock()
	s.items = append([]Reservation{reservation}, s.items...)
	err = s.persistLocked(ctx)
	s.mu.Unlock()

	if err == nil {
		s.notify(ctx, ActionCreated, reservation)
	}
	return
}

// Cancel marks the reservation cancelled. An unknown id is ignored; the list
// is persisted either way.
func (s *ReservationService) Cancel(ctx context.Context, id string) error {
	status := StatusCancelled
	return s.mutate(ctx, "Cancel", ActionCancelled, id, ReservationPatch{Status: &status})
}

// Complete marks the reservation completed. An unknown id is ignored; the
// list is persisted either way.
func (s *ReservationService) Complete(ctx context.Context, id string) error {
	status := StatusCompleted
	return s.mutate(ctx, "Complete", ActionCompleted, id, ReservationPatch{Status: &status})
}

// Update merges patch into the reservation without moving it. An unknown id
// is ignored; the list is persisted either way.
func (s *ReservationService) Update(ctx context.Context, id string, patch ReservationPatch) error {
	if patch.Status != nil && !patch.Status.Valid() {
		vErr := &ValidationError{}
		vErr.add("status", "invalid")
		return vErr
	}
	return s.mutate(ctx, "Update", ActionUpdated, id, patch)
}

// Reset empties the list and persists it.
func (s *ReservationService) Reset(ctx context.Context) error {
	if s == nil {
		return fmt.Errorf("ReservationService is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = []Reservation{}
	return s.persistLocked(ctx)
}

func (s *ReservationService) mutate(ctx context.Context, operation string, action ReservationAction, id string, patch ReservationPatch) (err error) {
	if s == nil {
		return fmt.Errorf("ReservationService is nil")
	}

	logger := s.loggerWith(ctx, operation, "reservation_id", id)
	var (
		changed Reservation
		hit     bool
	)
	defer func() {
		switch {
		case err != nil:
			logger.ErrorContext(ctx, "failed to change reservation", "error", err, "error_kind", ErrorKind(err))
		case !hit:
			logger.DebugContext(ctx, "reservation not found; nothing changed")
		default:
			logger.InfoContext(ctx, "reservation changed", "status", string(changed.Status))
		}
	}()

	s.mu.Lock()
	if idx := s.indexLocked(id); idx >= 0 {
		current := s.items[idx]
		if patch.Status != nil && !canTransition(current.Status, *patch.Status) {
			s.mu.Unlock()
			return fmt.Errorf("%s to %s: %w", current.Status, *patch.Status, ErrInvalidTransition)
		}
		changed = patch.apply(current)
		s.items[idx] = changed
		hit = true
	}
	err = s.persistLocked(ctx)
	s.mu.Unlock()

	if hit && err == nil {
		s.notify(ctx, action, changed)
	}
	return err
}

func (s *ReservationService) indexLocked(id string) int {
	for i, r := range s.items {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (s *ReservationService) persistLocked(ctx context.Context) error {
	records := make([]persistence.ReservationRecord, 0, len(s.items))
	for _, r := range s.items {
		records = append(records, reservationToRecord(r))
	}
	return s.storage.Save(ctx, persistence.KeyReservations, records)
}

func (s *ReservationService) notify(ctx context.Context, action ReservationAction, reservation Reservation) {
	change := ReservationChange{Action: action, Reservation: reservation, OccurredAt: s.now()}
	if err := s.notifier.ReservationChanged(ctx, change); err != nil {
		s.loggerWith(ctx, "notify", "reservation_id", reservation.ID, "action", string(action)).
			WarnContext(ctx, "failed to publish reservation change", "error", err)
	}
}
