package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/example/neurosync/internal/persistence"
)

// SessionService holds the signed-in profile. It also owns the startup load
// of the profile and the reservation list, exposed as a single ready flag.
type SessionService struct {
	storage      *StorageService
	reservations *ReservationService
	logger       *slog.Logger

	mu      sync.RWMutex
	current *UserProfile
	ready   bool
}

// NewSessionService constructs a session store backed by storage. Register
// resets reservations through the given reservation store.
func NewSessionService(storage *StorageService, reservations *ReservationService, logger *slog.Logger) *SessionService {
	return &SessionService{storage: storage, reservations: reservations, logger: defaultLogger(logger)}
}

func (s *SessionService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "SessionService", operation, attrs...)
}

// Load reads the persisted profile and reservation list concurrently and then
// marks the session ready. Failed reads leave the affected state empty; the
// session becomes ready regardless and the failures are returned joined.
func (s *SessionService) Load(ctx context.Context) error {
	if s == nil {
		return fmt.Errorf("SessionService is nil")
	}

	var (
		g       errgroup.Group
		profile *UserProfile
		errs    [2]error
	)
	g.Go(func() error {
		var record persistence.UserRecord
		found, err := s.storage.Get(ctx, persistence.KeyUser, &record)
		if found {
			p := profileFromRecord(record)
			profile = &p
		}
		errs[0] = err
		return err
	})
	if s.reservations != nil {
		g.Go(func() error {
			errs[1] = s.reservations.Load(ctx)
			return errs[1]
		})
	}
	var err error
	if g.Wait() != nil {
		// Wait keeps only the first failure; report both.
		err = errors.Join(errs[:]...)
	}

	s.mu.Lock()
	s.current = profile
	s.ready = true
	s.mu.Unlock()

	s.loggerWith(ctx, "Load").InfoContext(ctx, "session loaded", "signed_in", profile != nil)
	return err
}

// Ready reports whether the initial load has completed.
func (s *SessionService) Ready() bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Current returns the signed-in profile.
func (s *SessionService) Current() (UserProfile, bool) {
	if s == nil {
		return UserProfile{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return UserProfile{}, false
	}
	return *s.current, true
}

// Register sets profile as the current one exactly as given, persists it and
// resets the reservation list to empty. The in-memory profile is set even when
// persistence fails. Callers validate input with ValidateProfile first.
func (s *SessionService) Register(ctx context.Context, profile UserProfile) (registered UserProfile, err error) {
	if s == nil {
		err = fmt.Errorf("SessionService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Register")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to register profile", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "profile registered", "sensory_profile", string(registered.SensoryProfile))
	}()

	registered = profile
	s.mu.Lock()
	s.current = &registered
	s.mu.Unlock()

	saveErr := s.storage.Save(ctx, persistence.KeyUser, profileToRecord(registered))
	var resetErr error
	if s.reservations != nil {
		resetErr = s.reservations.Reset(ctx)
	}
	err = errors.Join(saveErr, resetErr)
	return
}

// Login signs in when a persisted profile exists with exactly the given
// email. A mismatch is reported as false with a nil error and leaves the
// current profile untouched.
func (s *SessionService) Login(ctx context.Context, email string) (ok bool, err error) {
	if s == nil {
		err = fmt.Errorf("SessionService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Login")
	defer func() {
		switch {
		case err != nil:
			logger.ErrorContext(ctx, "failed to read stored profile", "error", err, "error_kind", ErrorKind(err))
		case !ok:
			logger.InfoContext(ctx, "login rejected")
		default:
			logger.InfoContext(ctx, "login accepted")
		}
	}()

	var record persistence.UserRecord
	found, err := s.storage.Get(ctx, persistence.KeyUser, &record)
	if err != nil || !found || record.Email != email {
		return false, err
	}

	profile := profileFromRecord(record)
	s.mu.Lock()
	s.current = &profile
	s.mu.Unlock()
	return true, nil
}

// Logout clears the current profile and removes it from storage. Reservations
// are kept.
func (s *SessionService) Logout(ctx context.Context) error {
	if s == nil {
		return fmt.Errorf("SessionService is nil")
	}

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.storage.Remove(ctx, persistence.KeyUser); err != nil {
		return err
	}
	s.loggerWith(ctx, "Logout").InfoContext(ctx, "profile signed out")
	return nil
}
