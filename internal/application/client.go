package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/example/neurosync/internal/persistence"
)

// ClientDeps wires the stores of a Client.
type ClientDeps struct {
	Store       persistence.KeyValueStore
	ColorScheme func() string
	IDGenerator func() string
	Now         func() time.Time
	Notifier    ReservationNotifier
	Rooms       []Room
	Logger      *slog.Logger
}

// Client bundles the session, reservation and theme stores over one
// key-value store, plus the room catalog that reads them.
type Client struct {
	Storage      *StorageService
	Session      *SessionService
	Reservations *ReservationService
	Theme        *ThemeService
	Rooms        *RoomCatalog

	logger *slog.Logger
}

// NewClient constructs the stores. Call Init before reading state.
func NewClient(deps ClientDeps) (*Client, error) {
	if deps.Store == nil {
		return nil, fmt.Errorf("application: key-value store is required")
	}
	logger := defaultLogger(deps.Logger)

	storage := NewStorageService(deps.Store, logger)
	reservations := NewReservationService(storage, deps.IDGenerator, deps.Now, deps.Notifier, logger)
	return &Client{
		Storage:      storage,
		Session:      NewSessionService(storage, reservations, logger),
		Reservations: reservations,
		Theme:        NewThemeService(storage, deps.ColorScheme, logger),
		Rooms:        NewRoomCatalog(deps.Rooms, reservations, logger),
		logger:       logger,
	}, nil
}

// Init runs the session and theme loads concurrently. Load failures are
// logged and returned joined; the stores are usable either way.
func (c *Client) Init(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("Client is nil")
	}

	var (
		g    errgroup.Group
		errs [2]error
	)
	g.Go(func() error {
		errs[0] = c.Session.Load(ctx)
		return errs[0]
	})
	g.Go(func() error {
		errs[1] = c.Theme.Load(ctx)
		return errs[1]
	})

	logger := serviceLogger(ctx, c.logger, "Client", "Init")
	if g.Wait() != nil {
		// Wait keeps only the first failure; report both.
		err := errors.Join(errs[:]...)
		logger.WarnContext(ctx, "initial load incomplete", "error", err, "error_kind", ErrorKind(err))
		return err
	}
	logger.InfoContext(ctx, "client ready", "theme", string(c.Theme.Current()))
	return nil
}

// Ready reports whether the session load finished.
func (c *Client) Ready() bool {
	return c != nil && c.Session.Ready()
}
