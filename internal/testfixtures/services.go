package testfixtures

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/example/neurosync/internal/application"
	"github.com/example/neurosync/internal/persistence"
	"github.com/example/neurosync/internal/persistence/memory"
)

// ErrInjected is returned by FlakyStore operations that were told to fail.
var ErrInjected = errors.New("testfixtures: injected failure")

// FlakyStore wraps a KeyValueStore and fails selected operations on demand.
type FlakyStore struct {
	persistence.KeyValueStore

	mu       sync.Mutex
	failGet  bool
	failSet  bool
	failDrop bool
	sets     int
}

// NewFlakyStore wraps an empty memory store.
func NewFlakyStore() *FlakyStore {
	return &FlakyStore{KeyValueStore: memory.New()}
}

// FailReads toggles GetItem failures.
func (f *FlakyStore) FailReads(fail bool) { f.mu.Lock(); f.failGet = fail; f.mu.Unlock() }

// FailWrites toggles SetItem and RemoveItem failures.
func (f *FlakyStore) FailWrites(fail bool) {
	f.mu.Lock()
	f.failSet = fail
	f.failDrop = fail
	f.mu.Unlock()
}

// Writes reports how many SetItem calls were attempted.
func (f *FlakyStore) Writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sets
}

// GetItem implements persistence.KeyValueStore.
func (f *FlakyStore) GetItem(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	fail := f.failGet
	f.mu.Unlock()
	if fail {
		return "", ErrInjected
	}
	return f.KeyValueStore.GetItem(ctx, key)
}

// SetItem implements persistence.KeyValueStore.
func (f *FlakyStore) SetItem(ctx context.Context, key, value string) error {
	f.mu.Lock()
	f.sets++
	fail := f.failSet
	f.mu.Unlock()
	if fail {
		return ErrInjected
	}
	return f.KeyValueStore.SetItem(ctx, key, value)
}

// RemoveItem implements persistence.KeyValueStore.
func (f *FlakyStore) RemoveItem(ctx context.Context, key string) error {
	f.mu.Lock()
	fail := f.failDrop
	f.mu.Unlock()
	if fail {
		return ErrInjected
	}
	return f.KeyValueStore.RemoveItem(ctx, key)
}

// ClientFactory builds application clients with deterministic ids and time.
type ClientFactory struct {
	Clock       *Clock
	IDGenerator *IDGenerator
	ColorScheme string
	Notifier    application.ReservationNotifier
}

// NewClientFactory returns a factory with a fresh clock and id sequence.
func NewClientFactory() *ClientFactory {
	return &ClientFactory{
		Clock:       NewClock(time.Time{}),
		IDGenerator: NewIDGenerator(""),
	}
}

// NewClient builds and initialises a client over store.
func (f *ClientFactory) NewClient(tb testing.TB, store persistence.KeyValueStore) *application.Client {
	tb.Helper()

	client, err := application.NewClient(application.ClientDeps{
		Store:       store,
		ColorScheme: func() string { return f.ColorScheme },
		IDGenerator: f.IDGenerator.NextFunc(),
		Now:         f.Clock.NowFunc(),
		Notifier:    f.Notifier,
		Rooms:       Rooms(),
		Logger:      DiscardLogger(),
	})
	if err != nil {
		tb.Fatalf("NewClient failed: %v", err)
	}
	if err := client.Init(context.Background()); err != nil {
		tb.Fatalf("Init failed: %v", err)
	}
	return client
}

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
