package application

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/example/neurosync/internal/persistence"
	"github.com/example/neurosync/internal/persistence/memory"
)

var errStubStore = errors.New("stub store failure")

// kvStub wraps a memory store and fails operations on request.
type kvStub struct {
	*memory.Storage

	getErr    error
	setErr    error
	removeErr error
	setKeys   []string
}

func newKVStub() *kvStub {
	return &kvStub{Storage: memory.New()}
}

func (s *kvStub) GetItem(ctx context.Context, key string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	return s.Storage.GetItem(ctx, key)
}

func (s *kvStub) SetItem(ctx context.Context, key, value string) error {
	s.setKeys = append(s.setKeys, key)
	if s.setErr != nil {
		return s.setErr
	}
	return s.Storage.SetItem(ctx, key, value)
}

func (s *kvStub) RemoveItem(ctx context.Context, key string) error {
	if s.removeErr != nil {
		return s.removeErr
	}
	return s.Storage.RemoveItem(ctx, key)
}

var _ persistence.KeyValueStore = (*kvStub)(nil)

type notifierStub struct {
	mu      sync.Mutex
	changes []ReservationChange
	err     error
}

func (n *notifierStub) ReservationChanged(_ context.Context, change ReservationChange) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changes = append(n.changes, change)
	return n.err
}

func (n *notifierStub) actions() []ReservationAction {
	n.mu.Lock()
	defer n.mu.Unlock()
	actions := make([]ReservationAction, 0, len(n.changes))
	for _, c := range n.changes {
		actions = append(actions, c.Action)
	}
	return actions
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sequenceIDs(prefix string) func() string {
	var (
		mu sync.Mutex
		n  int
	)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return prefix + "-" + strconv.Itoa(n)
	}
}
