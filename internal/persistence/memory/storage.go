// Package memory provides a process-local persistence.KeyValueStore.
package memory

import (
	"context"
	"sync"

	"github.com/example/neurosync/internal/persistence"
)

// Storage keeps items in a map guarded by a RWMutex. Contents are lost when
// the process exits.
type Storage struct {
	mu     sync.RWMutex
	items  map[string]string
	closed bool
}

// New returns an empty Storage.
func New() *Storage {
	return &Storage{items: make(map[string]string)}
}

// GetItem returns the value stored under key.
func (s *Storage) GetItem(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", persistence.ErrClosed
	}
	value, ok := s.items[key]
	if !ok {
		return "", persistence.ErrNotFound
	}
	return value, nil
}

// SetItem overwrites the value stored under key.
func (s *Storage) SetItem(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return persistence.ErrClosed
	}
	s.items[key] = value
	return nil
}

// RemoveItem deletes key. Absent keys are ignored.
func (s *Storage) RemoveItem(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return persistence.ErrClosed
	}
	delete(s.items, key)
	return nil
}

// Keys returns a snapshot of the stored keys.
func (s *Storage) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.items))
	for key := range s.items {
		keys = append(keys, key)
	}
	return keys
}

// Close marks the storage unusable.
func (s *Storage) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}
