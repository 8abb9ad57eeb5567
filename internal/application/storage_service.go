package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/example/neurosync/internal/persistence"
)

// StorageService stores JSON encoded values in a persistence.KeyValueStore.
//
// Failures are logged and returned. Stores built on top decide whether a
// failure matters; none of them roll back in-memory state.
type StorageService struct {
	kv     persistence.KeyValueStore
	logger *slog.Logger
}

// NewStorageService constructs a storage service over kv.
func NewStorageService(kv persistence.KeyValueStore, logger *slog.Logger) *StorageService {
	return &StorageService{kv: kv, logger: defaultLogger(logger)}
}

func (s *StorageService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "StorageService", operation, attrs...)
}

// Save serializes value as JSON and writes it under key, replacing any prior value.
func (s *StorageService) Save(ctx context.Context, key string, value any) (err error) {
	if s == nil || s.kv == nil {
		return fmt.Errorf("StorageService is not configured")
	}
	defer func() {
		if err != nil {
			s.loggerWith(ctx, "Save", "key", key).ErrorContext(ctx, "failed to save item", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err = s.kv.SetItem(ctx, key, string(payload)); err != nil {
		return fmt.Errorf("save %s: %w: %w", key, ErrNotPersisted, err)
	}
	return nil
}

// Get decodes the value stored under key into dest. It reports false with a
// nil error when the key is absent.
func (s *StorageService) Get(ctx context.Context, key string, dest any) (found bool, err error) {
	if s == nil || s.kv == nil {
		return false, fmt.Errorf("StorageService is not configured")
	}
	defer func() {
		if err != nil {
			s.loggerWith(ctx, "Get", "key", key).ErrorContext(ctx, "failed to read item", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	raw, err := s.kv.GetItem(ctx, key)
	if errors.Is(err, persistence.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err = json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Remove deletes key. Removing an absent key succeeds.
func (s *StorageService) Remove(ctx context.Context, key string) (err error) {
	if s == nil || s.kv == nil {
		return fmt.Errorf("StorageService is not configured")
	}
	if err = s.kv.RemoveItem(ctx, key); err != nil {
		err = fmt.Errorf("remove %s: %w: %w", key, ErrNotPersisted, err)
		s.loggerWith(ctx, "Remove", "key", key).ErrorContext(ctx, "failed to remove item", "error", err, "error_kind", ErrorKind(err))
		return err
	}
	return nil
}
