// Package sqlite implements persistence.KeyValueStore on a SQLite file using
// the pure Go modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/neurosync/internal/persistence"
)

// Storage stores items in the kv_items table.
type Storage struct {
	pool  *ConnectionPool
	retry *RetryHelper
	now   func() time.Time
}

// Open opens the database at path with DefaultConfig. Call Migrate before use.
func Open(path string) (*Storage, error) {
	return OpenWithConfig(DefaultConfig(path))
}

// OpenWithConfig opens the database described by cfg.
func OpenWithConfig(cfg Config) (*Storage, error) {
	pool, err := NewConnectionPool(cfg)
	if err != nil {
		return nil, err
	}
	return &Storage{
		pool:  pool,
		retry: NewRetryHelper(cfg.Retry),
		now:   time.Now,
	}, nil
}

// Close releases the underlying connection pool.
func (s *Storage) Close() error {
	if s == nil || s.pool == nil {
		return nil
	}
	return s.pool.Close()
}

// Ping checks the database connection.
func (s *Storage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// GetItem returns the value stored under key.
func (s *Storage) GetItem(ctx context.Context, key string) (string, error) {
	var value string
	err := s.retry.WithRetry(ctx, func() error {
		return s.pool.DB().QueryRowContext(ctx, `SELECT value FROM kv_items WHERE key = ?`, key).Scan(&value)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return "", persistence.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("sqlite: get %q: %w", key, err)
	}
	return value, nil
}

// SetItem inserts or replaces the value stored under key.
func (s *Storage) SetItem(ctx context.Context, key, value string) error {
	const upsert = `
		INSERT INTO kv_items (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	err := s.retry.WithRetry(ctx, func() error {
		_, err := s.pool.DB().ExecContext(ctx, upsert, key, value, s.now().UTC().Format(time.RFC3339Nano))
		return err
	})
	if err != nil {
		return fmt.Errorf("sqlite: set %q: %w", key, err)
	}
	return nil
}

// RemoveItem deletes key. Absent keys are ignored.
func (s *Storage) RemoveItem(ctx context.Context, key string) error {
	err := s.retry.WithRetry(ctx, func() error {
		_, err := s.pool.DB().ExecContext(ctx, `DELETE FROM kv_items WHERE key = ?`, key)
		return err
	})
	if err != nil {
		return fmt.Errorf("sqlite: remove %q: %w", key, err)
	}
	return nil
}
