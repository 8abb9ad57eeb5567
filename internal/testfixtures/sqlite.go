package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/example/neurosync/internal/persistence/sqlite"
)

// SQLiteHarness exposes a migrated SQLite key-value store in a temporary
// directory. Path lets tests reopen the same file.
type SQLiteHarness struct {
	Store *sqlite.Storage
	Path  string
}

// NewSQLiteHarness opens and migrates a fresh database. It is closed through
// tb.Cleanup.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "neurosync.db")
	store := OpenSQLite(tb, path)
	return &SQLiteHarness{Store: store, Path: path}
}

// OpenSQLite opens and migrates the database at path, closing it on cleanup.
func OpenSQLite(tb testing.TB, path string) *sqlite.Storage {
	tb.Helper()

	store, err := sqlite.Open(path)
	if err != nil {
		tb.Fatalf("failed to open storage: %v", err)
	}
	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		tb.Fatalf("failed to migrate storage: %v", err)
	}
	tb.Cleanup(func() { _ = store.Close() })
	return store
}
