package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/example/neurosync/internal/persistence"
)

func openTestStorage(t *testing.T) (*Storage, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "nested", "neurosync.db")
	storage, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = storage.Close() })

	if err := storage.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate failed: %v", err)
	}
	return storage, path
}

func TestStorage_KeyValue(t *testing.T) {
	t.Parallel()

	t.Run("stores, overwrites and removes items", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		storage, _ := openTestStorage(t)

		if err := storage.SetItem(ctx, persistence.KeyTheme, `"light"`); err != nil {
			t.Fatalf("SetItem failed: %v", err)
		}
		if err := storage.SetItem(ctx, persistence.KeyTheme, `"dark"`); err != nil {
			t.Fatalf("SetItem overwrite failed: %v", err)
		}

		got, err := storage.GetItem(ctx, persistence.KeyTheme)
		if err != nil {
			t.Fatalf("GetItem failed: %v", err)
		}
		if got != `"dark"` {
			t.Fatalf("expected overwritten value, got %q", got)
		}

		if err := storage.RemoveItem(ctx, persistence.KeyTheme); err != nil {
			t.Fatalf("RemoveItem failed: %v", err)
		}
		if _, err := storage.GetItem(ctx, persistence.KeyTheme); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after remove, got %v", err)
		}
		if err := storage.RemoveItem(ctx, persistence.KeyTheme); err != nil {
			t.Fatalf("RemoveItem of absent key failed: %v", err)
		}
	})

	t.Run("values survive reopening the file", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		storage, path := openTestStorage(t)

		payload := `{"name":"Ana","email":"ana@x.com","sensoryProfile":"audio"}`
		if err := storage.SetItem(ctx, persistence.KeyUser, payload); err != nil {
			t.Fatalf("SetItem failed: %v", err)
		}
		if err := storage.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}

		reopened, err := Open(path)
		if err != nil {
			t.Fatalf("reopen failed: %v", err)
		}
		defer reopened.Close()
		if err := reopened.Migrate(ctx); err != nil {
			t.Fatalf("second Migrate failed: %v", err)
		}

		got, err := reopened.GetItem(ctx, persistence.KeyUser)
		if err != nil {
			t.Fatalf("GetItem after reopen failed: %v", err)
		}
		if got != payload {
			t.Fatalf("expected %q, got %q", payload, got)
		}
	})
}

func TestStorage_Migrate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	storage, _ := openTestStorage(t)

	if err := storage.Migrate(ctx); err != nil {
		t.Fatalf("repeated Migrate failed: %v", err)
	}
	versions, err := storage.AppliedVersions(ctx)
	if err != nil {
		t.Fatalf("AppliedVersions failed: %v", err)
	}
	if diff := cmp.Diff([]string{"001"}, versions); diff != "" {
		t.Fatalf("unexpected versions (-want +got):\n%s", diff)
	}
}

func TestConfigValidation(t *testing.T) {
	t.Parallel()

	cases := map[string]Config{
		"empty path":       {},
		"bad journal mode": {Path: "x.db", JournalMode: "SIDEWAYS"},
		"bad synchronous":  {Path: "x.db", Synchronous: "SOMETIMES"},
	}
	for name, cfg := range cases {
		cfg := cfg
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if _, err := OpenWithConfig(cfg); err == nil {
				t.Fatalf("expected configuration error")
			}
		})
	}
}
