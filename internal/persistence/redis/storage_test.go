package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/example/neurosync/internal/persistence"
)

func TestStorage_KeyPrefix(t *testing.T) {
	t.Parallel()

	if got := NewWithClient(nil, "neurosync").key(persistence.KeyUser); got != "neurosync:@neurosync:user" {
		t.Fatalf("unexpected prefixed key: %q", got)
	}
	if got := NewWithClient(nil, "").key(persistence.KeyUser); got != persistence.KeyUser {
		t.Fatalf("expected bare key without prefix, got %q", got)
	}
}

func TestOpen_RequiresAddress(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), Options{}); err == nil {
		t.Fatalf("expected error without address")
	}
}

// TestStorage_Server runs against a real server when NEUROSYNC_TEST_REDIS_ADDR is set.
func TestStorage_Server(t *testing.T) {
	addr := os.Getenv("NEUROSYNC_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("NEUROSYNC_TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	prefix := fmt.Sprintf("neurosync-test-%d", time.Now().UnixNano())
	storage, err := Open(ctx, Options{Addr: addr, Prefix: prefix})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer storage.Close()
	defer storage.RemoveItem(ctx, persistence.KeyTheme)

	if _, err := storage.GetItem(ctx, persistence.KeyTheme); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := storage.SetItem(ctx, persistence.KeyTheme, `"dark"`); err != nil {
		t.Fatalf("SetItem failed: %v", err)
	}
	got, err := storage.GetItem(ctx, persistence.KeyTheme)
	if err != nil || got != `"dark"` {
		t.Fatalf("unexpected GetItem result %q, %v", got, err)
	}
	if err := storage.RemoveItem(ctx, persistence.KeyTheme); err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	if _, err := storage.GetItem(ctx, persistence.KeyTheme); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}
}
