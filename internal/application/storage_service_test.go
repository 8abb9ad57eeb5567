package application

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/example/neurosync/internal/persistence"
)

func TestStorageService(t *testing.T) {
	t.Parallel()

	t.Run("round trips JSON values", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		service := NewStorageService(newKVStub(), discardLogger())

		want := persistence.UserRecord{Name: "Ana", Email: "ana@x.com", SensoryProfile: "audio"}
		if err := service.Save(ctx, persistence.KeyUser, want); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		var got persistence.UserRecord
		found, err := service.Get(ctx, persistence.KeyUser, &got)
		if err != nil || !found {
			t.Fatalf("expected stored value, found=%v err=%v", found, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("unexpected value (-want +got):\n%s", diff)
		}
	})

	t.Run("absent key is not an error", func(t *testing.T) {
		t.Parallel()
		var dest string
		found, err := NewStorageService(newKVStub(), discardLogger()).Get(context.Background(), "missing", &dest)
		if err != nil || found {
			t.Fatalf("expected absent value, found=%v err=%v", found, err)
		}
	})

	t.Run("returns backend and decode failures", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		kv := newKVStub()
		service := NewStorageService(kv, discardLogger())

		_ = kv.Storage.SetItem(ctx, persistence.KeyTheme, "{not json")
		var theme string
		if found, err := service.Get(ctx, persistence.KeyTheme, &theme); err == nil || found {
			t.Fatalf("expected decode failure, found=%v err=%v", found, err)
		}

		kv.setErr = errStubStore
		err := service.Save(ctx, persistence.KeyTheme, "dark")
		if !errors.Is(err, errStubStore) || !errors.Is(err, ErrNotPersisted) {
			t.Fatalf("expected store error marked as not persisted, got %v", err)
		}

		kv.removeErr = errStubStore
		err = service.Remove(ctx, persistence.KeyTheme)
		if !errors.Is(err, errStubStore) || !errors.Is(err, ErrNotPersisted) {
			t.Fatalf("expected remove error marked as not persisted, got %v", err)
		}
	})

	t.Run("rejects values that cannot be encoded", func(t *testing.T) {
		t.Parallel()
		if err := NewStorageService(newKVStub(), discardLogger()).Save(context.Background(), "k", make(chan int)); err == nil || errors.Is(err, ErrNotPersisted) {
			t.Fatalf("expected plain encode error, got %v", err)
		}
	})

	t.Run("remove of absent key succeeds", func(t *testing.T) {
		t.Parallel()
		if err := NewStorageService(newKVStub(), discardLogger()).Remove(context.Background(), "missing"); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}
	})

	t.Run("unconfigured service errors", func(t *testing.T) {
		t.Parallel()
		var service *StorageService
		if err := service.Save(context.Background(), "k", 1); err == nil {
			t.Fatalf("expected error from nil service")
		}
	})
}
