package application

import (
	"context"
	"errors"
	"testing"

	"github.com/example/neurosync/internal/persistence"
)

func TestThemeService(t *testing.T) {
	t.Parallel()

	scheme := func(value string) func() string { return func() string { return value } }

	t.Run("starts from the platform scheme", func(t *testing.T) {
		t.Parallel()
		cases := map[string]Theme{"dark": ThemeDark, "Light": ThemeLight, "": ThemeLight, "no-preference": ThemeLight}
		for input, want := range cases {
			theme := NewThemeService(NewStorageService(newKVStub(), discardLogger()), scheme(input), discardLogger())
			if got := theme.Current(); got != want {
				t.Fatalf("scheme %q: expected %q, got %q", input, want, got)
			}
		}
		if got := NewThemeService(nil, nil, nil).Current(); got != ThemeLight {
			t.Fatalf("expected light without provider, got %q", got)
		}
	})

	t.Run("persisted value overrides the platform scheme", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		kv := newKVStub()
		_ = kv.Storage.SetItem(ctx, persistence.KeyTheme, `"dark"`)

		theme := NewThemeService(NewStorageService(kv, discardLogger()), scheme("light"), discardLogger())
		if err := theme.Load(ctx); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if theme.Current() != ThemeDark {
			t.Fatalf("expected persisted dark theme, got %q", theme.Current())
		}
	})

	t.Run("ignores unknown stored values", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		kv := newKVStub()
		_ = kv.Storage.SetItem(ctx, persistence.KeyTheme, `"sepia"`)

		theme := NewThemeService(NewStorageService(kv, discardLogger()), scheme("dark"), discardLogger())
		if err := theme.Load(ctx); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if theme.Current() != ThemeDark {
			t.Fatalf("expected platform theme to remain, got %q", theme.Current())
		}
	})

	t.Run("toggling twice restores and persists the original", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		kv := newKVStub()
		theme := NewThemeService(NewStorageService(kv, discardLogger()), scheme("light"), discardLogger())

		next, err := theme.Toggle(ctx)
		if err != nil || next != ThemeDark {
			t.Fatalf("expected dark after first toggle, got %q, %v", next, err)
		}
		if raw, _ := kv.Storage.GetItem(ctx, persistence.KeyTheme); raw != `"dark"` {
			t.Fatalf("expected dark persisted, got %s", raw)
		}

		next, err = theme.Toggle(ctx)
		if err != nil || next != ThemeLight {
			t.Fatalf("expected light after second toggle, got %q, %v", next, err)
		}
		if raw, _ := kv.Storage.GetItem(ctx, persistence.KeyTheme); raw != `"light"` {
			t.Fatalf("expected light persisted, got %s", raw)
		}
	})

	t.Run("toggle flips in memory when storage fails", func(t *testing.T) {
		t.Parallel()
		kv := newKVStub()
		kv.setErr = errStubStore
		theme := NewThemeService(NewStorageService(kv, discardLogger()), nil, discardLogger())

		next, err := theme.Toggle(context.Background())
		if !errors.Is(err, errStubStore) {
			t.Fatalf("expected store error, got %v", err)
		}
		if next != ThemeDark || theme.Current() != ThemeDark {
			t.Fatalf("expected in-memory flip, got %q", theme.Current())
		}
	})
}
