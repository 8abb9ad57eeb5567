package application

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/example/neurosync/internal/persistence"
)

func newTestSession(kv *kvStub) (*SessionService, *ReservationService) {
	storage := NewStorageService(kv, discardLogger())
	reservations := NewReservationService(storage, sequenceIDs("res"), nil, nil, discardLogger())
	return NewSessionService(storage, reservations, discardLogger()), reservations
}

func anaProfile() UserProfile {
	return UserProfile{Name: "Ana", Email: "ana@x.com", SensoryProfile: SensoryAudio}
}

func TestSessionService_Register(t *testing.T) {
	t.Parallel()

	t.Run("persists the profile verbatim and clears reservations", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		kv := newKVStub()
		session, reservations := newTestSession(kv)
		if _, err := reservations.Create(ctx, zenInput()); err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		given := UserProfile{Name: " Ana ", Email: " ana@x.com", SensoryProfile: SensoryAudio}
		registered, err := session.Register(ctx, given)
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if diff := cmp.Diff(given, registered); diff != "" {
			t.Fatalf("profile was rewritten (-want +got):\n%s", diff)
		}
		if current, ok := session.Current(); !ok || current != given {
			t.Fatalf("expected current profile to be set, got %#v", current)
		}
		if len(reservations.List()) != 0 {
			t.Fatalf("expected reservations to be reset")
		}

		raw, err := kv.Storage.GetItem(ctx, persistence.KeyUser)
		if err != nil {
			t.Fatalf("expected persisted profile: %v", err)
		}
		if raw != `{"name":" Ana ","email":" ana@x.com","sensoryProfile":"audio"}` {
			t.Fatalf("unexpected persisted profile: %s", raw)
		}

		if err := session.Logout(ctx); err != nil {
			t.Fatalf("Logout failed: %v", err)
		}
		_ = kv.Storage.SetItem(ctx, persistence.KeyUser, raw)
		if ok, err := session.Login(ctx, " ana@x.com"); !ok || err != nil {
			t.Fatalf("expected login with the registered email, ok=%v err=%v", ok, err)
		}
	})

	t.Run("stores an empty sensory profile as given", func(t *testing.T) {
		t.Parallel()
		session, _ := newTestSession(newKVStub())
		registered, err := session.Register(context.Background(), UserProfile{Name: "Bia", Email: "bia@x.com"})
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if registered.SensoryProfile != "" {
			t.Fatalf("expected empty sensory profile, got %q", registered.SensoryProfile)
		}
	})

	t.Run("storage failures are marked as not persisted", func(t *testing.T) {
		t.Parallel()
		kv := newKVStub()
		kv.setErr = errStubStore
		session, _ := newTestSession(kv)

		_, err := session.Register(context.Background(), anaProfile())
		if !errors.Is(err, ErrNotPersisted) {
			t.Fatalf("expected ErrNotPersisted, got %v", err)
		}
		if got := ErrorKind(err); got != "not_persisted" {
			t.Fatalf("expected not_persisted kind, got %q", got)
		}
	})

	t.Run("keeps the in-memory profile when storage fails", func(t *testing.T) {
		t.Parallel()
		kv := newKVStub()
		kv.setErr = errStubStore
		session, _ := newTestSession(kv)

		if _, err := session.Register(context.Background(), anaProfile()); !errors.Is(err, errStubStore) {
			t.Fatalf("expected store error, got %v", err)
		}
		if _, ok := session.Current(); !ok {
			t.Fatalf("expected current profile despite storage failure")
		}
	})
}

func TestSessionService_LoginLogout(t *testing.T) {
	t.Parallel()

	t.Run("login requires an exact email match", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		kv := newKVStub()
		session, _ := newTestSession(kv)
		if _, err := session.Register(ctx, anaProfile()); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if err := session.Logout(ctx); err != nil {
			t.Fatalf("Logout failed: %v", err)
		}

		// Logout removed the stored profile, so nobody can sign in.
		if ok, err := session.Login(ctx, "ana@x.com"); ok || err != nil {
			t.Fatalf("expected rejected login after logout, ok=%v err=%v", ok, err)
		}

		if _, err := session.Register(ctx, anaProfile()); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		_ = session.Logout(ctx)
		_ = kv.Storage.SetItem(ctx, persistence.KeyUser, `{"name":"Ana","email":"ana@x.com","sensoryProfile":"audio"}`)

		if ok, _ := session.Login(ctx, "ANA@x.com"); ok {
			t.Fatalf("expected case-sensitive comparison")
		}
		if _, ok := session.Current(); ok {
			t.Fatalf("expected current profile to stay unset")
		}
		ok, err := session.Login(ctx, "ana@x.com")
		if err != nil || !ok {
			t.Fatalf("expected accepted login, ok=%v err=%v", ok, err)
		}
		if current, _ := session.Current(); current != anaProfile() {
			t.Fatalf("unexpected current profile: %#v", current)
		}
	})

	t.Run("logout keeps reservations", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		kv := newKVStub()
		session, reservations := newTestSession(kv)
		_, _ = session.Register(ctx, anaProfile())
		_, _ = reservations.Create(ctx, zenInput())

		if err := session.Logout(ctx); err != nil {
			t.Fatalf("Logout failed: %v", err)
		}
		if _, ok := session.Current(); ok {
			t.Fatalf("expected no current profile")
		}
		if _, err := kv.Storage.GetItem(ctx, persistence.KeyUser); !errors.Is(err, persistence.ErrNotFound) {
			t.Fatalf("expected stored profile removed, got %v", err)
		}
		if _, err := kv.Storage.GetItem(ctx, persistence.KeyReservations); err != nil {
			t.Fatalf("expected reservations to remain stored: %v", err)
		}
		if len(reservations.List()) != 1 {
			t.Fatalf("expected in-memory reservations to remain")
		}
	})

	t.Run("login surfaces read failures", func(t *testing.T) {
		t.Parallel()
		kv := newKVStub()
		kv.getErr = errStubStore
		session, _ := newTestSession(kv)
		if ok, err := session.Login(context.Background(), "ana@x.com"); ok || !errors.Is(err, errStubStore) {
			t.Fatalf("expected read failure, ok=%v err=%v", ok, err)
		}
	})
}

func TestSessionService_Load(t *testing.T) {
	t.Parallel()

	t.Run("restores profile and reservations then becomes ready", func(t *testing.T) {
		t.Parallel()
		ctx := context.Background()
		kv := newKVStub()
		first, firstReservations := newTestSession(kv)
		_, _ = first.Register(ctx, anaProfile())
		created, _ := firstReservations.Create(ctx, zenInput())

		session, reservations := newTestSession(kv)
		if session.Ready() {
			t.Fatalf("expected session to start loading")
		}
		if err := session.Load(ctx); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if !session.Ready() {
			t.Fatalf("expected ready after load")
		}
		if current, ok := session.Current(); !ok || current.Email != "ana@x.com" {
			t.Fatalf("expected restored profile, got %#v", current)
		}
		if got, ok := reservations.Get(created.ID); !ok || got.RoomName != "Sala Zen 1A" {
			t.Fatalf("expected restored reservation, got %#v", got)
		}
	})

	t.Run("becomes ready even when reads fail", func(t *testing.T) {
		t.Parallel()
		kv := newKVStub()
		kv.getErr = errStubStore
		session, _ := newTestSession(kv)

		if err := session.Load(context.Background()); !errors.Is(err, errStubStore) {
			t.Fatalf("expected joined store error, got %v", err)
		}
		if !session.Ready() {
			t.Fatalf("expected ready after failed load")
		}
		if _, ok := session.Current(); ok {
			t.Fatalf("expected no profile after failed load")
		}
	})
}
