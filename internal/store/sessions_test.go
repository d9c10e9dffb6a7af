package store_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/examtrainer/backend/internal/store"
)

func newSessionStore(t *testing.T, lifetime time.Duration) *store.SessionStore {
	t.Helper()
	s, err := store.NewSessionStore(filepath.Join(t.TempDir(), "sessions.db"), lifetime)
	if err != nil {
		t.Fatalf("opening session store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSessionStore_CreateAndGet(t *testing.T) {
	s := newSessionStore(t, time.Hour)

	created, err := s.Create("sid-1", "ABCDEFGHIJKLMNOP", "PM Basics")
	if err != nil {
		t.Fatal(err)
	}

	got, err := s.Get("sid-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Secret != created.Secret || got.CurrentExam != "PM Basics" {
		t.Errorf("unexpected session: %+v", got)
	}
}

func TestSessionStore_GetUnknown(t *testing.T) {
	s := newSessionStore(t, time.Hour)

	if _, err := s.Get("nope"); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSessionStore_ExpiredSessionIsGone(t *testing.T) {
	s := newSessionStore(t, -time.Minute) // already expired on creation

	if _, err := s.Create("sid-1", "ABCDEFGHIJKLMNOP", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get("sid-1"); err != store.ErrNotFound {
		t.Errorf("expected expired session to be gone, got %v", err)
	}
}

func TestSessionStore_SetExam(t *testing.T) {
	s := newSessionStore(t, time.Hour)

	s.Create("sid-1", "ABCDEFGHIJKLMNOP", "PM Basics")
	if err := s.SetExam("sid-1", "Management Fundamentals"); err != nil {
		t.Fatal(err)
	}

	got, _ := s.Get("sid-1")
	if got.CurrentExam != "Management Fundamentals" {
		t.Errorf("expected updated exam, got %q", got.CurrentExam)
	}

	if err := s.SetExam("missing", "X"); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound for unknown session, got %v", err)
	}
}

func TestSessionStore_Delete(t *testing.T) {
	s := newSessionStore(t, time.Hour)

	s.Create("sid-1", "ABCDEFGHIJKLMNOP", "")
	if err := s.Delete("sid-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get("sid-1"); err != store.ErrNotFound {
		t.Errorf("expected deleted session gone, got %v", err)
	}

	// Logging out twice is fine.
	if err := s.Delete("sid-1"); err != nil {
		t.Errorf("deleting an unknown session must not fail: %v", err)
	}
}

func TestSessionStore_PurgeExpired(t *testing.T) {
	s := newSessionStore(t, -time.Minute)
	s.Create("sid-1", "ABCDEFGHIJKLMNOP", "")
	s.Create("sid-2", "QRSTUVWXYZ123456", "")

	purged, err := s.PurgeExpired()
	if err != nil {
		t.Fatal(err)
	}
	if purged != 2 {
		t.Errorf("expected 2 purged sessions, got %d", purged)
	}
}
