package orchestration

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestSessionStoreCreateAndGet(t *testing.T) {
	store := NewSessionStore()

	session, err := store.Create("call-1", "+15550100")
	if err != nil {
		t.Fatalf("unexpected error creating session: %v", err)
	}
	if session.State() != StateGreeting {
		t.Fatalf("expected new session in greeting state, got %q", session.State())
	}

	got, err := store.Get("call-1")
	if err != nil {
		t.Fatalf("unexpected error getting session: %v", err)
	}
	if got != session {
		t.Fatal("expected Get to return the created session")
	}
}

func TestSessionStoreRejectsDuplicateID(t *testing.T) {
	store := NewSessionStore()

	if _, err := store.Create("call-1", ""); err != nil {
		t.Fatalf("unexpected error creating session: %v", err)
	}
	if _, err := store.Create("call-1", ""); !errors.Is(err, ErrDuplicateSession) {
		t.Fatalf("expected ErrDuplicateSession, got %v", err)
	}
}

func TestSessionStoreGetUnknown(t *testing.T) {
	store := NewSessionStore()

	if _, err := store.Get("missing"); !errors.Is(err, ErrUnknownSession) {
		t.Fatalf("expected ErrUnknownSession, got %v", err)
	}
}

func TestSessionStoreRemoveIsIdempotent(t *testing.T) {
	store := NewSessionStore()

	if _, err := store.Create("call-1", ""); err != nil {
		t.Fatalf("unexpected error creating session: %v", err)
	}
	store.Remove("call-1")
	store.Remove("call-1")

	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d sessions", store.Len())
	}
}

func TestSessionStoreConcurrentCreates(t *testing.T) {
	store := NewSessionStore()

	const workers = 16
	var wg sync.WaitGroup
	created := make(chan error, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Create("call-1", fmt.Sprintf("+1555%04d", i))
			created <- err
		}()
	}
	wg.Wait()
	close(created)

	var successes, duplicates int
	for err := range created {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrDuplicateSession):
			duplicates++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 {
		t.Fatalf("expected exactly one successful create, got %d", successes)
	}
	if duplicates != workers-1 {
		t.Fatalf("expected %d duplicate errors, got %d", workers-1, duplicates)
	}
}
