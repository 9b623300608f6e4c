package handlers

import (
	"errors"
	"testing"

	"agrocost/services"
)

func TestSessionManager_PutGetDelete(t *testing.T) {
	sm := NewSessionManager()

	if _, ok := sm.Get("q1"); ok {
		t.Error("expected no store before Put")
	}

	store := services.NewStore(nil)
	sm.Put("q1", store)

	got, ok := sm.Get("q1")
	if !ok || got != store {
		t.Error("Get did not return the stored table")
	}

	sm.Delete("q1")
	if _, ok := sm.Get("q1"); ok {
		t.Error("expected store gone after Delete")
	}
}

func TestSessionManager_EditMissingQuote(t *testing.T) {
	sm := NewSessionManager()

	err := sm.Edit("missing", func(s *services.Store) error { return nil })
	if !errors.Is(err, services.ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}

func TestSessionManager_EditRunsAgainstStore(t *testing.T) {
	sm := NewSessionManager()
	sm.Put("q1", services.NewStore([]services.LineItem{
		{System: "GOTEO", Code: "A1", Description: "Dripper", UOM: "Und.", Qty: 1, UnitPrice: 2},
	}))

	var seen int
	err := sm.Edit("q1", func(s *services.Store) error {
		seen = s.Len()
		return nil
	})
	if err != nil {
		t.Fatalf("Edit error: %v", err)
	}
	if seen != 1 {
		t.Errorf("callback saw %d rows, want 1", seen)
	}
}
