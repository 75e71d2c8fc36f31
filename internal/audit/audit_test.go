package audit

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndList(t *testing.T) {
	s := openTestStore(t)

	if err := s.Record(ActionSave, "INC1", "saved"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := s.Record(ActionCallout, "INC1", "paged Team A"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := s.Record(ActionSave, "INC2", "saved"); err != nil {
		t.Fatalf("Record: %v", err)
	}

	events, err := s.List(Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("events = %d, want 3", len(events))
	}
	// Newest first.
	if events[0].Incident != "INC2" {
		t.Errorf("first event = %+v", events[0])
	}
	if events[0].At.IsZero() {
		t.Error("timestamp not recorded")
	}
}

func TestListFilters(t *testing.T) {
	s := openTestStore(t)
	s.Record(ActionSave, "INC1", "")
	s.Record(ActionCallout, "INC1", "")
	s.Record(ActionSave, "INC2", "")

	byAction, err := s.List(Filter{Action: ActionSave})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(byAction) != 2 {
		t.Errorf("by action = %d, want 2", len(byAction))
	}

	byIncident, err := s.List(Filter{Incident: "INC1"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(byIncident) != 2 {
		t.Errorf("by incident = %d, want 2", len(byIncident))
	}

	limited, err := s.List(Filter{Limit: 1})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limited = %d, want 1", len(limited))
	}
}
