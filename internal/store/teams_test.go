package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTeamsSeedOnFirstLoad(t *testing.T) {
	dir := t.TempDir()
	s := NewTeams(dir, nil)

	teams, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(teams) != len(defaultTeamNames) {
		t.Fatalf("seeded %d teams, want %d", len(teams), len(defaultTeamNames))
	}
	if _, err := os.Stat(filepath.Join(dir, TeamsFile)); err != nil {
		t.Errorf("roster file not written: %v", err)
	}

	// Second load reads the file, it does not reseed.
	if err := s.Save([]string{"Only Team"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	teams, err = s.Load()
	if err != nil {
		t.Fatalf("Load after save: %v", err)
	}
	if len(teams) != 1 || teams[0] != "Only Team" {
		t.Errorf("Load after save = %v", teams)
	}
}

func TestTeamsSaveVerbatim(t *testing.T) {
	s := NewTeams(t.TempDir(), nil)

	// The store keeps duplicates and ordering as given.
	in := []string{"B Team", "A Team", "B Team"}
	if err := s.Save(in); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 3 || got[0] != "B Team" || got[1] != "A Team" || got[2] != "B Team" {
		t.Errorf("Load = %v", got)
	}
}

func TestTeamsSaveNil(t *testing.T) {
	s := NewTeams(t.TempDir(), nil)
	if err := s.Save(nil); err != nil {
		t.Fatalf("Save(nil): %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Load = %v, want empty", got)
	}
}
