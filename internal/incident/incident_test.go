package incident

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestDetailFieldListsCoverEveryField(t *testing.T) {
	var d Details
	fields := append(d.IncidentFields(), d.ResolutionFields()...)

	if want := 19; len(fields) != want {
		t.Fatalf("got %d fields, want %d", len(fields), want)
	}
	seen := make(map[string]bool)
	for _, f := range fields {
		if f.Value == nil {
			t.Errorf("field %q has nil value pointer", f.Name)
		}
		if seen[f.Name] {
			t.Errorf("duplicate field name %q", f.Name)
		}
		seen[f.Name] = true
	}
}

func TestDetailsJSONUsesDisplayNames(t *testing.T) {
	d := Details{IncidentManager: "Dana", BusinessUnit: "Streaming"}
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, key := range []string{
		`"Incident Manager":"Dana"`,
		`"NBCU Product/ Business Unit":"Streaming"`,
		`"Resolution":""`,
	} {
		if !strings.Contains(out, key) {
			t.Errorf("marshaled details missing %s:\n%s", key, out)
		}
	}
}

func TestSetByName(t *testing.T) {
	var d Details
	if !d.SetByName("Impact Statement", "checkout down") {
		t.Fatal("SetByName rejected a known incident field")
	}
	if !d.SetByName("Problem Number", "PRB001") {
		t.Fatal("SetByName rejected a known resolution field")
	}
	if d.SetByName("Unknown Field", "x") {
		t.Error("SetByName accepted an unknown field")
	}
	if d.ImpactStatement != "checkout down" || d.ProblemNumber != "PRB001" {
		t.Errorf("details = %+v", d)
	}
}

func TestNormalize(t *testing.T) {
	var s State
	s.Normalize()
	if s.Entries == nil {
		t.Error("Normalize left Entries nil")
	}
}

func TestFormatTimestamp(t *testing.T) {
	at := time.Date(2025, 3, 7, 9, 5, 42, 0, time.UTC)
	if got := FormatTimestamp(at); got != "07-03-2025, 09:05 UTC" {
		t.Errorf("FormatTimestamp() = %q", got)
	}

	// Non-UTC inputs are converted.
	loc := time.FixedZone("CET", 3600)
	if got := FormatTimestamp(time.Date(2025, 3, 7, 10, 5, 0, 0, loc)); got != "07-03-2025, 09:05 UTC" {
		t.Errorf("FormatTimestamp(non-UTC) = %q", got)
	}
}

func TestNewEntry(t *testing.T) {
	at := time.Date(2025, 3, 7, 9, 5, 0, 0, time.UTC)
	e := NewEntry(at, StatusUpdate, "notes")
	if e.ID != at.UnixMilli() {
		t.Errorf("ID = %d, want %d", e.ID, at.UnixMilli())
	}
	if e.Timestamp != "07-03-2025, 09:05 UTC" {
		t.Errorf("Timestamp = %q", e.Timestamp)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range Statuses {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false", s)
		}
	}
	if ValidStatus("Resolved") {
		t.Error("ValidStatus accepted unknown status")
	}
}
