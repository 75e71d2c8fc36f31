package report

import (
	"strings"
	"testing"
	"time"

	"github.com/timeliner-io/timeliner/internal/incident"
)

func TestRenderAnalysis(t *testing.T) {
	now := time.Date(2025, 3, 7, 12, 0, 0, 0, time.UTC)
	out := RenderAnalysis(sampleState(), now)

	if !strings.HasPrefix(out, "Document Title: 07-03-2025 - P2 - INC0012345 - checkout latency\n") {
		t.Errorf("title line wrong:\n%s", out[:min(len(out), 120)])
	}
	for _, want := range []string{
		"Short Description: checkout latency\n",
		"--- Incident Details ---\n",
		"Incident Number: INC0012345\n",
		"Priority: P2\n",
		"Incident Manager: A. Manager\n",
		"Impact Statement: N/A\n",
		"--- Incident Timeline ---\n",
		"Time: 07-03-2025, 09:05 UTC\nStatus: Initial Report\nNotes:\nfirst report\n\n",
		"Notes:\nline one\nline two\n\n",
		"--- Resolution Details ---\n",
		"Resolution: service restored\n",
		"Root Cause/Trigger: N/A\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("analysis missing %q", want)
		}
	}
}

func TestRenderAnalysisPlaceholders(t *testing.T) {
	state := incident.NewState("")
	state.Priority = ""
	now := time.Date(2025, 3, 7, 12, 0, 0, 0, time.UTC)

	out := RenderAnalysis(state, now)
	if !strings.HasPrefix(out, "Document Title: 07-03-2025 - [Priority] - [IncidentNumber] - [ShortDescription]\n") {
		t.Errorf("placeholder title wrong:\n%s", out[:min(len(out), 120)])
	}
	if !strings.Contains(out, "Short Description: N/A\n") {
		t.Error("blank description did not fall back to N/A")
	}
	if !strings.Contains(out, "No timeline entries.\n") {
		t.Error("empty timeline marker missing")
	}
}
