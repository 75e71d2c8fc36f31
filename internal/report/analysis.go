package report

import (
	"strings"
	"time"

	"github.com/timeliner-io/timeliner/internal/incident"
)

// RenderAnalysis builds the one-way analysis document handed to the
// summarization flows. Blank title fields fall back to bracketed
// placeholders in the document title and N/A elsewhere; the Incident
// Number and Priority detail rows are substituted from the title block.
func RenderAnalysis(state *incident.State, now time.Time) string {
	title := now.Format("02-01-2006") + " - " +
		orPlaceholder(state.Priority, "[Priority]") + " - " +
		orPlaceholder(state.Incident, "[IncidentNumber]") + " - " +
		orPlaceholder(state.Description, "[ShortDescription]")

	var b strings.Builder
	b.WriteString("Document Title: " + title + "\n\n")
	b.WriteString("Short Description: " + orPlaceholder(state.Description, "N/A") + "\n\n")

	b.WriteString("--- Incident Details ---\n")
	for _, f := range state.Details.IncidentFields() {
		value := *f.Value
		switch f.Name {
		case "Incident Number":
			value = state.Incident
		case "Priority":
			value = state.Priority
		}
		b.WriteString(f.Name + ": " + orPlaceholder(value, "N/A") + "\n")
	}
	b.WriteString("\n")

	b.WriteString("--- Incident Timeline ---\n")
	if len(state.Entries) > 0 {
		for _, e := range state.Entries {
			b.WriteString("Time: " + e.Timestamp + "\n")
			b.WriteString("Status: " + e.Status + "\n")
			b.WriteString("Notes:\n" + orPlaceholder(e.Notes, "N/A") + "\n\n")
		}
	} else {
		b.WriteString("No timeline entries.\n\n")
	}

	b.WriteString("--- Resolution Details ---\n")
	for _, f := range state.Details.ResolutionFields() {
		b.WriteString(f.Name + ": " + orPlaceholder(*f.Value, "N/A") + "\n")
	}
	b.WriteString("\n")

	return b.String()
}

func orPlaceholder(value, placeholder string) string {
	if value == "" {
		return placeholder
	}
	return value
}
