// Package report renders incident state into its text representations:
// the plain-text dump used for export/import and the analysis document
// fed to the summarization flows.
package report

import (
	"strconv"
	"strings"

	"github.com/timeliner-io/timeliner/internal/incident"
)

// RenderDump serializes state into the plain-text export format. The
// detail sections carry only the fixed field names, in canonical order;
// entry notes have embedded newlines escaped as literal "\n".
func RenderDump(state *incident.State) string {
	var b strings.Builder

	b.WriteString("[Document Title]\n")
	b.WriteString("Priority: " + state.Priority + "\n")
	b.WriteString("Incident Number: " + state.Incident + "\n")
	b.WriteString("Short Description: " + state.Description + "\n\n")

	b.WriteString("--- [Incident Details] ---\n")
	for _, f := range state.Details.IncidentFields() {
		b.WriteString(f.Name + ": " + *f.Value + "\n")
	}
	b.WriteString("\n")

	b.WriteString("--- [Resolution Details] ---\n")
	for _, f := range state.Details.ResolutionFields() {
		b.WriteString(f.Name + ": " + *f.Value + "\n")
	}
	b.WriteString("\n")

	b.WriteString("--- [Incident Timeline] ---\n")
	for _, e := range state.Entries {
		b.WriteString("id: " + strconv.FormatInt(e.ID, 10) + "\n")
		b.WriteString("timestamp: " + e.Timestamp + "\n")
		b.WriteString("status: " + e.Status + "\n")
		b.WriteString("notes: " + strings.ReplaceAll(e.Notes, "\n", `\n`) + "\n")
		b.WriteString("---\n")
	}

	return b.String()
}

// ParseDump reconstructs incident state from dump text. Unknown keys
// in the detail sections are dropped; timeline entries need at least
// id, timestamp and status to be accepted. Parsing is lenient and
// never fails, a dump with nothing recognizable simply yields an
// empty state.
func ParseDump(text string) *incident.State {
	state := incident.NewState("")
	state.Priority = ""

	section := ""
	var cur incident.Entry

	flush := func() {
		if cur.ID != 0 && cur.Timestamp != "" && cur.Status != "" {
			state.Entries = append(state.Entries, cur)
		}
		cur = incident.Entry{}
	}

	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, "[Document Title]"):
			section = "title"
			continue
		case strings.HasPrefix(line, "--- [Incident Details] ---"):
			section = "incident"
			continue
		case strings.HasPrefix(line, "--- [Resolution Details] ---"):
			section = "resolution"
			continue
		case strings.HasPrefix(line, "--- [Incident Timeline] ---"):
			section = "timeline"
			continue
		case strings.TrimSpace(line) == "---" && section == "timeline":
			flush()
			continue
		}
		if section == "" || strings.TrimSpace(line) == "" {
			continue
		}

		key, rest, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		value := strings.TrimSpace(rest)

		switch section {
		case "title":
			switch key {
			case "Priority":
				state.Priority = value
			case "Incident Number":
				state.Incident = value
			case "Short Description":
				state.Description = value
			}
		case "incident", "resolution":
			state.Details.SetByName(strings.TrimSpace(key), value)
		case "timeline":
			switch strings.TrimSpace(key) {
			case "id":
				cur.ID, _ = strconv.ParseInt(value, 10, 64)
			case "timestamp":
				cur.Timestamp = value
			case "status":
				cur.Status = value
			case "notes":
				cur.Notes = strings.ReplaceAll(value, `\n`, "\n")
			}
		}
	}

	return state
}
