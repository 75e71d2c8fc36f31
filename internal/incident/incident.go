// Package incident defines the incident state model and the rules that
// derive report fields from free-text timeline entries.
package incident

import "time"

// Timeline entry statuses. The status drives which derivation rule, if
// any, consumes the entry.
const (
	StatusInitialReport    = "Initial Report"
	StatusUpdate           = "Update"
	StatusAction           = "Action"
	StatusComms            = "Comms"
	StatusResolvedComms    = "Resolved Comms"
	StatusCausedByChange   = "Caused by Change"
	StatusResolvedByChange = "Resolved by Change"
	StatusConcern          = "Concern"
	StatusRecommendation   = "Recommendation"
	StatusCANReport        = "CAN Report"
)

// Statuses lists every valid entry status in display order.
var Statuses = []string{
	StatusInitialReport,
	StatusUpdate,
	StatusAction,
	StatusComms,
	StatusResolvedComms,
	StatusCausedByChange,
	StatusResolvedByChange,
	StatusConcern,
	StatusRecommendation,
	StatusCANReport,
}

// Priorities available for an incident.
var Priorities = []string{"P1", "P2", "P3", "P4"}

// Details holds the fixed incident and resolution detail fields. The
// JSON names are the display names so existing state files load
// unchanged. Resolution, CausedByChange, ResolvedByChange and
// ConcernRecommendation are owned by the derivation engine; Workgroups
// is shared between manual edits and extraction.
type Details struct {
	IncidentNumber   string `json:"Incident Number"`
	Priority         string `json:"Priority"`
	IncidentManager  string `json:"Incident Manager"`
	TimelineScribe   string `json:"Timeline Scribe"`
	BridgeLink       string `json:"Bridge Link"`
	BusinessUnit     string `json:"NBCU Product/ Business Unit"`
	ImpactedDevices  string `json:"Impacted Devices"`
	ServicesImpacted string `json:"Services/Products Impacted"`
	Workgroups       string `json:"Workgroups or Individuals engaged"`
	ImpactStatement  string `json:"Impact Statement"`

	Resolution            string `json:"Resolution"`
	CausedByChange        string `json:"Caused by Change"`
	ResolvedByChange      string `json:"Resolved by Change"`
	RootCause             string `json:"Root Cause/Trigger"`
	RelatedToProblem      string `json:"Related to Problem"`
	Workaround            string `json:"Workaround"`
	ConcernRecommendation string `json:"Concern/Recommendation"`
	ProblemNumber         string `json:"Problem Number"`
	ProblemSummary        string `json:"Problem Summary"`
}

// Field pairs a detail field's display name with a pointer to its
// value, for ordered rendering and name-keyed assignment.
type Field struct {
	Name  string
	Value *string
}

// IncidentFields returns the incident-detail fields in display order.
func (d *Details) IncidentFields() []Field {
	return []Field{
		{"Incident Number", &d.IncidentNumber},
		{"Priority", &d.Priority},
		{"Incident Manager", &d.IncidentManager},
		{"Timeline Scribe", &d.TimelineScribe},
		{"Bridge Link", &d.BridgeLink},
		{"NBCU Product/ Business Unit", &d.BusinessUnit},
		{"Impacted Devices", &d.ImpactedDevices},
		{"Services/Products Impacted", &d.ServicesImpacted},
		{"Workgroups or Individuals engaged", &d.Workgroups},
		{"Impact Statement", &d.ImpactStatement},
	}
}

// ResolutionFields returns the resolution-detail fields in display
// order.
func (d *Details) ResolutionFields() []Field {
	return []Field{
		{"Resolution", &d.Resolution},
		{"Caused by Change", &d.CausedByChange},
		{"Resolved by Change", &d.ResolvedByChange},
		{"Root Cause/Trigger", &d.RootCause},
		{"Related to Problem", &d.RelatedToProblem},
		{"Workaround", &d.Workaround},
		{"Concern/Recommendation", &d.ConcernRecommendation},
		{"Problem Number", &d.ProblemNumber},
		{"Problem Summary", &d.ProblemSummary},
	}
}

// SetByName assigns value to the field with the given display name. It
// reports whether the name was recognized.
func (d *Details) SetByName(name, value string) bool {
	for _, f := range d.IncidentFields() {
		if f.Name == name {
			*f.Value = value
			return true
		}
	}
	for _, f := range d.ResolutionFields() {
		if f.Name == name {
			*f.Value = value
			return true
		}
	}
	return false
}

// Entry is one timestamped note in an incident timeline. The ID is
// creation-time derived (unix milliseconds) and acts as the stable
// identity and sort key. The timestamp is a display string and is never
// parsed back into a date.
type Entry struct {
	ID        int64  `json:"id"`
	Timestamp string `json:"timestamp"`
	Status    string `json:"status"`
	Notes     string `json:"notes"`
}

// State is the full durable record for one incident. JSON field names
// match the on-disk schema so existing state files load unchanged.
type State struct {
	Priority    string  `json:"titlePriority"`
	Incident    string  `json:"titleIncident"`
	Description string  `json:"titleDescription"`
	Details     Details `json:"incidentDetails"`
	Entries     []Entry `json:"timelineEntries"`
}

// NewState returns an empty state for the given incident number with
// the default P1 priority.
func NewState(number string) *State {
	return &State{
		Priority: "P1",
		Incident: number,
		Entries:  []Entry{},
	}
}

// Normalize repairs a state decoded from an external source.
func (s *State) Normalize() {
	if s.Entries == nil {
		s.Entries = []Entry{}
	}
}

// ValidStatus reports whether status is a known entry status.
func ValidStatus(status string) bool {
	for _, s := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}

// timestampLayout is the display format used on timeline entries.
const timestampLayout = "02-01-2006, 15:04"

// FormatTimestamp renders t as the UTC display timestamp used on
// timeline entries.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout) + " UTC"
}

// NewEntry creates an entry timestamped at t.
func NewEntry(t time.Time, status, notes string) Entry {
	return Entry{
		ID:        t.UnixMilli(),
		Timestamp: FormatTimestamp(t),
		Status:    status,
		Notes:     notes,
	}
}
