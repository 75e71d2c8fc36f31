package incident

import (
	"regexp"
	"strings"
)

var (
	changeNumberRe = regexp.MustCompile(`(?i)CHG[A-Z0-9]*`)
	engagedRe      = regexp.MustCompile(`(?i)(.*?)\s+(paged out|was paged out|joined the call|joined the bridge)`)
)

// DeriveResolution extracts the resolution text from the first Resolved
// Comms entry on the timeline. Only that entry is inspected: when its
// notes lack a "* Current update" line the result is empty, regardless
// of later entries. The prefix is stripped along with an optional
// leading colon.
func DeriveResolution(entries []Entry) string {
	for _, e := range entries {
		if e.Status != StatusResolvedComms {
			continue
		}
		for _, line := range strings.Split(e.Notes, "\n") {
			trimmed := strings.TrimSpace(line)
			if strings.HasPrefix(strings.ToLower(trimmed), "* current update") {
				rest := trimmed[len("* current update"):]
				rest = strings.TrimSpace(rest)
				rest = strings.TrimPrefix(rest, ":")
				return strings.TrimSpace(rest)
			}
		}
		return ""
	}
	return ""
}

// DeriveCausedByChange reports whether the timeline attributes the
// incident to a change. The first Caused by Change entry wins; its
// notes are carried verbatim after the "Yes - " marker, even when empty.
func DeriveCausedByChange(entries []Entry) string {
	for _, e := range entries {
		if e.Status == StatusCausedByChange {
			return "Yes - " + e.Notes
		}
	}
	return "No"
}

// DeriveResolvedByChange returns the first change number (CHG...) found
// in the notes of the first Resolved by Change entry, case preserved.
func DeriveResolvedByChange(entries []Entry) string {
	for _, e := range entries {
		if e.Status == StatusResolvedByChange {
			return changeNumberRe.FindString(e.Notes)
		}
	}
	return ""
}

// DeriveConcernRecommendation joins every Concern and Recommendation
// entry, in timeline order, as "<status>: <notes>" lines. Empty notes
// render as N/A.
func DeriveConcernRecommendation(entries []Entry) string {
	var lines []string
	for _, e := range entries {
		if e.Status != StatusConcern && e.Status != StatusRecommendation {
			continue
		}
		notes := e.Notes
		if strings.TrimSpace(notes) == "" {
			notes = "N/A"
		}
		lines = append(lines, e.Status+": "+notes)
	}
	return strings.Join(lines, "\n")
}

// ExtractWorkgroups scans Update and Action entries for lines that
// mention a team paging out or joining the bridge and returns the
// captured names in first-seen order, deduplicated. A name containing
// ":" keeps only the segment after the last colon.
func ExtractWorkgroups(entries []Entry) []string {
	var names []string
	seen := make(map[string]bool)
	for _, e := range entries {
		if e.Status != StatusUpdate && e.Status != StatusAction {
			continue
		}
		for _, line := range strings.Split(e.Notes, "\n") {
			m := engagedRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			name := m[1]
			if i := strings.LastIndex(name, ":"); i >= 0 {
				name = name[i+1:]
			}
			name = strings.TrimSpace(name)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// ApplyDerived writes the four derived resolution fields into details
// and unions newly extracted workgroups into the engaged-workgroups
// field. It reports whether any value actually changed, so callers can
// skip a save when the derivation is already up to date.
func ApplyDerived(details *Details, entries []Entry) bool {
	changed := false
	set := func(dst *string, value string) {
		if *dst != value {
			*dst = value
			changed = true
		}
	}

	set(&details.Resolution, DeriveResolution(entries))
	set(&details.CausedByChange, DeriveCausedByChange(entries))
	set(&details.ResolvedByChange, DeriveResolvedByChange(entries))
	set(&details.ConcernRecommendation, DeriveConcernRecommendation(entries))

	// The workgroups field is only touched when extraction found names;
	// a manually entered value is otherwise left byte for byte.
	if extracted := ExtractWorkgroups(entries); len(extracted) > 0 {
		set(&details.Workgroups, mergeWorkgroups(details.Workgroups, extracted))
	}

	return changed
}

// mergeWorkgroups unions extracted names into an existing comma-
// separated value, preserving the existing order and appending new
// names in extraction order. Extraction is additive only; names already
// present are never removed.
func mergeWorkgroups(existing string, extracted []string) string {
	var names []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(existing, ",") {
		name := strings.TrimSpace(part)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	for _, name := range extracted {
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}
