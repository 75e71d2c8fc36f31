package api

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/timeliner-io/timeliner/internal/audit"
	"github.com/timeliner-io/timeliner/internal/incident"
	"github.com/timeliner-io/timeliner/internal/pager"
)

func (s *Server) handleListTeams(w http.ResponseWriter, _ *http.Request) {
	teams, err := s.deps.Teams.Load()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	sort.Strings(teams)
	writeJSON(w, http.StatusOK, teams)
}

func (s *Server) handleReplaceTeams(w http.ResponseWriter, r *http.Request) {
	var teams []string
	if err := json.NewDecoder(r.Body).Decode(&teams); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if err := s.deps.Teams.Save(teams); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"teams": len(teams)})
}

type addTeamRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleAddTeam(w http.ResponseWriter, r *http.Request) {
	var req addTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "team name cannot be empty"})
		return
	}

	teams, err := s.deps.Teams.Load()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	for _, t := range teams {
		if t == name {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "team already exists"})
			return
		}
	}

	teams = append(teams, name)
	sort.Strings(teams)
	if err := s.deps.Teams.Save(teams); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, teams)
}

type calloutRequest struct {
	Incident    string `json:"incident"`
	Team        string `json:"team"`
	Summary     string `json:"summary"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

// handleCallout pages a team and records the action on the incident
// timeline. The timeline entry is the source of record; page delivery
// failures are reported but do not undo the entry.
func (s *Server) handleCallout(w http.ResponseWriter, r *http.Request) {
	var req calloutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if strings.TrimSpace(req.Team) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "team is required"})
		return
	}

	state, err := s.deps.Incidents.Load(req.Incident)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	entry := incident.NewEntry(time.Now(), incident.StatusAction, req.Team+" was paged out.")
	state.Entries = append(state.Entries, entry)
	incident.ApplyDerived(&state.Details, state.Entries)

	if err := s.deps.Incidents.Save(req.Incident, state); err != nil {
		writeStoreError(w, err)
		return
	}
	s.recordAudit(audit.ActionCallout, req.Incident, req.Team)

	delivered := false
	if s.deps.Pager != nil {
		c := pager.Callout{
			Team:        req.Team,
			Summary:     req.Summary,
			Severity:    req.Severity,
			Description: req.Description,
		}
		if err := s.deps.Pager.Page(r.Context(), c); err != nil {
			s.logger.Warn("callout page failed", "team", req.Team, "error", err)
		} else {
			delivered = true
		}
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"entry":     entry,
		"delivered": delivered,
	})
}
