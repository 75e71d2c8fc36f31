package api

import (
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/timeliner-io/timeliner/internal/audit"
	"github.com/timeliner-io/timeliner/internal/incident"
	"github.com/timeliner-io/timeliner/internal/report"
)

func (s *Server) handleGetIncident(w http.ResponseWriter, r *http.Request) {
	state, err := s.deps.Incidents.Load(r.PathValue("number"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleSaveIncident(w http.ResponseWriter, r *http.Request) {
	number := r.PathValue("number")

	var state incident.State
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	state.Normalize()
	// Derivation always runs server-side so stale client copies cannot
	// undo fields computed from the timeline.
	incident.ApplyDerived(&state.Details, state.Entries)

	if err := s.deps.Incidents.Save(number, &state); err != nil {
		writeStoreError(w, err)
		return
	}
	s.recordAudit(audit.ActionSave, number, "")
	writeJSON(w, http.StatusOK, &state)
}

type appendEntryRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

func (s *Server) handleAppendEntry(w http.ResponseWriter, r *http.Request) {
	number := r.PathValue("number")

	var req appendEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.Status == "" {
		req.Status = incident.StatusUpdate
	}
	if !incident.ValidStatus(req.Status) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown status"})
		return
	}

	state, err := s.deps.Incidents.Load(number)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	entry := incident.NewEntry(time.Now(), req.Status, req.Notes)
	state.Entries = append(state.Entries, entry)
	incident.ApplyDerived(&state.Details, state.Entries)

	if err := s.deps.Incidents.Save(number, state); err != nil {
		writeStoreError(w, err)
		return
	}
	s.recordAudit(audit.ActionEntry, number, req.Status)
	writeJSON(w, http.StatusCreated, entry)
}

type canRequest struct {
	Condition string `json:"condition"`
	Action    string `json:"action"`
	Need      string `json:"need"`
}

func (s *Server) handlePublishCAN(w http.ResponseWriter, r *http.Request) {
	number := r.PathValue("number")

	var req canRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	state, err := s.deps.Incidents.Load(number)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	notes := "Condition:\n" + req.Condition + "\n\nAction:\n" + req.Action + "\n\nNeed:\n" + req.Need
	entry := incident.NewEntry(time.Now(), incident.StatusCANReport, notes)
	state.Entries = append(state.Entries, entry)

	if err := s.deps.Incidents.Save(number, state); err != nil {
		writeStoreError(w, err)
		return
	}
	s.recordAudit(audit.ActionCAN, number, "")
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleListCAN(w http.ResponseWriter, r *http.Request) {
	state, err := s.deps.Incidents.Load(r.PathValue("number"))
	if err != nil {
		writeStoreError(w, err)
		return
	}

	reports := []incident.Entry{}
	for _, e := range state.Entries {
		if e.Status == incident.StatusCANReport {
			reports = append(reports, e)
		}
	}
	// Most recent first.
	sort.Slice(reports, func(i, j int) bool { return reports[i].ID > reports[j].ID })
	writeJSON(w, http.StatusOK, reports)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	state, err := s.deps.Incidents.Load(r.PathValue("number"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, report.RenderDump(state))
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 4<<20))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "read body"})
		return
	}

	state := report.ParseDump(string(body))
	if strings.TrimSpace(state.Incident) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "dump has no incident number"})
		return
	}
	incident.ApplyDerived(&state.Details, state.Entries)

	if err := s.deps.Incidents.Save(state.Incident, state); err != nil {
		writeStoreError(w, err)
		return
	}
	s.recordAudit(audit.ActionImport, state.Incident, "")
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	state, err := s.deps.Incidents.Load(r.PathValue("number"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, report.RenderAnalysis(state, time.Now()))
}

type summaryRequest struct {
	Type string `json:"type"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if s.deps.Assist == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no provider configured"})
		return
	}
	number := r.PathValue("number")

	var req summaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	state, err := s.deps.Incidents.Load(number)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	document := report.RenderAnalysis(state, time.Now())
	summary, err := s.deps.Assist.Summarize(r.Context(), document, req.Type)
	if err != nil {
		writeAssistError(w, err)
		return
	}
	s.recordAudit(audit.ActionSummary, number, req.Type)
	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}
