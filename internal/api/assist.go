package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/timeliner-io/timeliner/internal/provider"
)

type assistRequest struct {
	Text          string `json:"text"`
	Style         string `json:"style"`
	KnowledgeBase string `json:"knowledgeBase"`
}

func (s *Server) handleGrammar(w http.ResponseWriter, r *http.Request) {
	if s.deps.Assist == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no provider configured"})
		return
	}
	var req assistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
		return
	}

	out, err := s.deps.Assist.CorrectGrammar(r.Context(), req.Text, req.Style, req.KnowledgeBase)
	if err != nil {
		writeAssistError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": out})
}

func (s *Server) handleSimplify(w http.ResponseWriter, r *http.Request) {
	if s.deps.Assist == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no provider configured"})
		return
	}
	var req assistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
		return
	}

	out, err := s.deps.Assist.SimplifyText(r.Context(), req.Text, req.Style, req.KnowledgeBase)
	if err != nil {
		writeAssistError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": out})
}

type commsRequest struct {
	Analysis      string `json:"analysis"`
	KnowledgeBase string `json:"knowledgeBase"`
}

func (s *Server) handleComms(w http.ResponseWriter, r *http.Request) {
	if s.deps.Assist == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no provider configured"})
		return
	}
	var req commsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if strings.TrimSpace(req.Analysis) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "analysis is required"})
		return
	}

	out, err := s.deps.Assist.GenerateComms(r.Context(), req.Analysis, req.KnowledgeBase)
	if err != nil {
		writeAssistError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": out})
}

type kbFetchRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleKBFetch(w http.ResponseWriter, r *http.Request) {
	if s.deps.Fetcher == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "fetcher not configured"})
		return
	}
	var req kbFetchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "url is required"})
		return
	}

	text, err := s.deps.Fetcher.Fetch(r.Context(), req.URL)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

type sessionBody struct {
	Incident string `json:"incident"`
}

func (s *Server) handleGetSession(w http.ResponseWriter, _ *http.Request) {
	number, err := s.deps.Session.Get()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, sessionBody{Incident: number})
}

func (s *Server) handlePutSession(w http.ResponseWriter, r *http.Request) {
	var body sessionBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if err := s.deps.Session.Set(body.Incident); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, body)
}

// writeAssistError distinguishes provider overload, which the client
// may retry later, from other provider failures.
func writeAssistError(w http.ResponseWriter, err error) {
	if provider.Overloaded(err) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "model is overloaded, try again later"})
		return
	}
	writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
}
