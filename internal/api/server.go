// Package api exposes the incident timeline service over REST.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/timeliner-io/timeliner/internal/assist"
	"github.com/timeliner-io/timeliner/internal/audit"
	"github.com/timeliner-io/timeliner/internal/kb"
	"github.com/timeliner-io/timeliner/internal/logbuf"
	"github.com/timeliner-io/timeliner/internal/pager"
	"github.com/timeliner-io/timeliner/internal/session"
	"github.com/timeliner-io/timeliner/internal/store"
)

// LogQuerier abstracts log entry querying to avoid coupling to logbuf
// directly.
type LogQuerier interface {
	Query(since time.Time, minLevel slog.Level, limit int) []logbuf.Entry
}

// Config holds API server configuration.
type Config struct {
	Host string
	Port int
	Key  string // API key for Bearer auth
}

// Deps carries the services the API serves. Assist, Fetcher, Pager,
// Audit and Logs are optional; the matching endpoints degrade
// gracefully when they are nil.
type Deps struct {
	Incidents *store.Incidents
	Teams     *store.Teams
	Session   *session.Store
	Assist    *assist.Service
	Fetcher   *kb.Fetcher
	Pager     pager.Pager
	Audit     *audit.Store
	Logs      LogQuerier
}

// Server is the timeliner REST API server.
type Server struct {
	deps   Deps
	cfg    Config
	logger *slog.Logger
	srv    *http.Server
}

// NewServer creates a new API server.
func NewServer(deps Deps, cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		deps:   deps,
		cfg:    cfg,
		logger: logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", s.handleHealth)

	mux.HandleFunc("GET /api/incidents/{number}", s.requireAuth(s.handleGetIncident))
	mux.HandleFunc("PUT /api/incidents/{number}", s.requireAuth(s.handleSaveIncident))
	mux.HandleFunc("POST /api/incidents/{number}/entries", s.requireAuth(s.handleAppendEntry))
	mux.HandleFunc("GET /api/incidents/{number}/can", s.requireAuth(s.handleListCAN))
	mux.HandleFunc("POST /api/incidents/{number}/can", s.requireAuth(s.handlePublishCAN))
	mux.HandleFunc("GET /api/incidents/{number}/export", s.requireAuth(s.handleExport))
	mux.HandleFunc("POST /api/incidents/import", s.requireAuth(s.handleImport))
	mux.HandleFunc("GET /api/incidents/{number}/analysis", s.requireAuth(s.handleAnalysis))
	mux.HandleFunc("POST /api/incidents/{number}/summary", s.requireAuth(s.handleSummary))

	mux.HandleFunc("GET /api/teams", s.requireAuth(s.handleListTeams))
	mux.HandleFunc("PUT /api/teams", s.requireAuth(s.handleReplaceTeams))
	mux.HandleFunc("POST /api/teams", s.requireAuth(s.handleAddTeam))
	mux.HandleFunc("POST /api/callout", s.requireAuth(s.handleCallout))

	mux.HandleFunc("POST /api/assist/grammar", s.requireAuth(s.handleGrammar))
	mux.HandleFunc("POST /api/assist/simplify", s.requireAuth(s.handleSimplify))
	mux.HandleFunc("POST /api/assist/comms", s.requireAuth(s.handleComms))
	mux.HandleFunc("POST /api/kb/fetch", s.requireAuth(s.handleKBFetch))

	mux.HandleFunc("GET /api/session", s.requireAuth(s.handleGetSession))
	mux.HandleFunc("PUT /api/session", s.requireAuth(s.handlePutSession))

	mux.HandleFunc("GET /api/logs", s.requireAuth(s.handleGetLogs))
	mux.HandleFunc("GET /api/audit", s.requireAuth(s.handleGetAudit))

	s.srv = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           s.corsMiddleware(s.requestIDMiddleware(mux)),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Start begins listening. Blocks until context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.srv.Shutdown(shutCtx)
	}()

	s.logger.Info("api server starting", "addr", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api server: %w", err)
	}
	return nil
}

// Handler returns the underlying http.Handler for testing.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// --- Middleware ---

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		s.logger.Debug("request", "id", id, "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.Key == "" {
			next(w, r)
			return
		}
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") || strings.TrimPrefix(auth, "Bearer ") != s.cfg.Key {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		next(w, r)
	}
}

// --- Shared handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetLogs(w http.ResponseWriter, r *http.Request) {
	if s.deps.Logs == nil {
		writeJSON(w, http.StatusOK, []logbuf.Entry{})
		return
	}

	limit := 200
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}

	minLevel := slog.LevelDebug
	switch strings.ToLower(r.URL.Query().Get("level")) {
	case "info":
		minLevel = slog.LevelInfo
	case "warn":
		minLevel = slog.LevelWarn
	case "error":
		minLevel = slog.LevelError
	}

	var since time.Time
	if v := r.URL.Query().Get("since"); v != "" {
		if ms, err := strconv.ParseInt(v, 10, 64); err == nil {
			since = time.UnixMilli(ms)
		}
	}

	entries := s.deps.Logs.Query(since, minLevel, limit)
	if entries == nil {
		entries = []logbuf.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleGetAudit(w http.ResponseWriter, r *http.Request) {
	if s.deps.Audit == nil {
		writeJSON(w, http.StatusOK, []audit.Event{})
		return
	}

	filter := audit.Filter{
		Action:   r.URL.Query().Get("action"),
		Incident: r.URL.Query().Get("incident"),
		Limit:    200,
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			filter.Limit = n
		}
	}

	events, err := s.deps.Audit.List(filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if events == nil {
		events = []audit.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeStoreError maps store error types onto HTTP statuses.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case store.IsValidation(err):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "incident not found"})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

// recordAudit logs the event without ever failing the request.
func (s *Server) recordAudit(action, incident, detail string) {
	if s.deps.Audit == nil {
		return
	}
	if err := s.deps.Audit.Record(action, incident, detail); err != nil {
		s.logger.Warn("audit record failed", "action", action, "error", err)
	}
}
