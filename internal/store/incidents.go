// Package store persists incident state and the callout team roster as
// JSON files in a single flat directory.
package store

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"github.com/timeliner-io/timeliner/internal/incident"
)

// DefaultRetention is how long incident state files are kept before the
// sweep removes them.
const DefaultRetention = 15 * 24 * time.Hour

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9-]`)

// SanitizeIncidentNumber maps an incident number to its storage key:
// every character outside [a-zA-Z0-9-] becomes "_", then the whole key
// is lowercased. Distinct numbers can collide; the last writer wins.
func SanitizeIncidentNumber(number string) string {
	return strings.ToLower(unsafeChars.ReplaceAllString(number, "_"))
}

// Incidents is a file-backed incident state store. Each incident lives
// in <dir>/<sanitized>.json. There is no locking; concurrent saves of
// the same incident are last-write-wins.
type Incidents struct {
	dir       string
	retention time.Duration
	log       *slog.Logger
}

// NewIncidents creates a store rooted at dir. The directory is created
// lazily on first use. A retention of 0 means DefaultRetention.
func NewIncidents(dir string, retention time.Duration, logger *slog.Logger) *Incidents {
	if retention <= 0 {
		retention = DefaultRetention
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Incidents{dir: dir, retention: retention, log: logger}
}

// Dir returns the state directory path.
func (s *Incidents) Dir() string {
	return s.dir
}

func (s *Incidents) path(number string) string {
	return filepath.Join(s.dir, SanitizeIncidentNumber(number)+".json")
}

// ensureDir creates the state directory if needed and kicks off a
// best-effort retention sweep in the background.
func (s *Incidents) ensureDir() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &StorageError{Op: "ensure dir", Err: err}
	}
	go func() {
		if err := s.Sweep(); err != nil {
			s.log.Warn("retention sweep failed", "error", err)
		}
	}()
	return nil
}

// Save writes the incident state to disk, replacing any previous file
// for the same sanitized number.
func (s *Incidents) Save(number string, state *incident.State) error {
	if strings.TrimSpace(number) == "" {
		return &ValidationError{Msg: "incident number is required"}
	}
	if err := s.ensureDir(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return &StorageError{Op: "encode incident", Err: err}
	}
	if err := atomic.WriteFile(s.path(number), bytes.NewReader(data)); err != nil {
		return &StorageError{Op: "write incident", Err: err}
	}
	return nil
}

// Load reads the incident state for number. It returns ErrNotFound
// when no file exists.
func (s *Incidents) Load(number string) (*incident.State, error) {
	if strings.TrimSpace(number) == "" {
		return nil, &ValidationError{Msg: "incident number is required"}
	}
	if err := s.ensureDir(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(number))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, &StorageError{Op: "read incident", Err: err}
	}

	var state incident.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, &StorageError{Op: "decode incident", Err: err}
	}
	state.Normalize()
	return &state, nil
}

// Sweep deletes incident state files older than the retention window.
// Files whose name starts with "_" (the team roster, the session file)
// and non-JSON files are never touched. Sweep is idempotent and
// tolerates concurrent deletes.
func (s *Incidents) Sweep() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &StorageError{Op: "sweep read dir", Err: err}
	}

	cutoff := time.Now().Add(-s.retention)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, "_") || !strings.HasSuffix(name, ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			if !os.IsNotExist(err) {
				s.log.Warn("sweep stat failed", "file", name, "error", err)
			}
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			s.log.Warn("sweep remove failed", "file", name, "error", err)
			continue
		}
		s.log.Info("removed expired incident state", "file", name)
	}
	return nil
}
