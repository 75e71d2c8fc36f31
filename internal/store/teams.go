package store

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// TeamsFile is the roster file name inside the state directory. The
// leading underscore keeps the retention sweep away from it.
const TeamsFile = "_callout-teams.json"

// Teams is the callout team roster, a single JSON array of team names
// stored next to the incident state files.
type Teams struct {
	dir string
	log *slog.Logger
}

// NewTeams creates a roster store in dir.
func NewTeams(dir string, logger *slog.Logger) *Teams {
	if logger == nil {
		logger = slog.Default()
	}
	return &Teams{dir: dir, log: logger}
}

func (s *Teams) path() string {
	return filepath.Join(s.dir, TeamsFile)
}

// Load returns the roster. On first use, when no roster file exists
// yet, the built-in default list is written out and returned.
func (s *Teams) Load() ([]string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, &StorageError{Op: "ensure dir", Err: err}
	}

	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			seed := append([]string(nil), defaultTeamNames...)
			if err := s.Save(seed); err != nil {
				return nil, err
			}
			s.log.Info("seeded default team roster", "teams", len(seed))
			return seed, nil
		}
		return nil, &StorageError{Op: "read teams", Err: err}
	}

	var teams []string
	if err := json.Unmarshal(data, &teams); err != nil {
		return nil, &StorageError{Op: "decode teams", Err: err}
	}
	return teams, nil
}

// Save replaces the whole roster. Ordering and duplicates are the
// caller's concern; the store writes what it is given.
func (s *Teams) Save(teams []string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &StorageError{Op: "ensure dir", Err: err}
	}
	if teams == nil {
		teams = []string{}
	}
	data, err := json.MarshalIndent(teams, "", "  ")
	if err != nil {
		return &StorageError{Op: "encode teams", Err: err}
	}
	if err := atomic.WriteFile(s.path(), bytes.NewReader(data)); err != nil {
		return &StorageError{Op: "write teams", Err: err}
	}
	return nil
}
