// Package session remembers the last incident the user worked on so
// the other tools can preload it. This is a convenience side channel;
// incident state never flows through it.
package session

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/timeliner-io/timeliner/internal/store"
)

// File is the session file name inside the state directory. The
// leading underscore keeps the retention sweep away from it.
const File = "_last-session.json"

type state struct {
	IncidentNumber string `json:"incidentNumber"`
}

// Store persists the last-used incident number.
type Store struct {
	dir string
}

// New creates a session store in dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path() string {
	return filepath.Join(s.dir, File)
}

// Get returns the last-used incident number, or "" when none is set.
func (s *Store) Get() (string, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", &store.StorageError{Op: "read session", Err: err}
	}
	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		return "", &store.StorageError{Op: "decode session", Err: err}
	}
	return st.IncidentNumber, nil
}

// Set records number as the last-used incident.
func (s *Store) Set(number string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return &store.StorageError{Op: "ensure dir", Err: err}
	}
	data, err := json.MarshalIndent(state{IncidentNumber: number}, "", "  ")
	if err != nil {
		return &store.StorageError{Op: "encode session", Err: err}
	}
	if err := atomic.WriteFile(s.path(), bytes.NewReader(data)); err != nil {
		return &store.StorageError{Op: "write session", Err: err}
	}
	return nil
}
