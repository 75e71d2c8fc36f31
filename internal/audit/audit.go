// Package audit keeps a queryable record of state-changing operations
// in a SQLite database.
package audit

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Actions recorded by the service.
const (
	ActionSave    = "save"
	ActionImport  = "import"
	ActionEntry   = "entry"
	ActionCallout = "callout"
	ActionSummary = "summary"
	ActionCAN     = "can"
)

// Event is one audit record.
type Event struct {
	ID       int64     `json:"id"`
	At       time.Time `json:"at"`
	Action   string    `json:"action"`
	Incident string    `json:"incident"`
	Detail   string    `json:"detail"`
}

// Filter narrows List results.
type Filter struct {
	Action   string
	Incident string
	Limit    int
}

// Store is a SQLite-backed audit log.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the audit database and runs migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("audit: open: %w", err)
	}

	// Enable WAL mode for better concurrent reads
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: wal: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS audit_events (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			at       TEXT NOT NULL,
			action   TEXT NOT NULL,
			incident TEXT NOT NULL DEFAULT '',
			detail   TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_audit_incident ON audit_events(incident);
		CREATE INDEX IF NOT EXISTS idx_audit_action ON audit_events(action);
	`)
	if err != nil {
		return fmt.Errorf("audit: migrate: %w", err)
	}
	return nil
}

// Record appends one event.
func (s *Store) Record(action, incident, detail string) error {
	_, err := s.db.Exec(`INSERT INTO audit_events (at, action, incident, detail) VALUES (?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339), action, incident, detail)
	if err != nil {
		return fmt.Errorf("audit: record: %w", err)
	}
	return nil
}

// List returns events newest first.
func (s *Store) List(filter Filter) ([]Event, error) {
	query := "SELECT id, at, action, incident, detail FROM audit_events WHERE 1=1"
	var args []any

	if filter.Action != "" {
		query += " AND action = ?"
		args = append(args, filter.Action)
	}
	if filter.Incident != "" {
		query += " AND incident = ?"
		args = append(args, filter.Incident)
	}
	query += " ORDER BY id DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("audit: list: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var at string
		if err := rows.Scan(&e.ID, &at, &e.Action, &e.Incident, &e.Detail); err != nil {
			return nil, fmt.Errorf("audit: scan: %w", err)
		}
		e.At, _ = time.Parse(time.RFC3339, at)
		events = append(events, e)
	}
	return events, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
