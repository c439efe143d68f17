// ABOUTME: SQLite-backed persistence for the scheduler's update timestamps
// ABOUTME: A single key/value table survives restarts so intervals resume correctly

package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"aggregator-core/core/domain"
)

const globalKey = "global"

// State implements the SchedulerState interface using SQLite.
type State struct {
	db *sql.DB
}

// NewState opens (or creates) the state database at filePath.
func NewState(filePath string) (*State, error) {
	if filePath == "" {
		filePath = "scheduler_state.db"
	}

	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	s := &State{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *State) initSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS scheduler_state (
			key TEXT PRIMARY KEY,
			updated_at TEXT NOT NULL
		);
	`
	_, err := s.db.Exec(query)
	return err
}

// Close releases the database handle.
func (s *State) Close() error {
	return s.db.Close()
}

// LastGlobalUpdate returns the timestamp of the last global run, or the zero
// time when no run has been recorded.
func (s *State) LastGlobalUpdate() (time.Time, error) {
	return s.get(globalKey)
}

// SetLastGlobalUpdate records the timestamp of a global run.
func (s *State) SetLastGlobalUpdate(t time.Time) error {
	return s.set(globalKey, t)
}

// LastFeedUpdate returns the timestamp of a feed's last custom-interval
// fetch, or the zero time when it never ran.
func (s *State) LastFeedUpdate(id domain.ID) (time.Time, error) {
	return s.get(feedKey(id))
}

// SetLastFeedUpdate records a feed's custom-interval fetch.
func (s *State) SetLastFeedUpdate(id domain.ID, t time.Time) error {
	return s.set(feedKey(id), t)
}

func feedKey(id domain.ID) string {
	return fmt.Sprintf("feed:%d", int64(id))
}

func (s *State) get(key string) (time.Time, error) {
	var value string
	err := s.db.QueryRow("SELECT updated_at FROM scheduler_state WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read state: %w", err)
	}

	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse stored timestamp: %w", err)
	}
	return t, nil
}

func (s *State) set(key string, t time.Time) error {
	query := `
		INSERT INTO scheduler_state (key, updated_at) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET updated_at = excluded.updated_at
	`
	_, err := s.db.Exec(query, key, t.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}
