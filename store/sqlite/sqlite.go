// Package sqlite persists station state in a SQLite database, so a restart does not force a
// redundant panel refresh.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/BeatGlow/weather-display/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS station_state (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	state TEXT NOT NULL,
	updated_at DATETIME NOT NULL
);
`

// Store implements store.Store with a single-row SQLite table.
type Store struct {
	mu    sync.Mutex
	db    *sql.DB
	hours int
}

// Open opens (or creates) the database at path. hours is the precipitation series length used
// for the initial state.
func Open(path string, hours int) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err = db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{db: db, hours: hours}, nil
}

// Load returns the saved state, or the initial state when none was saved. A state saved with a
// different series length is discarded.
func (s *Store) Load(ctx context.Context) (store.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var data string
	err := s.db.QueryRowContext(ctx, `SELECT state FROM station_state WHERE id = 1`).Scan(&data)
	if err == sql.ErrNoRows {
		return store.Initial(s.hours), nil
	}
	if err != nil {
		return store.State{}, fmt.Errorf("failed to query state: %w", err)
	}

	var state store.State
	if err = json.Unmarshal([]byte(data), &state); err != nil {
		return store.State{}, fmt.Errorf("%w: %v", store.ErrCorrupt, err)
	}
	if state.Previous.Hours() != s.hours || state.LastGood.Hours() != s.hours {
		return store.Initial(s.hours), nil
	}
	return state, nil
}

// Save replaces the saved state.
func (s *Store) Save(ctx context.Context, state store.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	query := `
		INSERT INTO station_state (id, state, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at
	`
	if _, err = s.db.ExecContext(ctx, query, string(data), time.Now().UTC().Format("2006-01-02 15:04:05")); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

var _ store.Store = (*Store)(nil)
