// Package store keeps the state carried from one refresh cycle to the next.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/BeatGlow/weather-display/freshness"
	"github.com/BeatGlow/weather-display/weather"
)

// ErrCorrupt is returned when persisted state cannot be decoded.
var ErrCorrupt = errors.New("store: corrupt state")

// State is what the station remembers between cycles.
type State struct {
	// Previous is the snapshot fetched last cycle, valid or not. Change detection compares
	// against it.
	Previous weather.Snapshot `json:"previous"`

	// LastGood is the most recent valid snapshot, shown while fetches fail.
	LastGood weather.Snapshot `json:"last_good"`

	// Battery is the percent read last cycle, -1 before the first cycle.
	Battery int `json:"battery"`

	// AgeMinutes is the data age computed last cycle, freshness.Unknown if not known.
	AgeMinutes int `json:"age_minutes"`

	// Failures counts consecutive failed fetches.
	Failures int `json:"failures"`

	// Rendered is set once the panel has been drawn at least once.
	Rendered bool `json:"rendered"`

	UpdatedAt time.Time `json:"updated_at"`
}

// Initial returns the state before the first cycle.
func Initial(hours int) State {
	return State{
		Previous:   weather.NewSnapshot(hours),
		LastGood:   weather.NewSnapshot(hours),
		Battery:    -1,
		AgeMinutes: freshness.Unknown,
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	c := s
	c.Previous = s.Previous.Clone()
	c.LastGood = s.LastGood.Clone()
	return c
}

// Store persists State.
type Store interface {
	// Load returns the stored state, or the initial state if nothing was saved yet.
	Load(ctx context.Context) (State, error)

	// Save replaces the stored state.
	Save(ctx context.Context, s State) error
}

// Memory is a Store that keeps state in process memory.
type Memory struct {
	mu    sync.RWMutex
	state State
}

// NewMemory returns an empty in-memory store for series of the given length.
func NewMemory(hours int) *Memory {
	return &Memory{state: Initial(hours)}
}

func (m *Memory) Load(_ context.Context) (State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Clone(), nil
}

func (m *Memory) Save(_ context.Context, s State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = s.Clone()
	return nil
}

var _ Store = (*Memory)(nil)
