package session

import (
	"encoding/json"
	"time"

	"github.com/wricardo/sanandreas/game/engine"
	"github.com/wricardo/sanandreas/game/service"
)

// SessionPersistence defines the interface for persisting sessions
type SessionPersistence interface {
	// Save persists a session to storage
	Save(session *service.Session) error

	// Load retrieves a stored session by ID, its world already decoded
	Load(id string) (*Record, error)

	// Delete removes a session from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// PersistedSessionData is the JSON envelope of a stored session. Game is a
// save document.
type PersistedSessionData struct {
	ID             string                 `json:"id"`
	Scenario       string                 `json:"scenario"`
	CreatedAt      time.Time              `json:"created_at"`
	LastAccessedAt time.Time              `json:"last_accessed_at"`
	UpkeepApplied  bool                   `json:"upkeep_applied,omitempty"`
	History        []service.HistoryEntry `json:"history,omitempty"`
	Game           json.RawMessage        `json:"game"`
}

// Record is a loaded envelope with its world rebuilt.
type Record struct {
	ID             string
	Scenario       string
	CreatedAt      time.Time
	LastAccessedAt time.Time
	UpkeepApplied  bool
	History        []service.HistoryEntry
	State          *engine.State
}
