package service

import (
	"context"
	"sync"
	"time"

	"github.com/wricardo/sanandreas/game/config"
	"github.com/wricardo/sanandreas/game/engine"
	"github.com/wricardo/sanandreas/game/save"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	NewGame(ctx context.Context, scenario string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Command(ctx context.Context, sessionID, input string) (*CommandResult, error)
	Commands(ctx context.Context, sessionID string, inputs []string) (*BatchResult, error)
	Reset(ctx context.Context, sessionID string) (*Snapshot, error)

	// Game State
	Snapshot(ctx context.Context, sessionID string) (*Snapshot, error)
	History(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Scenarios
	ListScenarios(ctx context.Context) ([]*config.ScenarioInfo, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id, scenario string) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ScenarioCatalog resolves scenario names to worlds
type ScenarioCatalog interface {
	LoadScenario(name string) (*config.Scenario, error)
	ListScenarios() ([]*config.ScenarioInfo, error)
	NewWorld(name string) (*engine.State, error)
	Fresh(name string) save.Fresh
}

// Session represents an active game session
type Session struct {
	ID             string
	Scenario       string
	Engine         *engine.GameEngine
	CreatedAt      time.Time
	LastAccessedAt time.Time
	History        []HistoryEntry

	// mu guards the engine and the history while a command runs or the
	// session is written out.
	mu      sync.Mutex
	evicted bool
}

// Lock takes the session for a change or a write to storage.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session.
func (s *Session) Unlock() { s.mu.Unlock() }

// Evict marks the session as dropped from memory. The caller holds the lock.
func (s *Session) Evict() { s.evicted = true }

// Evicted reports whether the session was dropped from memory after it was
// looked up. The caller holds the lock.
func (s *Session) Evicted() bool { return s.evicted }

// MaxHistory bounds the command log kept per session.
const MaxHistory = 1000

// Record appends a command to the session log, dropping the oldest entries
// past MaxHistory.
func (s *Session) Record(input string, res engine.Result) HistoryEntry {
	seq := 1
	if n := len(s.History); n > 0 {
		seq = s.History[n-1].Seq + 1
	}
	entry := HistoryEntry{
		Seq:       seq,
		Input:     input,
		Tick:      res.Tick,
		TurnEnded: res.TurnEnded,
		Status:    res.Status,
		Messages:  res.Messages(),
		At:        time.Now().UTC(),
	}
	s.History = append(s.History, entry)
	if over := len(s.History) - MaxHistory; over > 0 {
		s.History = append([]HistoryEntry(nil), s.History[over:]...)
	}
	return entry
}
