package service

import (
	"time"

	"github.com/wricardo/sanandreas/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string    `json:"id"`
	Scenario       string    `json:"scenario"`
	CreatedAt      time.Time `json:"created_at"`
	LastAccessedAt time.Time `json:"last_accessed_at"`
	Commands       int       `json:"commands"`
	Snapshot       *Snapshot `json:"snapshot"`
}

// Snapshot is the observable state of one world
type Snapshot struct {
	SessionID string         `json:"session_id"`
	Scenario  string         `json:"scenario"`
	Tick      int            `json:"tick"`
	Clock     string         `json:"clock"`
	Status    engine.Status  `json:"status"`
	Player    PlayerView     `json:"player"`
	Threat    string         `json:"threat"`
	Nearest   *EnemyView     `json:"nearest_enemy,omitempty"`
	Missions  []MissionView  `json:"missions"`
	Prompt    *engine.Prompt `json:"prompt,omitempty"`
	Map       []string       `json:"map"`
	HUD       []string       `json:"hud"`
}

// PlayerView summarizes the player for clients
type PlayerView struct {
	Name         string          `json:"name"`
	Position     engine.Position `json:"position"`
	Health       int             `json:"health"`
	MaxHealth    int             `json:"max_health"`
	Stamina      float64         `json:"stamina"`
	MaxStamina   float64         `json:"max_stamina"`
	Money        int             `json:"money"`
	WantedLevel  int             `json:"wanted_level"`
	Hunger       int             `json:"hunger"`
	Thirst       int             `json:"thirst"`
	DrivingSkill int             `json:"driving_skill"`
	WeaponSkill  int             `json:"weapon_skill"`
	Weapon       string          `json:"weapon,omitempty"`
	Vehicle      string          `json:"vehicle,omitempty"`
	Mission      string          `json:"mission,omitempty"`
	Objective    string          `json:"objective,omitempty"`
	Inventory    []string        `json:"inventory"`
	Completed    []string        `json:"missions_completed"`
	Discovered   int             `json:"discovered_cells"`
}

// EnemyView describes the closest live enemy
type EnemyView struct {
	Name     string          `json:"name"`
	Faction  string          `json:"faction"`
	Health   int             `json:"health"`
	Position engine.Position `json:"position"`
	Distance int             `json:"distance"`
}

// MissionView is one node of the mission graph
type MissionView struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Objective     string   `json:"objective"`
	Prerequisites []string `json:"prerequisites,omitempty"`
	Completed     bool     `json:"completed"`
	Active        bool     `json:"active"`
}

// CommandResult contains the result of one command
type CommandResult struct {
	Input     string         `json:"input"`
	TurnEnded bool           `json:"turn_ended"`
	Events    []engine.Event `json:"events"`
	Messages  []string       `json:"messages"`
	Snapshot  *Snapshot      `json:"snapshot"`
}

// BatchResult contains the result of several commands sent at once
type BatchResult struct {
	Requested     int              `json:"requested"`
	Executed      int              `json:"executed"`
	TurnsEnded    int              `json:"turns_ended"`
	Truncated     bool             `json:"truncated,omitempty"`
	Limit         int              `json:"limit,omitempty"`
	StoppedReason string           `json:"stopped_reason,omitempty"`
	StoppedOn     int              `json:"stopped_on,omitempty"`
	Results       []CommandSummary `json:"results"`
	Snapshot      *Snapshot        `json:"snapshot"`
}

// CommandSummary is the compact record of one command inside a batch
type CommandSummary struct {
	Idx       int      `json:"idx"`
	Input     string   `json:"input"`
	TurnEnded bool     `json:"turn_ended"`
	Tick      int      `json:"tick"`
	Messages  []string `json:"messages"`
}

// MaxBatchCommands caps the commands accepted by one batch call.
const MaxBatchCommands = 100

// HistoryEntry is one command in a session's log
type HistoryEntry struct {
	Seq       int           `json:"seq"`
	Input     string        `json:"input"`
	Tick      int           `json:"tick"`
	TurnEnded bool          `json:"turn_ended"`
	Status    engine.Status `json:"status"`
	Messages  []string      `json:"messages"`
	At        time.Time     `json:"at"`
}

// HistoryOptions configures history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated command history
type HistoryResponse struct {
	Entries     []HistoryEntry `json:"entries"`
	Total       int            `json:"total"`
	Page        int            `json:"page"`
	PageSize    int            `json:"page_size"`
	TotalPages  int            `json:"total_pages"`
	HasNext     bool           `json:"has_next"`
	HasPrevious bool           `json:"has_previous"`
}

// Listener receives the snapshot of a world after it changed.
type Listener func(*Snapshot)
