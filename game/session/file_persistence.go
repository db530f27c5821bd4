package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/sanandreas/game/save"
	"github.com/wricardo/sanandreas/game/service"
)

// Envelope files end in envelopeExt; manual save slots share the directory
// with slotExt.
const (
	envelopeExt = ".json"
	slotExt     = ".save.json"
)

// FilePersistence implements SessionPersistence using file system storage
type FilePersistence struct {
	sessionsDir string
	scenarios   service.ScenarioCatalog
}

// NewFilePersistence creates a new file-based session persistence layer
func NewFilePersistence(sessionsDir string, scenarios service.ScenarioCatalog) (*FilePersistence, error) {
	if err := os.MkdirAll(sessionsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}
	return &FilePersistence{sessionsDir: sessionsDir, scenarios: scenarios}, nil
}

// Dir returns the sessions directory.
func (fp *FilePersistence) Dir() string { return fp.sessionsDir }

// Save persists a session to a JSON file
func (fp *FilePersistence) Save(session *service.Session) error {
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}

	game, err := save.Marshal(session.Engine.GetState())
	if err != nil {
		return fmt.Errorf("failed to encode game: %w", err)
	}
	data := PersistedSessionData{
		ID:             session.ID,
		Scenario:       session.Scenario,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		UpkeepApplied:  session.Engine.UpkeepApplied(),
		History:        session.History,
		Game:           game,
	}
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	path := fp.getFilePath(session.ID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, jsonData, 0o644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}

// Load reads a session file and rebuilds its world from the scenario it
// was started from
func (fp *FilePersistence) Load(id string) (*Record, error) {
	jsonData, err := os.ReadFile(fp.getFilePath(id))
	if os.IsNotExist(err) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var data PersistedSessionData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}
	if data.ID == "" {
		data.ID = id
	}

	state, err := save.Decode(data.Game, fp.scenarios.Fresh(data.Scenario))
	if err != nil {
		return nil, fmt.Errorf("failed to restore game of session %s: %w", id, err)
	}

	return &Record{
		ID:             data.ID,
		Scenario:       data.Scenario,
		CreatedAt:      data.CreatedAt,
		LastAccessedAt: data.LastAccessedAt,
		UpkeepApplied:  data.UpkeepApplied,
		History:        data.History,
		State:          state,
	}, nil
}

// Delete removes a session file and its manual save slot
func (fp *FilePersistence) Delete(id string) error {
	if !fp.Exists(id) {
		return ErrSessionNotFound
	}
	if err := os.Remove(fp.getFilePath(id)); err != nil {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	if err := os.Remove(fp.SlotPath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove save slot: %w", err)
	}
	return nil
}

// ListAll returns all persisted session IDs
func (fp *FilePersistence) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fp.sessionsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	var sessionIDs []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasSuffix(name, slotExt) || !strings.HasSuffix(name, envelopeExt) {
			continue
		}
		sessionIDs = append(sessionIDs, strings.TrimSuffix(name, envelopeExt))
	}
	return sessionIDs, nil
}

// Exists checks if a session file exists
func (fp *FilePersistence) Exists(id string) bool {
	_, err := os.Stat(fp.getFilePath(id))
	return err == nil
}

// SlotPath is the file behind the in-game save and load commands of a
// session.
func (fp *FilePersistence) SlotPath(id string) string {
	return filepath.Join(fp.sessionsDir, id+slotExt)
}

func (fp *FilePersistence) getFilePath(id string) string {
	return filepath.Join(fp.sessionsDir, id+envelopeExt)
}
