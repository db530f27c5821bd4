package save

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/wricardo/sanandreas/game/engine"
)

// DefaultPath is the save file used when none is configured.
const DefaultPath = "savegame.json"

var _ engine.Store = (*FileStore)(nil)

// FileStore keeps one game in a JSON file.
type FileStore struct {
	path  string
	fresh Fresh
	log   zerolog.Logger
}

// NewFileStore creates a store for path. fresh builds the default world
// used while decoding.
func NewFileStore(path string, fresh Fresh, log zerolog.Logger) *FileStore {
	if path == "" {
		path = DefaultPath
	}
	return &FileStore{path: path, fresh: fresh, log: log.With().Str("path", path).Logger()}
}

// Path returns the save file location.
func (f *FileStore) Path() string { return f.path }

// Save writes the state, replacing the previous file atomically.
func (f *FileStore) Save(s *engine.State) error {
	data, err := Marshal(s)
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create save directory: %w", err)
		}
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write save file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace save file: %w", err)
	}
	f.log.Debug().Int("tick", s.Tick).Int("bytes", len(data)).Msg("save written")
	return nil
}

// Load reads and rebuilds the saved state.
func (f *FileStore) Load() (*engine.State, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoSave, f.path)
	}
	if err != nil {
		return nil, fmt.Errorf("read save file: %w", err)
	}
	s, err := Decode(data, f.fresh)
	if err != nil {
		f.log.Warn().Err(err).Msg("decode save")
		return nil, err
	}
	return s, nil
}
