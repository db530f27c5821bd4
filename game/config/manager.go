package config

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/wricardo/sanandreas/game/engine"
	"github.com/wricardo/sanandreas/game/save"
)

var (
	ErrScenarioNotFound = errors.New("scenario not found")
	ErrInvalidScenario  = errors.New("invalid scenario")
)

// DefaultScenario is the built-in story used when nothing else is chosen.
const DefaultScenario = "default"

//go:embed scenarios/*.yaml
var builtin embed.FS

// ScenarioInfo describes an available scenario.
type ScenarioInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Missions    int    `json:"missions"`
	Builtin     bool   `json:"builtin"`
}

// Manager handles scenario loading and caching
type Manager struct {
	scenarioDir string
	defaultName string
	scenarios   map[string]*Scenario
	mu          sync.RWMutex
}

// NewManager creates a scenario manager. Files in scenarioDir shadow the
// built-in scenarios of the same name; an empty dir uses built-ins only.
func NewManager(scenarioDir string) (*Manager, error) {
	if scenarioDir != "" {
		if _, err := os.Stat(scenarioDir); os.IsNotExist(err) {
			return nil, fmt.Errorf("scenario directory does not exist: %s", scenarioDir)
		}
	}
	m := &Manager{
		scenarioDir: scenarioDir,
		defaultName: DefaultScenario,
		scenarios:   make(map[string]*Scenario),
	}
	if _, err := m.LoadScenario(DefaultScenario); err != nil {
		return nil, fmt.Errorf("failed to load default scenario: %w", err)
	}
	return m, nil
}

// LoadScenario loads a scenario by name
func (m *Manager) LoadScenario(name string) (*Scenario, error) {
	name = strings.TrimSuffix(strings.TrimSuffix(name, ".yaml"), ".yml")
	if name == "" {
		name = m.DefaultName()
	}

	m.mu.RLock()
	if sc, exists := m.scenarios[name]; exists {
		m.mu.RUnlock()
		return sc, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if sc, exists := m.scenarios[name]; exists {
		return sc, nil
	}

	data, _, err := m.read(name)
	if err != nil {
		return nil, err
	}
	sc, err := ParseScenario(name, data)
	if err != nil {
		return nil, err
	}
	m.scenarios[name] = sc
	return sc, nil
}

// read finds the scenario file, preferring the scenario directory.
func (m *Manager) read(name string) ([]byte, bool, error) {
	if strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return nil, false, fmt.Errorf("%w: %q", ErrScenarioNotFound, name)
	}
	if m.scenarioDir != "" {
		for _, ext := range []string{".yaml", ".yml"} {
			data, err := os.ReadFile(filepath.Join(m.scenarioDir, name+ext))
			if err == nil {
				return data, false, nil
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, false, fmt.Errorf("failed to read scenario file: %w", err)
			}
		}
	}
	data, err := builtin.ReadFile("scenarios/" + name + ".yaml")
	if err != nil {
		return nil, false, fmt.Errorf("%w: %q", ErrScenarioNotFound, name)
	}
	return data, true, nil
}

// ListScenarios returns information about all available scenarios
func (m *Manager) ListScenarios() ([]*ScenarioInfo, error) {
	names := map[string]bool{}
	entries, err := fs.ReadDir(builtin, "scenarios")
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		names[strings.TrimSuffix(e.Name(), ".yaml")] = true
	}
	if m.scenarioDir != "" {
		entries, err := os.ReadDir(m.scenarioDir)
		if err != nil {
			return nil, fmt.Errorf("failed to read scenario directory: %w", err)
		}
		for _, e := range entries {
			ext := filepath.Ext(e.Name())
			if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
				continue
			}
			names[strings.TrimSuffix(e.Name(), ext)] = true
		}
	}

	var infos []*ScenarioInfo
	for name := range names {
		sc, err := m.LoadScenario(name)
		if err != nil {
			// Skip invalid scenarios
			continue
		}
		_, isBuiltin, _ := m.read(name)
		infos = append(infos, &ScenarioInfo{
			ID:          name,
			Name:        sc.Name,
			Description: sc.Description,
			Width:       sc.Width,
			Height:      sc.Height,
			Missions:    len(sc.Missions),
			Builtin:     isBuiltin,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos, nil
}

// DefaultName returns the scenario used for an empty name
func (m *Manager) DefaultName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultName
}

// SetDefault sets the default scenario by name
func (m *Manager) SetDefault(name string) error {
	sc, err := m.LoadScenario(name)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultName = sc.ID
	return nil
}

// RefreshCache drops every cached scenario so files are read again
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scenarios = make(map[string]*Scenario)
}

// SaveScenario writes a scenario to the scenario directory
func (m *Manager) SaveScenario(name string, sc *Scenario) error {
	if m.scenarioDir == "" {
		return errors.New("no scenario directory configured")
	}
	if err := ValidateScenario(sc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	data, err := yaml.Marshal(sc)
	if err != nil {
		return fmt.Errorf("failed to marshal scenario: %w", err)
	}
	path := filepath.Join(m.scenarioDir, strings.TrimSuffix(name, ".yaml")+".yaml")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write scenario file: %w", err)
	}

	m.mu.Lock()
	delete(m.scenarios, strings.TrimSuffix(name, ".yaml"))
	m.mu.Unlock()
	return nil
}

// NewWorld builds a fresh world from the named scenario
func (m *Manager) NewWorld(name string) (*engine.State, error) {
	sc, err := m.LoadScenario(name)
	if err != nil {
		return nil, err
	}
	return Build(sc)
}

// Fresh returns a world factory bound to one scenario
func (m *Manager) Fresh(name string) save.Fresh {
	return func() (*engine.State, error) { return m.NewWorld(name) }
}
