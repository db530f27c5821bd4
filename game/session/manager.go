package session

import (
	"cmp"
	"errors"
	"fmt"
	"hash/fnv"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.uber.org/multierr"

	"github.com/wricardo/sanandreas/game/engine"
	"github.com/wricardo/sanandreas/game/save"
	"github.com/wricardo/sanandreas/game/service"
)

var (
	ErrSessionNotFound      = service.ErrSessionNotFound
	ErrSessionAlreadyExists = errors.New("session already exists")
	ErrInvalidSessionID     = errors.New("invalid session ID")
)

var validID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

var _ service.SessionManager = (*Manager)(nil)

// slotter is implemented by persistence layers that keep a manual save
// slot next to each session.
type slotter interface {
	SlotPath(id string) string
}

// Manager handles game session lifecycle
type Manager struct {
	sessions    map[string]*service.Session
	scenarios   service.ScenarioCatalog
	persistence SessionPersistence
	rules       engine.Rules
	seed        int64
	log         zerolog.Logger
	mu          sync.RWMutex
}

// Option customizes a Manager.
type Option func(*Manager)

// WithPersistence stores sessions through p.
func WithPersistence(p SessionPersistence) Option { return func(m *Manager) { m.persistence = p } }

// WithRules sets the tunables of every engine the manager builds.
func WithRules(r engine.Rules) Option { return func(m *Manager) { m.rules = r } }

// WithSeed makes every new engine's randomness start from seed mixed with
// its session ID. Zero keeps the engine default.
func WithSeed(seed int64) Option { return func(m *Manager) { m.seed = seed } }

// WithLogger sets the manager logger; engines log through it too.
func WithLogger(l zerolog.Logger) Option { return func(m *Manager) { m.log = l } }

// NewManager creates a new session manager
func NewManager(scenarios service.ScenarioCatalog, opts ...Option) *Manager {
	m := &Manager{
		sessions:  make(map[string]*service.Session),
		scenarios: scenarios,
		rules:     engine.DefaultRules(),
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create creates a new session with the given ID playing the named
// scenario. An empty id gets a generated one.
func (m *Manager) Create(id, scenario string) (*service.Session, error) {
	if id == "" {
		id = m.generateSessionID()
	}
	if !validID.MatchString(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSessionID, id)
	}

	sc, err := m.scenarios.LoadScenario(scenario)
	if err != nil {
		return nil, err
	}
	state, err := m.scenarios.NewWorld(sc.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to build world: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sessionExists(id) {
		return nil, ErrSessionAlreadyExists
	}

	eng, err := m.newEngine(id, sc.ID, state, false)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	now := time.Now().UTC()
	session := &service.Session{
		ID:             id,
		Scenario:       sc.ID,
		Engine:         eng,
		CreatedAt:      now,
		LastAccessedAt: now,
	}
	m.sessions[strings.ToLower(id)] = session

	if m.persistence != nil {
		if err := m.persistence.Save(session); err != nil {
			m.log.Warn().Err(err).Str("session", id).Msg("persist new session")
		}
	}
	return session, nil
}

// Get retrieves a session by ID (case-insensitive), loading it from
// persistence when it is not in memory
func (m *Manager) Get(id string) (*service.Session, error) {
	m.mu.RLock()
	session, exists := m.sessions[strings.ToLower(id)]
	m.mu.RUnlock()
	if exists {
		return session, nil
	}

	if m.persistence == nil || !validID.MatchString(id) || !m.persistence.Exists(id) {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if session, exists := m.sessions[strings.ToLower(id)]; exists {
		return session, nil
	}
	session, err := m.restore(id)
	if err != nil {
		return nil, fmt.Errorf("failed to load persisted session: %w", err)
	}
	m.sessions[strings.ToLower(id)] = session
	return session, nil
}

// GetOrCreate gets an existing session or creates a new one
func (m *Manager) GetOrCreate(id, scenario string) (*service.Session, error) {
	session, err := m.Get(id)
	if err == nil {
		return session, nil
	}
	if errors.Is(err, ErrSessionNotFound) {
		return m.Create(id, scenario)
	}
	return nil, err
}

// List returns all active sessions, oldest first
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	sortSessions(result)
	return result
}

// Delete removes a session from memory and storage
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lowerID := strings.ToLower(id)
	session, inMemory := m.sessions[lowerID]
	if inMemory {
		delete(m.sessions, lowerID)
		id = session.ID
	}

	if m.persistence != nil && validID.MatchString(id) && m.persistence.Exists(id) {
		if err := m.persistence.Delete(id); err != nil {
			return fmt.Errorf("failed to delete persisted session: %w", err)
		}
		return nil
	}
	if !inMemory {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return nil
}

// DeleteFromMemory removes a session from memory only (not from persistence)
func (m *Manager) DeleteFromMemory(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lowerID := strings.ToLower(id)
	if _, exists := m.sessions[lowerID]; !exists {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(m.sessions, lowerID)
	return nil
}

// UpdateLastAccessed updates the last accessed time for a session
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[strings.ToLower(id)]
	if !exists {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	session.LastAccessedAt = time.Now().UTC()
	return nil
}

// Save saves a specific session to persistence
func (m *Manager) Save(id string) error {
	if m.persistence == nil {
		return nil
	}

	m.mu.RLock()
	session, exists := m.sessions[strings.ToLower(id)]
	m.mu.RUnlock()
	if !exists {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return m.persistence.Save(session)
}

// CleanupExpiredSessions evicts sessions that haven't been accessed in the
// given duration. Persisted copies stay on disk and reload on demand.
func (m *Manager) CleanupExpiredSessions(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	m.mu.RLock()
	var idle []*service.Session
	for _, session := range m.sessions {
		if session.LastAccessedAt.Before(cutoff) {
			idle = append(idle, session)
		}
	}
	m.mu.RUnlock()

	removed := 0
	for _, session := range idle {
		if m.evict(session, cutoff) {
			removed++
		}
	}
	if removed > 0 {
		m.log.Info().Int("count", removed).Dur("max_age", maxAge).Msg("evicted idle sessions")
	}
	return removed
}

// evict writes an idle session out and drops it from memory. Sessions
// touched since they were picked, or that fail to save, stay.
func (m *Manager) evict(session *service.Session, cutoff time.Time) bool {
	session.Lock()
	defer session.Unlock()
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(session.ID)
	if m.sessions[key] != session || !session.LastAccessedAt.Before(cutoff) {
		return false
	}
	if m.persistence != nil {
		if err := m.persistence.Save(session); err != nil {
			m.log.Warn().Err(err).Str("session", session.ID).Msg("persist expiring session, keeping it")
			return false
		}
	}
	session.Evict()
	delete(m.sessions, key)
	return true
}

// Count returns the number of active sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// LoadPersistedSessions loads all persisted sessions into memory
func (m *Manager) LoadPersistedSessions() error {
	if m.persistence == nil {
		return nil
	}

	sessionIDs, err := m.persistence.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list persisted sessions: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	loadedCount := 0
	for _, id := range sessionIDs {
		if _, exists := m.sessions[strings.ToLower(id)]; exists {
			continue
		}
		session, err := m.restore(id)
		if err != nil {
			m.log.Warn().Err(err).Str("session", id).Msg("load persisted session")
			continue
		}
		m.sessions[strings.ToLower(id)] = session
		loadedCount++
	}

	if loadedCount > 0 {
		m.log.Info().Int("count", loadedCount).Msg("loaded persisted sessions")
	}
	return nil
}

// SaveAllSessions saves all in-memory sessions to persistence
func (m *Manager) SaveAllSessions() error {
	if m.persistence == nil {
		return nil
	}

	var errs error
	for _, session := range m.List() {
		session.Lock()
		err := m.persistence.Save(session)
		session.Unlock()
		if err != nil {
			m.log.Warn().Err(err).Str("session", session.ID).Msg("save session")
			errs = multierr.Append(errs, fmt.Errorf("session %s: %w", session.ID, err))
		}
	}
	return errs
}

// restore rebuilds a stored session. Callers hold the write lock.
func (m *Manager) restore(id string) (*service.Session, error) {
	rec, err := m.persistence.Load(id)
	if err != nil {
		return nil, err
	}
	eng, err := m.newEngine(rec.ID, rec.Scenario, rec.State, rec.UpkeepApplied)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}
	return &service.Session{
		ID:             rec.ID,
		Scenario:       rec.Scenario,
		Engine:         eng,
		CreatedAt:      rec.CreatedAt,
		LastAccessedAt: rec.LastAccessedAt,
		History:        rec.History,
	}, nil
}

func (m *Manager) newEngine(id, scenario string, state *engine.State, resumed bool) (*engine.GameEngine, error) {
	log := m.log.With().Str("session", id).Logger()
	fresh := m.scenarios.Fresh(scenario)
	opts := []engine.Option{
		engine.WithRules(m.rules),
		engine.WithLogger(log),
		engine.WithFreshWorld(fresh),
		engine.WithResumed(resumed),
	}
	if m.seed != 0 {
		opts = append(opts, engine.WithRandom(engine.NewRandom(m.sessionSeed(id))))
	}
	if sl, ok := m.persistence.(slotter); ok {
		opts = append(opts, engine.WithStore(save.NewFileStore(sl.SlotPath(id), fresh, log)))
	}
	return engine.NewEngine(state, opts...)
}

// sessionSeed mixes the session ID into the configured seed so sessions
// sharing a seed still play out differently, while one ID always replays
// the same way.
func (m *Manager) sessionSeed(id string) int64 {
	h := fnv.New64a()
	h.Write([]byte(strings.ToLower(id)))
	if s := m.seed ^ int64(h.Sum64()); s != 0 {
		return s
	}
	return m.seed
}

// generateSessionID returns a new random session ID
func (m *Manager) generateSessionID() string {
	return uuid.NewString()
}

func (m *Manager) sessionExists(id string) bool {
	if _, exists := m.sessions[strings.ToLower(id)]; exists {
		return true
	}
	return m.persistence != nil && m.persistence.Exists(id)
}

func sortSessions(s []*service.Session) {
	slices.SortFunc(s, func(a, b *service.Session) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
