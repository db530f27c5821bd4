package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/wricardo/sanandreas/game/config"
	"github.com/wricardo/sanandreas/game/engine"
)

// Errors returned by the service. ErrGameOver rejects commands sent to a
// finished game.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrGameOver        = errors.New("game is over")
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions  SessionManager
	scenarios ScenarioCatalog
	listeners []Listener
	log       zerolog.Logger
	mu        sync.RWMutex
}

// Option customizes the game service.
type Option func(*gameServiceImpl)

// WithLogger sets the service logger.
func WithLogger(l zerolog.Logger) Option { return func(s *gameServiceImpl) { s.log = l } }

// WithListener registers a callback run after every change of a world.
func WithListener(l Listener) Option {
	return func(s *gameServiceImpl) { s.listeners = append(s.listeners, l) }
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, scenarios ScenarioCatalog, opts ...Option) GameService {
	s := &gameServiceImpl{
		sessions:  sessions,
		scenarios: scenarios,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewGame creates a new session playing the named scenario
func (s *gameServiceImpl) NewGame(ctx context.Context, scenario string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Create("", scenario)
	if err != nil {
		if errors.Is(err, config.ErrScenarioNotFound) {
			return nil, fmt.Errorf("scenario %q not found, available: %v: %w", scenario, s.scenarioIDs(), err)
		}
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	s.log.Info().Str("session", sess.ID).Str("scenario", sess.Scenario).Msg("new game")
	return sessionInfo(sess), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.acquire(sessionID)
	if err != nil {
		return nil, err
	}
	defer sess.Unlock()
	return sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		sess.Lock()
		result = append(result, sessionInfo(sess))
		sess.Unlock()
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return err
	}
	s.log.Info().Str("session", sessionID).Msg("session deleted")
	return nil
}

// Command runs one line of input against a session and auto-saves it
func (s *gameServiceImpl) Command(ctx context.Context, sessionID, input string) (*CommandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.acquire(sessionID)
	if err != nil {
		return nil, err
	}
	defer sess.Unlock()
	if sess.Engine.IsGameOver() {
		return nil, fmt.Errorf("session %s: %w", sess.ID, ErrGameOver)
	}

	res := s.step(sess, input)
	s.persist(sess)

	snap := NewSnapshot(sess)
	s.publish(snap)
	return &CommandResult{
		Input:     input,
		TurnEnded: res.TurnEnded,
		Events:    res.Events,
		Messages:  res.Messages(),
		Snapshot:  snap,
	}, nil
}

// Commands runs inputs in order, stopping early when the game ends
func (s *gameServiceImpl) Commands(ctx context.Context, sessionID string, inputs []string) (*BatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.acquire(sessionID)
	if err != nil {
		return nil, err
	}
	defer sess.Unlock()

	result := &BatchResult{Requested: len(inputs), Results: make([]CommandSummary, 0, len(inputs))}
	if len(inputs) > MaxBatchCommands {
		result.Truncated = true
		result.Limit = MaxBatchCommands
		inputs = inputs[:MaxBatchCommands]
	}

	for i, input := range inputs {
		if err := ctx.Err(); err != nil {
			result.StoppedReason = "canceled"
			result.StoppedOn = i + 1
			break
		}
		if sess.Engine.IsGameOver() {
			result.StoppedReason = string(sess.Engine.Status())
			result.StoppedOn = i + 1
			break
		}
		res := s.step(sess, input)
		result.Executed++
		if res.TurnEnded {
			result.TurnsEnded++
		}
		result.Results = append(result.Results, CommandSummary{
			Idx:       i + 1,
			Input:     input,
			TurnEnded: res.TurnEnded,
			Tick:      res.Tick,
			Messages:  res.Messages(),
		})
	}

	if result.Executed > 0 {
		s.persist(sess)
	}
	result.Snapshot = NewSnapshot(sess)
	s.publish(result.Snapshot)
	return result, nil
}

// Reset replaces the session's world with a fresh copy of its scenario
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.acquire(sessionID)
	if err != nil {
		return nil, err
	}
	defer sess.Unlock()
	if err := sess.Engine.Reset(); err != nil {
		return nil, fmt.Errorf("failed to reset session %s: %w", sess.ID, err)
	}
	sess.History = nil
	s.persist(sess)

	snap := NewSnapshot(sess)
	s.publish(snap)
	return snap, nil
}

// Snapshot returns the current view of a session's world
func (s *gameServiceImpl) Snapshot(ctx context.Context, sessionID string) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.acquire(sessionID)
	if err != nil {
		return nil, err
	}
	defer sess.Unlock()
	return NewSnapshot(sess), nil
}

// History returns the paginated command log of a session
func (s *gameServiceImpl) History(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.acquire(sessionID)
	if err != nil {
		return nil, err
	}
	defer sess.Unlock()

	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Page <= 0 {
		opts.Page = 1
	}

	entries := append([]HistoryEntry(nil), sess.History...)
	if strings.EqualFold(opts.Order, "desc") {
		for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
			entries[i], entries[j] = entries[j], entries[i]
		}
	}

	total := len(entries)
	pages := (total + opts.Limit - 1) / opts.Limit
	start := (opts.Page - 1) * opts.Limit
	if start > total {
		start = total
	}
	end := start + opts.Limit
	if end > total {
		end = total
	}

	return &HistoryResponse{
		Entries:     entries[start:end],
		Total:       total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  pages,
		HasNext:     opts.Page < pages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListScenarios lists the scenarios a game can be started from
func (s *gameServiceImpl) ListScenarios(ctx context.Context) ([]*config.ScenarioInfo, error) {
	return s.scenarios.ListScenarios()
}

// acquire looks a session up and locks it. A session evicted while the lock
// was awaited is looked up again, which reloads it from storage.
func (s *gameServiceImpl) acquire(id string) (*Session, error) {
	for {
		sess, err := s.sessions.Get(id)
		if err != nil {
			return nil, err
		}
		sess.Lock()
		if !sess.Evicted() {
			return sess, nil
		}
		sess.Unlock()
	}
}

func (s *gameServiceImpl) step(sess *Session, input string) engine.Result {
	res := sess.Engine.Step(input)
	sess.Record(input, res)
	s.log.Debug().
		Str("session", sess.ID).
		Str("command", input).
		Int("tick", res.Tick).
		Bool("turn", res.TurnEnded).
		Msg("command")
	return res
}

// persist stores the session. Failures are logged; the command already
// happened and is not rolled back.
func (s *gameServiceImpl) persist(sess *Session) {
	if err := s.sessions.UpdateLastAccessed(sess.ID); err != nil {
		s.log.Warn().Err(err).Str("session", sess.ID).Msg("touch session")
	}
	if err := s.sessions.Save(sess.ID); err != nil {
		s.log.Warn().Err(err).Str("session", sess.ID).Msg("auto-save session")
	}
}

func (s *gameServiceImpl) publish(snap *Snapshot) {
	for _, l := range s.listeners {
		l(snap)
	}
}

func (s *gameServiceImpl) scenarioIDs() []string {
	infos, err := s.scenarios.ListScenarios()
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(infos))
	for _, info := range infos {
		ids = append(ids, info.ID)
	}
	return ids
}
