package engine

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/wricardo/sanandreas/game/world"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *State
	GetRules() Rules
	Status() Status
	IsGameOver() bool
	Reset() error

	// Turn loop
	Begin() []Event
	Step(input string) Result
	Apply(cmd Command) Result
	Prompt() *Prompt

	// Rendering input
	View() world.View
}

// GameEngine implements the Engine interface
type GameEngine struct {
	state  *State
	rules  Rules
	rng    Random
	log    zerolog.Logger
	store  Store
	fresh  func() (*State, error)
	prompt *Prompt
	status Status

	// resumed marks the initial state's upkeep as already applied.
	resumed bool

	// upkeepAt is the tick whose periodic effects already ran.
	upkeepAt int
}

// Option customizes a GameEngine.
type Option func(*GameEngine)

func WithRules(r Rules) Option { return func(e *GameEngine) { e.rules = r } }
func WithRandom(r Random) Option { return func(e *GameEngine) { e.rng = r } }
func WithLogger(l zerolog.Logger) Option { return func(e *GameEngine) { e.log = l } }
func WithStore(s Store) Option { return func(e *GameEngine) { e.store = s } }

// WithFreshWorld sets the factory used by Reset and by a failed load.
func WithFreshWorld(f func() (*State, error)) Option {
	return func(e *GameEngine) { e.fresh = f }
}

// WithResumed tells the engine the periodic effects of the initial state's
// tick already ran before it was persisted.
func WithResumed(applied bool) Option { return func(e *GameEngine) { e.resumed = applied } }

// NewEngine creates a game engine around an initial state
func NewEngine(state *State, opts ...Option) (*GameEngine, error) {
	if state == nil || state.Player == nil {
		return nil, errors.New("engine: state with a player is required")
	}
	e := &GameEngine{
		rules:  DefaultRules(),
		log:    zerolog.Nop(),
		status: StatusPlaying,
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := ValidateRules(e.rules); err != nil {
		return nil, err
	}
	if e.rng == nil {
		e.rng = NewRandom(0)
	}
	e.setState(state, e.resumed)
	return e, nil
}

// GetState returns the current game state
func (e *GameEngine) GetState() *State { return e.state }

// GetRules returns the active tunables
func (e *GameEngine) GetRules() Rules { return e.rules }

// Status returns the lifecycle state
func (e *GameEngine) Status() Status { return e.status }

// IsGameOver returns whether the game is over
func (e *GameEngine) IsGameOver() bool { return e.status != StatusPlaying }

// UpkeepApplied reports whether the current tick's periodic effects ran.
func (e *GameEngine) UpkeepApplied() bool { return e.upkeepAt == e.state.Tick }

// Prompt returns the open menu, if any
func (e *GameEngine) Prompt() *Prompt { return e.prompt }

// View returns the render snapshot of the map
func (e *GameEngine) View() world.View {
	return e.state.Map.Snapshot(e.state.Player)
}

// Reset replaces the world with a fresh one
func (e *GameEngine) Reset() error {
	if e.fresh == nil {
		return errors.New("engine: no fresh world factory configured")
	}
	st, err := e.fresh()
	if err != nil {
		return err
	}
	e.setState(st, false)
	return nil
}

// Begin runs the periodic effects of the current tick once. Front-ends call
// it before asking for input; Step calls it too, so skipping it is harmless.
func (e *GameEngine) Begin() []Event {
	if e.IsGameOver() || e.upkeepAt == e.state.Tick {
		return nil
	}
	e.upkeepAt = e.state.Tick
	events := e.upkeep()
	if !e.state.Player.Alive() {
		events = append(events, e.lose())
	}
	return events
}

// Step resolves one line of input: an answer to the open prompt, or a
// command.
func (e *GameEngine) Step(input string) Result {
	return e.Apply(ParseCommand(input))
}

// Apply resolves one command.
func (e *GameEngine) Apply(cmd Command) Result {
	if e.IsGameOver() {
		return e.result([]Event{e.event(EventInfo, "The game is over.")}, false)
	}
	events := e.Begin()
	if e.IsGameOver() {
		return e.result(events, false)
	}

	e.log.Debug().Int("tick", e.state.Tick).Str("command", string(cmd.Kind)).Str("raw", cmd.Raw).Msg("command")

	// A menu visit costs one turn, paid when the menu closes. Meta commands
	// are free; every other input ends the turn, even when it fails.
	var turn bool
	if e.prompt != nil {
		events = append(events, e.answer(cmd.Raw)...)
		turn = e.prompt == nil
	} else {
		events = append(events, e.dispatch(cmd)...)
		turn = e.prompt == nil && !cmd.Kind.Meta()
	}
	if turn && !e.IsGameOver() {
		events = append(events, e.endTurn()...)
	}
	return e.result(events, turn)
}

func (e *GameEngine) dispatch(cmd Command) []Event {
	switch cmd.Kind {
	case CmdMove:
		return e.move(cmd.Direction)
	case CmdInteract:
		return e.interact()
	case CmdExit:
		return e.exitVehicle()
	case CmdAttack:
		return e.attack()
	case CmdInventory:
		return e.openInventory()
	case CmdUse:
		return e.useByNumber(cmd.Arg)
	case CmdSave:
		return e.save()
	case CmdLoad:
		return e.load()
	case CmdQuit:
		return e.quit()
	case CmdHelp:
		return []Event{e.event(EventHelp, HelpText)}
	}
	return []Event{
		e.event(EventInvalid, "Unknown command '"+cmd.Raw+"'."),
		e.event(EventHelp, HelpText),
	}
}

// endTurn runs the enemy pass, advances the clock and checks the end
// conditions.
func (e *GameEngine) endTurn() []Event {
	var events []Event
	if e.state.Victory() {
		e.status = StatusWon
		e.state.Tick++
		return append(events, e.event(EventVictory, "Congratulations! You've completed all missions and won the game!"))
	}
	events = append(events, e.enemyTurns()...)
	e.state.Tick++
	if !e.state.Player.Alive() {
		events = append(events, e.lose())
	}
	return events
}

// Load restores the saved game without running the upkeep of the world it
// replaces. Front-ends call it for a load offered before play starts.
func (e *GameEngine) Load() Result {
	return e.result(e.load(), false)
}

// Quit ends the game at once, closing any open menu. Front-ends call it when
// their input runs out.
func (e *GameEngine) Quit() Result {
	if e.IsGameOver() {
		return e.result(nil, false)
	}
	e.prompt = nil
	return e.result(e.quit(), false)
}

func (e *GameEngine) quit() []Event {
	e.status = StatusQuit
	return []Event{e.event(EventQuit, "Thanks for playing!")}
}

func (e *GameEngine) lose() Event {
	e.status = StatusLost
	e.prompt = nil
	return e.event(EventDefeat, "Wasted! You have been defeated. Game over.")
}

func (e *GameEngine) setState(st *State, upkeepApplied bool) {
	e.state = st
	e.prompt = nil
	e.status = StatusPlaying
	e.upkeepAt = -1
	if upkeepApplied {
		e.upkeepAt = st.Tick
	}
	st.Map.Discover(st.Player, e.rules.VisionRadius)
	switch {
	case !st.Player.Alive():
		e.status = StatusLost
	case st.Victory():
		e.status = StatusWon
	}
}

func (e *GameEngine) event(t EventType, msg string) Event {
	return Event{Type: t, Message: msg, Tick: e.state.Tick}
}

func (e *GameEngine) eventAt(t EventType, msg string, pos Position) Event {
	ev := e.event(t, msg)
	ev.Position = &pos
	return ev
}

func (e *GameEngine) result(events []Event, turn bool) Result {
	return Result{
		Events:    events,
		Prompt:    e.prompt,
		TurnEnded: turn,
		Tick:      e.state.Tick,
		Status:    e.status,
	}
}
