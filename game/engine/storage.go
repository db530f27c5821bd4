package engine

import "fmt"

// save writes the state through the configured store. It costs no turn.
func (e *GameEngine) save() []Event {
	if e.store == nil {
		return []Event{e.event(EventError, "Saving is not available in this game.")}
	}
	if err := e.store.Save(e.state); err != nil {
		e.log.Error().Err(err).Int("tick", e.state.Tick).Msg("save game")
		return []Event{e.event(EventError, fmt.Sprintf("Could not save the game: %v", err))}
	}
	e.log.Info().Int("tick", e.state.Tick).Msg("game saved")
	return []Event{e.event(EventSaved, "Game saved successfully!")}
}

// load restores the saved state. When the save cannot be read the world is
// replaced by a fresh one instead.
func (e *GameEngine) load() []Event {
	if e.store == nil {
		return []Event{e.event(EventError, "Loading is not available in this game.")}
	}
	st, err := e.store.Load()
	if err == nil {
		e.setState(st, true)
		e.log.Info().Int("tick", st.Tick).Msg("game loaded")
		return []Event{e.event(EventLoaded, "Game loaded successfully!")}
	}

	e.log.Warn().Err(err).Msg("load game, starting fresh")
	events := []Event{e.event(EventError, fmt.Sprintf("Could not load the saved game: %v", err))}
	if rerr := e.Reset(); rerr != nil {
		e.log.Error().Err(rerr).Msg("fresh world")
		return append(events, e.event(EventError, "Keeping the current game."))
	}
	return append(events, e.event(EventLoaded, "Starting a new game."))
}
