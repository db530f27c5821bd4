package engine

import (
	"fmt"

	"github.com/wricardo/sanandreas/game/entity"
)

// upkeep applies the periodic effects due at the current tick.
func (e *GameEngine) upkeep() []Event {
	var events []Event
	t := e.state.Tick
	p := e.state.Player

	if t%e.rules.NeedsInterval == 0 && p.DecayNeeds() {
		p.TakeDamage(e.rules.StarvationDamage)
		events = append(events, e.event(EventWarning, "You are starving or dehydrated! Health decreasing."))
	}
	if t%e.rules.WantedDecayInterval == 0 && p.WantedLevel > 0 {
		p.LowerWanted(1)
		events = append(events, e.event(EventWanted, fmt.Sprintf("Wanted level decreased to %d.", p.WantedLevel)))
	}
	if t%e.rules.PoliceSpawnInterval == 0 && p.WantedLevel > 0 {
		events = append(events, e.spawnPolice()...)
	}
	return events
}

// spawnPolice drops one officer per wanted star near the player. Offsets
// that land on an occupied cell are skipped, not retried.
func (e *GameEngine) spawnPolice() []Event {
	var events []Event
	p := e.state.Player
	r := e.rules.PoliceSpawnRadius
	wanted := p.WantedLevel
	for i := 0; i < wanted; i++ {
		off := Position{X: between(e.rng, -r, r), Y: between(e.rng, -r, r)}
		pos := e.state.Map.Clamp(p.GetPosition().Add(off.X, off.Y))
		if e.state.Map.OccupantAt(pos) != nil {
			continue
		}
		cop := entity.NewEnemy("Police Officer", pos,
			e.rules.PoliceBaseHealth+wanted*e.rules.PoliceHealthPerStar,
			e.rules.PoliceBaseDamage+wanted*e.rules.PoliceDamagePerStar,
			entity.FactionPolice)
		key := e.policeKey()
		if err := e.state.AddEnemy(key, cop); err != nil {
			e.log.Error().Err(err).Str("key", key).Msg("spawn police")
			continue
		}
		events = append(events, e.eventAt(EventPoliceSpawned, "Police reinforcements have arrived!", pos))
	}
	if len(events) > 0 {
		e.log.Debug().Int("count", len(events)).Int("wanted", wanted).Msg("police spawned")
	}
	return events
}

func (e *GameEngine) policeKey() string {
	for n := e.state.Enemies.Len() + 1; ; n++ {
		key := fmt.Sprintf("police_%d", n)
		if _, taken := e.state.Enemies.Get(key); !taken {
			return key
		}
	}
}
