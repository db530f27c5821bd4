package engine

import (
	"fmt"

	"github.com/wricardo/sanandreas/game/entity"
)

// enemyTurns lets every live enemy act once, in registry order.
func (e *GameEngine) enemyTurns() []Event {
	var events []Event
	p := e.state.Player
	for pair := e.state.Enemies.Oldest(); pair != nil; pair = pair.Next() {
		en := pair.Value
		if !en.Alive() {
			continue
		}
		switch {
		case en.IsPolice() && p.WantedLevel > 0:
			e.chase(en, p.GetPosition())
		case en.GetPosition().Chebyshev(p.GetPosition()) <= 1:
			dmg, _ := entity.Strike(en, p)
			events = append(events, e.eventAt(EventPlayerHit, fmt.Sprintf("%s attacked you for %d damage!", en.Name, dmg), en.GetPosition()))
		default:
			e.wander(en)
		}
	}
	return events
}

// chase takes one greedy step toward target, wandering when blocked.
func (e *GameEngine) chase(en *entity.Enemy, target Position) {
	from := en.GetPosition()
	step := from.Add(sign(target.X-from.X), sign(target.Y-from.Y))
	if step == from || e.state.Map.Move(en, step) != nil {
		e.wander(en)
	}
}

// wander tries the four directions in random order and takes the first free
// one.
func (e *GameEngine) wander(en *entity.Enemy) {
	dirs := []Direction{Down, Up, Right, Left}
	shuffle(e.rng, dirs)
	for _, d := range dirs {
		dx, dy := d.Delta()
		if e.state.Map.Move(en, en.GetPosition().Add(dx, dy)) == nil {
			return
		}
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
