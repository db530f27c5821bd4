package engine

import (
	"errors"
	"fmt"

	"github.com/wricardo/sanandreas/game/world"
)

// move steps the player, or the vehicle being driven, one cell.
func (e *GameEngine) move(dir Direction) []Event {
	p := e.state.Player
	dx, dy := dir.Delta()
	if dx == 0 && dy == 0 {
		return []Event{e.event(EventInvalid, "Unknown direction.")}
	}
	target := p.GetPosition().Add(dx, dy)

	var err error
	cost := e.rules.WalkStaminaCost
	if v := p.Vehicle; v != nil {
		err = e.state.Map.Move(v, target, p)
		cost = e.rules.DriveStaminaCost
	} else {
		err = e.state.Map.Move(p, target)
	}
	if err != nil {
		return []Event{e.eventAt(EventBlocked, blockedMessage(err), target)}
	}

	p.Tire(cost)
	e.state.Map.Discover(p, e.rules.VisionRadius)
	return []Event{e.eventAt(EventMoved, fmt.Sprintf("You move %s.", dir), p.GetPosition())}
}

// exitVehicle leaves the vehicle, preferring the cell east of it.
func (e *GameEngine) exitVehicle() []Event {
	p := e.state.Player
	v := p.Vehicle
	if v == nil {
		return []Event{e.event(EventInvalid, "You are not in a vehicle.")}
	}
	candidates := append([]Position{v.GetPosition().Add(1, 0)}, e.state.Map.Neighbors(v.GetPosition())...)
	for _, pos := range candidates {
		if e.state.Map.CanMoveTo(pos, p, v) != nil {
			continue
		}
		if err := v.Exit(p, pos); err != nil {
			return []Event{e.event(EventError, err.Error())}
		}
		e.state.Map.Discover(p, e.rules.VisionRadius)
		return []Event{e.eventAt(EventVehicle, fmt.Sprintf("You exited the %s.", v.Name), pos)}
	}
	return []Event{e.event(EventBlocked, "There's no room to get out here.")}
}

func blockedMessage(err error) string {
	var blocked *world.BlockedError
	switch {
	case errors.As(err, &blocked):
		return fmt.Sprintf("You can't move there, %s is in the way.", blocked.By.GetName())
	case errors.Is(err, world.ErrOutOfBounds):
		return "You can't move there, that's the edge of the map."
	}
	return "You can't move there."
}
