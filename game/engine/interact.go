package engine

import (
	"fmt"

	"github.com/wricardo/sanandreas/game/entity"
	"github.com/wricardo/sanandreas/game/mission"
)

// interact resolves the first interactable object around the player.
func (e *GameEngine) interact() []Event {
	p := e.state.Player
	for _, pos := range e.state.Map.Neighbors(p.GetPosition()) {
		for _, obj := range e.state.Map.OccupantsAt(pos) {
			kind := obj.GetKind()
			switch {
			case kind.IsNPC():
				return e.talk(obj.(*entity.NPC))
			case kind.IsItem():
				return e.pickup(obj.(*entity.Item))
			case kind == entity.KindShop:
				return e.openShop(obj.(*entity.Shop))
			case kind == entity.KindVehicle && !p.InVehicle():
				return e.enterVehicle(obj.(*entity.Vehicle))
			}
		}
	}
	return []Event{e.event(EventInvalid, "There's nothing to interact with nearby.")}
}

func (e *GameEngine) talk(n *entity.NPC) []Event {
	conv := mission.Talk(n, e.state.Player)
	events := make([]Event, 0, len(conv.Lines)+1)
	for _, line := range conv.Lines {
		events = append(events, e.eventAt(EventDialogue, line, n.GetPosition()))
	}
	switch conv.Outcome {
	case mission.OutcomeBlocked:
		return events
	case mission.OutcomeCompleted:
		events[len(events)-1].Type = EventMissionCompleted
		e.log.Info().Str("mission", conv.Mission.Name).Int("tick", e.state.Tick).Msg("mission completed")
	case mission.OutcomeOffer:
		e.prompt = &Prompt{
			Kind:     PromptAcceptMission,
			Title:    conv.Mission.Name,
			Question: mission.AcceptPrompt(conv.Mission),
			mission:  conv.Mission,
		}
		return append(events, e.event(EventMissionOffered, e.prompt.Question))
	}
	return events
}

func (e *GameEngine) pickup(it *entity.Item) []Event {
	e.state.Map.Remove(it)
	e.state.Player.AddItem(it)
	return []Event{e.eventAt(EventPickup, fmt.Sprintf("You picked up %s.", it.Name), it.GetPosition())}
}

func (e *GameEngine) enterVehicle(v *entity.Vehicle) []Event {
	if err := v.Enter(e.state.Player); err != nil {
		return []Event{e.event(EventBlocked, fmt.Sprintf("You can't enter the %s: %v.", v.Name, err))}
	}
	e.state.Map.Discover(e.state.Player, e.rules.VisionRadius)
	return []Event{e.eventAt(EventVehicle, fmt.Sprintf("You entered the %s.", v.Name), v.GetPosition())}
}

// attack strikes the first live enemy around the player.
func (e *GameEngine) attack() []Event {
	p := e.state.Player
	for _, pos := range e.state.Map.Neighbors(p.GetPosition()) {
		for _, obj := range e.state.Map.OccupantsAt(pos) {
			en, ok := obj.(*entity.Enemy)
			if !ok || !en.Alive() {
				continue
			}
			return e.strike(en)
		}
	}
	return []Event{e.event(EventInvalid, "No enemies nearby to attack.")}
}

func (e *GameEngine) strike(en *entity.Enemy) []Event {
	p := e.state.Player
	dmg, defeated := entity.Strike(p, en)
	events := []Event{e.eventAt(EventAttack, fmt.Sprintf("You attacked %s for %d damage.", en.Name, dmg), en.GetPosition())}
	if !defeated {
		return events
	}

	e.state.RemoveEnemy(en)
	wanted := e.rules.CrimeWanted
	if en.IsPolice() {
		wanted = e.rules.PoliceKillWanted
	}
	p.RaiseWanted(wanted)
	p.Earn(e.rules.DefeatBonus)
	e.log.Info().Str("enemy", en.Name).Str("faction", en.Faction).Int("wanted", p.WantedLevel).Msg("enemy defeated")
	return append(events,
		e.eventAt(EventEnemyDefeated, fmt.Sprintf("You defeated %s and picked up $%d.", en.Name, e.rules.DefeatBonus), en.GetPosition()),
		e.event(EventWanted, fmt.Sprintf("Wanted level is now %d.", p.WantedLevel)),
	)
}
