package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/wricardo/sanandreas/game/entity"
	"github.com/wricardo/sanandreas/game/mission"
)

func (e *GameEngine) openInventory() []Event {
	p := e.state.Player
	events := []Event{e.event(EventInfo, statusLine(e.state))}
	if len(p.Inventory) == 0 {
		return append(events, e.event(EventInfo, "Your inventory is empty."))
	}
	e.prompt = &Prompt{
		Kind:     PromptInventory,
		Title:    "Inventory",
		Options:  inventoryOptions(p),
		Question: "Choose an item to use (0 to cancel):",
	}
	return append(events, e.event(EventInfo, e.prompt.Question))
}

func (e *GameEngine) useByNumber(arg string) []Event {
	idx, err := menuChoice(arg)
	p := e.state.Player
	if err != nil || idx < 1 || idx > len(p.Inventory) {
		return []Event{e.event(EventInvalid, "Invalid choice.")}
	}
	return e.use(p.Inventory[idx-1])
}

// use applies an inventory item.
func (e *GameEngine) use(it *entity.Item) []Event {
	p := e.state.Player
	var msg string
	switch it.GetKind() {
	case entity.KindHealthPack:
		p.Heal(it.Heal)
		msg = fmt.Sprintf("You used %s and healed %d health.", it.Name, it.Heal)
	case entity.KindWeapon:
		if err := p.Equip(it); err != nil {
			return []Event{e.event(EventInvalid, fmt.Sprintf("You can't equip %s: %v.", it.Name, err))}
		}
		return []Event{e.event(EventItemUsed, fmt.Sprintf("You equipped %s.", it.Name))}
	case entity.KindFood:
		p.Eat(it.Hunger)
		msg = fmt.Sprintf("You ate %s and restored %d hunger.", it.Name, it.Hunger)
	case entity.KindDrink:
		p.Drink(it.Thirst)
		msg = fmt.Sprintf("You drank %s and restored %d thirst.", it.Name, it.Thirst)
	default:
		return []Event{e.event(EventInvalid, fmt.Sprintf("You can't use %s right now.", it.Name))}
	}
	p.RemoveItem(it)
	return []Event{e.event(EventItemUsed, msg)}
}

func (e *GameEngine) openShop(s *entity.Shop) []Event {
	e.prompt = &Prompt{
		Kind:     PromptShop,
		Title:    s.Name,
		Options:  shopOptions(s),
		Question: "What would you like to buy? (0 to leave)",
		shop:     s,
	}
	return []Event{
		e.eventAt(EventShop, fmt.Sprintf("Welcome to %s (%s)!", s.Name, s.Category), s.GetPosition()),
		e.event(EventShop, e.prompt.Question),
	}
}

// answer feeds input to the open prompt. The returned flag is true when the
// prompt closed and the visit should cost a turn.
func (e *GameEngine) answer(input string) []Event {
	pr := e.prompt
	switch pr.Kind {
	case PromptAcceptMission:
		return e.answerMission(pr, input)
	case PromptShop:
		return e.answerShop(pr, input)
	case PromptInventory:
		return e.answerInventory(pr, input)
	}
	e.prompt = nil
	return nil
}

func (e *GameEngine) answerMission(pr *Prompt, input string) []Event {
	e.prompt = nil
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
	default:
		return []Event{e.event(EventInfo, "You declined the mission.")}
	}
	if err := mission.Accept(pr.mission, e.state.Player); err != nil {
		return []Event{e.event(EventInvalid, fmt.Sprintf("You can't accept '%s': %v.", pr.mission.Name, err))}
	}
	e.log.Info().Str("mission", pr.mission.Name).Msg("mission accepted")
	return []Event{
		e.event(EventMissionAccepted, fmt.Sprintf("Mission accepted: %s", pr.mission.Name)),
		e.event(EventInfo, "Objective: "+pr.mission.Objective.String()),
	}
}

func (e *GameEngine) answerShop(pr *Prompt, input string) []Event {
	idx, err := menuChoice(input)
	if err != nil {
		return []Event{e.event(EventInvalid, "Invalid input. Please enter a number.")}
	}
	if idx == 0 {
		e.prompt = nil
		return []Event{e.event(EventShop, fmt.Sprintf("You left %s.", pr.shop.Name))}
	}
	it, err := pr.shop.Sell(idx-1, &e.state.Player.Character)
	switch {
	case errors.Is(err, entity.ErrInvalidChoice):
		return []Event{e.event(EventInvalid, "Invalid choice.")}
	case errors.Is(err, entity.ErrInsufficientFunds):
		return []Event{e.event(EventInvalid, "You don't have enough money.")}
	case err != nil:
		return []Event{e.event(EventError, err.Error())}
	}
	price := pr.shop.Catalog[idx-1].Price
	return []Event{e.event(EventPurchase, fmt.Sprintf("You bought %s for $%d.", it.Name, price))}
}

func (e *GameEngine) answerInventory(pr *Prompt, input string) []Event {
	e.prompt = nil
	idx, err := menuChoice(input)
	p := e.state.Player
	switch {
	case err == nil && idx == 0:
		return []Event{e.event(EventInfo, "Closed inventory.")}
	case err != nil || idx < 1 || idx > len(p.Inventory):
		return []Event{e.event(EventInvalid, "Invalid choice.")}
	}
	return e.use(p.Inventory[idx-1])
}

func menuChoice(input string) (int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, errors.New("empty choice")
	}
	return cast.ToIntE(input)
}

func inventoryOptions(p *entity.Player) []string {
	out := make([]string, 0, len(p.Inventory))
	for i, it := range p.Inventory {
		line := fmt.Sprintf("%d. %s (%s)", i+1, it.Name, it.GetKind())
		if it == p.Weapon {
			line += " [equipped]"
		}
		out = append(out, line)
	}
	return out
}

func shopOptions(s *entity.Shop) []string {
	out := make([]string, 0, len(s.Catalog))
	for i, l := range s.Catalog {
		out = append(out, fmt.Sprintf("%d. %s (%s) - $%d", i+1, l.Item.Name, l.Item.Description, l.Price))
	}
	return out
}

func statusLine(s *State) string {
	p := s.Player
	weapon := "Fists"
	if p.Weapon != nil {
		weapon = p.Weapon.Name
	}
	active := "None"
	if p.Mission != nil {
		active = p.Mission.Name
	}
	return fmt.Sprintf("Health %d/%d | Stamina %.1f | Money $%d | Hunger %d | Thirst %d | Wanted %d | Weapon %s | Mission %s | Time %s",
		p.Health, p.MaxHealth, p.Stamina, p.Money, p.Hunger, p.Thirst, p.WantedLevel, weapon, active, s.Clock())
}
