package config

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/wricardo/sanandreas/game/engine"
	"github.com/wricardo/sanandreas/game/entity"
	"github.com/wricardo/sanandreas/game/mission"
	"github.com/wricardo/sanandreas/game/save"
)

// Scenario is the content of one world, read from YAML. Zero health, damage
// and speed fields take the stock values of the entity.
type Scenario struct {
	ID          string           `yaml:"-"`
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Width       int              `yaml:"width"`
	Height      int              `yaml:"height"`
	Player      PlayerSpec       `yaml:"player"`
	NPCs        []NPCSpec        `yaml:"npcs"`
	Items       []save.ItemState `yaml:"items"`
	Shops       []ShopSpec       `yaml:"shops"`
	Enemies     []EnemySpec      `yaml:"enemies"`
	Vehicles    []VehicleSpec    `yaml:"vehicles"`
	Missions    []MissionSpec    `yaml:"missions"`
}

type PlayerSpec struct {
	Name      string           `yaml:"name"`
	X         int              `yaml:"x"`
	Y         int              `yaml:"y"`
	Health    int              `yaml:"health"`
	Money     int              `yaml:"money"`
	Inventory []save.ItemState `yaml:"inventory"`
}

type NPCSpec struct {
	Key           string      `yaml:"key"`
	Type          entity.Kind `yaml:"type"`
	Name          string      `yaml:"name"`
	X             int         `yaml:"x"`
	Y             int         `yaml:"y"`
	Health        int         `yaml:"health"`
	Dialogue      string      `yaml:"dialogue"`
	AfterDialogue string      `yaml:"after_dialogue"`
	Mission       string      `yaml:"mission"`
}

type ShopSpec struct {
	Key      string              `yaml:"key"`
	Name     string              `yaml:"name"`
	Category string              `yaml:"shop_type"`
	X        int                 `yaml:"x"`
	Y        int                 `yaml:"y"`
	Catalog  []save.ListingState `yaml:"catalog"`
}

type EnemySpec struct {
	Key     string `yaml:"key"`
	Name    string `yaml:"name"`
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`
	Health  int    `yaml:"health"`
	Damage  int    `yaml:"damage"`
	Faction string `yaml:"faction"`
}

type VehicleSpec struct {
	Key    string `yaml:"key"`
	Name   string `yaml:"name"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Health int    `yaml:"health"`
	Speed  int    `yaml:"speed"`
}

type MissionSpec struct {
	Name          string           `yaml:"name"`
	Description   string           `yaml:"description"`
	Objective     entity.Objective `yaml:"objective"`
	RewardMoney   int              `yaml:"reward_money"`
	RewardItem    *save.ItemState  `yaml:"reward_item"`
	Prerequisites []string         `yaml:"prerequisites"`
	Gate          *GateSpec        `yaml:"gate"`
}

type GateSpec struct {
	Objective entity.Objective `yaml:"objective"`
	Hint      string           `yaml:"hint"`
	Ack       string           `yaml:"ack"`
}

// ParseScenario decodes YAML scenario content.
func ParseScenario(id string, data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidScenario, id, err)
	}
	sc.ID = id
	if err := ValidateScenario(&sc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidScenario, id, err)
	}
	return &sc, nil
}

// Build creates a fresh world from the scenario. Every call returns new
// entities, so the scenario can be shared between games.
func Build(sc *Scenario) (*engine.State, error) {
	if err := ValidateScenario(sc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidScenario, sc.ID, err)
	}
	g, err := mission.NewGraph(sc.missions()...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidScenario, sc.ID, err)
	}

	ps := sc.Player
	p := entity.NewPlayer(orDefault(ps.Name, "CJ"), entity.Position{X: ps.X, Y: ps.Y}, sc.Width, sc.Height)
	if ps.Health > 0 {
		p.Health, p.MaxHealth = ps.Health, ps.Health
	}
	p.Money = ps.Money
	for _, it := range ps.Inventory {
		p.AddItem(save.NewItem(it))
	}

	s := engine.NewState(sc.Width, sc.Height, p, g)
	s.Scenario = sc.ID

	for _, ns := range sc.NPCs {
		pos := entity.Position{X: ns.X, Y: ns.Y}
		var n *entity.NPC
		if ns.Type == entity.KindBigSmoke {
			n = entity.NewBigSmoke(orDefault(ns.Name, "Big Smoke"), orDefault(ns.Dialogue, "You picked the wrong house, fool!"), pos)
		} else {
			n = entity.NewNPC(ns.Name, orDefault(ns.Dialogue, "..."), pos)
		}
		if ns.Health > 0 {
			n.Health, n.MaxHealth = ns.Health, ns.Health
		}
		n.AfterDialogue = ns.AfterDialogue
		n.Mission, _ = g.Get(ns.Mission)
		if err := s.AddNPC(keyOf(ns.Key, ns.Name), n); err != nil {
			return nil, err
		}
	}
	for _, it := range sc.Items {
		s.AddItem(save.NewItem(it))
	}
	for _, ss := range sc.Shops {
		sh := entity.NewShop(ss.Name, orDefault(ss.Category, "General"), entity.Position{X: ss.X, Y: ss.Y})
		for _, l := range ss.Catalog {
			sh.Stock(save.NewItem(l.Item), l.Price)
		}
		if err := s.AddShop(keyOf(ss.Key, ss.Name), sh); err != nil {
			return nil, err
		}
	}
	for _, es := range sc.Enemies {
		e := entity.NewEnemy(es.Name, entity.Position{X: es.X, Y: es.Y},
			orDefaultInt(es.Health, 40), orDefaultInt(es.Damage, 10), orDefault(es.Faction, "Gang"))
		if err := s.AddEnemy(keyOf(es.Key, es.Name), e); err != nil {
			return nil, err
		}
	}
	for _, vs := range sc.Vehicles {
		v := entity.NewVehicle(vs.Name, entity.Position{X: vs.X, Y: vs.Y}, orDefaultInt(vs.Health, 100), orDefaultInt(vs.Speed, 1))
		if err := s.AddVehicle(keyOf(vs.Key, vs.Name), v); err != nil {
			return nil, err
		}
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidScenario, sc.ID, err)
	}
	return s, nil
}

func (sc *Scenario) missions() []*entity.Mission {
	out := make([]*entity.Mission, 0, len(sc.Missions))
	for _, ms := range sc.Missions {
		m := &entity.Mission{
			Name:          ms.Name,
			Description:   ms.Description,
			Objective:     ms.Objective,
			RewardMoney:   ms.RewardMoney,
			Prerequisites: ms.Prerequisites,
		}
		if ms.RewardItem != nil {
			m.RewardItem = save.NewItem(*ms.RewardItem)
		}
		if ms.Gate != nil {
			m.Gate = &entity.Gate{Objective: ms.Gate.Objective, Hint: ms.Gate.Hint, Ack: ms.Gate.Ack}
		}
		out = append(out, m)
	}
	return out
}

// ValidateScenario reports every problem of the scenario at once.
func ValidateScenario(sc *Scenario) error {
	if sc == nil {
		return errors.New("scenario is nil")
	}
	var errs error
	if sc.Name == "" {
		errs = multierr.Append(errs, errors.New("scenario has no name"))
	}
	if sc.Width <= 0 || sc.Height <= 0 {
		return multierr.Append(errs, fmt.Errorf("map size %dx%d is invalid", sc.Width, sc.Height))
	}

	taken := map[entity.Position]string{}
	place := func(what string, cells ...entity.Position) {
		for _, c := range cells {
			if c.X < 0 || c.Y < 0 || c.X >= sc.Width || c.Y >= sc.Height {
				errs = multierr.Append(errs, fmt.Errorf("%s at (%d,%d) is off the %dx%d map", what, c.X, c.Y, sc.Width, sc.Height))
				continue
			}
			if other, ok := taken[c]; ok {
				errs = multierr.Append(errs, fmt.Errorf("%s at (%d,%d) overlaps %s", what, c.X, c.Y, other))
				continue
			}
			taken[c] = what
		}
	}
	keys := map[string]bool{}
	unique := func(kind, key string) {
		if keys[kind+"/"+key] {
			errs = multierr.Append(errs, fmt.Errorf("duplicate %s key %q", kind, key))
		}
		keys[kind+"/"+key] = true
	}
	missions := map[string]bool{}
	for _, ms := range sc.Missions {
		missions[ms.Name] = true
	}

	place("player", entity.Position{X: sc.Player.X, Y: sc.Player.Y})
	offered := map[string]bool{}
	for _, ns := range sc.NPCs {
		what := "npc " + ns.Name
		if ns.Name == "" {
			errs = multierr.Append(errs, errors.New("npc without a name"))
		}
		pos := entity.Position{X: ns.X, Y: ns.Y}
		switch ns.Type {
		case "", entity.KindNPC:
			place(what, pos)
		case entity.KindBigSmoke:
			place(what, pos, pos.Add(1, 0))
		default:
			errs = multierr.Append(errs, fmt.Errorf("%s has type %q", what, ns.Type))
		}
		unique("npc", keyOf(ns.Key, ns.Name))
		if ns.Mission != "" {
			if !missions[ns.Mission] {
				errs = multierr.Append(errs, fmt.Errorf("%s offers %q: %w", what, ns.Mission, mission.ErrUnknownMission))
			}
			offered[ns.Mission] = true
		}
	}
	for _, ss := range sc.Shops {
		what := "shop " + ss.Name
		place(what, entity.Position{X: ss.X, Y: ss.Y})
		unique("shop", keyOf(ss.Key, ss.Name))
		for i, l := range ss.Catalog {
			if !l.Item.Type.IsItem() || l.Item.Name == "" {
				errs = multierr.Append(errs, fmt.Errorf("%s catalog[%d] is not a valid item", what, i))
			}
			if l.Price < 0 {
				errs = multierr.Append(errs, fmt.Errorf("%s catalog[%d] has a negative price", what, i))
			}
		}
	}
	for _, es := range sc.Enemies {
		what := "enemy " + es.Name
		place(what, entity.Position{X: es.X, Y: es.Y})
		unique("enemy", keyOf(es.Key, es.Name))
		if es.Health < 0 || es.Damage < 0 {
			errs = multierr.Append(errs, fmt.Errorf("%s has negative stats", what))
		}
	}
	for _, vs := range sc.Vehicles {
		what := "vehicle " + vs.Name
		place(what, entity.Position{X: vs.X, Y: vs.Y})
		unique("vehicle", keyOf(vs.Key, vs.Name))
		if vs.Health < 0 || vs.Speed < 0 {
			errs = multierr.Append(errs, fmt.Errorf("%s has negative stats", what))
		}
	}
	for i, it := range sc.Items {
		what := fmt.Sprintf("items[%d]", i)
		if !it.Type.IsItem() || it.Name == "" {
			errs = multierr.Append(errs, fmt.Errorf("%s is not a valid item", what))
		}
		if it.X < 0 || it.Y < 0 || it.X >= sc.Width || it.Y >= sc.Height {
			errs = multierr.Append(errs, fmt.Errorf("%s at (%d,%d) is off the map", what, it.X, it.Y))
		}
	}

	if len(sc.Missions) == 0 {
		errs = multierr.Append(errs, errors.New("scenario has no missions"))
	} else if _, err := mission.NewGraph(sc.missions()...); err != nil {
		errs = multierr.Append(errs, err)
	}
	for _, ms := range sc.Missions {
		if ms.Name != "" && !offered[ms.Name] {
			errs = multierr.Append(errs, fmt.Errorf("mission %q is offered by no npc", ms.Name))
		}
		switch ms.Objective.Kind {
		case entity.ObjectiveHasItem, entity.ObjectiveMoneyAtLeast:
		default:
			errs = multierr.Append(errs, fmt.Errorf("mission %q has objective %q", ms.Name, ms.Objective.Kind))
		}
	}
	return errs
}

// keyOf returns key, or a registry key derived from name.
func keyOf(key, name string) string {
	if key != "" {
		return key
	}
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteByte('_')
		}
	}
	return b.String()
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func orDefaultInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
