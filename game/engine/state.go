package engine

import (
	"errors"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.uber.org/multierr"

	"github.com/wricardo/sanandreas/game/entity"
	"github.com/wricardo/sanandreas/game/mission"
	"github.com/wricardo/sanandreas/game/world"
)

var ErrDuplicateKey = errors.New("duplicate key")

// State is the whole mutable world of one game. Registries keep insertion
// order, which fixes enemy turn order and save-file layout.
type State struct {
	Tick     int
	Scenario string
	Map      *world.Map
	Player   *entity.Player
	NPCs     *orderedmap.OrderedMap[string, *entity.NPC]
	Shops    *orderedmap.OrderedMap[string, *entity.Shop]
	Enemies  *orderedmap.OrderedMap[string, *entity.Enemy]
	Vehicles *orderedmap.OrderedMap[string, *entity.Vehicle]
	Missions *mission.Graph
}

// NewState creates a world with the player placed on it.
func NewState(width, height int, player *entity.Player, missions *mission.Graph) *State {
	s := &State{
		Map:      world.New(width, height),
		Player:   player,
		NPCs:     orderedmap.New[string, *entity.NPC](),
		Shops:    orderedmap.New[string, *entity.Shop](),
		Enemies:  orderedmap.New[string, *entity.Enemy](),
		Vehicles: orderedmap.New[string, *entity.Vehicle](),
		Missions: missions,
	}
	if len(player.Discovered) != height || (height > 0 && len(player.Discovered[0]) != width) {
		player.ResetDiscovery(width, height)
	}
	s.Map.Add(player)
	return s
}

func register[V entity.Object](s *State, m *orderedmap.OrderedMap[string, V], key string, v V) error {
	if _, exists := m.Get(key); exists {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}
	m.Set(key, v)
	s.Map.Add(v)
	return nil
}

func (s *State) AddNPC(key string, n *entity.NPC) error { return register(s, s.NPCs, key, n) }
func (s *State) AddShop(key string, sh *entity.Shop) error { return register(s, s.Shops, key, sh) }
func (s *State) AddEnemy(key string, e *entity.Enemy) error { return register(s, s.Enemies, key, e) }
func (s *State) AddVehicle(key string, v *entity.Vehicle) error { return register(s, s.Vehicles, key, v) }

// AddItem drops an item on the map.
func (s *State) AddItem(it *entity.Item) { s.Map.Add(it) }

// RemoveEnemy deletes a defeated enemy from the registry and the map.
func (s *State) RemoveEnemy(e *entity.Enemy) {
	for pair := s.Enemies.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value == e {
			s.Enemies.Delete(pair.Key)
			break
		}
	}
	s.Map.Remove(e)
}

// Victory reports whether every mission is completed.
func (s *State) Victory() bool {
	return s.Missions.AllCompleted(s.Player)
}

// Clock renders the in-game time of day. A hundred ticks make an hour.
func (s *State) Clock() string {
	return Clock(s.Tick)
}

// Clock renders the time of day for a tick count.
func Clock(tick int) string {
	hours := (tick / 100) % 24
	minutes := int(float64(tick%100) * 0.6)
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

// Validate checks the cross-reference invariants of the state.
func (s *State) Validate() error {
	var errs error
	p := s.Player
	if p == nil {
		return errors.New("state has no player")
	}
	if !s.Map.InBounds(p.GetPosition()) {
		errs = multierr.Append(errs, fmt.Errorf("player at (%d,%d) is off the map", p.Pos.X, p.Pos.Y))
	}
	if p.Weapon != nil && !p.Holds(p.Weapon) {
		errs = multierr.Append(errs, errors.New("equipped weapon is not in the inventory"))
	}
	if p.Vehicle != nil && p.Vehicle.Occupant != p {
		errs = multierr.Append(errs, fmt.Errorf("player rides %s but it has no such occupant", p.Vehicle.Name))
	}
	for pair := s.Vehicles.Oldest(); pair != nil; pair = pair.Next() {
		v := pair.Value
		if v.Occupant != nil && v.Occupant.Vehicle != v {
			errs = multierr.Append(errs, fmt.Errorf("vehicle %s occupant link is one-sided", pair.Key))
		}
	}
	for _, o := range s.Map.Objects() {
		for _, pos := range o.Footprint() {
			if !s.Map.InBounds(pos) {
				errs = multierr.Append(errs, fmt.Errorf("%s at (%d,%d) is off the map", o.GetName(), pos.X, pos.Y))
			}
		}
	}
	return errs
}
