package save

import (
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/wricardo/sanandreas/game/engine"
	"github.com/wricardo/sanandreas/game/entity"
)

// v1Document is the first-edition layout: no version key, inventory as
// [name, type] pairs, enemies as a list and NPCs carrying only their
// completion flag. Mission definitions were never saved.
type v1Document struct {
	Player struct {
		X                 *int       `json:"x"`
		Y                 *int       `json:"y"`
		Health            *int       `json:"health"`
		Money             *int       `json:"money"`
		Inventory         [][]string `json:"inventory"`
		CurrentWeapon     *string    `json:"current_weapon"`
		DiscoveredMap     [][]bool   `json:"discovered_map"`
		MissionsCompleted []string   `json:"missions_completed"`
		CurrentMission    *string    `json:"current_mission"`
	} `json:"player"`
	NPCs map[string]struct {
		MissionCompleted bool `json:"mission_completed"`
	} `json:"npcs"`
	ItemsOnMap []struct {
		Name   string      `json:"name"`
		X      int         `json:"x"`
		Y      int         `json:"y"`
		Type   entity.Kind `json:"type"`
		Amount *int        `json:"amount"`
	} `json:"items_on_map"`
	Enemies []struct {
		Name   string `json:"name"`
		X      int    `json:"x"`
		Y      int    `json:"y"`
		Health int    `json:"health"`
	} `json:"enemies"`
}

// upgradeV1 overlays a first-edition save onto the fresh world. Items are
// rebuilt from the fresh world's item of the same name; enemies keep the
// registry key and stats of the fresh enemy with the same name.
func upgradeV1(data []byte, base *engine.State) (*Document, error) {
	var old v1Document
	if err := json.Unmarshal(data, &old); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}
	d := Encode(base)
	lookup := templates(d)

	ps := &d.Player
	if old.Player.X != nil {
		ps.X = *old.Player.X
	}
	if old.Player.Y != nil {
		ps.Y = *old.Player.Y
	}
	if old.Player.Health != nil {
		ps.Health = *old.Player.Health
	}
	if old.Player.Money != nil {
		ps.Money = *old.Player.Money
	}
	if old.Player.Inventory != nil {
		ps.Inventory = make([]ItemState, 0, len(old.Player.Inventory))
		for _, pair := range old.Player.Inventory {
			if len(pair) != 2 {
				return nil, fmt.Errorf("%w: inventory entry %v is not a [name, type] pair", ErrCorruptSave, pair)
			}
			ps.Inventory = append(ps.Inventory, lookup.resolve(pair[0], entity.Kind(pair[1])))
		}
		ps.CurrentWeapon = ""
	}
	if old.Player.CurrentWeapon != nil {
		ps.CurrentWeapon = *old.Player.CurrentWeapon
	}
	if old.Player.DiscoveredMap != nil {
		ps.DiscoveredMap = old.Player.DiscoveredMap
	}
	if old.Player.MissionsCompleted != nil {
		ps.MissionsCompleted = old.Player.MissionsCompleted
	}
	if old.Player.CurrentMission != nil {
		ps.CurrentMission = *old.Player.CurrentMission
	}

	for key, flags := range old.NPCs {
		if n, ok := d.NPCs.Get(key); ok {
			n.MissionCompleted = flags.MissionCompleted
			d.NPCs.Set(key, n)
		}
	}

	if old.ItemsOnMap != nil {
		d.ItemsOnMap = make([]ItemState, 0, len(old.ItemsOnMap))
		for _, o := range old.ItemsOnMap {
			st := lookup.resolve(o.Name, o.Type)
			st.X, st.Y = o.X, o.Y
			if o.Amount != nil && st.Type == entity.KindMoneyBundle {
				st.Amount = *o.Amount
			}
			d.ItemsOnMap = append(d.ItemsOnMap, st)
		}
	}

	if old.Enemies != nil {
		fresh := d.Enemies
		d.Enemies = orderedmap.New[string, EnemyState]()
		used := map[string]bool{}
		for i, o := range old.Enemies {
			key, st := matchEnemy(fresh, used, o.Name)
			if _, taken := d.Enemies.Get(key); key == "" || taken {
				key = fmt.Sprintf("enemy_%d", i+1)
			}
			st.X, st.Y = o.X, o.Y
			st.Health = o.Health
			st.MaxHealth = max(st.MaxHealth, o.Health)
			d.Enemies.Set(key, st)
		}
	}

	d.Version = CurrentVersion
	return d, nil
}

// matchEnemy finds the first unused fresh enemy called name. Without a match
// it returns an empty key and first-edition enemy stats.
func matchEnemy(fresh *orderedmap.OrderedMap[string, EnemyState], used map[string]bool, name string) (string, EnemyState) {
	for pair := fresh.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value.Name == name && !used[pair.Key] {
			used[pair.Key] = true
			return pair.Key, pair.Value
		}
	}
	return "", EnemyState{
		CharacterState: CharacterState{
			Type:       entity.KindEnemy,
			Name:       name,
			Stamina:    100,
			MaxStamina: 100,
			Inventory:  []ItemState{},
		},
		Damage:  10,
		Faction: "Gang",
	}
}

// itemIndex holds the fresh world's items by name.
type itemIndex map[string]ItemState

// templates collects every item of a document: on the map, in inventories,
// and in shop catalogs.
func templates(d *Document) itemIndex {
	idx := itemIndex{}
	add := func(st ItemState) {
		if _, ok := idx[st.Name]; !ok {
			idx[st.Name] = st
		}
	}
	for _, st := range d.ItemsOnMap {
		add(st)
	}
	for _, st := range d.Player.Inventory {
		add(st)
	}
	for pair := d.Shops.Oldest(); pair != nil; pair = pair.Next() {
		for _, l := range pair.Value.Inventory {
			add(l.Item)
		}
	}
	return idx
}

// resolve returns the template called name, or a default item of kind when
// the fresh world has none.
func (idx itemIndex) resolve(name string, kind entity.Kind) ItemState {
	if st, ok := idx[name]; ok && (kind == "" || st.Type == kind) {
		return st
	}
	st := unsetItem()
	st.Name = name
	st.Type = kind
	if !kind.IsItem() {
		st.Type = entity.KindItem
	}
	st.fill()
	return st
}
