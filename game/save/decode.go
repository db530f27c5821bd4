package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/buger/jsonparser"

	"github.com/wricardo/sanandreas/game/engine"
	"github.com/wricardo/sanandreas/game/entity"
	"github.com/wricardo/sanandreas/game/mission"
)

// Fresh builds a new default world. Decoding takes the mission graph from
// it and overlays old documents onto it.
type Fresh func() (*engine.State, error)

// Decode reads a document of any known version and rebuilds the world.
func Decode(data []byte, fresh Fresh) (*engine.State, error) {
	base, err := fresh()
	if err != nil {
		return nil, fmt.Errorf("fresh world: %w", err)
	}
	doc, _, err := Parse(data, base)
	if err != nil {
		return nil, err
	}
	return doc.Restore(base.Missions)
}

// Version sniffs the schema version. Documents without a version key are
// first-edition saves.
func Version(data []byte) (int, error) {
	if !json.Valid(data) {
		return 0, fmt.Errorf("%w: not valid JSON", ErrCorruptSave)
	}
	v, err := jsonparser.GetInt(data, "version")
	if errors.Is(err, jsonparser.KeyPathNotFoundError) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: version: %v", ErrCorruptSave, err)
	}
	if v < 1 || v > CurrentVersion {
		return int(v), fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}
	return int(v), nil
}

// Parse decodes data and upgrades it to CurrentVersion. base supplies what
// older versions did not record. The original version is returned too.
func Parse(data []byte, base *engine.State) (*Document, int, error) {
	version, err := Version(data)
	if err != nil {
		return nil, version, err
	}
	if version == 1 {
		d, err := upgradeV1(data, base)
		return d, version, err
	}

	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, version, fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}
	d.ensureMaps()
	if d.ItemsOnMap == nil {
		d.ItemsOnMap = []ItemState{}
	}
	if version == 2 {
		upgradeV2(&d, base)
	}
	return &d, version, nil
}

// upgradeV2 fills the fields added in version 3 from the fresh world.
func upgradeV2(d *Document, base *engine.State) {
	if d.Scenario == "" {
		d.Scenario = base.Scenario
	}
	if d.Width == 0 || d.Height == 0 {
		d.Width, d.Height = base.Map.Width, base.Map.Height
	}
	d.Version = CurrentVersion
}

// Restore rebuilds a world from the document. Missions are looked up by name
// in missions; unknown names are dropped.
func (d *Document) Restore(missions *mission.Graph) (*engine.State, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSave, err)
	}

	ps := d.Player
	p := entity.NewPlayer(ps.Name, entity.Position{X: ps.X, Y: ps.Y}, d.Width, d.Height)
	applyCharacter(&p.Character, ps.CharacterState)
	if fits(ps.DiscoveredMap, d.Width, d.Height) {
		p.Discovered = ps.DiscoveredMap
	}
	p.Completed = append([]string{}, ps.MissionsCompleted...)
	p.WantedLevel = ps.WantedLevel
	p.Hunger = ps.Hunger
	p.Thirst = ps.Thirst
	p.DrivingSkill = ps.DrivingSkill
	p.WeaponSkill = ps.WeaponSkill
	if m, ok := missions.Get(ps.CurrentMission); ok {
		p.Mission = m
	}

	s := engine.NewState(d.Width, d.Height, p, missions)
	s.Tick = d.GameTime
	s.Scenario = d.Scenario

	for pair := d.NPCs.Oldest(); pair != nil; pair = pair.Next() {
		st := pair.Value
		pos := entity.Position{X: st.X, Y: st.Y}
		var n *entity.NPC
		if st.Type == entity.KindBigSmoke {
			n = entity.NewBigSmoke(st.Name, st.Dialogue, pos)
		} else {
			n = entity.NewNPC(st.Name, st.Dialogue, pos)
		}
		applyCharacter(&n.Character, st.CharacterState)
		n.AfterDialogue = st.AfterDialogue
		n.MissionCompleted = st.MissionCompleted
		if m, ok := missions.Get(st.MissionOffered); ok {
			n.Mission = m
		}
		if err := s.AddNPC(pair.Key, n); err != nil {
			return nil, err
		}
	}
	for pair := d.Shops.Oldest(); pair != nil; pair = pair.Next() {
		st := pair.Value
		sh := entity.NewShop(st.Name, st.ShopType, entity.Position{X: st.X, Y: st.Y})
		sh.Glyph = glyph(st.Char, sh.Glyph)
		for _, l := range st.Inventory {
			sh.Stock(NewItem(l.Item), l.Price)
		}
		if err := s.AddShop(pair.Key, sh); err != nil {
			return nil, err
		}
	}
	for pair := d.Enemies.Oldest(); pair != nil; pair = pair.Next() {
		st := pair.Value
		e := entity.NewEnemy(st.Name, entity.Position{X: st.X, Y: st.Y}, st.Health, st.Damage, st.Faction)
		applyCharacter(&e.Character, st.CharacterState)
		if err := s.AddEnemy(pair.Key, e); err != nil {
			return nil, err
		}
	}
	for pair := d.Vehicles.Oldest(); pair != nil; pair = pair.Next() {
		st := pair.Value
		v := entity.NewVehicle(st.Name, entity.Position{X: st.X, Y: st.Y}, st.Health, st.Speed)
		v.MaxHealth = st.MaxHealth
		v.Glyph = glyph(st.Char, v.Glyph)
		if p.Vehicle == nil && (st.Occupant == p.Name || (st.Occupant == "" && ps.CurrentVehicle == st.Name)) {
			if err := v.Enter(p); err != nil {
				return nil, err
			}
		}
		if err := s.AddVehicle(pair.Key, v); err != nil {
			return nil, err
		}
	}
	for _, st := range d.ItemsOnMap {
		s.AddItem(NewItem(st))
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptSave, err)
	}
	return s, nil
}

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

// glyph returns the single map cell a stored char draws as. Older saves
// wrap the glyph in terminal styling, which is dropped.
func glyph(stored, fallback string) string {
	plain := ansiEscape.ReplaceAllString(stored, "")
	r, size := utf8.DecodeRuneInString(plain)
	if size == 0 || r == utf8.RuneError {
		return fallback
	}
	return string(r)
}

func applyCharacter(c *entity.Character, st CharacterState) {
	c.Health = st.Health
	c.MaxHealth = st.MaxHealth
	c.Money = st.Money
	c.Stamina = st.Stamina
	c.MaxStamina = st.MaxStamina
	c.Glyph = glyph(st.Char, c.Glyph)
	c.Inventory = make([]*entity.Item, 0, len(st.Inventory))
	for _, it := range st.Inventory {
		c.AddItem(NewItem(it))
	}
	c.Weapon = nil
	if st.CurrentWeapon != "" {
		c.Weapon = c.FindItem(st.CurrentWeapon, entity.KindWeapon)
	}
}

func fits(grid [][]bool, width, height int) bool {
	if len(grid) != height {
		return false
	}
	for _, row := range grid {
		if len(row) != width {
			return false
		}
	}
	return true
}
