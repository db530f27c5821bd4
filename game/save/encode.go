package save

import (
	"encoding/json"
	"time"

	"github.com/wricardo/sanandreas/game/engine"
	"github.com/wricardo/sanandreas/game/entity"
)

// Encode captures a state as a current-version document.
func Encode(s *engine.State) *Document {
	d := NewDocument()
	d.GameTime = s.Tick
	d.Scenario = s.Scenario
	d.Width = s.Map.Width
	d.Height = s.Map.Height
	d.SavedAt = time.Now().UTC().Truncate(time.Second)
	d.Player = playerState(s.Player)

	for pair := s.NPCs.Oldest(); pair != nil; pair = pair.Next() {
		d.NPCs.Set(pair.Key, npcState(pair.Value))
	}
	for pair := s.Shops.Oldest(); pair != nil; pair = pair.Next() {
		d.Shops.Set(pair.Key, shopState(pair.Value))
	}
	for pair := s.Enemies.Oldest(); pair != nil; pair = pair.Next() {
		d.Enemies.Set(pair.Key, enemyState(pair.Value))
	}
	for pair := s.Vehicles.Oldest(); pair != nil; pair = pair.Next() {
		d.Vehicles.Set(pair.Key, vehicleState(pair.Value))
	}
	for _, it := range s.Map.Items() {
		d.ItemsOnMap = append(d.ItemsOnMap, ItemStateOf(it))
	}
	if d.ItemsOnMap == nil {
		d.ItemsOnMap = []ItemState{}
	}
	return d
}

// Marshal encodes a state as indented JSON.
func Marshal(s *engine.State) ([]byte, error) {
	return json.MarshalIndent(Encode(s), "", "    ")
}

// ItemStateOf captures one item.
func ItemStateOf(it *entity.Item) ItemState {
	st := ItemState{
		Type:        it.GetKind(),
		Name:        it.Name,
		X:           it.Pos.X,
		Y:           it.Pos.Y,
		Char:        it.Glyph,
		Description: it.Description,
		Value:       it.Value,
	}
	switch it.GetKind() {
	case entity.KindWeapon:
		st.Damage = it.Damage
	case entity.KindHealthPack:
		st.HealAmount = it.Heal
	case entity.KindMoneyBundle:
		st.Amount = it.Amount
	case entity.KindFood:
		st.HungerRestore = it.Hunger
	case entity.KindDrink:
		st.ThirstRestore = it.Thirst
	}
	return st
}

// NewItem builds an item from its state, choosing the variant by type tag.
func NewItem(st ItemState) *entity.Item {
	var it *entity.Item
	switch st.Type {
	case entity.KindWeapon:
		it = entity.NewWeapon(st.Name, st.Description, st.Damage, st.Value)
	case entity.KindHealthPack:
		it = entity.NewHealthPack(st.Name, st.Description, st.HealAmount, st.Value)
	case entity.KindMoneyBundle:
		it = entity.NewMoneyBundle(st.Name, st.Description, st.Amount)
		it.Value = st.Value
	case entity.KindFood:
		it = entity.NewFood(st.Name, st.Description, st.HungerRestore, st.Value)
	case entity.KindDrink:
		it = entity.NewDrink(st.Name, st.Description, st.ThirstRestore, st.Value)
	default:
		it = entity.NewItem(entity.KindItem, st.Name, st.Description, st.Value)
	}
	it.Glyph = glyph(st.Char, it.Glyph)
	return it.At(entity.Position{X: st.X, Y: st.Y})
}

func characterState(kind entity.Kind, c *entity.Character) CharacterState {
	st := CharacterState{
		Type:       kind,
		Name:       c.Name,
		X:          c.Pos.X,
		Y:          c.Pos.Y,
		Char:       c.Glyph,
		Health:     c.Health,
		MaxHealth:  c.MaxHealth,
		Money:      c.Money,
		Stamina:    c.Stamina,
		MaxStamina: c.MaxStamina,
		Inventory:  make([]ItemState, 0, len(c.Inventory)),
	}
	for _, it := range c.Inventory {
		st.Inventory = append(st.Inventory, ItemStateOf(it))
	}
	if c.Weapon != nil {
		st.CurrentWeapon = c.Weapon.Name
	}
	return st
}

func playerState(p *entity.Player) PlayerState {
	st := PlayerState{
		CharacterState:    characterState(entity.KindPlayer, &p.Character),
		DiscoveredMap:     p.Discovered,
		MissionsCompleted: append([]string{}, p.Completed...),
		WantedLevel:       p.WantedLevel,
		Hunger:            p.Hunger,
		Thirst:            p.Thirst,
		DrivingSkill:      p.DrivingSkill,
		WeaponSkill:       p.WeaponSkill,
	}
	if p.Mission != nil {
		st.CurrentMission = p.Mission.Name
	}
	if p.Vehicle != nil {
		st.CurrentVehicle = p.Vehicle.Name
	}
	return st
}

func npcState(n *entity.NPC) NPCState {
	st := NPCState{
		CharacterState:   characterState(n.GetKind(), &n.Character),
		Dialogue:         n.Dialogue,
		AfterDialogue:    n.AfterDialogue,
		MissionCompleted: n.MissionCompleted,
	}
	if n.Mission != nil {
		st.MissionOffered = n.Mission.Name
	}
	return st
}

func enemyState(e *entity.Enemy) EnemyState {
	return EnemyState{
		CharacterState: characterState(entity.KindEnemy, &e.Character),
		Damage:         e.Damage,
		Faction:        e.Faction,
	}
}

func shopState(s *entity.Shop) ShopState {
	st := ShopState{
		Type:      entity.KindShop,
		Name:      s.Name,
		X:         s.Pos.X,
		Y:         s.Pos.Y,
		Char:      s.Glyph,
		ShopType:  s.Category,
		Inventory: make([]ListingState, 0, len(s.Catalog)),
	}
	for _, l := range s.Catalog {
		st.Inventory = append(st.Inventory, ListingState{Item: ItemStateOf(l.Item), Price: l.Price})
	}
	return st
}

func vehicleState(v *entity.Vehicle) VehicleState {
	st := VehicleState{
		Type:      entity.KindVehicle,
		Name:      v.Name,
		X:         v.Pos.X,
		Y:         v.Pos.Y,
		Char:      v.Glyph,
		Health:    v.Health,
		MaxHealth: v.MaxHealth,
		Speed:     v.Speed,
	}
	if v.Occupant != nil {
		st.Occupant = v.Occupant.Name
	}
	return st
}
