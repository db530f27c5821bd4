package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"

	"github.com/wricardo/sanandreas/game/entity"
)

// CurrentVersion is the schema version written by Encode.
const CurrentVersion = 3

var (
	ErrNoSave             = errors.New("no saved game")
	ErrCorruptSave        = errors.New("corrupt save document")
	ErrUnsupportedVersion = errors.New("unsupported save version")
)

// unset marks a numeric field that was absent from the input.
const unset = -1

// Document is the on-disk form of a game.
type Document struct {
	Version    int                                          `json:"version"`
	GameTime   int                                          `json:"game_time"`
	Scenario   string                                       `json:"scenario,omitempty"`
	Width      int                                          `json:"width,omitempty"`
	Height     int                                          `json:"height,omitempty"`
	SavedAt    time.Time                                    `json:"saved_at"`
	Player     PlayerState                                  `json:"player"`
	NPCs       *orderedmap.OrderedMap[string, NPCState]     `json:"npcs"`
	Shops      *orderedmap.OrderedMap[string, ShopState]    `json:"shops"`
	Enemies    *orderedmap.OrderedMap[string, EnemyState]   `json:"enemies"`
	Vehicles   *orderedmap.OrderedMap[string, VehicleState] `json:"vehicles"`
	ItemsOnMap []ItemState                                  `json:"items_on_map"`
}

// NewDocument returns an empty document at the current version.
func NewDocument() *Document {
	return &Document{
		Version:  CurrentVersion,
		NPCs:     orderedmap.New[string, NPCState](),
		Shops:    orderedmap.New[string, ShopState](),
		Enemies:  orderedmap.New[string, EnemyState](),
		Vehicles: orderedmap.New[string, VehicleState](),
	}
}

// ensureMaps replaces absent registries with empty ones.
func (d *Document) ensureMaps() {
	if d.NPCs == nil {
		d.NPCs = orderedmap.New[string, NPCState]()
	}
	if d.Shops == nil {
		d.Shops = orderedmap.New[string, ShopState]()
	}
	if d.Enemies == nil {
		d.Enemies = orderedmap.New[string, EnemyState]()
	}
	if d.Vehicles == nil {
		d.Vehicles = orderedmap.New[string, VehicleState]()
	}
}

// ItemState is one item, on the map or inside an inventory or catalog.
// Fields absent from the input take the defaults of the item type.
type ItemState struct {
	Type          entity.Kind `json:"type" yaml:"type"`
	Name          string      `json:"name" yaml:"name"`
	X             int         `json:"x" yaml:"x"`
	Y             int         `json:"y" yaml:"y"`
	Char          string      `json:"char,omitempty" yaml:"char,omitempty"`
	Description   string      `json:"description" yaml:"description"`
	Value         int         `json:"value" yaml:"value"`
	Damage        int         `json:"damage,omitempty" yaml:"damage,omitempty"`
	HealAmount    int         `json:"heal_amount,omitempty" yaml:"heal_amount,omitempty"`
	Amount        int         `json:"amount,omitempty" yaml:"amount,omitempty"`
	HungerRestore int         `json:"hunger_restore,omitempty" yaml:"hunger_restore,omitempty"`
	ThirstRestore int         `json:"thirst_restore,omitempty" yaml:"thirst_restore,omitempty"`
}

func unsetItem() ItemState {
	return ItemState{Value: unset, Damage: unset, HealAmount: unset, Amount: unset, HungerRestore: unset, ThirstRestore: unset}
}

var itemDescriptions = map[entity.Kind]string{
	entity.KindItem:        "A generic item.",
	entity.KindWeapon:      "A weapon.",
	entity.KindHealthPack:  "A health pack.",
	entity.KindMoneyBundle: "A bundle of cash.",
	entity.KindFood:        "Some food.",
	entity.KindDrink:       "A drink.",
}

func (s *ItemState) fill() {
	if s.Type == "" {
		s.Type = entity.KindItem
	}
	if s.Description == "" {
		s.Description = itemDescriptions[s.Type]
	}
	orDefault(&s.Value, 0)
	orDefault(&s.Damage, 1)
	orDefault(&s.HealAmount, 25)
	orDefault(&s.Amount, 0)
	orDefault(&s.HungerRestore, 20)
	orDefault(&s.ThirstRestore, 20)
	switch s.Type {
	case entity.KindWeapon:
		s.HealAmount, s.Amount, s.HungerRestore, s.ThirstRestore = 0, 0, 0, 0
	case entity.KindHealthPack:
		s.Damage, s.Amount, s.HungerRestore, s.ThirstRestore = 0, 0, 0, 0
	case entity.KindMoneyBundle:
		s.Damage, s.HealAmount, s.HungerRestore, s.ThirstRestore = 0, 0, 0, 0
	case entity.KindFood:
		s.Damage, s.HealAmount, s.Amount, s.ThirstRestore = 0, 0, 0, 0
	case entity.KindDrink:
		s.Damage, s.HealAmount, s.Amount, s.HungerRestore = 0, 0, 0, 0
	default:
		s.Damage, s.HealAmount, s.Amount, s.HungerRestore, s.ThirstRestore = 0, 0, 0, 0, 0
	}
}

func (s *ItemState) UnmarshalJSON(data []byte) error {
	type plain ItemState
	p := plain(unsetItem())
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = ItemState(p)
	s.fill()
	return nil
}

func (s *ItemState) UnmarshalYAML(n *yaml.Node) error {
	type plain ItemState
	p := plain(unsetItem())
	if err := n.Decode(&p); err != nil {
		return err
	}
	*s = ItemState(p)
	s.fill()
	return nil
}

// CharacterState holds the fields shared by every character.
type CharacterState struct {
	Type          entity.Kind `json:"type"`
	Name          string      `json:"name"`
	X             int         `json:"x"`
	Y             int         `json:"y"`
	Char          string      `json:"char,omitempty"`
	Health        int         `json:"health"`
	MaxHealth     int         `json:"max_health"`
	Money         int         `json:"money"`
	Stamina       float64     `json:"stamina"`
	MaxStamina    float64     `json:"max_stamina"`
	Inventory     []ItemState `json:"inventory"`
	CurrentWeapon string      `json:"current_weapon,omitempty"`
}

func unsetCharacter(kind entity.Kind, health int) CharacterState {
	return CharacterState{Type: kind, Health: health, MaxHealth: unset, Stamina: 100, MaxStamina: unset}
}

func (c *CharacterState) fill() {
	if c.MaxHealth == unset {
		c.MaxHealth = c.Health
	}
	if c.MaxStamina == unset {
		c.MaxStamina = c.Stamina
	}
}

// PlayerState is the player character.
type PlayerState struct {
	CharacterState
	DiscoveredMap     [][]bool `json:"discovered_map"`
	MissionsCompleted []string `json:"missions_completed"`
	CurrentMission    string   `json:"current_mission,omitempty"`
	WantedLevel       int      `json:"wanted_level"`
	Hunger            int      `json:"hunger"`
	Thirst            int      `json:"thirst"`
	DrivingSkill      int      `json:"driving_skill"`
	WeaponSkill       int      `json:"weapon_skill"`
	CurrentVehicle    string   `json:"current_vehicle,omitempty"`
}

func (s *PlayerState) UnmarshalJSON(data []byte) error {
	type plain PlayerState
	p := plain{
		CharacterState: unsetCharacter(entity.KindPlayer, 100),
		Hunger:         entity.MaxNeed,
		Thirst:         entity.MaxNeed,
		DrivingSkill:   1,
		WeaponSkill:    1,
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = PlayerState(p)
	s.fill()
	return nil
}

// NPCState is a talking character. Type is NPC or BigSmoke.
type NPCState struct {
	CharacterState
	Dialogue         string `json:"dialogue"`
	AfterDialogue    string `json:"after_dialogue,omitempty"`
	MissionOffered   string `json:"mission_offered,omitempty"`
	MissionCompleted bool   `json:"mission_completed"`
}

func (s *NPCState) UnmarshalJSON(data []byte) error {
	type plain NPCState
	p := plain{CharacterState: unsetCharacter(entity.KindNPC, 50)}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = NPCState(p)
	if s.Dialogue == "" {
		s.Dialogue = "..."
	}
	s.fill()
	return nil
}

// EnemyState is a hostile character.
type EnemyState struct {
	CharacterState
	Damage  int    `json:"damage"`
	Faction string `json:"faction"`
}

func (s *EnemyState) UnmarshalJSON(data []byte) error {
	type plain EnemyState
	p := plain{CharacterState: unsetCharacter(entity.KindEnemy, 40), Damage: 10, Faction: "Gang"}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = EnemyState(p)
	s.fill()
	return nil
}

// ShopState is a shop and its catalog.
type ShopState struct {
	Type      entity.Kind    `json:"type"`
	Name      string         `json:"name"`
	X         int            `json:"x"`
	Y         int            `json:"y"`
	Char      string         `json:"char,omitempty"`
	ShopType  string         `json:"shop_type"`
	Inventory []ListingState `json:"inventory"`
}

func (s *ShopState) UnmarshalJSON(data []byte) error {
	type plain ShopState
	p := plain{Type: entity.KindShop, ShopType: "General"}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = ShopState(p)
	return nil
}

// ListingState is one catalog line, written as an [item, price] pair.
type ListingState struct {
	Item  ItemState `yaml:"item"`
	Price int       `yaml:"price"`
}

func (l ListingState) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{l.Item, l.Price})
}

func (l *ListingState) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("catalog entry has %d elements, want [item, price]", len(pair))
	}
	if err := json.Unmarshal(pair[0], &l.Item); err != nil {
		return err
	}
	return json.Unmarshal(pair[1], &l.Price)
}

// VehicleState is a vehicle and the name of whoever drives it.
type VehicleState struct {
	Type      entity.Kind `json:"type"`
	Name      string      `json:"name"`
	X         int         `json:"x"`
	Y         int         `json:"y"`
	Char      string      `json:"char,omitempty"`
	Health    int         `json:"health"`
	MaxHealth int         `json:"max_health"`
	Speed     int         `json:"speed"`
	Occupant  string      `json:"occupant,omitempty"`
}

func (s *VehicleState) UnmarshalJSON(data []byte) error {
	type plain VehicleState
	p := plain{Type: entity.KindVehicle, Health: 100, MaxHealth: unset, Speed: 1}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = VehicleState(p)
	if s.MaxHealth == unset {
		s.MaxHealth = s.Health
	}
	return nil
}

func orDefault(v *int, def int) {
	if *v == unset {
		*v = def
	}
}
