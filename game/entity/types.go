package entity

import "errors"

// Kind is the stable type tag of a map object.
type Kind string

const (
	KindPlayer      Kind = "Player"
	KindNPC         Kind = "NPC"
	KindBigSmoke    Kind = "BigSmoke"
	KindEnemy       Kind = "Enemy"
	KindItem        Kind = "Item"
	KindWeapon      Kind = "Weapon"
	KindHealthPack  Kind = "HealthPack"
	KindMoneyBundle Kind = "MoneyBundle"
	KindFood        Kind = "Food"
	KindDrink       Kind = "Drink"
	KindShop        Kind = "Shop"
	KindVehicle     Kind = "Vehicle"
)

const (
	MaxWanted     = 5
	MaxNeed       = 100
	UnarmedDamage = 5
)

var (
	ErrNotInInventory    = errors.New("item not in inventory")
	ErrNotWeapon         = errors.New("item is not a weapon")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidChoice     = errors.New("invalid choice")
	ErrVehicleOccupied   = errors.New("vehicle is occupied")
	ErrAlreadyDriving    = errors.New("already in a vehicle")
	ErrNotDriving        = errors.New("not in this vehicle")
)

// IsItem reports whether k is one of the item variants.
func (k Kind) IsItem() bool {
	switch k {
	case KindItem, KindWeapon, KindHealthPack, KindMoneyBundle, KindFood, KindDrink:
		return true
	}
	return false
}

// IsNPC reports whether k is a talking character.
func (k Kind) IsNPC() bool {
	return k == KindNPC || k == KindBigSmoke
}

// Position represents x,y coordinates
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Add returns p shifted by dx, dy.
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Chebyshev returns the king-move distance between p and q.
func (p Position) Chebyshev(q Position) int {
	return max(abs(p.X-q.X), abs(p.Y-q.Y))
}

// Object is anything placed on the map.
type Object interface {
	GetName() string
	GetKind() Kind
	GetPosition() Position
	SetPosition(Position)
	Footprint() []Position
	GetGlyph() string
}

// Damageable is implemented by everything with a health pool.
type Damageable interface {
	TakeDamage(amount int) bool
	Heal(amount int)
	Alive() bool
}

// Attacker is implemented by everything that can strike.
type Attacker interface {
	AttackDamage() int
}

// Holder is implemented by everything with an inventory.
type Holder interface {
	AddItem(*Item)
	RemoveItem(*Item) bool
	HasItem(name string, kind Kind) bool
}

// Base carries the fields every object shares.
type Base struct {
	Name  string
	Pos   Position
	Glyph string
}

func (b *Base) GetName() string { return b.Name }
func (b *Base) GetPosition() Position { return b.Pos }
func (b *Base) SetPosition(pos Position) { b.Pos = pos }
func (b *Base) Footprint() []Position { return []Position{b.Pos} }
func (b *Base) GetGlyph() string { return b.Glyph }

// Strike resolves one hit of a against t and returns the damage dealt and
// whether t was defeated by it.
func Strike(a Attacker, t Damageable) (int, bool) {
	dmg := a.AttackDamage()
	return dmg, t.TakeDamage(dmg)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
