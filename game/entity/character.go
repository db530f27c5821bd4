package entity

// Character holds the stats shared by the player, NPCs and enemies.
type Character struct {
	Base
	Health     int
	MaxHealth  int
	Stamina    float64
	MaxStamina float64
	Money      int
	Inventory  []*Item
	Weapon     *Item
}

func newCharacter(name, glyph string, pos Position, health int) Character {
	return Character{
		Base:       Base{Name: name, Pos: pos, Glyph: glyph},
		Health:     health,
		MaxHealth:  health,
		Stamina:    100,
		MaxStamina: 100,
	}
}

// Alive reports whether the character has any health left.
func (c *Character) Alive() bool { return c.Health > 0 }

// TakeDamage subtracts amount from health and reports whether this hit
// brought the character to zero.
func (c *Character) TakeDamage(amount int) bool {
	if amount < 0 {
		amount = 0
	}
	before := c.Health
	c.Health = clamp(c.Health-amount, 0, c.MaxHealth)
	return before > 0 && c.Health == 0
}

// Heal adds amount to health up to MaxHealth.
func (c *Character) Heal(amount int) {
	if amount < 0 {
		amount = 0
	}
	c.Health = clamp(c.Health+amount, 0, c.MaxHealth)
}

// Tire spends stamina, never going below zero.
func (c *Character) Tire(cost float64) {
	c.Stamina = clampFloat(c.Stamina-cost, 0, c.MaxStamina)
}

// Rest restores stamina up to MaxStamina.
func (c *Character) Rest(amount float64) {
	c.Stamina = clampFloat(c.Stamina+amount, 0, c.MaxStamina)
}

// Earn adds money.
func (c *Character) Earn(amount int) {
	if amount > 0 {
		c.Money += amount
	}
}

// Spend removes money or fails with ErrInsufficientFunds.
func (c *Character) Spend(amount int) error {
	if amount > c.Money {
		return ErrInsufficientFunds
	}
	c.Money -= amount
	return nil
}

// AttackDamage is the damage of the equipped weapon, or bare fists.
func (c *Character) AttackDamage() int {
	if c.Weapon != nil {
		return c.Weapon.Damage
	}
	return UnarmedDamage
}

// AddItem appends it to the inventory.
func (c *Character) AddItem(it *Item) {
	if it == nil {
		return
	}
	c.Inventory = append(c.Inventory, it)
}

// RemoveItem drops it from the inventory, unequipping it when needed.
func (c *Character) RemoveItem(it *Item) bool {
	for i, held := range c.Inventory {
		if held != it {
			continue
		}
		c.Inventory = append(c.Inventory[:i], c.Inventory[i+1:]...)
		if c.Weapon == it {
			c.Weapon = nil
		}
		return true
	}
	return false
}

// HasItem reports whether an item with the given name and kind is held.
func (c *Character) HasItem(name string, kind Kind) bool {
	return c.FindItem(name, kind) != nil
}

// FindItem returns the first held item matching name and kind.
// An empty kind matches any variant.
func (c *Character) FindItem(name string, kind Kind) *Item {
	for _, it := range c.Inventory {
		if it.Name == name && (kind == "" || it.GetKind() == kind) {
			return it
		}
	}
	return nil
}

// Holds reports whether this exact item is in the inventory.
func (c *Character) Holds(it *Item) bool {
	for _, held := range c.Inventory {
		if held == it {
			return true
		}
	}
	return false
}

// Equip makes it the current weapon.
func (c *Character) Equip(it *Item) error {
	if it == nil || !c.Holds(it) {
		return ErrNotInInventory
	}
	if it.GetKind() != KindWeapon {
		return ErrNotWeapon
	}
	c.Weapon = it
	return nil
}
