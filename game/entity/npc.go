package entity

// NPC is a friendly character that talks and may offer a mission.
// Variant KindBigSmoke widens the footprint to two cells.
type NPC struct {
	Character
	Variant          Kind
	Dialogue         string
	AfterDialogue    string
	Mission          *Mission
	MissionCompleted bool
}

// NewNPC creates a regular one-cell NPC.
func NewNPC(name, dialogue string, pos Position) *NPC {
	return &NPC{
		Character: newCharacter(name, "N", pos, 50),
		Variant:   KindNPC,
		Dialogue:  dialogue,
	}
}

// NewBigSmoke creates the two-cell Big Smoke NPC.
func NewBigSmoke(name, dialogue string, pos Position) *NPC {
	n := NewNPC(name, dialogue, pos)
	n.Variant = KindBigSmoke
	n.Glyph = "B"
	return n
}

func (n *NPC) GetKind() Kind {
	if n.Variant == "" {
		return KindNPC
	}
	return n.Variant
}

// Footprint covers (x,y) and, for Big Smoke, (x+1,y).
func (n *NPC) Footprint() []Position {
	if n.GetKind() == KindBigSmoke {
		return []Position{n.Pos, n.Pos.Add(1, 0)}
	}
	return []Position{n.Pos}
}

// Enemy is a hostile character.
type Enemy struct {
	Character
	Damage  int
	Faction string
}

// FactionPolice marks law enforcement enemies.
const FactionPolice = "Police"

// NewEnemy creates a hostile character.
func NewEnemy(name string, pos Position, health, damage int, faction string) *Enemy {
	e := &Enemy{
		Character: newCharacter(name, "E", pos, health),
		Damage:    damage,
		Faction:   faction,
	}
	if e.IsPolice() {
		e.Glyph = "P"
	}
	return e
}

func (e *Enemy) GetKind() Kind { return KindEnemy }

// IsPolice reports whether the enemy belongs to the police.
func (e *Enemy) IsPolice() bool { return e.Faction == FactionPolice }

// AttackDamage uses the equipped weapon, else the enemy's own damage.
func (e *Enemy) AttackDamage() int {
	if e.Weapon != nil {
		return e.Weapon.Damage
	}
	return e.Damage
}
