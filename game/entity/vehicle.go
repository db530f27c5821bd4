package entity

// Vehicle can carry the player around the map.
type Vehicle struct {
	Base
	Health    int
	MaxHealth int
	Speed     int
	Occupant  *Player
}

// NewVehicle creates an empty vehicle at full health.
func NewVehicle(name string, pos Position, health, speed int) *Vehicle {
	return &Vehicle{
		Base:      Base{Name: name, Pos: pos, Glyph: "V"},
		Health:    health,
		MaxHealth: health,
		Speed:     speed,
	}
}

func (v *Vehicle) GetKind() Kind { return KindVehicle }

// SetPosition moves the vehicle and whoever is inside it.
func (v *Vehicle) SetPosition(pos Position) {
	v.Pos = pos
	if v.Occupant != nil {
		v.Occupant.Pos = pos
	}
}

func (v *Vehicle) Alive() bool { return v.Health > 0 }

func (v *Vehicle) TakeDamage(amount int) bool {
	if amount < 0 {
		amount = 0
	}
	before := v.Health
	v.Health = clamp(v.Health-amount, 0, v.MaxHealth)
	return before > 0 && v.Health == 0
}

func (v *Vehicle) Heal(amount int) {
	if amount < 0 {
		amount = 0
	}
	v.Health = clamp(v.Health+amount, 0, v.MaxHealth)
}

// Enter links p and v in both directions and moves p into the vehicle's cell.
func (v *Vehicle) Enter(p *Player) error {
	if v.Occupant != nil {
		return ErrVehicleOccupied
	}
	if p.Vehicle != nil {
		return ErrAlreadyDriving
	}
	v.Occupant = p
	p.Vehicle = v
	p.Pos = v.Pos
	return nil
}

// Exit unlinks p from v and leaves p at pos.
func (v *Vehicle) Exit(p *Player, pos Position) error {
	if v.Occupant != p || p.Vehicle != v {
		return ErrNotDriving
	}
	v.Occupant = nil
	p.Vehicle = nil
	p.Pos = pos
	return nil
}
