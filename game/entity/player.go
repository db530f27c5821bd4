package entity

// Player is the character controlled by the user.
type Player struct {
	Character
	Discovered   [][]bool
	WantedLevel  int
	Hunger       int
	Thirst       int
	DrivingSkill int
	WeaponSkill  int
	Vehicle      *Vehicle
	Mission      *Mission
	Completed    []string
}

// NewPlayer creates a player with full stats and an undiscovered map of the
// given size.
func NewPlayer(name string, pos Position, width, height int) *Player {
	p := &Player{
		Character:    newCharacter(name, "@", pos, 100),
		Hunger:       MaxNeed,
		Thirst:       MaxNeed,
		DrivingSkill: 1,
		WeaponSkill:  1,
	}
	p.ResetDiscovery(width, height)
	return p
}

func (p *Player) GetKind() Kind { return KindPlayer }

// ResetDiscovery replaces the fog grid with an undiscovered one.
func (p *Player) ResetDiscovery(width, height int) {
	p.Discovered = make([][]bool, height)
	for y := range p.Discovered {
		p.Discovered[y] = make([]bool, width)
	}
}

// Reveal marks a cell as discovered. Out of range cells are ignored.
func (p *Player) Reveal(x, y int) {
	if y < 0 || y >= len(p.Discovered) || x < 0 || x >= len(p.Discovered[y]) {
		return
	}
	p.Discovered[y][x] = true
}

// IsDiscovered reports whether the cell has ever been seen.
func (p *Player) IsDiscovered(x, y int) bool {
	if y < 0 || y >= len(p.Discovered) || x < 0 || x >= len(p.Discovered[y]) {
		return false
	}
	return p.Discovered[y][x]
}

// InVehicle reports whether the player is driving.
func (p *Player) InVehicle() bool { return p.Vehicle != nil }

// SetPosition moves the player, or the vehicle with the player in it.
func (p *Player) SetPosition(pos Position) {
	if p.Vehicle != nil {
		p.Vehicle.SetPosition(pos)
		return
	}
	p.Pos = pos
}

// RaiseWanted increases the wanted level, capped at MaxWanted.
func (p *Player) RaiseWanted(n int) {
	p.WantedLevel = clamp(p.WantedLevel+n, 0, MaxWanted)
}

// LowerWanted decreases the wanted level, floored at zero.
func (p *Player) LowerWanted(n int) {
	p.WantedLevel = clamp(p.WantedLevel-n, 0, MaxWanted)
}

// DecayNeeds lowers hunger and thirst by one each and reports whether either
// is exhausted afterwards.
func (p *Player) DecayNeeds() bool {
	p.Hunger = clamp(p.Hunger-1, 0, MaxNeed)
	p.Thirst = clamp(p.Thirst-1, 0, MaxNeed)
	return p.Hunger == 0 || p.Thirst == 0
}

// Eat restores hunger.
func (p *Player) Eat(amount int) { p.Hunger = clamp(p.Hunger+amount, 0, MaxNeed) }

// Drink restores thirst.
func (p *Player) Drink(amount int) { p.Thirst = clamp(p.Thirst+amount, 0, MaxNeed) }

// HasCompleted reports whether the named mission is done.
func (p *Player) HasCompleted(mission string) bool {
	for _, name := range p.Completed {
		if name == mission {
			return true
		}
	}
	return false
}

// MarkCompleted records a finished mission once.
func (p *Player) MarkCompleted(mission string) bool {
	if p.HasCompleted(mission) {
		return false
	}
	p.Completed = append(p.Completed, mission)
	return true
}
