package world

import "github.com/wricardo/sanandreas/game/entity"

// Discover reveals every cell within radius of the player.
func (m *Map) Discover(p *entity.Player, radius int) {
	if len(p.Discovered) != m.Height || (m.Height > 0 && len(p.Discovered[0]) != m.Width) {
		p.ResetDiscovery(m.Width, m.Height)
	}
	c := p.GetPosition()
	r2 := radius * radius
	for y := c.Y - radius; y <= c.Y+radius; y++ {
		for x := c.X - radius; x <= c.X+radius; x++ {
			dx, dy := x-c.X, y-c.Y
			if dx*dx+dy*dy <= r2 {
				p.Reveal(x, y)
			}
		}
	}
}

// DiscoveredCount returns the number of discovered cells.
func DiscoveredCount(p *entity.Player) int {
	n := 0
	for _, row := range p.Discovered {
		for _, d := range row {
			if d {
				n++
			}
		}
	}
	return n
}
