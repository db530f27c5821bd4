package world

import "github.com/wricardo/sanandreas/game/entity"

// Layer orders what is drawn when several objects share a cell.
type Layer int

const (
	LayerEmpty Layer = iota
	LayerShop
	LayerItem
	LayerEnemy
	LayerNPC
	LayerVehicle
	LayerPlayer
)

// LayerOf returns the drawing layer of a kind.
func LayerOf(k entity.Kind) Layer {
	switch {
	case k == entity.KindPlayer:
		return LayerPlayer
	case k == entity.KindVehicle:
		return LayerVehicle
	case k.IsNPC():
		return LayerNPC
	case k == entity.KindEnemy:
		return LayerEnemy
	case k.IsItem():
		return LayerItem
	case k == entity.KindShop:
		return LayerShop
	}
	return LayerEmpty
}

// Cell is the classification of one grid cell for a renderer.
type Cell struct {
	Layer      Layer       `json:"layer"`
	Kind       entity.Kind `json:"kind,omitempty"`
	Name       string      `json:"name,omitempty"`
	Glyph      string      `json:"glyph,omitempty"`
	Police     bool        `json:"police,omitempty"`
	Discovered bool        `json:"discovered"`
}

// View is a read-only snapshot of the map as seen by the player.
type View struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Cells  [][]Cell `json:"cells"`
}

// Snapshot classifies every cell, keeping the highest layer per cell.
// Undiscovered cells still carry their occupant; renderers decide what to
// hide.
func (m *Map) Snapshot(p *entity.Player) View {
	v := View{Width: m.Width, Height: m.Height, Cells: make([][]Cell, m.Height)}
	for y := range v.Cells {
		v.Cells[y] = make([]Cell, m.Width)
		for x := range v.Cells[y] {
			v.Cells[y][x].Discovered = p != nil && p.IsDiscovered(x, y)
		}
	}
	for _, o := range m.objects {
		layer := LayerOf(o.GetKind())
		for _, pos := range o.Footprint() {
			if !m.InBounds(pos) {
				continue
			}
			c := &v.Cells[pos.Y][pos.X]
			if layer <= c.Layer {
				continue
			}
			c.Layer = layer
			c.Kind = o.GetKind()
			c.Name = o.GetName()
			c.Glyph = o.GetGlyph()
			e, ok := o.(*entity.Enemy)
			c.Police = ok && e.IsPolice()
		}
	}
	return v
}

// At returns the cell at p or an empty cell off the grid.
func (v View) At(p Position) Cell {
	if p.Y < 0 || p.Y >= len(v.Cells) || p.X < 0 || p.X >= len(v.Cells[p.Y]) {
		return Cell{}
	}
	return v.Cells[p.Y][p.X]
}
