// Package world holds the map grid, object occupancy and fog of war.
package world

import (
	"errors"
	"fmt"

	"github.com/wricardo/sanandreas/game/entity"
)

var (
	ErrOutOfBounds = errors.New("out of bounds")
	ErrOccupied    = errors.New("cell occupied")
)

// BlockedError reports which object stands in the way.
type BlockedError struct {
	Pos Position
	By  entity.Object
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("cell (%d,%d) occupied by %s", e.Pos.X, e.Pos.Y, e.By.GetName())
}

func (e *BlockedError) Unwrap() error { return ErrOccupied }

// Position is re-exported for brevity in callers.
type Position = entity.Position

// Map is a fixed-size grid holding live objects in insertion order.
type Map struct {
	Width   int
	Height  int
	objects []entity.Object
}

// New creates an empty map.
func New(width, height int) *Map {
	return &Map{Width: width, Height: height}
}

// InBounds reports whether p lies on the grid.
func (m *Map) InBounds(p Position) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < m.Width && p.Y < m.Height
}

// Add places obj on the map.
func (m *Map) Add(obj entity.Object) {
	m.objects = append(m.objects, obj)
}

// Remove takes obj off the map.
func (m *Map) Remove(obj entity.Object) bool {
	for i, o := range m.objects {
		if o == obj {
			m.objects = append(m.objects[:i], m.objects[i+1:]...)
			return true
		}
	}
	return false
}

// Objects returns the live objects in insertion order.
func (m *Map) Objects() []entity.Object {
	return append([]entity.Object(nil), m.objects...)
}

// Items returns the items lying on the map.
func (m *Map) Items() []*entity.Item {
	var items []*entity.Item
	for _, o := range m.objects {
		if it, ok := o.(*entity.Item); ok {
			items = append(items, it)
		}
	}
	return items
}

// Len returns the number of live objects.
func (m *Map) Len() int { return len(m.objects) }

// OccupantAt returns the first object whose footprint covers p.
func (m *Map) OccupantAt(p Position) entity.Object {
	for _, o := range m.objects {
		if covers(o, p) {
			return o
		}
	}
	return nil
}

// OccupantsAt returns every object covering p in insertion order.
func (m *Map) OccupantsAt(p Position) []entity.Object {
	var out []entity.Object
	for _, o := range m.objects {
		if covers(o, p) {
			out = append(out, o)
		}
	}
	return out
}

// Blocker returns the first object at p that is not one of ignore.
func (m *Map) Blocker(p Position, ignore ...entity.Object) entity.Object {
	for _, o := range m.objects {
		if isIgnored(o, ignore) || !covers(o, p) {
			continue
		}
		return o
	}
	return nil
}

// CanMoveTo checks that p is on the grid and free of everything but ignore.
func (m *Map) CanMoveTo(p Position, ignore ...entity.Object) error {
	if !m.InBounds(p) {
		return fmt.Errorf("move to (%d,%d): %w", p.X, p.Y, ErrOutOfBounds)
	}
	if b := m.Blocker(p, ignore...); b != nil {
		return &BlockedError{Pos: p, By: b}
	}
	return nil
}

// Move relocates obj to p when the target is free. A wide object must fit
// with its whole footprint.
func (m *Map) Move(obj entity.Object, p Position, ignore ...entity.Object) error {
	ignore = append(ignore, obj)
	delta := Position{X: p.X - obj.GetPosition().X, Y: p.Y - obj.GetPosition().Y}
	for _, cell := range obj.Footprint() {
		if err := m.CanMoveTo(cell.Add(delta.X, delta.Y), ignore...); err != nil {
			return err
		}
	}
	obj.SetPosition(p)
	return nil
}

// Neighbors lists the eight cells around p row by row, skipping cells off
// the grid.
func (m *Map) Neighbors(p Position) []Position {
	out := make([]Position, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			n := p.Add(dx, dy)
			if m.InBounds(n) {
				out = append(out, n)
			}
		}
	}
	return out
}

// Clamp pulls p back onto the grid.
func (m *Map) Clamp(p Position) Position {
	return Position{X: clamp(p.X, 0, m.Width-1), Y: clamp(p.Y, 0, m.Height-1)}
}

func covers(o entity.Object, p Position) bool {
	for _, c := range o.Footprint() {
		if c == p {
			return true
		}
	}
	return false
}

func isIgnored(o entity.Object, ignore []entity.Object) bool {
	for _, i := range ignore {
		if i != nil && o == i {
			return true
		}
	}
	return false
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
