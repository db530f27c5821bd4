// Package render turns world views into text grids and HUD lines.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wricardo/sanandreas/game/engine"
	"github.com/wricardo/sanandreas/game/entity"
	"github.com/wricardo/sanandreas/game/world"
)

const (
	FogGlyph   = " "
	EmptyGlyph = "."
	// BigSmokeTail is drawn on the second cell of Big Smoke.
	BigSmokeTail = "S"
)

// Glyph returns the plain glyph of the cell at (x, y). Undiscovered cells
// are fog.
func Glyph(v world.View, x, y int) string {
	c := v.At(world.Position{X: x, Y: y})
	if !c.Discovered {
		return FogGlyph
	}
	if c.Layer == world.LayerEmpty || c.Glyph == "" {
		return EmptyGlyph
	}
	if c.Kind == entity.KindBigSmoke {
		left := v.At(world.Position{X: x - 1, Y: y})
		if left.Kind == entity.KindBigSmoke && left.Name == c.Name {
			return BigSmokeTail
		}
	}
	return c.Glyph
}

// Rows renders the view as plain text, one string per map row.
func Rows(v world.View) []string {
	rows := make([]string, v.Height)
	var b strings.Builder
	for y := 0; y < v.Height; y++ {
		b.Reset()
		for x := 0; x < v.Width; x++ {
			b.WriteString(Glyph(v, x, y))
		}
		rows[y] = b.String()
	}
	return rows
}

// Plain renders the view as newline separated plain text.
func Plain(v world.View) string {
	return strings.Join(Rows(v), "\n")
}

// Palette colors glyphs by what occupies the cell.
type Palette struct {
	Player   lipgloss.Style
	NPC      lipgloss.Style
	BigSmoke lipgloss.Style
	Item     lipgloss.Style
	Shop     lipgloss.Style
	Enemy    lipgloss.Style
	Police   lipgloss.Style
	Vehicle  lipgloss.Style
	Empty    lipgloss.Style
	Fog      lipgloss.Style
}

// DefaultPalette is the colored terminal palette.
func DefaultPalette() Palette {
	fg := func(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }
	return Palette{
		Player:   fg("14").Bold(true),
		NPC:      fg("12"),
		BigSmoke: fg("13"),
		Item:     fg("11"),
		Shop:     fg("10"),
		Enemy:    fg("9"),
		Police:   fg("12").Bold(true),
		Vehicle:  fg("15"),
		Empty:    fg("8"),
		Fog:      lipgloss.NewStyle(),
	}
}

// PlainPalette leaves every glyph unstyled.
func PlainPalette() Palette { return Palette{} }

func (p Palette) style(c world.Cell) lipgloss.Style {
	switch {
	case !c.Discovered:
		return p.Fog
	case c.Layer == world.LayerPlayer:
		return p.Player
	case c.Kind == entity.KindBigSmoke:
		return p.BigSmoke
	case c.Layer == world.LayerNPC:
		return p.NPC
	case c.Layer == world.LayerVehicle:
		return p.Vehicle
	case c.Layer == world.LayerEnemy && c.Police:
		return p.Police
	case c.Layer == world.LayerEnemy:
		return p.Enemy
	case c.Layer == world.LayerItem:
		return p.Item
	case c.Layer == world.LayerShop:
		return p.Shop
	}
	return p.Empty
}

// Map renders the view with the palette applied to every glyph.
func (p Palette) Map(v world.View) string {
	var b strings.Builder
	for y := 0; y < v.Height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < v.Width; x++ {
			c := v.At(world.Position{X: x, Y: y})
			b.WriteString(p.style(c).Render(Glyph(v, x, y)))
		}
	}
	return b.String()
}

// HUD returns the status lines shown above the map.
func HUD(s *engine.State) []string {
	p := s.Player
	mission := "None"
	if p.Mission != nil {
		mission = p.Mission.Name
	}
	weapon := "Fists"
	if p.Weapon != nil {
		weapon = p.Weapon.Name
	}
	vehicle := "On foot"
	if p.Vehicle != nil {
		vehicle = p.Vehicle.Name
	}
	return []string{
		fmt.Sprintf("Health: %d/%d | Stamina: %.0f/%.0f | Money: $%d | Wanted: %s",
			p.Health, p.MaxHealth, p.Stamina, p.MaxStamina, p.Money, strings.Repeat("*", p.WantedLevel)),
		fmt.Sprintf("Hunger: %d%% | Thirst: %d%% | Time: %s", p.Hunger, p.Thirst, s.Clock()),
		fmt.Sprintf("Weapon: %s | Vehicle: %s | Mission: %s", weapon, vehicle, mission),
	}
}

// Screen is the full frame: title, HUD, a rule, the map and a closing rule.
func Screen(s *engine.State, v world.View, p Palette) string {
	rule := strings.Repeat("-", v.Width+2)
	lines := []string{"--- Text-Based San Andreas ---"}
	lines = append(lines, HUD(s)...)
	lines = append(lines, rule, p.Map(v), rule)
	return strings.Join(lines, "\n")
}
