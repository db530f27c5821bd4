package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/sanandreas/game/engine"
	"github.com/wricardo/sanandreas/game/entity"
	"github.com/wricardo/sanandreas/game/mission"
)

func smallWorld(t *testing.T) *engine.State {
	t.Helper()
	g, err := mission.NewGraph()
	require.NoError(t, err)

	p := entity.NewPlayer("CJ", entity.Position{X: 1, Y: 1}, 10, 3)
	s := engine.NewState(10, 3, p, g)
	require.NoError(t, s.AddNPC("big_smoke", entity.NewBigSmoke("Big Smoke", "...", entity.Position{X: 4, Y: 1})))
	require.NoError(t, s.AddEnemy("cop", entity.NewEnemy("Officer", entity.Position{X: 8, Y: 0}, 50, 10, entity.FactionPolice)))
	s.AddItem(entity.NewWeapon("Pistol", "A basic handgun.", 15, 75).At(entity.Position{X: 7, Y: 1}))
	return s
}

func TestRowsFullyDiscovered(t *testing.T) {
	s := smallWorld(t)
	s.Map.Discover(s.Player, 20)

	assert.Equal(t, []string{
		"........P.",
		".@..BS.W..",
		"..........",
	}, Rows(s.Map.Snapshot(s.Player)))
}

func TestRowsHideUndiscoveredCells(t *testing.T) {
	s := smallWorld(t)
	s.Map.Discover(s.Player, 1)

	rows := Rows(s.Map.Snapshot(s.Player))
	assert.Equal(t, " .        ", rows[0])
	assert.Equal(t, ".@.       ", rows[1])
	assert.Equal(t, " .        ", rows[2])
}

func TestPlainPaletteMatchesPlain(t *testing.T) {
	s := smallWorld(t)
	s.Map.Discover(s.Player, 20)
	v := s.Map.Snapshot(s.Player)

	assert.Equal(t, Plain(v), PlainPalette().Map(v))
}

func TestHUD(t *testing.T) {
	s := smallWorld(t)
	s.Player.Money = 500
	s.Player.WantedLevel = 2
	s.Tick = 250

	hud := HUD(s)
	require.Len(t, hud, 3)
	assert.Equal(t, "Health: 100/100 | Stamina: 100/100 | Money: $500 | Wanted: **", hud[0])
	assert.Equal(t, "Hunger: 100% | Thirst: 100% | Time: 02:30", hud[1])
	assert.Equal(t, "Weapon: Fists | Vehicle: On foot | Mission: None", hud[2])
}

func TestScreen(t *testing.T) {
	s := smallWorld(t)
	s.Map.Discover(s.Player, 20)

	screen := Screen(s, s.Map.Snapshot(s.Player), PlainPalette())
	lines := strings.Split(screen, "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, "--- Text-Based San Andreas ---", lines[0])
	assert.Equal(t, strings.Repeat("-", 12), lines[4])
	assert.Equal(t, ".@..BS.W..", lines[6])
	assert.Equal(t, strings.Repeat("-", 12), lines[8])
}
