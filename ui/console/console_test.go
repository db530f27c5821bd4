package console_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/sanandreas/game/config"
	"github.com/wricardo/sanandreas/game/engine"
	"github.com/wricardo/sanandreas/game/save"
	"github.com/wricardo/sanandreas/ui/console"
)

func newEngine(t *testing.T, store engine.Store) *engine.GameEngine {
	t.Helper()
	scenarios, err := config.NewManager("")
	require.NoError(t, err)
	st, err := scenarios.NewWorld("short_story")
	require.NoError(t, err)
	opts := []engine.Option{
		engine.WithRandom(engine.NewRandom(7)),
		engine.WithFreshWorld(scenarios.Fresh("short_story")),
	}
	if store != nil {
		opts = append(opts, engine.WithStore(store))
	}
	eng, err := engine.NewEngine(st, opts...)
	require.NoError(t, err)
	return eng
}

func play(t *testing.T, eng *engine.GameEngine, script string) string {
	t.Helper()
	var out bytes.Buffer
	err := console.New(eng, strings.NewReader(script), &out).Run(context.Background())
	require.NoError(t, err)
	return out.String()
}

func TestRunUntilQuit(t *testing.T) {
	eng := newEngine(t, nil)
	out := play(t, eng, "\nd\nzzz\nq\n")

	assert.Contains(t, out, "Welcome to San Andreas")
	assert.Contains(t, out, "Starting a new game...")
	assert.Contains(t, out, "--- Text-Based San Andreas ---")
	assert.Contains(t, out, "Health: ")
	assert.Contains(t, out, "What do you do?")
	assert.Contains(t, out, "Unknown command 'zzz'.")
	assert.Contains(t, out, "Thanks for playing!")

	assert.Equal(t, engine.StatusQuit, eng.Status())
	assert.Equal(t, 2, eng.GetState().Tick, "the unknown command costs a turn")
	assert.Equal(t, engine.Position{X: 16, Y: 6}, eng.GetState().Player.GetPosition())
}

func TestEOFQuits(t *testing.T) {
	t.Run("before the first command", func(t *testing.T) {
		eng := newEngine(t, nil)
		out := play(t, eng, "")
		assert.Contains(t, out, "Thanks for playing!")
		assert.Equal(t, engine.StatusQuit, eng.Status())
	})

	t.Run("inside a menu", func(t *testing.T) {
		eng := newEngine(t, nil)
		eng.GetState().Player.SetPosition(engine.Position{X: 19, Y: 2})
		out := play(t, eng, "\ne\n")
		assert.Contains(t, out, "--- Corner Store ---")
		assert.Contains(t, out, "1. Donut")
		assert.Contains(t, out, "Your money: $100.")
		assert.Equal(t, engine.StatusQuit, eng.Status())
		assert.Nil(t, eng.Prompt())
	})
}

func TestSaveThenLoadAtStart(t *testing.T) {
	scenarios, err := config.NewManager("")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "savegame.json")
	store := save.NewFileStore(path, scenarios.Fresh("short_story"), zerolog.Nop())

	first := newEngine(t, store)
	out := play(t, first, "\nd\nd\nv\nq\n")
	assert.Contains(t, out, "Game saved successfully!")

	second := newEngine(t, store)
	second.GetState().Player.Hunger = 1
	out = play(t, second, "l\nq\n")
	assert.Contains(t, out, "Game loaded successfully!")
	assert.NotContains(t, out, "You are starving", "the fresh world is replaced before its upkeep")
	assert.Equal(t, 2, second.GetState().Tick)
	assert.Equal(t, engine.Position{X: 17, Y: 6}, second.GetState().Player.GetPosition())
}

func TestCanceledContext(t *testing.T) {
	eng := newEngine(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := console.New(eng, strings.NewReader("\nd\n"), &out).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
