package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/sanandreas/game/config"
	"github.com/wricardo/sanandreas/game/engine"
	"github.com/wricardo/sanandreas/game/render"
)

func newModel(t *testing.T) (Model, *engine.GameEngine) {
	t.Helper()
	scenarios, err := config.NewManager("")
	require.NoError(t, err)
	st, err := scenarios.NewWorld("short_story")
	require.NoError(t, err)
	eng, err := engine.NewEngine(st, engine.WithRandom(engine.NewRandom(3)))
	require.NoError(t, err)
	return NewModel(eng, render.PlainPalette()), eng
}

func send(t *testing.T, m Model, input string) (Model, tea.Cmd) {
	t.Helper()
	var next tea.Model = m
	if input != "" {
		next, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(input)})
	}
	next, cmd := next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model), cmd
}

func TestEnterStepsEngine(t *testing.T) {
	m, eng := newModel(t)

	m, cmd := send(t, m, "d")
	assert.Nil(t, cmd)
	assert.Equal(t, 1, eng.GetState().Tick)
	assert.Equal(t, engine.Position{X: 16, Y: 6}, eng.GetState().Player.GetPosition())
	assert.Empty(t, m.textInput.Value())
	assert.Contains(t, m.Log(), userStyle.Render("> d"))

	m, _ = send(t, m, "zzz")
	assert.Contains(t, m.Log(), "Unknown command 'zzz'.")
	assert.Equal(t, 2, eng.GetState().Tick)
}

func TestViewShowsHUDMapAndMenu(t *testing.T) {
	m, eng := newModel(t)
	eng.GetState().Player.SetPosition(engine.Position{X: 19, Y: 2})

	view := m.View()
	assert.Contains(t, view, "Text-Based San Andreas")
	assert.Contains(t, view, "Money: $100")
	assert.Contains(t, view, "@")

	m, _ = send(t, m, "e")
	require.NotNil(t, eng.Prompt())
	view = m.View()
	assert.Contains(t, view, "Corner Store")
	assert.Contains(t, view, "1. Donut")

	m, _ = send(t, m, "0")
	assert.Nil(t, eng.Prompt())
	assert.NotContains(t, m.View(), "1. Donut")
}

func TestQuitKeys(t *testing.T) {
	m, eng := newModel(t)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, engine.StatusQuit, eng.Status())
	assert.Contains(t, next.(Model).Log(), "Thanks for playing!")
}

func TestEnterAfterGameOverExits(t *testing.T) {
	m, eng := newModel(t)
	m, _ = send(t, m, "q")
	assert.True(t, eng.IsGameOver())
	assert.Contains(t, m.View(), "Game over.")

	_, cmd := send(t, m, "")
	assert.NotNil(t, cmd)
}

func TestLogIsBounded(t *testing.T) {
	m, _ := newModel(t)
	for i := 0; i < maxLogSize; i++ {
		m, _ = send(t, m, "?")
	}
	assert.Len(t, m.Log(), maxLogSize)
}

func TestWindowResize(t *testing.T) {
	m, _ := newModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	resized := next.(Model)
	assert.Equal(t, 120, resized.width)
	assert.Equal(t, 120, resized.viewport.Width)
}
