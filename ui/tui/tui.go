// Package tui is the full-screen terminal front-end built on bubbletea.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wricardo/sanandreas/game/engine"
	"github.com/wricardo/sanandreas/game/render"
)

const (
	logHeight  = 8
	maxLogSize = 200
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true)

	hudStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))

	mapStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#3C3C3C"))

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true)

	menuStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#FFA500")).
			PaddingLeft(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	overStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555")).
			Bold(true)
)

// Model is the bubbletea model of one game
type Model struct {
	engine    *engine.GameEngine
	palette   render.Palette
	textInput textinput.Model
	viewport  viewport.Model
	log       []string
	width     int
	height    int
}

// NewModel creates the model and runs the upkeep of the opening turn.
func NewModel(eng *engine.GameEngine, palette render.Palette) Model {
	ti := textinput.New()
	ti.Placeholder = "w/a/s/d, e, f, x, i, u N, v, l, q"
	ti.Focus()
	ti.CharLimit = 32
	ti.Width = 40

	m := Model{
		engine:    eng,
		palette:   palette,
		textInput: ti,
		viewport:  viewport.New(80, logHeight),
	}
	m.appendEvents(eng.Begin())
	return m
}

// Init starts the cursor blink
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles keys and window resizes
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.appendEvents(m.engine.Quit().Events)
			return m, tea.Quit

		case tea.KeyEnter:
			if m.engine.IsGameOver() {
				return m, tea.Quit
			}
			input := m.textInput.Value()
			m.textInput.Reset()
			m.appendLine(userStyle.Render("> " + input))

			res := m.engine.Step(input)
			m.appendEvents(res.Events)
			m.appendEvents(m.engine.Begin())
			if m.engine.IsGameOver() {
				m.textInput.Placeholder = "Press Enter to exit"
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = logHeight
		m.viewport.SetContent(strings.Join(m.log, "\n"))
		m.viewport.GotoBottom()
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// View draws the HUD, the map, the message log and the input line
func (m Model) View() string {
	st := m.engine.GetState()
	sections := []string{
		titleStyle.Render("--- Text-Based San Andreas ---"),
		hudStyle.Render(strings.Join(render.HUD(st), "\n")),
		mapStyle.Render(m.palette.Map(m.engine.View())),
		m.viewport.View(),
	}

	if p := m.engine.Prompt(); p != nil {
		menu := append([]string{titleStyle.Render(p.Title)}, p.Options...)
		menu = append(menu, p.Question)
		sections = append(sections, menuStyle.Render(strings.Join(menu, "\n")))
	}

	if m.engine.IsGameOver() {
		sections = append(sections, overStyle.Render(gameOverText(m.engine.Status())))
	}

	sections = append(sections,
		m.textInput.View(),
		helpStyle.Render(engine.HelpText+" | Esc to quit"),
	)
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

// Log returns the message log, oldest first.
func (m Model) Log() []string {
	return m.log
}

func (m *Model) appendEvents(events []engine.Event) {
	for _, ev := range events {
		m.appendLine(ev.Message)
	}
}

func (m *Model) appendLine(line string) {
	m.log = append(m.log, line)
	if over := len(m.log) - maxLogSize; over > 0 {
		m.log = m.log[over:]
	}
	m.viewport.SetContent(strings.Join(m.log, "\n"))
	m.viewport.GotoBottom()
}

func gameOverText(s engine.Status) string {
	switch s {
	case engine.StatusWon:
		return "MISSION PASSED! Respect +"
	case engine.StatusLost:
		return "WASTED"
	default:
		return "Game over."
	}
}

// Run plays eng full screen until the player quits.
func Run(eng *engine.GameEngine, palette render.Palette) error {
	p := tea.NewProgram(NewModel(eng, palette), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
