// Package console plays one game over a line-oriented terminal.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/wricardo/sanandreas/game/engine"
	"github.com/wricardo/sanandreas/game/render"
)

const (
	welcome     = "Welcome to San Andreas: The Definitive Edition Demake!"
	startPrompt = "Type 'l' to load a game or press Enter to start a new one."
	commandAsk  = "What do you do? (W/A/S/D - move, E - interact/enter, X - exit vehicle, U - use item, F - attack, V - save, L - load, Q - quit): "
)

// Console drives an engine from a reader and writes frames to a writer
type Console struct {
	engine  *engine.GameEngine
	in      *bufio.Scanner
	out     io.Writer
	palette render.Palette
	log     zerolog.Logger
}

// Option configures a Console
type Option func(*Console)

// WithPalette sets the glyph colors. The default is uncolored.
func WithPalette(p render.Palette) Option { return func(c *Console) { c.palette = p } }

// WithLogger sets the logger
func WithLogger(l zerolog.Logger) Option { return func(c *Console) { c.log = l } }

// New creates a console for eng.
func New(eng *engine.GameEngine, in io.Reader, out io.Writer, opts ...Option) *Console {
	c := &Console{
		engine:  eng,
		in:      bufio.NewScanner(in),
		out:     out,
		palette: render.PlainPalette(),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run plays until the game ends, the input runs out or ctx is canceled.
func (c *Console) Run(ctx context.Context) error {
	c.println(welcome)
	c.println(startPrompt)
	c.print("> ")
	line, ok := c.readLine()
	if !ok {
		c.show(c.engine.Quit())
		return c.in.Err()
	}
	if strings.EqualFold(strings.TrimSpace(line), "l") {
		c.show(c.engine.Load())
	} else {
		c.println("Starting a new game...")
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		upkeep := c.engine.Begin()
		c.println(render.Screen(c.engine.GetState(), c.engine.View(), c.palette))
		c.events(upkeep)
		if c.engine.IsGameOver() {
			c.log.Info().Str("status", string(c.engine.Status())).Msg("console game finished")
			return nil
		}

		c.ask()
		line, ok := c.readLine()
		if !ok {
			c.println("")
			c.show(c.engine.Quit())
			return c.in.Err()
		}
		res := c.engine.Step(line)
		c.events(res.Events)
		if res.Status != engine.StatusPlaying {
			c.log.Info().Str("status", string(res.Status)).Int("tick", res.Tick).Msg("console game finished")
			return nil
		}
	}
}

func (c *Console) ask() {
	p := c.engine.Prompt()
	if p == nil {
		c.print(commandAsk)
		return
	}
	c.println("--- " + p.Title + " ---")
	for _, opt := range p.Options {
		c.println(opt)
	}
	if p.Kind == engine.PromptShop {
		c.print(fmt.Sprintf("Your money: $%d. %s ", c.engine.GetState().Player.Money, p.Question))
		return
	}
	c.print(p.Question + " ")
}

func (c *Console) show(res engine.Result) {
	c.events(res.Events)
}

func (c *Console) events(events []engine.Event) {
	for _, ev := range events {
		c.println(ev.Message)
	}
}

func (c *Console) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return c.in.Text(), true
}

func (c *Console) print(s string) {
	if _, err := io.WriteString(c.out, s); err != nil {
		c.log.Warn().Err(err).Msg("console write")
	}
}

func (c *Console) println(s string) { c.print(s + "\n") }
