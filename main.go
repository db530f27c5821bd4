// Command sanandreas plays San Andreas: The Definitive Edition Demake.
//
// Subcommands:
//  1. "play" (default) – full-screen terminal game
//  2. "console" – line-oriented game on stdin/stdout
//  3. "serve" – HTTP server exposing REST API, WebSocket, and an /mcp HTTP endpoint
//  4. "mcp" – MCP stdio server for agents
//  5. "schema", "validate", "analyze" – save and scenario tooling
//
// Settings come from sanandreas.yaml, SANANDREAS_* environment variables and
// a .env file; flags override both.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cast"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/sanandreas/game/config"
	"github.com/wricardo/sanandreas/game/engine"
	"github.com/wricardo/sanandreas/game/render"
	"github.com/wricardo/sanandreas/game/save"
	"github.com/wricardo/sanandreas/logging"
	"github.com/wricardo/sanandreas/ui/console"
	"github.com/wricardo/sanandreas/ui/tui"
	"github.com/wricardo/sanandreas/validate"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "San Andreas: The Definitive Edition Demake"
)

// app carries what the Before hook resolved to the subcommands.
type app struct {
	in  io.Reader
	out io.Writer

	settings *config.Settings
	log      zerolog.Logger
	closer   io.Closer
}

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{in: os.Stdin, out: os.Stdout}
	if err := a.command().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:    "sanandreas",
		Usage:   AppName,
		Version: Version,
		Writer:  a.out,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "settings file (default: sanandreas.yaml in . or $HOME/.config/sanandreas)"},
			&cli.StringFlag{Name: "scenario", Usage: "scenario to play"},
			&cli.StringFlag{Name: "scenario-dir", Usage: "directory of extra scenario files"},
			&cli.StringFlag{Name: "save", Usage: "save file used by the v and l commands"},
			&cli.StringFlag{Name: "seed", Usage: "random seed, 0 picks one"},
			&cli.StringFlag{Name: "log-level", Usage: "trace, debug, info, warn, error or off"},
			&cli.StringFlag{Name: "log-file", Usage: "log file, - for stderr, empty to disable"},
		},
		Before: a.before,
		After:  a.after,
		Action: a.play,
		Commands: []*cli.Command{
			{
				Name:   "play",
				Usage:  "play full screen",
				Action: a.play,
			},
			{
				Name:  "console",
				Usage: "play on a line-oriented terminal",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "color", Usage: "color the map glyphs"},
				},
				Action: a.console,
			},
			{
				Name:  "serve",
				Usage: "host games over HTTP, WebSocket and MCP",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Usage: "listen address"},
					&cli.BoolFlag{Name: "ngrok", Usage: "also serve through an ngrok tunnel"},
					&cli.StringFlag{Name: "ngrok-auth", Usage: "ngrok auth token (or use NGROK_AUTHTOKEN env var)"},
					&cli.StringFlag{Name: "ngrok-domain", Usage: "custom ngrok domain (optional)"},
				},
				Action: a.serve,
			},
			{
				Name:   "mcp",
				Usage:  "serve the MCP tools over stdio",
				Action: a.mcpStdio,
			},
			{
				Name:   "schema",
				Usage:  "print the JSON Schema of save files",
				Action: a.schema,
			},
			{
				Name:      "validate",
				Usage:     "check save files (.json) and scenario files (.yaml)",
				ArgsUsage: "[FILE...]",
				Action:    a.validate,
			},
			{
				Name:      "analyze",
				Usage:     "print heuristics about scenarios",
				ArgsUsage: "[SCENARIO...]",
				Action:    a.analyze,
			},
		},
	}
}

// before loads the settings, applies flag overrides and opens the log.
func (a *app) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	s, err := config.LoadSettings(cmd.String("config"))
	if err != nil {
		return ctx, err
	}
	if cmd.IsSet("scenario") {
		s.Scenario = cmd.String("scenario")
	}
	if cmd.IsSet("scenario-dir") {
		s.ScenarioDir = cmd.String("scenario-dir")
	}
	if cmd.IsSet("save") {
		s.SavePath = cmd.String("save")
	}
	if cmd.IsSet("seed") {
		seed, err := cast.ToInt64E(cmd.String("seed"))
		if err != nil {
			return ctx, fmt.Errorf("invalid --seed: %w", err)
		}
		s.Seed = seed
	}
	if cmd.IsSet("log-level") {
		s.Log.Level = cmd.String("log-level")
	}
	if cmd.IsSet("log-file") {
		s.Log.File = cmd.String("log-file")
	}
	a.settings = s

	log, closer, err := logging.New(s.Log.Level, s.Log.File)
	if err != nil {
		return ctx, err
	}
	a.log = log.With().Str("version", Version).Logger()
	a.closer = closer
	a.log.Debug().Str("config_file", s.ConfigFile).Str("scenario", s.Scenario).Msg("settings loaded")
	return ctx, nil
}

func (a *app) after(ctx context.Context, cmd *cli.Command) error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

func (a *app) scenarios() (*config.Manager, error) {
	scenarios, err := config.NewManager(a.settings.ScenarioDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create scenario manager: %w", err)
	}
	if err := scenarios.SetDefault(a.settings.Scenario); err != nil {
		return nil, err
	}
	return scenarios, nil
}

// newEngine builds a single-player game on the configured scenario with the
// save file behind v and l.
func (a *app) newEngine() (*engine.GameEngine, error) {
	scenarios, err := a.scenarios()
	if err != nil {
		return nil, err
	}
	name := scenarios.DefaultName()
	st, err := scenarios.NewWorld(name)
	if err != nil {
		return nil, err
	}
	fresh := scenarios.Fresh(name)
	return engine.NewEngine(st,
		engine.WithRules(a.settings.Rules),
		engine.WithRandom(engine.NewRandom(a.settings.Seed)),
		engine.WithLogger(a.log),
		engine.WithStore(save.NewFileStore(a.settings.SavePath, fresh, a.log)),
		engine.WithFreshWorld(fresh),
	)
}

func (a *app) play(ctx context.Context, cmd *cli.Command) error {
	eng, err := a.newEngine()
	if err != nil {
		return err
	}
	a.log.Info().Str("scenario", eng.GetState().Scenario).Msg("starting full screen game")
	return tui.Run(eng, render.DefaultPalette())
}

func (a *app) console(ctx context.Context, cmd *cli.Command) error {
	eng, err := a.newEngine()
	if err != nil {
		return err
	}
	palette := render.PlainPalette()
	if cmd.Bool("color") {
		palette = render.DefaultPalette()
	}
	a.log.Info().Str("scenario", eng.GetState().Scenario).Msg("starting console game")
	err = console.New(eng, a.in, a.out, console.WithPalette(palette), console.WithLogger(a.log)).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *app) schema(ctx context.Context, cmd *cli.Command) error {
	data, err := json.MarshalIndent(save.Schema(), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, string(data))
	return err
}

// validate checks every file named on the command line, or the configured
// save file and every scenario when none is named.
func (a *app) validate(ctx context.Context, cmd *cli.Command) error {
	scenarios, err := a.scenarios()
	if err != nil {
		return err
	}

	var results []validate.Result
	files := cmd.Args().Slice()
	if len(files) == 0 {
		if _, err := os.Stat(a.settings.SavePath); err == nil {
			files = append(files, a.settings.SavePath)
		}
		infos, err := scenarios.ListScenarios()
		if err != nil {
			return err
		}
		for _, info := range infos {
			sc, err := scenarios.LoadScenario(info.ID)
			if err != nil {
				return err
			}
			results = append(results, validate.Scenario(sc))
		}
	}
	for _, file := range files {
		switch filepath.Ext(file) {
		case ".yaml", ".yml":
			results = append(results, validate.ScenarioFile(file))
		default:
			r, _ := validate.SaveFile(file, scenarios)
			results = append(results, r)
		}
	}

	allValid := true
	for _, r := range results {
		fmt.Fprintf(a.out, "\n==================== %s\n", r.File)
		if r.Valid {
			fmt.Fprintln(a.out, "✅ VALID")
			for _, info := range r.Errors {
				fmt.Fprintln(a.out, "  "+info)
			}
			continue
		}
		allValid = false
		fmt.Fprintln(a.out, "❌ INVALID")
		for _, msg := range r.Errors {
			fmt.Fprintln(a.out, "  ❌ "+msg)
		}
	}

	fmt.Fprintln(a.out, "\n========================================")
	if !allValid {
		return cli.Exit("❌ Some files have errors", 1)
	}
	fmt.Fprintln(a.out, "✅ All files are valid!")
	return nil
}

func (a *app) analyze(ctx context.Context, cmd *cli.Command) error {
	scenarios, err := a.scenarios()
	if err != nil {
		return err
	}
	names := cmd.Args().Slice()
	if len(names) == 0 {
		infos, err := scenarios.ListScenarios()
		if err != nil {
			return err
		}
		for _, info := range infos {
			names = append(names, info.ID)
		}
	}
	for _, name := range names {
		fmt.Fprintf(a.out, "\n=== Analyzing %s ===\n", name)
		sc, err := scenarios.LoadScenario(name)
		if err != nil {
			return err
		}
		analysis, err := validate.Analyze(sc)
		if err != nil {
			return err
		}
		analysis.Print(a.out)
	}
	return nil
}
