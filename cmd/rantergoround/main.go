package main

import (
	"io"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/rantergoround/cmd/rantergoround/shared"
	"github.com/lox/rantergoround/internal/config"
	"github.com/lox/rantergoround/internal/display"
)

// version is set by ldflags during build
var version = "dev"

// Globals are the flags shared by every command
type Globals struct {
	Config string `kong:"default='rantergoround.hcl',type='path',help='HCL config file (defaults apply when missing)'"`
	Debug  bool   `kong:"help='Enable debug logging'"`
	Color  string `kong:"default='auto',enum='auto,always,never',help='Color output: auto, always or never'"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" help:"Play one game and print every round"`
	Simulate SimulateCmd      `cmd:"" help:"Play a batch of games and summarise the outcomes"`
	Replay   ReplayCmd        `cmd:"" help:"Check that a recorded transcript replays identically"`
}

// env carries what a command needs to run, so tests can swap the outputs
type env struct {
	config *config.Config
	logger *log.Logger
	stdout io.Writer
	color  display.ColorMode
}

// setup loads the config file and builds the logger
func (g *Globals) setup(stdout, stderr io.Writer) (*env, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	color, err := display.ParseColorMode(g.Color)
	if err != nil {
		return nil, err
	}

	logger := shared.SetupLogger(stderr, level, g.Debug)
	logger.Debug("Loaded config", "file", g.Config, "players", cfg.Game.Players, "jokers", cfg.Game.Jokers, "seed", cfg.Game.Seed)
	return &env{config: cfg, logger: logger, stdout: stdout, color: color}, nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("rantergoround"),
		kong.Description("Simulator for the Ranter-Go-Round card passing game"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
