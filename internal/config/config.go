// Package config loads the HCL configuration file shared by the CLI
// commands. Every setting is optional and falls back to a default.
package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/rantergoround/internal/game"
)

// DefaultFile is the config file read when none is named
const DefaultFile = "rantergoround.hcl"

// Config represents the complete configuration
type Config struct {
	Game       GameConfig
	Simulation SimulationConfig
	Log        LogConfig
}

// GameConfig contains the parameters of a single game
type GameConfig struct {
	Players      int
	Jokers       int
	Seed         int64
	Rounds       int
	Strategy     string
	StrategySeed int64
}

// SimulationConfig contains batch simulation settings
type SimulationConfig struct {
	Games   int
	Workers int
}

// LogConfig contains logging settings
type LogConfig struct {
	Level string
}

// The file schema uses pointers so an absent attribute keeps its default
// while an explicit zero is honoured.
type fileConfig struct {
	Game       *gameBlock       `hcl:"game,block"`
	Simulation *simulationBlock `hcl:"simulation,block"`
	Log        *logBlock        `hcl:"log,block"`
}

type gameBlock struct {
	Players      *int    `hcl:"players,optional"`
	Jokers       *int    `hcl:"jokers,optional"`
	Seed         *int64  `hcl:"seed,optional"`
	Rounds       *int    `hcl:"rounds,optional"`
	Strategy     *string `hcl:"strategy,optional"`
	StrategySeed *int64  `hcl:"strategy_seed,optional"`
}

type simulationBlock struct {
	Games   *int `hcl:"games,optional"`
	Workers *int `hcl:"workers,optional"`
}

type logBlock struct {
	Level *string `hcl:"level,optional"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Game: GameConfig{
			Players:      5,
			Jokers:       3,
			Seed:         42,
			Rounds:       1000,
			Strategy:     "random",
			StrategySeed: game.DefaultStrategySeed,
		},
		Simulation: SimulationConfig{
			Games:   100,
			Workers: 4,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source over the defaults and validates the result
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := Default()
	fc.apply(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, err)
	}
	return config, nil
}

func (fc *fileConfig) apply(c *Config) {
	if g := fc.Game; g != nil {
		set(&c.Game.Players, g.Players)
		set(&c.Game.Jokers, g.Jokers)
		set(&c.Game.Seed, g.Seed)
		set(&c.Game.Rounds, g.Rounds)
		set(&c.Game.Strategy, g.Strategy)
		set(&c.Game.StrategySeed, g.StrategySeed)
	}
	if s := fc.Simulation; s != nil {
		set(&c.Simulation.Games, s.Games)
		set(&c.Simulation.Workers, s.Workers)
	}
	if l := fc.Log; l != nil {
		set(&c.Log.Level, l.Level)
	}
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Settings returns the game settings described by the configuration
func (c *Config) Settings() game.Settings {
	return game.Settings{
		Players:      c.Game.Players,
		Jokers:       c.Game.Jokers,
		Seed:         c.Game.Seed,
		Strategy:     c.Game.Strategy,
		StrategySeed: c.Game.StrategySeed,
	}
}

// LogLevel returns the parsed log level
func (c *Config) LogLevel() (log.Level, error) {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return level, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Settings().Validate(); err != nil {
		return err
	}

	if c.Game.Rounds < 0 {
		return fmt.Errorf("rounds cannot be negative, got %d", c.Game.Rounds)
	}

	if c.Simulation.Games < 1 {
		return fmt.Errorf("games must be positive, got %d", c.Simulation.Games)
	}

	if c.Simulation.Workers < 0 {
		return fmt.Errorf("workers cannot be negative, got %d", c.Simulation.Workers)
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}

	return nil
}
