package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lox/rantergoround/internal/config"
	"github.com/lox/rantergoround/internal/display"
	"github.com/lox/rantergoround/internal/game"
	"github.com/lox/rantergoround/internal/gameid"
	"github.com/lox/rantergoround/internal/transcript"
)

// GameFlags override the game block of the config file
type GameFlags struct {
	Players      *int    `kong:"help='Number of players'"`
	Jokers       *int    `kong:"help='Number of jokers added to the deck'"`
	Seed         *int64  `kong:"help='Shuffle seed'"`
	Rounds       *int    `kong:"help='Round limit per game'"`
	Strategy     *string `kong:"help='Tie-break strategy (random|lowest|giver)'"`
	StrategySeed *int64  `kong:"help='Seed for the random strategy'"`
}

func (f *GameFlags) apply(cfg *config.Config) error {
	override(&cfg.Game.Players, f.Players)
	override(&cfg.Game.Jokers, f.Jokers)
	override(&cfg.Game.Seed, f.Seed)
	override(&cfg.Game.Rounds, f.Rounds)
	override(&cfg.Game.Strategy, f.Strategy)
	override(&cfg.Game.StrategySeed, f.StrategySeed)
	return cfg.Validate()
}

func override[T any](dst *T, flag *T) {
	if flag != nil {
		*dst = *flag
	}
}

// PlayCmd plays a single game
type PlayCmd struct {
	GameFlags
	Transcript string `kong:"type='path',help='Write a TOML transcript of the game to this file'"`
}

func (c *PlayCmd) Run(g *Globals) error {
	e, err := g.setup(os.Stdout, os.Stderr)
	if err != nil {
		return err
	}
	return c.run(e)
}

func (c *PlayCmd) run(e *env) error {
	if err := c.GameFlags.apply(e.config); err != nil {
		return err
	}

	settings := e.config.Settings()
	limit := e.config.Game.Rounds
	engine, err := settings.NewEngine(game.WithLogger(e.logger))
	if err != nil {
		return err
	}

	var record *transcript.Transcript
	if c.Transcript != "" {
		record = transcript.New(gameid.Generate(), time.Now(), settings, limit)
	}

	e.logger.Info("Starting game",
		"players", settings.Players,
		"jokers", settings.Jokers,
		"seed", settings.Seed,
		"strategy", settings.Strategy,
		"rounds", limit)

	renderer := display.NewRenderer(e.stdout, e.color)
	exhausted := false
	for engine.Round() < limit {
		result, ok := engine.Step()
		if !ok {
			exhausted = true
			break
		}
		fmt.Fprintln(e.stdout, renderer.Round(result))
		if record != nil {
			record.Add(result)
		}
	}

	if record != nil {
		record.Exhausted = exhausted
		if err := transcript.WriteFile(c.Transcript, record); err != nil {
			return err
		}
		e.logger.Info("Wrote transcript", "file", c.Transcript, "id", record.ID)
	}

	if exhausted {
		return fmt.Errorf("%w after %d of %d rounds", game.ErrDeckExhausted, engine.Round(), limit)
	}

	e.logger.Debug("Game complete", "rounds", engine.Round(), "recycles", engine.Recycles())
	return nil
}
