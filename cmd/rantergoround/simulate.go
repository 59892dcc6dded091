package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/lox/rantergoround/cmd/rantergoround/shared"
	"github.com/lox/rantergoround/internal/fileutil"
	"github.com/lox/rantergoround/internal/simulator"
)

// SimulateCmd plays a batch of independent games
type SimulateCmd struct {
	GameFlags
	Games   *int   `kong:"help='Number of games to play'"`
	Workers *int   `kong:"help='Games played concurrently (0 = GOMAXPROCS)'"`
	Output  string `kong:"type='path',help='Also write the summary to this file'"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	e, err := g.setup(os.Stdout, os.Stderr)
	if err != nil {
		return err
	}

	ctx, cancel := shared.SetupSignalHandler(e.logger)
	defer cancel()

	return c.run(ctx, e)
}

func (c *SimulateCmd) run(ctx context.Context, e *env) error {
	override(&e.config.Simulation.Games, c.Games)
	override(&e.config.Simulation.Workers, c.Workers)
	if err := c.GameFlags.apply(e.config); err != nil {
		return err
	}

	cfg := e.config
	sim := simulator.New(simulator.Config{
		Games:        cfg.Simulation.Games,
		Rounds:       cfg.Game.Rounds,
		Players:      cfg.Game.Players,
		Jokers:       cfg.Game.Jokers,
		Seed:         cfg.Game.Seed,
		Strategy:     cfg.Game.Strategy,
		StrategySeed: cfg.Game.StrategySeed,
		Workers:      cfg.Simulation.Workers,
		Logger:       e.logger,
	})

	e.logger.Info("Starting simulation",
		"games", cfg.Simulation.Games,
		"rounds", cfg.Game.Rounds,
		"players", cfg.Game.Players,
		"strategy", cfg.Game.Strategy)

	summary, err := sim.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	simulator.PrintSummary(e.stdout, summary)

	if c.Output != "" {
		var buf bytes.Buffer
		simulator.PrintSummary(&buf, summary)
		if err := fileutil.WriteFileAtomic(c.Output, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
		e.logger.Info("Wrote summary", "file", c.Output)
	}
	return nil
}
