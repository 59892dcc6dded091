package main

import (
	"fmt"
	"os"

	"github.com/lox/rantergoround/internal/display"
	"github.com/lox/rantergoround/internal/game"
	"github.com/lox/rantergoround/internal/transcript"
)

// ReplayCmd verifies a recorded transcript against the engine
type ReplayCmd struct {
	File  string `arg:"" name:"file" type:"existingfile" help:"Path to a transcript written by play --transcript"`
	Print bool   `help:"Print the recorded rounds before verifying"`
}

func (c *ReplayCmd) Run(g *Globals) error {
	e, err := g.setup(os.Stdout, os.Stderr)
	if err != nil {
		return err
	}
	return c.run(e)
}

func (c *ReplayCmd) run(e *env) error {
	record, err := transcript.ReadFile(c.File)
	if err != nil {
		return err
	}

	if c.Print {
		renderer := display.NewRenderer(e.stdout, e.color)
		fmt.Fprintln(e.stdout, renderer.Header(fmt.Sprintf("GAME %s", record.ID)))
		for i, line := range record.Rounds {
			result, err := game.ParseRound(line)
			if err != nil {
				return fmt.Errorf("round %d: %w", i, err)
			}
			fmt.Fprintln(e.stdout, renderer.Round(result))
		}
	}

	e.logger.Debug("Replaying transcript", "id", record.ID, "rounds", len(record.Rounds), "seed", record.Seed)
	if err := record.Verify(); err != nil {
		return fmt.Errorf("transcript %s does not replay: %w", record.ID, err)
	}

	fmt.Fprintf(e.stdout, "Transcript %s verified: %d rounds", record.ID, len(record.Rounds))
	if record.Exhausted {
		fmt.Fprint(e.stdout, ", deck exhausted")
	}
	fmt.Fprintln(e.stdout)
	return nil
}
