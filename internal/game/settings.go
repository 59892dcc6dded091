package game

import (
	"fmt"

	"github.com/lox/rantergoround/internal/randutil"
)

// Settings are the parameters that fully determine a game. Two engines
// built from equal settings play identical games.
type Settings struct {
	Players      int
	Jokers       int
	Seed         int64 // Shuffle source
	Strategy     string
	StrategySeed int64 // Tie-break source, for strategies that use one
}

// Validate checks the settings without building an engine
func (s Settings) Validate() error {
	if s.Players < 1 {
		return fmt.Errorf("players must be positive, got %d", s.Players)
	}
	if s.Jokers < 0 {
		return fmt.Errorf("jokers cannot be negative, got %d", s.Jokers)
	}
	if _, err := NewStrategy(s.Strategy, s.StrategySeed); err != nil {
		return err
	}
	return nil
}

// NewEngine builds a shuffled engine from the settings. Options are applied
// after the configured strategy, so WithStrategy overrides it.
func (s Settings) NewEngine(opts ...Option) (*Engine, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	strategy, err := NewStrategy(s.Strategy, s.StrategySeed)
	if err != nil {
		return nil, err
	}
	opts = append([]Option{WithStrategy(strategy)}, opts...)
	return NewEngine(randutil.New(s.Seed), s.Players, s.Jokers, opts...), nil
}
