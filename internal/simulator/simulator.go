package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/rantergoround/internal/game"
	"github.com/lox/rantergoround/internal/statistics"
)

// ctxCheckInterval is how many rounds a game plays between cancellation checks
const ctxCheckInterval = 256

// Config holds configuration for running simulations
type Config struct {
	Games        int
	Rounds       int // Round limit per game
	Players      int
	Jokers       int
	Seed         int64 // Game i shuffles with Seed+i
	Strategy     string
	StrategySeed int64 // Game i breaks ties with StrategySeed+i
	Workers      int   // Games played concurrently; 0 means GOMAXPROCS
	Logger       *log.Logger
	Clock        quartz.Clock
}

// Validate checks the configuration
func (c Config) Validate() error {
	if c.Games < 1 {
		return fmt.Errorf("games must be positive, got %d", c.Games)
	}
	if c.Rounds < 0 {
		return fmt.Errorf("rounds cannot be negative, got %d", c.Rounds)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers cannot be negative, got %d", c.Workers)
	}
	settings := game.Settings{Players: c.Players, Jokers: c.Jokers, Strategy: c.Strategy}
	return settings.Validate()
}

// Summary is the outcome of a simulation run
type Summary struct {
	Stats     *statistics.Statistics
	Games     int
	Exhausted int // Games that ran out of cards before the round limit
	Recycles  int
	Duration  time.Duration
	Strategy  string
}

// GamesPerSecond returns the simulation throughput
func (s *Summary) GamesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Games) / s.Duration.Seconds()
}

// GameResult holds the outcome of a single simulated game
type GameResult struct {
	Stats     *statistics.Statistics
	Exhausted bool
	Recycles  int
	Rounds    int
}

// Simulator runs batches of independent games
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Workers == 0 {
		config.Workers = runtime.GOMAXPROCS(0)
	}
	return &Simulator{config: config}
}

// Run plays every game and merges their statistics in game order, so the
// result does not depend on scheduling.
func (s *Simulator) Run(ctx context.Context) (*Summary, error) {
	if err := s.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}

	start := s.config.Clock.Now()
	results := make([]GameResult, s.config.Games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	for i := range s.config.Games {
		g.Go(func() error {
			result, err := s.PlayGame(ctx, i)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &Summary{
		Stats:    &statistics.Statistics{},
		Games:    s.config.Games,
		Strategy: s.config.Strategy,
	}
	for _, result := range results {
		summary.Stats.Merge(result.Stats)
		summary.Recycles += result.Recycles
		if result.Exhausted {
			summary.Exhausted++
		}
	}
	summary.Duration = s.config.Clock.Since(start)

	if err := summary.Stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.config.Logger.Info("Simulation complete",
		"games", summary.Games,
		"rounds", summary.Stats.Rounds,
		"wins", summary.Stats.TotalWins(),
		"exhausted", summary.Exhausted,
		"duration", summary.Duration)
	return summary, nil
}

// GameSettings returns the settings of game i of the batch
func (s *Simulator) GameSettings(i int) game.Settings {
	return game.Settings{
		Players:      s.config.Players,
		Jokers:       s.config.Jokers,
		Seed:         s.config.Seed + int64(i),
		Strategy:     s.config.Strategy,
		StrategySeed: s.config.StrategySeed + int64(i),
	}
}

// PlayGame plays game i of the batch up to the round limit. Running out of
// cards ends the game early and is reported, not returned as an error.
func (s *Simulator) PlayGame(ctx context.Context, i int) (GameResult, error) {
	cfg := s.config
	engine, err := s.GameSettings(i).NewEngine(game.WithLogger(cfg.Logger.With("game", i)))
	if err != nil {
		return GameResult{}, err
	}

	stats := &statistics.Statistics{}
	stats.StartGame()
	result := GameResult{Stats: stats}

	for round := range cfg.Rounds {
		if round%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return GameResult{}, err
			}
		}
		r, ok := engine.Step()
		if !ok {
			result.Exhausted = true
			cfg.Logger.Debug("Game ran out of cards", "game", i, "round", round)
			break
		}
		stats.Add(r)
	}

	result.Recycles = engine.Recycles()
	result.Rounds = engine.Round()
	return result, nil
}

// PrintSummary prints a summary of simulation results
func PrintSummary(w io.Writer, summary *Summary) {
	stats := summary.Stats
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== RESULTS (%s strategy) ===\n", summary.Strategy)
	fmt.Fprintf(w, "Games played: %d (%d ran out of cards)\n", summary.Games, summary.Exhausted)
	fmt.Fprintf(w, "Rounds played: %d\n", stats.Rounds)
	fmt.Fprintf(w, "Deck recycles: %d\n", summary.Recycles)
	fmt.Fprintf(w, "Discarded cards: %d (%.1f%%)\n", stats.Discards, stats.DiscardRate()*100)
	if summary.Duration > 0 {
		fmt.Fprintf(w, "Duration: %v (%.0f games/sec)\n", summary.Duration.Round(time.Millisecond), summary.GamesPerSecond())
	}

	fmt.Fprintf(w, "\n=== WINS ===\n")
	fmt.Fprintf(w, "Total wins: %d\n", stats.TotalWins())
	for _, cond := range game.WinConditions {
		fmt.Fprintf(w, "%-10s %6d (%.1f%%)\n", cond, stats.Wins[cond], stats.WinShare(cond)*100)
	}

	fmt.Fprintf(w, "\n=== ROUNDS TO WIN ===\n")
	fmt.Fprintf(w, "Mean: %.2f rounds\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.2f rounds\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.2f rounds\n", stats.StdDev())
	fmt.Fprintf(w, "95%% CI: [%.2f, %.2f]\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.1f, P25=%.1f, P75=%.1f, P95=%.1f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))

	fmt.Fprintf(w, "\n=== PLAYER ANALYSIS ===\n")
	for player, wins := range stats.PlayerWins {
		fmt.Fprintf(w, "Player %d: %d wins\n", player, wins)
	}
}
