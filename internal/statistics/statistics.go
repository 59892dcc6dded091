package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/rantergoround/internal/game"
)

// Statistics tracks the outcome of simulated rounds. Values holds, for every
// win, how many rounds the winning player waited since their previous win
// (or since the start of the game).
type Statistics struct {
	Games      int
	Rounds     int
	Discards   int // Cards nobody could take
	Deliveries int // Cards that reached a player

	Wins       [game.WinJoker + 1]int // Wins by condition; index 0 unused
	PlayerWins []int

	Values  []float64 // Rounds to win, one per win
	SumRTW  float64
	SumRTW2 float64 // Sum of squares for variance calculation

	lastWin []int // Per-player round after their previous win, for the current game
}

// StartGame resets per-game tracking before a new game's rounds are added
func (s *Statistics) StartGame() {
	s.Games++
	s.lastWin = s.lastWin[:0]
}

// Add incorporates a round result into the statistics
func (s *Statistics) Add(result game.RoundResult) {
	s.Rounds++
	if !result.HasReceiver() {
		s.Discards++
		return
	}
	s.Deliveries++
	if result.Win == game.NoWin {
		return
	}

	s.Wins[result.Win]++
	player := result.Receiver
	s.PlayerWins = grow(s.PlayerWins, player+1)
	s.PlayerWins[player]++

	s.lastWin = grow(s.lastWin, player+1)
	waited := float64(result.Round + 1 - s.lastWin[player])
	s.lastWin[player] = result.Round + 1

	s.Values = append(s.Values, waited)
	s.SumRTW += waited
	s.SumRTW2 += waited * waited
}

func grow(xs []int, n int) []int {
	for len(xs) < n {
		xs = append(xs, 0)
	}
	return xs
}

// Merge folds other into s
func (s *Statistics) Merge(other *Statistics) {
	s.Games += other.Games
	s.Rounds += other.Rounds
	s.Discards += other.Discards
	s.Deliveries += other.Deliveries
	for i := range s.Wins {
		s.Wins[i] += other.Wins[i]
	}
	s.PlayerWins = grow(s.PlayerWins, len(other.PlayerWins))
	for i, n := range other.PlayerWins {
		s.PlayerWins[i] += n
	}
	s.Values = append(s.Values, other.Values...)
	s.SumRTW += other.SumRTW
	s.SumRTW2 += other.SumRTW2
}

// TotalWins returns the number of wins across all conditions
func (s *Statistics) TotalWins() int {
	total := 0
	for _, n := range s.Wins {
		total += n
	}
	return total
}

// WinShare returns the fraction of wins that came from condition w
func (s *Statistics) WinShare(w game.WinCondition) float64 {
	total := s.TotalWins()
	if total == 0 {
		return 0
	}
	return float64(s.Wins[w]) / float64(total)
}

// DiscardRate returns the fraction of rounds whose card nobody took
func (s *Statistics) DiscardRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Discards) / float64(s.Rounds)
}

// Mean returns the mean number of rounds a player waits for a win
func (s *Statistics) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return s.SumRTW / float64(len(s.Values))
}

// Variance returns the sample variance of rounds to win
func (s *Statistics) Variance() float64 {
	n := float64(len(s.Values))
	if n < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumRTW2 - n*mean*mean) / (n - 1)
}

// StdDev returns the sample standard deviation of rounds to win
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(len(s.Values)))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median rounds to win
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks that the counters agree with each other
func (s *Statistics) Validate() error {
	if s.Rounds != s.Discards+s.Deliveries {
		return fmt.Errorf("round ledger mismatch: rounds=%d discards=%d deliveries=%d",
			s.Rounds, s.Discards, s.Deliveries)
	}

	if s.Wins[game.NoWin] != 0 {
		return fmt.Errorf("recorded %d wins without a condition", s.Wins[game.NoWin])
	}

	total := s.TotalWins()
	if total > s.Deliveries {
		return fmt.Errorf("total wins (%d) exceeds deliveries (%d)", total, s.Deliveries)
	}

	playerTotal := 0
	for _, n := range s.PlayerWins {
		playerTotal += n
	}
	if playerTotal != total {
		return fmt.Errorf("player wins total (%d) does not match total wins (%d)", playerTotal, total)
	}

	if len(s.Values) != total {
		return fmt.Errorf("values array length (%d) does not match total wins (%d)", len(s.Values), total)
	}

	return nil
}
