package game

import (
	"fmt"
	rand "math/rand/v2"
	"slices"

	"github.com/lox/rantergoround/internal/deck"
	"github.com/lox/rantergoround/internal/randutil"
)

// DefaultStrategySeed seeds the tie-break source when none is configured
const DefaultStrategySeed int64 = 60

// Strategy picks the receiver of a red card when several hands can take it.
// The returned index must be in range and its hand must accept card.
// Implementations must not modify hands.
type Strategy interface {
	Choose(giver int, hands []*Hand, card deck.Card) int
}

// Eligible returns the indices of hands that can accept card, in seat order
func Eligible(hands []*Hand, card deck.Card) []int {
	return appendEligible(nil, hands, card)
}

func appendEligible(dst []int, hands []*Hand, card deck.Card) []int {
	for i, hand := range hands {
		if hand.CanAccept(card) {
			dst = append(dst, i)
		}
	}
	return dst
}

// RandomStrategy picks uniformly among eligible hands using its own source
type RandomStrategy struct {
	rng      *rand.Rand
	eligible []int
}

// NewRandomStrategy creates a random strategy with a private source
func NewRandomStrategy(seed int64) *RandomStrategy {
	return &RandomStrategy{rng: randutil.New(seed)}
}

func (s *RandomStrategy) Choose(_ int, hands []*Hand, card deck.Card) int {
	s.eligible = appendEligible(s.eligible[:0], hands, card)
	return randutil.Pick(s.rng, s.eligible)
}

// LowestSumStrategy gives the card to the eligible hand with the fewest
// points, preferring the lowest seat on ties.
type LowestSumStrategy struct{}

func (LowestSumStrategy) Choose(_ int, hands []*Hand, card deck.Card) int {
	best, bestSum := -1, 0
	for _, i := range Eligible(hands, card) {
		sum := hands[i].Evaluate().Sum
		if best < 0 || sum < bestSum {
			best, bestSum = i, sum
		}
	}
	return best
}

// GiverFirstStrategy keeps the card with the giver when possible, otherwise
// passes it to the next eligible seat after the giver.
type GiverFirstStrategy struct{}

func (GiverFirstStrategy) Choose(giver int, hands []*Hand, card deck.Card) int {
	for k := range hands {
		i := (giver + k) % len(hands)
		if hands[i].CanAccept(card) {
			return i
		}
	}
	return -1
}

var strategyNames = []string{"random", "lowest", "giver"}

// StrategyNames lists the names accepted by NewStrategy
func StrategyNames() []string {
	return slices.Clone(strategyNames)
}

// NewStrategy creates a strategy by name. The seed is used only by
// strategies that own randomness.
func NewStrategy(name string, seed int64) (Strategy, error) {
	switch name {
	case "random", "":
		return NewRandomStrategy(seed), nil
	case "lowest":
		return LowestSumStrategy{}, nil
	case "giver":
		return GiverFirstStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (want one of %v)", name, strategyNames)
	}
}
