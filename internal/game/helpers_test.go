package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/rantergoround/internal/contract"
	"github.com/lox/rantergoround/internal/deck"
)

// handOf builds a hand without the accept checks.
func handOf(s string) *Hand {
	return &Hand{cards: deck.MustParseCards(s)}
}

// stackedDeck returns a deck that deals the given cards in order.
func stackedDeck(s string) *deck.Deck {
	cards := deck.MustParseCards(s)
	d := deck.New()
	for i := len(cards) - 1; i >= 0; i-- {
		d.Push(cards[i])
	}
	return d
}

func requireViolation(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a contract violation")
		_, ok := contract.As(r)
		require.True(t, ok, "expected a contract violation, got %v", r)
	}()
	fn()
}

// stubStrategy returns a fixed choice and records its calls.
type stubStrategy struct {
	choice int
	calls  []int
}

func (s *stubStrategy) Choose(giver int, _ []*Hand, _ deck.Card) int {
	s.calls = append(s.calls, giver)
	return s.choice
}

// failStrategy fails the test if a tie-break is ever requested.
type failStrategy struct {
	t *testing.T
}

func (s failStrategy) Choose(giver int, _ []*Hand, card deck.Card) int {
	s.t.Fatalf("unexpected tie-break for %v (giver %d)", card, giver)
	return -1
}

// countingStrategy counts tie-breaks and delegates the choice.
type countingStrategy struct {
	next  Strategy
	calls int
}

func (s *countingStrategy) Choose(giver int, hands []*Hand, card deck.Card) int {
	s.calls++
	return s.next.Choose(giver, hands, card)
}
