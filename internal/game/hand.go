package game

import (
	"strings"

	"github.com/lox/rantergoround/internal/contract"
	"github.com/lox/rantergoround/internal/deck"
)

const (
	// TargetSum is both the point cap of a hand and its winning total
	TargetSum = 25
	// FiveCardCount is the hand size that wins regardless of points
	FiveCardCount = 5
	// aceLowSum wins when the hand holds an ace: counting one ace as 14
	// instead of 1 brings 12 up to 25.
	aceLowSum = 12
)

// Hand is the cards held by one player
type Hand struct {
	cards []deck.Card
}

// NewHand creates an empty hand
func NewHand() *Hand {
	return &Hand{}
}

// CanAccept reports whether the hand may receive card. Specials and jokers
// are always acceptable; an ordinary card must keep the sum within 25.
func (h *Hand) CanAccept(card deck.Card) bool {
	switch c := card.(type) {
	case deck.Special, deck.Joker:
		return true
	case deck.Ordinary:
		status := h.Evaluate()
		contract.Require(!status.IsWin(), "can-accept asked of a winning hand (%v)", status.Win)
		return status.Sum+c.Rank <= TargetSum
	default:
		contract.Fail("unknown card variant %T", card)
		return false
	}
}

// Accept adds card to the hand
func (h *Hand) Accept(card deck.Card) {
	contract.Require(h.CanAccept(card), "hand %v cannot accept %v", h, card)
	h.cards = append(h.cards, card)
}

// Evaluate computes the hand status from its full contents
func (h *Hand) Evaluate() Status {
	var sum, aces int
	var joker, special bool
	for _, card := range h.cards {
		switch c := card.(type) {
		case deck.Joker:
			joker = true
		case deck.Special:
			special = true
		case deck.Ordinary:
			sum += c.Rank
			if c.Rank == 1 {
				aces++
			}
		default:
			contract.Fail("unknown card variant %T", card)
		}
	}

	switch {
	case joker:
		return Status{Win: WinJoker}
	case special:
		return Status{Win: WinSpecial}
	case len(h.cards) == FiveCardCount:
		return Status{Win: WinFiveCards}
	case sum == TargetSum, sum == aceLowSum && aces > 0:
		return Status{Win: WinTwentyFive}
	default:
		return Status{Sum: sum}
	}
}

// Len returns the number of cards held
func (h *Hand) Len() int {
	return len(h.cards)
}

// Cards returns a copy of the held cards
func (h *Hand) Cards() []deck.Card {
	out := make([]deck.Card, len(h.cards))
	copy(out, h.cards)
	return out
}

// Drain empties the hand and returns what it held
func (h *Hand) Drain() []deck.Card {
	out := h.cards
	h.cards = nil
	return out
}

func (h *Hand) String() string {
	tokens := make([]string, len(h.cards))
	for i, card := range h.cards {
		tokens[i] = card.String()
	}
	return "[" + strings.Join(tokens, " ") + "]"
}
