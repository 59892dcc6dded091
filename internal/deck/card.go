package deck

import (
	"fmt"
	"strconv"

	"github.com/lox/rantergoround/internal/contract"
)

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Clubs
	Diamonds
)

// Suits lists every suit in generation order
var Suits = [...]Suit{Spades, Hearts, Clubs, Diamonds}

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

const (
	MinRank = 1
	MaxRank = 13
)

// Card is one of Ordinary, Special or Joker. The set is closed: only this
// package can add variants.
type Card interface {
	fmt.Stringer
	card()
}

// Ordinary is a ranked card with a suit.
type Ordinary struct {
	Suit Suit
	Rank int
}

// Special is one of the two wild cards of a standard deck: the jack of
// spades and the queen of diamonds.
type Special struct {
	Suit Suit
}

// Joker is a supplementary card identified only by its index.
type Joker struct {
	Index int
}

func (Ordinary) card() {}
func (Special) card()  {}
func (Joker) card()    {}

// NewCard builds the card for a suit and rank. The jack of spades and the
// queen of diamonds come back as Special.
func NewCard(suit Suit, rank int) Card {
	contract.Require(rank >= MinRank && rank <= MaxRank, "card rank %d outside [%d,%d]", rank, MinRank, MaxRank)
	if isSpecial(suit, rank) {
		return Special{Suit: suit}
	}
	return Ordinary{Suit: suit, Rank: rank}
}

func isSpecial(suit Suit, rank int) bool {
	return (suit == Spades && rank == 11) || (suit == Diamonds && rank == 12)
}

// String returns the report token, e.g. "♥A", "♣7" or "♦T"
func (c Ordinary) String() string {
	return c.Suit.String() + rankToken(c.Rank)
}

func (c Special) String() string {
	if c.Suit == Spades {
		return c.Suit.String() + "J"
	}
	return c.Suit.String() + "Q"
}

func (c Joker) String() string {
	return "J" + strconv.Itoa(c.Index)
}

func rankToken(rank int) string {
	switch rank {
	case 1:
		return "A"
	case 10:
		return "T"
	case 11:
		return "J"
	case 12:
		return "Q"
	case 13:
		return "K"
	default:
		return strconv.Itoa(rank)
	}
}

// IsRed reports whether a card routes as red. Only ordinary cards carry a
// color; specials and jokers are never red.
func IsRed(c Card) bool {
	switch c := c.(type) {
	case Ordinary:
		return c.Suit.IsRed()
	case Special, Joker:
		return false
	default:
		contract.Fail("unknown card variant %T", c)
		return false
	}
}
