package deck

import (
	rand "math/rand/v2"

	"github.com/lox/rantergoround/internal/contract"
)

// Drainer gives up all of its cards at once, leaving itself empty.
type Drainer interface {
	Drain() []Card
}

// Deck is an ordered pile of cards. The top of the deck is the end of the
// slice, so draws and pushes never shift the remaining cards.
type Deck struct {
	cards []Card
}

// New returns an empty deck
func New() *Deck {
	return &Deck{}
}

// NewStandard creates the 52 standard cards in suit-major, rank-ascending
// order followed by the requested number of jokers. The deck is not shuffled.
func NewStandard(jokers int) *Deck {
	contract.Require(jokers >= 0, "joker count %d is negative", jokers)

	d := &Deck{cards: make([]Card, 0, 52+jokers)}
	for _, suit := range Suits {
		for rank := MinRank; rank <= MaxRank; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
	for i := range jokers {
		d.cards = append(d.cards, Joker{Index: i})
	}
	return d
}

// Shuffle randomizes the order of cards in the deck using Fisher-Yates
func (d *Deck) Shuffle(rng *rand.Rand) {
	contract.Require(rng != nil, "shuffle requires a random source")
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top card from the deck
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return nil, false
	}
	last := len(d.cards) - 1
	card := d.cards[last]
	d.cards[last] = nil
	d.cards = d.cards[:last]
	return card, true
}

// Push puts a card on top of the deck
func (d *Deck) Push(card Card) {
	contract.Require(card != nil, "cannot push a nil card")
	d.cards = append(d.cards, card)
}

// Take moves every card held by src onto the top of the deck
func (d *Deck) Take(src Drainer) {
	d.cards = append(d.cards, src.Drain()...)
}

// Swap exchanges the contents of two decks
func (d *Deck) Swap(other *Deck) {
	d.cards, other.cards = other.cards, d.cards
}

// Len returns the number of cards left in the deck
func (d *Deck) Len() int {
	return len(d.cards)
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}

// Cards returns a copy of the deck contents, bottom first
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// Peek returns the top card without removing it from the deck
func (d *Deck) Peek() (Card, bool) {
	if len(d.cards) == 0 {
		return nil, false
	}
	return d.cards[len(d.cards)-1], true
}
