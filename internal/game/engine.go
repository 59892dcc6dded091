package game

import (
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/rantergoround/internal/contract"
	"github.com/lox/rantergoround/internal/deck"
)

// ErrDeckExhausted is returned by Run when the deck and discard pile are
// both empty before the round limit.
var ErrDeckExhausted = errors.New("deck exhausted")

// Option configures an Engine during creation.
type Option func(*engineConfig)

type engineConfig struct {
	strategy Strategy
	logger   *log.Logger
	deck     *deck.Deck // If provided, used as-is instead of a shuffled standard deck
}

// WithStrategy sets the tie-break strategy (default: RandomStrategy seeded
// with DefaultStrategySeed)
func WithStrategy(s Strategy) Option {
	return func(c *engineConfig) {
		c.strategy = s
	}
}

// WithLogger sets the logger for routing decisions
func WithLogger(l *log.Logger) Option {
	return func(c *engineConfig) {
		c.logger = l
	}
}

// WithDeck plays from d in its current order. The joker count passed to
// NewEngine is ignored and d is not shuffled.
func WithDeck(d *deck.Deck) Option {
	return func(c *engineConfig) {
		c.deck = d
	}
}

// Engine owns the full state of one game: deck, discard pile, hands and
// round counter. It is not safe for concurrent use.
type Engine struct {
	deck     *deck.Deck
	discard  *deck.Deck
	hands    []*Hand
	round    int
	recycles int
	rng      *rand.Rand
	strategy Strategy
	logger   *log.Logger

	eligible []int
}

// NewEngine creates a game for the given number of players. The standard
// deck plus jokers is shuffled once with rng, which is kept for reshuffling
// recycled discards.
func NewEngine(rng *rand.Rand, players, jokers int, opts ...Option) *Engine {
	contract.Require(rng != nil, "rng is required for engine creation")
	contract.Require(players >= 1, "player count %d must be positive", players)
	contract.Require(jokers >= 0, "joker count %d is negative", jokers)

	cfg := &engineConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.strategy == nil {
		cfg.strategy = NewRandomStrategy(DefaultStrategySeed)
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}

	d := cfg.deck
	if d == nil {
		d = deck.NewStandard(jokers)
		d.Shuffle(rng)
	}

	hands := make([]*Hand, players)
	for i := range hands {
		hands[i] = NewHand()
	}

	return &Engine{
		deck:     d,
		discard:  deck.New(),
		hands:    hands,
		rng:      rng,
		strategy: cfg.strategy,
		logger:   cfg.logger,
	}
}

// Step resolves one round. It returns false, leaving the game unchanged,
// when there is no card left to draw even after recycling the discard pile.
func (e *Engine) Step() (RoundResult, bool) {
	card, ok := e.draw()
	if !ok {
		return RoundResult{}, false
	}

	giver := e.round % len(e.hands)
	result := RoundResult{
		Round:    e.round,
		Giver:    giver,
		Receiver: e.route(giver, card),
		Card:     card,
	}

	switch {
	case !result.HasReceiver():
		e.discard.Push(card)
	case isSpecial(card):
		// The special wins on delivery and is never held.
		result.Win = WinSpecial
		e.discard.Push(card)
	default:
		hand := e.hands[result.Receiver]
		hand.Accept(card)
		status := hand.Evaluate()
		if status.IsWin() {
			e.discard.Take(hand)
			result.Win = status.Win
		} else {
			result.Sum = status.Sum
		}
	}

	if result.Win != NoWin {
		e.logger.Debug("Hand won", "round", e.round, "player", result.Receiver, "condition", result.Win)
	}

	e.round++
	return result, true
}

// Run steps up to limit rounds. If the cards run out first it returns the
// rounds played so far along with an error wrapping ErrDeckExhausted.
func (e *Engine) Run(limit int) ([]RoundResult, error) {
	contract.Require(limit >= 0, "round limit %d is negative", limit)
	results := make([]RoundResult, 0, limit)
	for range limit {
		result, ok := e.Step()
		if !ok {
			return results, fmt.Errorf("%w after %d rounds", ErrDeckExhausted, e.round)
		}
		results = append(results, result)
	}
	return results, nil
}

// draw takes the top card, recycling the discard pile once if the deck is
// empty.
func (e *Engine) draw() (deck.Card, bool) {
	if card, ok := e.deck.Draw(); ok {
		return card, true
	}
	if e.discard.IsEmpty() {
		e.logger.Debug("Deck exhausted", "round", e.round)
		return nil, false
	}

	e.deck.Swap(e.discard)
	e.deck.Shuffle(e.rng)
	e.recycles++
	e.logger.Debug("Recycled discard pile", "round", e.round, "cards", e.deck.Len())
	return e.deck.Draw()
}

// route picks the receiver of card or returns Nobody.
func (e *Engine) route(giver int, card deck.Card) int {
	if !deck.IsRed(card) {
		if e.hands[giver].CanAccept(card) {
			return giver
		}
		return Nobody
	}

	e.eligible = appendEligible(e.eligible[:0], e.hands, card)
	switch len(e.eligible) {
	case 0:
		return Nobody
	case 1:
		return e.eligible[0]
	}

	choice := e.strategy.Choose(giver, e.hands, card)
	contract.Require(choice >= 0 && choice < len(e.hands),
		"strategy chose player %d of %d", choice, len(e.hands))
	contract.Require(e.hands[choice].CanAccept(card),
		"strategy chose player %d who cannot accept %v", choice, card)
	e.logger.Debug("Tie broken", "round", e.round, "card", card, "eligible", len(e.eligible), "receiver", choice)
	return choice
}

func isSpecial(card deck.Card) bool {
	_, ok := card.(deck.Special)
	return ok
}

// Round returns the number of rounds resolved so far
func (e *Engine) Round() int {
	return e.round
}

// Players returns the number of players
func (e *Engine) Players() int {
	return len(e.hands)
}

// Hand returns the hand of player i
func (e *Engine) Hand(i int) *Hand {
	return e.hands[i]
}

// DeckLen returns the number of cards left to draw before a recycle
func (e *Engine) DeckLen() int {
	return e.deck.Len()
}

// DiscardLen returns the size of the discard pile
func (e *Engine) DiscardLen() int {
	return e.discard.Len()
}

// Recycles returns how many times the discard pile became the deck
func (e *Engine) Recycles() int {
	return e.recycles
}
