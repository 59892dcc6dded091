// Package game implements the round-resolution engine of Ranter-Go-Round.
//
// Each round one card is drawn from a shared deck and routed by color:
// red ordinary cards go to any hand that can take them (a Strategy breaks
// ties), everything else is offered only to the player whose turn it is.
// A hand wins by holding a joker, by receiving a special card, by holding
// five cards, or by reaching 25 points. Winning hands are emptied onto the
// discard pile, which becomes the new deck when the deck runs out.
//
// # Basic Usage
//
//	rng := randutil.New(42)
//	e := game.NewEngine(rng, 5, 3)
//	for range 1000 {
//	    result, ok := e.Step()
//	    if !ok {
//	        break // deck and discard are both empty
//	    }
//	    fmt.Println(result)
//	}
//
// # Deterministic Testing
//
// Randomness is always explicit. The engine's source shuffles the deck and
// reshuffles recycled discards; the default RandomStrategy owns a second,
// private source for tie-breaks. Reusing both seeds replays a game exactly.
// A pre-arranged deck can be injected with WithDeck for fully scripted games.
//
// # Errors
//
// Broken invariants panic with a *contract.Violation. Running out of cards is
// a normal outcome: Step returns false and Run returns ErrDeckExhausted.
package game
