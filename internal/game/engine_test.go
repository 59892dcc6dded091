package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/rantergoround/internal/deck"
	"github.com/lox/rantergoround/internal/randutil"
)

func TestNewEngine(t *testing.T) {
	t.Parallel()

	t.Run("basic construction", func(t *testing.T) {
		e := NewEngine(randutil.New(42), 5, 3)
		assert.Equal(t, 5, e.Players())
		assert.Equal(t, 55, e.DeckLen())
		assert.Equal(t, 0, e.DiscardLen())
		assert.Equal(t, 0, e.Round())
		for i := range 5 {
			assert.Equal(t, 0, e.Hand(i).Len())
		}
	})

	t.Run("shuffles once at construction", func(t *testing.T) {
		a := NewEngine(randutil.New(1), 2, 0)
		b := NewEngine(randutil.New(1), 2, 0)
		assert.Equal(t, a.deck.Cards(), b.deck.Cards())
		assert.NotEqual(t, deck.NewStandard(0).Cards(), a.deck.Cards())
	})

	t.Run("requires RNG", func(t *testing.T) {
		requireViolation(t, func() { NewEngine(nil, 2, 0) })
	})

	t.Run("requires a player", func(t *testing.T) {
		requireViolation(t, func() { NewEngine(randutil.New(1), 0, 0) })
	})

	t.Run("rejects negative jokers", func(t *testing.T) {
		requireViolation(t, func() { NewEngine(randutil.New(1), 2, -1) })
	})
}

func TestStepSpecialWinsWithoutBeingHeld(t *testing.T) {
	t.Parallel()

	e := NewEngine(randutil.New(1), 2, 0, WithDeck(stackedDeck("♠J ♦Q")))

	result, ok := e.Step()
	require.True(t, ok)
	assert.Equal(t, 0, result.Receiver)
	assert.Equal(t, WinSpecial, result.Win)
	assert.Equal(t, 0, e.Hand(0).Len())
	assert.Equal(t, 1, e.DiscardLen())

	// Specials are never red, so the queen of diamonds stays with the giver.
	result, ok = e.Step()
	require.True(t, ok)
	assert.Equal(t, 1, result.Giver)
	assert.Equal(t, 1, result.Receiver)
	assert.Equal(t, WinSpecial, result.Win)
	assert.Equal(t, 0, e.Hand(1).Len())
}

func TestStepSpecialFromSeededGame(t *testing.T) {
	t.Parallel()

	e := NewEngine(randutil.New(2024), 2, 0)
	specials := 0
	for range 200 {
		before := []int{e.Hand(0).Len(), e.Hand(1).Len()}
		result, ok := e.Step()
		require.True(t, ok)
		if _, isSpecial := result.Card.(deck.Special); !isSpecial {
			continue
		}
		specials++
		require.True(t, result.HasReceiver())
		assert.Equal(t, WinSpecial, result.Win)
		assert.Equal(t, before[result.Receiver], e.Hand(result.Receiver).Len())
	}
	assert.Positive(t, specials)
}

func TestStepBlackCardOnlyToGiver(t *testing.T) {
	t.Parallel()

	e := NewEngine(randutil.New(1), 2, 0, WithDeck(stackedDeck("♣3 ♠4")), WithStrategy(failStrategy{t}))

	result, _ := e.Step()
	assert.Equal(t, 0, result.Giver)
	assert.Equal(t, 0, result.Receiver)
	assert.Equal(t, 3, result.Sum)

	result, _ = e.Step()
	assert.Equal(t, 1, result.Giver)
	assert.Equal(t, 1, result.Receiver)
	assert.Equal(t, 4, result.Sum)
}

func TestStepBlackCardDiscardedWhenGiverFull(t *testing.T) {
	t.Parallel()

	e := NewEngine(randutil.New(1), 2, 0, WithDeck(stackedDeck("♣K ♣2 ♠K")))
	e.Step() // p0: 13
	e.Step() // p1: 2

	result, ok := e.Step()
	require.True(t, ok)
	assert.Equal(t, 0, result.Giver)
	assert.Equal(t, Nobody, result.Receiver)
	assert.Equal(t, "0 ♠K to nobody", result.String())
	assert.Equal(t, 1, e.DiscardLen())
}

func TestStepRedCardSingleEligible(t *testing.T) {
	t.Parallel()

	e := NewEngine(randutil.New(1), 2, 0,
		WithDeck(stackedDeck("♣K ♠Q ♥K")),
		WithStrategy(failStrategy{t}))
	e.Step() // p0: 13
	e.Step() // p1: 12, no ace

	result, ok := e.Step()
	require.True(t, ok)
	assert.Equal(t, 0, result.Giver)
	assert.Equal(t, 1, result.Receiver, "only p1 can take the king")
	assert.Equal(t, WinTwentyFive, result.Win)
	assert.Equal(t, 0, e.Hand(1).Len(), "winning hand is cleared")
	assert.Equal(t, 2, e.DiscardLen())
}

func TestStepRedCardNobodyEligible(t *testing.T) {
	t.Parallel()

	e := NewEngine(randutil.New(1), 1, 0, WithDeck(stackedDeck("♣K ♣9 ♥5")))
	e.Step()
	e.Step()

	result, ok := e.Step()
	require.True(t, ok)
	assert.False(t, result.HasReceiver())
	assert.Equal(t, "0 ♥5 to nobody", result.String())
	assert.Equal(t, 2, e.Hand(0).Len())
}

func TestStepRedCardTieUsesStrategy(t *testing.T) {
	t.Parallel()

	stub := &stubStrategy{choice: 1}
	e := NewEngine(randutil.New(1), 3, 0, WithDeck(stackedDeck("♣2 ♥5")), WithStrategy(stub))
	e.Step()

	result, ok := e.Step()
	require.True(t, ok)
	assert.Equal(t, 1, result.Receiver)
	assert.Equal(t, []int{1}, stub.calls, "strategy is told the giver")
	assert.Equal(t, 5, result.Sum)
	assert.Equal(t, "1 ♥5 to 1 => 5", result.String())
}

func TestStepStrategyContract(t *testing.T) {
	t.Parallel()

	t.Run("out of range", func(t *testing.T) {
		e := NewEngine(randutil.New(1), 2, 0, WithDeck(stackedDeck("♥5")), WithStrategy(&stubStrategy{choice: 2}))
		requireViolation(t, func() { e.Step() })
	})

	t.Run("negative", func(t *testing.T) {
		e := NewEngine(randutil.New(1), 2, 0, WithDeck(stackedDeck("♥5")), WithStrategy(&stubStrategy{choice: -1}))
		requireViolation(t, func() { e.Step() })
	})

	t.Run("ineligible", func(t *testing.T) {
		e := NewEngine(randutil.New(1), 3, 0,
			WithDeck(stackedDeck("♣K ♣2 ♣3 ♥K")),
			WithStrategy(&stubStrategy{choice: 0}))
		e.Step() // p0: 13
		e.Step() // p1: 2
		e.Step() // p2: 3
		requireViolation(t, func() { e.Step() })
	})
}

func TestStepFiveCardWin(t *testing.T) {
	t.Parallel()

	e := NewEngine(randutil.New(1), 1, 0, WithDeck(stackedDeck("♣2 ♠2 ♣3 ♠3 ♣4")))
	results, err := e.Run(5)
	require.NoError(t, err)

	for _, r := range results[:4] {
		assert.Equal(t, NoWin, r.Win)
	}
	assert.Equal(t, WinFiveCards, results[4].Win)
	assert.Equal(t, "0 ♣4 to 0 => FiveCards", results[4].String())
	assert.Equal(t, 0, e.Hand(0).Len())
	assert.Equal(t, 5, e.DiscardLen())
}

func TestStepJokerWin(t *testing.T) {
	t.Parallel()

	e := NewEngine(randutil.New(1), 2, 0, WithDeck(stackedDeck("♣9 J0")))
	e.Step()

	result, ok := e.Step()
	require.True(t, ok)
	assert.Equal(t, 1, result.Receiver)
	assert.Equal(t, WinJoker, result.Win)
	assert.Equal(t, "1 J0 to 1 => Joker", result.String())
	assert.Equal(t, 1, e.DiscardLen())
}

func TestStepRecyclesDiscard(t *testing.T) {
	t.Parallel()

	e := NewEngine(randutil.New(1), 1, 0, WithDeck(stackedDeck("♣K ♣Q")))
	e.Step()
	result, _ := e.Step()
	require.Equal(t, WinTwentyFive, result.Win)
	require.Equal(t, 0, e.DeckLen())
	require.Equal(t, 2, e.DiscardLen())

	result, ok := e.Step()
	require.True(t, ok)
	assert.Equal(t, 1, e.DeckLen(), "discard size minus the drawn card")
	assert.Equal(t, 0, e.DiscardLen())
	assert.Equal(t, 1, e.Recycles())
	assert.Equal(t, 0, result.Receiver)
	assert.Contains(t, []int{12, 13}, result.Sum)
}

func TestStepExhaustion(t *testing.T) {
	t.Parallel()

	t.Run("empty deck and discard", func(t *testing.T) {
		e := NewEngine(randutil.New(1), 2, 0, WithDeck(deck.New()))
		_, ok := e.Step()
		assert.False(t, ok)
		assert.Equal(t, 0, e.Round())
	})

	t.Run("cards held in hands", func(t *testing.T) {
		e := NewEngine(randutil.New(1), 1, 0, WithDeck(stackedDeck("♣5")))
		_, ok := e.Step()
		require.True(t, ok)

		_, ok = e.Step()
		assert.False(t, ok)
		assert.Equal(t, 1, e.Round(), "exhaustion does not advance the round")
		assert.Equal(t, 0, e.Recycles())
	})

	t.Run("run reports exhaustion", func(t *testing.T) {
		e := NewEngine(randutil.New(1), 1, 0, WithDeck(stackedDeck("♣5 ♣6")))
		results, err := e.Run(10)
		assert.Len(t, results, 2)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDeckExhausted))
		assert.EqualError(t, err, "deck exhausted after 2 rounds")
	})
}

func TestRoundCounterAndGiverCycle(t *testing.T) {
	t.Parallel()

	e := NewEngine(randutil.New(42), 3, 2)
	results, err := e.Run(300)
	require.NoError(t, err)

	assert.Equal(t, 300, e.Round())
	for i, r := range results {
		assert.Equal(t, i, r.Round)
		assert.Equal(t, i%3, r.Giver)
	}
}

func TestCardsAreConserved(t *testing.T) {
	t.Parallel()

	e := NewEngine(randutil.New(7), 5, 3)
	for range 2000 {
		_, ok := e.Step()
		require.True(t, ok)

		held := 0
		for i := range e.Players() {
			hand := e.Hand(i)
			held += hand.Len()
			require.False(t, hand.Evaluate().IsWin(), "hand %d left in a winning state", i)
		}
		require.Equal(t, 55, e.DeckLen()+e.DiscardLen()+held)
	}
}

func TestEngineIsDeterministic(t *testing.T) {
	t.Parallel()

	play := func(seed, strategySeed int64) []RoundResult {
		e := NewEngine(randutil.New(seed), 5, 3, WithStrategy(NewRandomStrategy(strategySeed)))
		results, err := e.Run(1000)
		require.NoError(t, err)
		return results
	}

	assert.Equal(t, play(42, 60), play(42, 60))
	assert.NotEqual(t, play(42, 60), play(43, 60))
}
