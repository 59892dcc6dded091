package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/rantergoround/internal/deck"
	"github.com/lox/rantergoround/internal/randutil"
)

func TestRoundResultString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		result RoundResult
		want   string
	}{
		{
			name:   "delivered",
			result: RoundResult{Giver: 2, Receiver: 4, Card: deck.NewCard(deck.Hearts, 10), Sum: 17},
			want:   "2 ♥T to 4 => 17",
		},
		{
			name:   "win",
			result: RoundResult{Giver: 0, Receiver: 0, Card: deck.Joker{Index: 1}, Win: WinJoker},
			want:   "0 J1 to 0 => Joker",
		},
		{
			name:   "special",
			result: RoundResult{Giver: 1, Receiver: 1, Card: deck.NewCard(deck.Diamonds, 12), Win: WinSpecial},
			want:   "1 ♦Q to 1 => Special",
		},
		{
			name:   "discarded",
			result: RoundResult{Giver: 3, Receiver: Nobody, Card: deck.NewCard(deck.Clubs, 13)},
			want:   "3 ♣K to nobody",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.String())
		})
	}
}

func TestParseRound(t *testing.T) {
	t.Parallel()

	e := NewEngine(randutil.New(3), 4, 2)
	results, err := e.Run(500)
	require.NoError(t, err)

	for _, want := range results {
		got, err := ParseRound(want.String())
		require.NoError(t, err, want.String())
		want.Round = 0
		if want.Win != NoWin {
			want.Sum = 0
		}
		assert.Equal(t, want, got)
	}
}

func TestParseRoundErrors(t *testing.T) {
	t.Parallel()

	for _, line := range []string{
		"",
		"0 ♥5",
		"x ♥5 to nobody",
		"0 ♥X to nobody",
		"0 ♥5 to 1",
		"0 ♥5 to y => 3",
		"0 ♥5 to 1 -> 3",
		"0 ♥5 to 1 => Lucky",
		"0 ♥5 to -1 => 5",
	} {
		_, err := ParseRound(line)
		assert.Error(t, err, line)
	}
}
