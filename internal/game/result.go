package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/rantergoround/internal/deck"
)

// Nobody is the receiver of a discarded card
const Nobody = -1

// RoundResult records the outcome of one round. It is a report only and is
// never fed back into the engine.
type RoundResult struct {
	Round    int          // Zero-based round number
	Giver    int          // Player whose turn it was
	Receiver int          // Player who got the card, or Nobody
	Card     deck.Card    // Card drawn this round
	Win      WinCondition // NoWin unless the receiver won
	Sum      int          // Receiver's points after accepting, when no win
}

// HasReceiver returns true if the card went to a player
func (r RoundResult) HasReceiver() bool {
	return r.Receiver != Nobody
}

// String renders the report line for the round
func (r RoundResult) String() string {
	switch {
	case !r.HasReceiver():
		return fmt.Sprintf("%d %s to nobody", r.Giver, r.Card)
	case r.Win != NoWin:
		return fmt.Sprintf("%d %s to %d => %s", r.Giver, r.Card, r.Receiver, r.Win)
	default:
		return fmt.Sprintf("%d %s to %d => %d", r.Giver, r.Card, r.Receiver, r.Sum)
	}
}

// ParseRound parses a report line produced by RoundResult.String. The round
// number is not part of the line and is left at zero.
func ParseRound(line string) (RoundResult, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 || fields[2] != "to" {
		return RoundResult{}, fmt.Errorf("malformed round %q", line)
	}

	giver, err := strconv.Atoi(fields[0])
	if err != nil {
		return RoundResult{}, fmt.Errorf("invalid giver in %q: %w", line, err)
	}
	card, err := deck.ParseCard(fields[1])
	if err != nil {
		return RoundResult{}, fmt.Errorf("invalid card in %q: %w", line, err)
	}
	result := RoundResult{Giver: giver, Receiver: Nobody, Card: card}

	if len(fields) == 4 && fields[3] == "nobody" {
		return result, nil
	}
	if len(fields) != 6 || fields[4] != "=>" {
		return RoundResult{}, fmt.Errorf("malformed round %q", line)
	}

	if result.Receiver, err = strconv.Atoi(fields[3]); err != nil {
		return RoundResult{}, fmt.Errorf("invalid receiver in %q: %w", line, err)
	}
	if result.Receiver < 0 {
		return RoundResult{}, fmt.Errorf("negative receiver in %q", line)
	}
	if sum, err := strconv.Atoi(fields[5]); err == nil {
		result.Sum = sum
		return result, nil
	}
	if result.Win, err = ParseWinCondition(fields[5]); err != nil {
		return RoundResult{}, fmt.Errorf("invalid outcome in %q: %w", line, err)
	}
	return result, nil
}
