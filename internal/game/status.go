package game

import (
	"fmt"

	"github.com/lox/rantergoround/internal/contract"
)

// WinCondition is the reason a hand won
type WinCondition int

const (
	NoWin WinCondition = iota
	WinFiveCards
	WinTwentyFive
	WinSpecial
	WinJoker
)

// WinConditions lists every winning condition
var WinConditions = [...]WinCondition{WinFiveCards, WinTwentyFive, WinSpecial, WinJoker}

func (w WinCondition) String() string {
	switch w {
	case NoWin:
		return "NoWin"
	case WinFiveCards:
		return "FiveCards"
	case WinTwentyFive:
		return "TwentyFive"
	case WinSpecial:
		return "Special"
	case WinJoker:
		return "Joker"
	default:
		return fmt.Sprintf("WinCondition(%d)", int(w))
	}
}

// ParseWinCondition is the inverse of WinCondition.String for winning values
func ParseWinCondition(s string) (WinCondition, error) {
	for _, w := range WinConditions {
		if w.String() == s {
			return w, nil
		}
	}
	return NoWin, fmt.Errorf("unknown win condition %q", s)
}

// Status is the value of a hand: a win condition, or the running sum when
// the hand has not won.
type Status struct {
	Win WinCondition
	Sum int
}

// IsWin returns true if the hand has won
func (s Status) IsWin() bool {
	return s.Win != NoWin
}

// NoWinSum returns the running sum of a hand that has not won
func (s Status) NoWinSum() int {
	contract.Require(!s.IsWin(), "sum requested for winning status %v", s.Win)
	return s.Sum
}

func (s Status) String() string {
	if s.IsWin() {
		return "Win(" + s.Win.String() + ")"
	}
	return fmt.Sprintf("NoWin(%d)", s.Sum)
}
