package deck

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ParseCard parses a single report token such as "♥A", "♦T", "♠J" or "J2".
// ASCII suit letters (s, h, c, d) are accepted in place of the symbols and
// ranks are case-insensitive.
func ParseCard(token string) (Card, error) {
	if token == "" {
		return nil, fmt.Errorf("empty card token")
	}

	if (token[0] == 'J' || token[0] == 'j') && len(token) > 1 && isDigits(token[1:]) {
		index, err := strconv.Atoi(token[1:])
		if err != nil {
			return nil, fmt.Errorf("invalid joker index in %q: %w", token, err)
		}
		return Joker{Index: index}, nil
	}

	r, size := utf8.DecodeRuneInString(token)
	suit, ok := parseSuit(r)
	if !ok {
		return nil, fmt.Errorf("invalid suit in %q", token)
	}
	rank, ok := parseRank(token[size:])
	if !ok {
		return nil, fmt.Errorf("invalid rank in %q", token)
	}
	return NewCard(suit, rank), nil
}

// ParseCards parses whitespace or comma separated card tokens
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	cards := make([]Card, 0, len(fields))
	for _, field := range fields {
		card, err := ParseCard(field)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on error. Intended for tests
// and fixed tables.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

func parseSuit(r rune) (Suit, bool) {
	switch r {
	case '♠', 's', 'S':
		return Spades, true
	case '♥', 'h', 'H':
		return Hearts, true
	case '♣', 'c', 'C':
		return Clubs, true
	case '♦', 'd', 'D':
		return Diamonds, true
	default:
		return 0, false
	}
}

func parseRank(s string) (int, bool) {
	switch strings.ToUpper(s) {
	case "A":
		return 1, true
	case "T":
		return 10, true
	case "J":
		return 11, true
	case "Q":
		return 12, true
	case "K":
		return 13, true
	}
	if len(s) != 1 || s[0] < '2' || s[0] > '9' {
		return 0, false
	}
	return int(s[0] - '0'), true
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
