// Package display renders round report lines for the terminal.
package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/rantergoround/internal/deck"
	"github.com/lox/rantergoround/internal/game"
)

// ColorMode selects when output is colored
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode parses a color mode name. The empty string is auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch mode := ColorMode(strings.ToLower(s)); mode {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways, ColorNever:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown color mode %q (want auto, always or never)", s)
	}
}

// Profile returns the termenv color profile for output written to w. Auto
// inspects the terminal and honours NO_COLOR and CLICOLOR_FORCE.
func (m ColorMode) Profile(w io.Writer) termenv.Profile {
	switch m {
	case ColorNever:
		return termenv.Ascii
	case ColorAlways:
		return termenv.ANSI256
	default:
		return termenv.NewOutput(w).EnvColorProfile()
	}
}

// Styles contains styling for report lines
type Styles struct {
	Player    lipgloss.Style
	CardRed   lipgloss.Style
	CardBlack lipgloss.Style
	Special   lipgloss.Style
	Winner    lipgloss.Style
	Sum       lipgloss.Style
	Discard   lipgloss.Style
	Header    lipgloss.Style
}

// NewStyles creates styles bound to a lipgloss renderer
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Player: r.NewStyle().
			Foreground(lipgloss.Color("#74B9FF")),
		CardRed: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		CardBlack: r.NewStyle().
			Bold(true),
		Special: r.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true),
		Winner: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Sum: r.NewStyle().
			Foreground(lipgloss.Color("#04B575")),
		Discard: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true),
	}
}

// Renderer styles report lines for one output
type Renderer struct {
	styles Styles
}

// NewRenderer creates a renderer for output written to w
func NewRenderer(w io.Writer, mode ColorMode) *Renderer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(mode.Profile(w))
	return &Renderer{styles: NewStyles(r)}
}

// Card renders a card in its color. Specials and jokers get their own style.
func (r *Renderer) Card(card deck.Card) string {
	switch card.(type) {
	case deck.Special, deck.Joker:
		return r.styles.Special.Render(card.String())
	}
	if deck.IsRed(card) {
		return r.styles.CardRed.Render(card.String())
	}
	return r.styles.CardBlack.Render(card.String())
}

// Round renders a report line. Without color it is identical to
// RoundResult.String.
func (r *Renderer) Round(result game.RoundResult) string {
	var b strings.Builder
	b.WriteString(r.player(result.Giver))
	b.WriteString(" ")
	b.WriteString(r.Card(result.Card))

	switch {
	case !result.HasReceiver():
		b.WriteString(r.styles.Discard.Render(" to nobody"))
	case result.Win != game.NoWin:
		b.WriteString(" to ")
		b.WriteString(r.player(result.Receiver))
		b.WriteString(" => ")
		b.WriteString(r.styles.Winner.Render(result.Win.String()))
	default:
		b.WriteString(" to ")
		b.WriteString(r.player(result.Receiver))
		b.WriteString(" => ")
		b.WriteString(r.styles.Sum.Render(strconv.Itoa(result.Sum)))
	}
	return b.String()
}

// Header renders a section heading
func (r *Renderer) Header(text string) string {
	return r.styles.Header.Render(" " + text + " ")
}

func (r *Renderer) player(i int) string {
	return r.styles.Player.Render(strconv.Itoa(i))
}
