// Package transcript records games as TOML documents and replays them to
// check that a build of the engine still plays the same game.
package transcript

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lox/rantergoround/internal/fileutil"
	"github.com/lox/rantergoround/internal/game"
	"github.com/lox/rantergoround/internal/gameid"
)

// Transcript is the record of one game: the settings that determine it and
// the report line of every round played.
type Transcript struct {
	ID           string    `toml:"id"`
	Created      time.Time `toml:"created"`
	Players      int       `toml:"players"`
	Jokers       int       `toml:"jokers"`
	Seed         int64     `toml:"seed"`
	Strategy     string    `toml:"strategy"`
	StrategySeed int64     `toml:"strategy_seed"`
	Limit        int       `toml:"limit"`
	Exhausted    bool      `toml:"exhausted"`
	Rounds       []string  `toml:"rounds"`
}

// MismatchError reports the first round where a replay diverged
type MismatchError struct {
	Round int
	Want  string
	Got   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("round %d: transcript has %q, replay produced %q", e.Round, e.Want, e.Got)
}

// exhaustedLine stands in for a report line when the replay ran out of cards
const exhaustedLine = "<deck exhausted>"

// New starts an empty transcript for a game
func New(id string, created time.Time, settings game.Settings, limit int) *Transcript {
	return &Transcript{
		ID:           id,
		Created:      created,
		Players:      settings.Players,
		Jokers:       settings.Jokers,
		Seed:         settings.Seed,
		Strategy:     settings.Strategy,
		StrategySeed: settings.StrategySeed,
		Limit:        limit,
		Rounds:       []string{},
	}
}

// Record plays a game up to limit rounds and returns its transcript
func Record(id string, created time.Time, settings game.Settings, limit int) (*Transcript, error) {
	engine, err := settings.NewEngine()
	if err != nil {
		return nil, err
	}
	t := New(id, created, settings, limit)
	for range limit {
		result, ok := engine.Step()
		if !ok {
			t.Exhausted = true
			break
		}
		t.Add(result)
	}
	return t, nil
}

// Settings returns the game settings the transcript was recorded with
func (t *Transcript) Settings() game.Settings {
	return game.Settings{
		Players:      t.Players,
		Jokers:       t.Jokers,
		Seed:         t.Seed,
		Strategy:     t.Strategy,
		StrategySeed: t.StrategySeed,
	}
}

// Add appends the report line of a round
func (t *Transcript) Add(result game.RoundResult) {
	t.Rounds = append(t.Rounds, result.String())
}

// Validate checks the transcript is well formed without replaying it
func (t *Transcript) Validate() error {
	if err := gameid.Validate(t.ID); err != nil {
		return fmt.Errorf("invalid id: %w", err)
	}
	if err := t.Settings().Validate(); err != nil {
		return err
	}
	if t.Limit < 0 {
		return fmt.Errorf("limit cannot be negative, got %d", t.Limit)
	}
	if len(t.Rounds) > t.Limit {
		return fmt.Errorf("%d rounds recorded, limit is %d", len(t.Rounds), t.Limit)
	}
	if !t.Exhausted && len(t.Rounds) != t.Limit {
		return fmt.Errorf("%d rounds recorded, limit is %d and the deck was not exhausted", len(t.Rounds), t.Limit)
	}

	for i, line := range t.Rounds {
		result, err := game.ParseRound(line)
		if err != nil {
			return fmt.Errorf("round %d: %w", i, err)
		}
		if want := i % t.Players; result.Giver != want {
			return fmt.Errorf("round %d: giver is %d, expected %d", i, result.Giver, want)
		}
		if result.HasReceiver() && result.Receiver >= t.Players {
			return fmt.Errorf("round %d: receiver %d out of range", i, result.Receiver)
		}
	}
	return nil
}

// Verify replays the game from its settings and compares every round. The
// first divergence is returned as a *MismatchError.
func (t *Transcript) Verify() error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("invalid transcript: %w", err)
	}

	engine, err := t.Settings().NewEngine()
	if err != nil {
		return err
	}

	for i, want := range t.Rounds {
		result, ok := engine.Step()
		if !ok {
			return &MismatchError{Round: i, Want: want, Got: exhaustedLine}
		}
		if got := result.String(); got != want {
			return &MismatchError{Round: i, Want: want, Got: got}
		}
	}

	if t.Exhausted {
		if result, ok := engine.Step(); ok {
			return &MismatchError{Round: len(t.Rounds), Want: exhaustedLine, Got: result.String()}
		}
	}
	return nil
}

// Encode writes the transcript to w as TOML
func Encode(w io.Writer, t *Transcript) error {
	if t == nil {
		return errors.New("transcript is nil")
	}
	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(t)
}

// EncodeToBytes encodes and returns the result as bytes
func EncodeToBytes(t *Transcript) ([]byte, error) {
	var buf strings.Builder
	if err := Encode(&buf, t); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}

// Decode reads a TOML transcript. Unknown keys are rejected.
func Decode(r io.Reader) (*Transcript, error) {
	var t Transcript
	md, err := toml.NewDecoder(r).Decode(&t)
	if err != nil {
		return nil, fmt.Errorf("failed to parse transcript: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, fmt.Errorf("unknown transcript keys: %s", strings.Join(keys, ", "))
	}
	return &t, nil
}

// WriteFile atomically writes the transcript to filename
func WriteFile(filename string, t *Transcript) error {
	if err := fileutil.WriteAtomic(filename, 0644, func(w io.Writer) error {
		return Encode(w, t)
	}); err != nil {
		return fmt.Errorf("failed to write transcript %s: %w", filename, err)
	}
	return nil
}

// ReadFile reads a transcript from filename
func ReadFile(filename string) (*Transcript, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript: %w", err)
	}
	defer f.Close()

	t, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return t, nil
}
