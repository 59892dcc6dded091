// Package gameid generates identifiers for recorded games: a UUIDv7 encoded
// as 26 characters of Crockford base32, so IDs sort by creation time.
package gameid

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/coder/quartz"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded ID
const Length = 26

// RandSource interface for dependency injection of randomness
type RandSource interface {
	IntN(n int) int
}

// Generator creates game IDs from a clock and a source of randomness
type Generator struct {
	clock      quartz.Clock
	randSource RandSource
}

// NewGenerator creates a generator. A nil clock uses the real clock and a
// nil randSource uses crypto/rand.
func NewGenerator(clock quartz.Clock, randSource RandSource) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{clock: clock, randSource: randSource}
}

// Generate creates a new game ID with the real clock and crypto/rand
func Generate() string {
	return NewGenerator(nil, nil).Generate()
}

// Generate creates a new game ID
func (g *Generator) Generate() string {
	return encode(g.uuidV7())
}

// uuidV7 lays out a 48-bit millisecond timestamp, then random bits with the
// version (7) and variant (10) fields set.
func (g *Generator) uuidV7() [16]byte {
	var uuid [16]byte

	ms := uint64(g.clock.Now().UnixMilli())
	for i := range 6 {
		uuid[i] = byte(ms >> (40 - 8*i))
	}

	if g.randSource != nil {
		for i := 6; i < 16; i++ {
			uuid[i] = byte(g.randSource.IntN(256))
		}
	} else if _, err := rand.Read(uuid[6:]); err != nil {
		panic("failed to generate random bytes: " + err.Error())
	}

	uuid[6] = (uuid[6] & 0x0f) | 0x70
	uuid[8] = (uuid[8] & 0x3f) | 0x80
	return uuid
}

// encode writes the 128 bits as 26 base32 digits, most significant first.
// The first digit carries only the top 3 bits.
func encode(data [16]byte) string {
	out := make([]byte, Length)
	var acc uint64
	var bits uint
	pos := Length - 1
	for i := len(data) - 1; i >= 0; i-- {
		acc |= uint64(data[i]) << bits
		bits += 8
		for bits >= 5 {
			out[pos] = alphabet[acc&0x1f]
			pos--
			acc >>= 5
			bits -= 5
		}
	}
	out[0] = alphabet[acc&0x1f]
	return string(out)
}

func decode(id string) ([16]byte, error) {
	var data [16]byte
	if err := Validate(id); err != nil {
		return data, err
	}
	var acc uint64
	var bits uint
	pos := len(data) - 1
	for i := Length - 1; i >= 0; i-- {
		acc |= uint64(strings.IndexByte(alphabet, id[i])) << bits
		bits += 5
		for bits >= 8 && pos >= 0 {
			data[pos] = byte(acc)
			pos--
			acc >>= 8
			bits -= 8
		}
	}
	return data, nil
}

// Timestamp returns the creation time embedded in an ID
func Timestamp(id string) (time.Time, error) {
	data, err := decode(id)
	if err != nil {
		return time.Time{}, err
	}
	var ms uint64
	for i := range 6 {
		ms = ms<<8 | uint64(data[i])
	}
	return time.UnixMilli(int64(ms)), nil
}

// Validate checks if a game ID is valid (26 characters, valid base32)
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("game ID must be exactly %d characters, got %d", Length, len(id))
	}

	// The first digit holds only 3 bits
	if id[0] > '7' {
		return fmt.Errorf("game ID first character must be 0-7, got %c", id[0])
	}

	for i := 0; i < len(id); i++ {
		if strings.IndexByte(alphabet, id[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", id[i], i)
		}
	}

	return nil
}
