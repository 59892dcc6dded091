package gameid

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequenceRand replays fixed values for deterministic IDs
type sequenceRand struct {
	values []int
	index  int
}

func (s *sequenceRand) IntN(n int) int {
	if s.index >= len(s.values) {
		return 0
	}
	val := s.values[s.index] % n
	s.index++
	return val
}

func newSequenceRand(start int) *sequenceRand {
	values := make([]int, 10)
	for i := range values {
		values[i] = start + i
	}
	return &sequenceRand{values: values}
}

func TestGenerate(t *testing.T) {
	id := Generate()

	assert.Len(t, id, Length)
	assert.NoError(t, Validate(id))
	assert.LessOrEqual(t, id[0], byte('7'))
}

func TestGenerateUnique(t *testing.T) {
	ids := make(map[string]bool)
	for range 100 {
		id := Generate()
		require.False(t, ids[id], "duplicate ID generated: %s", id)
		ids[id] = true
	}
}

func TestGeneratorDeterministic(t *testing.T) {
	ctx := context.Background()
	clock := quartz.NewMock(t)
	clock.Set(time.Date(2030, 3, 14, 15, 9, 26, 0, time.UTC)).MustWait(ctx)

	first := NewGenerator(clock, newSequenceRand(100)).Generate()
	second := NewGenerator(clock, newSequenceRand(100)).Generate()
	assert.Equal(t, first, second)

	other := NewGenerator(clock, newSequenceRand(7)).Generate()
	assert.NotEqual(t, first, other)
	assert.Equal(t, first[:10], other[:10], "timestamp prefix should match")
}

func TestGeneratorTimeSorted(t *testing.T) {
	ctx := context.Background()
	clock := quartz.NewMock(t)
	gen := NewGenerator(clock, nil)

	var ids []string
	for range 10 {
		ids = append(ids, gen.Generate())
		clock.Advance(time.Millisecond).MustWait(ctx)
	}

	for i := 1; i < len(ids); i++ {
		assert.Negative(t, strings.Compare(ids[i-1], ids[i]), "IDs not sorted: %s >= %s", ids[i-1], ids[i])
	}
}

func TestTimestamp(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2030, 3, 14, 15, 9, 26, 535_000_000, time.UTC)
	clock := quartz.NewMock(t)
	clock.Set(created).MustWait(ctx)

	id := NewGenerator(clock, newSequenceRand(1)).Generate()
	got, err := Timestamp(id)
	require.NoError(t, err)
	assert.True(t, created.Equal(got), "want %v, got %v", created, got)

	_, err = Timestamp("not-an-id")
	assert.Error(t, err)
}

func TestEncodeDecode(t *testing.T) {
	var data [16]byte
	for i := range data {
		data[i] = byte(i*17 + 3)
	}
	data[0] &= 0x3f

	id := encode(data)
	require.NoError(t, Validate(id))

	decoded, err := decode(id)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)

	assert.Equal(t, strings.Repeat("0", Length), encode([16]byte{}))
}

func TestVersionAndVariant(t *testing.T) {
	gen := NewGenerator(quartz.NewMock(t), newSequenceRand(255))
	data, err := decode(gen.Generate())
	require.NoError(t, err)

	assert.Equal(t, byte(0x70), data[6]&0xf0)
	assert.Equal(t, byte(0x80), data[8]&0xc0)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid ID", "01h5n0et5q6mt3v7ms1234abcd", false},
		{"too short", "01h5n0et5q6mt3v7ms123", true},
		{"too long", "01h5n0et5q6mt3v7ms1234abcdef", true},
		{"first char too high", "81h5n0et5q6mt3v7ms1234abcd", true},
		{"invalid character", "01h5n0et5q6mt3v7ms1234abci", true},
		{"uppercase not allowed", "01H5N0ET5Q6MT3V7MS1234ABCD", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAlphabet(t *testing.T) {
	assert.Len(t, alphabet, 32)

	seen := make(map[rune]bool)
	for _, char := range alphabet {
		assert.False(t, seen[char], "duplicate character in alphabet: %c", char)
		seen[char] = true
	}

	for _, char := range "ilou" {
		assert.NotContains(t, alphabet, string(char))
	}
}
