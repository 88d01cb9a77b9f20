package testutil

import (
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/countof"
)

func TestRNG_Reset(t *testing.T) {
	rng := NewRNG(4711)
	assert.Equal(t, int64(4711), rng.Seed())

	first := rng.Magnitudes(8, 1000)
	rng.Reset()
	assert.Equal(t, first, rng.Magnitudes(8, 1000))
}

func TestRNG_Magnitude(t *testing.T) {
	rng := NewRNG(1)

	for range 100 {
		assert.Less(t, rng.Magnitude(10), uint64(10))
	}
	for _, v := range rng.Magnitudes(100, 7) {
		assert.Less(t, v, uint64(7))
	}
	assert.Len(t, rng.Magnitudes(3, 0), 3)
}

func TestCount(t *testing.T) {
	rng := NewRNG(2)
	limit := countof.Pages(64)

	for range 100 {
		assert.True(t, Count(rng, limit).Lt(limit))
	}
}

func TestRNG_CString(t *testing.T) {
	rng := NewRNG(3)

	s := rng.CString(32)
	require.Len(t, s, 33)
	assert.Equal(t, countof.Char(0), s[32])
	assert.Equal(t, countof.Chars(32), countof.StrLen(s))
}

func TestRNG_WString(t *testing.T) {
	rng := NewRNG(4)

	w := rng.WString(32)
	require.Len(t, w, 33)
	assert.Equal(t, countof.WChars(32), countof.StrLen(w))
	for _, c := range w[:32] {
		assert.False(t, utf16.IsSurrogate(rune(c)))
	}
}

func TestRNG_Intn(t *testing.T) {
	rng := NewRNG(5)

	for range 100 {
		v := rng.Intn(3)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 3)
	}
	_ = rng.Uint64()
}
