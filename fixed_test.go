package countof

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixed(t *testing.T) {
	name := FixedOf[Char]([5]Char{'A', 'B', 'C', 'D'})

	assert.Equal(t, Chars(5), name.Count())
	assert.Equal(t, Chars(4), StrLen(name.Slice()))
	assert.Equal(t, Char('B'), name.At(Chars(1)))

	name.Set(Chars(1), 'b')
	*name.Ref(Chars(2)) = 'c'
	assert.Equal(t, "AbcD", GoString(name.Slice()))

	v := name.View()
	require.Equal(t, Chars(5), v.Count())
	v.Set(Chars(0), 'a')
	assert.Equal(t, Char('a'), name.Elems[0], "view aliases the array")
	assert.Same(t, &name.Elems[0], name.Pointer())
}

func TestFixed_Empty(t *testing.T) {
	var f Fixed[WChar, [0]WChar]

	assert.True(t, f.Count().IsZero())
	assert.Nil(t, f.Pointer())
	assert.False(t, f.View().Valid())
	assert.Empty(t, f.Slice())
}

func TestFixed_NotAnArray(t *testing.T) {
	assert.Panics(t, func() { FixedOf[Char]([]Char{'x'}) })
	assert.Panics(t, func() { FixedOf[Char]([2]WChar{}) })

	var f Fixed[Char, int]
	assert.Panics(t, func() { f.Count() })
}
