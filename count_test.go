package countof

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

type record struct {
	ID    uint64
	Score float32
	Flags uint32
}

type custom struct{}

func (custom) UnitSize() uint64 { return 3 }

func TestTo(t *testing.T) {
	tests := []struct {
		name string
		got  uint64
		want uint64
	}{
		{"wchars to bytes", To[Byte](WChars(4)).ToUint64(), 8},
		{"chars to wchars truncates", To[WChar](Chars(4)).ToUint64(), 2},
		{"odd chars to wchars", To[WChar](Chars(5)).ToUint64(), 2},
		{"pages to kb", To[Kb](Pages(128)).ToUint64(), 1024},
		{"mb to pages", To[Page](MBs(1)).ToUint64(), 128},
		{"tb to gb", To[Gb](TBs(2)).ToUint64(), 2048},
		{"bytes to kb truncates", To[Kb](Bytes(3)).ToUint64(), 0},
		{"struct to bytes", To[Byte](Of[record](2)).ToUint64(), 32},
		{"custom unit", To[Byte](Of[custom](5)).ToUint64(), 15},
		{"bytes to custom", To[custom](Bytes(10)).ToUint64(), 3},
		{"same unit", To[Page](Pages(7)).ToUint64(), 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}

	assert.Equal(t, Of[Kb](1024), To[Kb](Pages(128)))
}

func TestSizeOf(t *testing.T) {
	assert.Equal(t, uint64(1), SizeOf[Byte]())
	assert.Equal(t, uint64(1), SizeOf[Char]())
	assert.Equal(t, uint64(2), SizeOf[WChar]())
	assert.Equal(t, PageSize, SizeOf[Page]())
	assert.Equal(t, uint64(1<<40), SizeOf[Tb]())
	assert.Equal(t, uint64(16), SizeOf[record]())
	assert.Equal(t, uint64(1), SizeOf[struct{}](), "zero-width units count as one byte")
}

func TestUnitName(t *testing.T) {
	assert.Equal(t, "byte", UnitName[Byte]())
	assert.Equal(t, "char", UnitName[Char]())
	assert.Equal(t, "wchar", UnitName[WChar]())
	assert.Equal(t, "page", UnitName[Page]())
	assert.Equal(t, "MiB", UnitName[Mb]())
	assert.Equal(t, "record", UnitName[record]())
	assert.Equal(t, "uint32", UnitName[uint32]())
	assert.Equal(t, "[4]uint8", UnitName[[4]byte]())
}

func TestCount_Accessors(t *testing.T) {
	c := Pages(3)

	assert.Equal(t, uint(3), c.ToSize())
	assert.Equal(t, uint64(3), c.ToUint64())
	assert.Equal(t, int32(3), c.ToInt())
	assert.Equal(t, uint32(3), c.ToUlong())
	assert.False(t, c.IsZero())
	assert.True(t, Zero[Page]().IsZero())

	big := Bytes(1<<32 + 5)
	assert.Equal(t, uint32(5), big.ToUlong(), "truncates")
	assert.Equal(t, int32(-1), Bytes(math.MaxUint32).ToInt(), "truncates")

	s := []WChar{1, 2, 3}
	assert.Equal(t, WChars(3), LenOf(s))
	assert.Equal(t, WChars(8), CapOf(make([]WChar, 0, 8)))
}

func TestCount_Arithmetic(t *testing.T) {
	a, b := Chars(7), Chars(3)

	assert.Equal(t, Chars(10), a.Add(b))
	assert.Equal(t, Chars(4), a.Sub(b))
	assert.Equal(t, a, a.Add(b).Sub(b))

	t.Run("sub wraps", func(t *testing.T) {
		w := b.Sub(a)
		assert.Equal(t, uint64(math.MaxUint64-3), w.ToUint64())
		assert.Equal(t, b, w.Add(a))
	})

	t.Run("assign", func(t *testing.T) {
		c := Bytes(10)
		assert.Equal(t, Bytes(15), *c.AddAssign(Bytes(5)))
		assert.Equal(t, Bytes(12), *c.SubAssign(Bytes(3)))
		c.AddAssign(Bytes(1)).AddAssign(Bytes(1))
		assert.Equal(t, Bytes(14), c)
	})

	t.Run("increment", func(t *testing.T) {
		c := Pages(1)
		assert.Equal(t, Pages(2), c.Inc())
		assert.Equal(t, Pages(2), c.PostInc())
		assert.Equal(t, Pages(3), c)
		assert.Equal(t, Pages(2), c.Dec())
		assert.Equal(t, Pages(2), c.PostDec())
		assert.Equal(t, Pages(1), c)

		z := Zero[Page]()
		z.Dec()
		assert.Equal(t, uint64(math.MaxUint64), z.ToUint64())
	})
}

func TestCount_Compare(t *testing.T) {
	one, two := KBs(1), KBs(2)

	assert.True(t, one.Eq(KBs(1)))
	assert.True(t, one.Ne(two))
	assert.True(t, one.Lt(two))
	assert.True(t, one.Le(two))
	assert.True(t, one.Le(one))
	assert.True(t, two.Gt(one))
	assert.True(t, two.Ge(two))
	assert.False(t, two.Lt(one))

	assert.Equal(t, -1, one.Compare(two))
	assert.Equal(t, 0, one.Compare(one))
	assert.Equal(t, 1, two.Compare(one))

	assert.Equal(t, one, Min(one, two))
	assert.Equal(t, two, Max(one, two))

	// Counts are comparable values.
	assert.True(t, one == KBs(1))
}

func TestCount_Shorthands(t *testing.T) {
	c := WChars(4)

	assert.Equal(t, uint(8), c.ToByteCount())
	assert.Equal(t, int32(8), c.ToIntByteCount())
	assert.Equal(t, uint32(8), c.ToUlongByteCount())
	assert.Equal(t, uint(4), c.ToWCharCount())
	assert.Equal(t, int32(4), c.ToIntWCharCount())
	assert.Equal(t, uint32(4), c.ToUlongWCharCount())

	assert.Equal(t, uint(4096), Pages(1).ToWCharCount())
	assert.Equal(t, uint(1), Chars(3).ToWCharCount())
}

func TestCount_Format(t *testing.T) {
	c := Bytes(255)

	assert.Equal(t, "255", c.String())
	assert.Equal(t, "255", fmt.Sprint(c))
	assert.Equal(t, "255", fmt.Sprintf("%v", c))
	assert.Equal(t, "255", fmt.Sprintf("%s", c))
	assert.Equal(t, "ff", fmt.Sprintf("%x", c))
	assert.Equal(t, "  255", fmt.Sprintf("%5d", c))
	assert.Equal(t, "00255", fmt.Sprintf("%05v", c))
	assert.Equal(t, "n=255", fmt.Sprintf("n=%d", c))
}

func BenchmarkTo(b *testing.B) {
	c := Pages(128)
	var sink KbCount

	b.ReportAllocs()
	for b.Loop() {
		sink = To[Kb](c)
	}
	_ = sink
}
