package mem

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocAligned(t *testing.T) {
	sizes := []int{1, 10, 63, 64, 65, 100, 1024}

	for _, size := range sizes {
		buf := AllocAligned[byte](size)
		assert.Len(t, buf, size)
		assert.True(t, IsAligned(buf), "size %d should be aligned to %d", size, Alignment)
	}

	assert.Nil(t, AllocAligned[byte](0))
	assert.Nil(t, AllocAligned[byte](-1))
}

func TestAllocAlignedWide(t *testing.T) {
	sizes := []int{1, 10, 16, 17, 100, 1024}

	for _, size := range sizes {
		buf := AllocAligned[uint16](size)
		assert.Len(t, buf, size)
		assert.True(t, IsAligned(buf))

		// Every element is addressable and writable.
		for i := range buf {
			buf[i] = uint16(i)
		}
		assert.Equal(t, uint16(size-1), buf[size-1])
	}

	assert.Nil(t, AllocAligned[uint16](0))
}

func TestAllocAlignedZeroWidth(t *testing.T) {
	buf := AllocAligned[struct{}](4)
	assert.Len(t, buf, 4)
}

func BenchmarkAllocAligned(b *testing.B) {
	sizes := []int{64, 256, 1024, 4096}
	for _, size := range sizes {
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = AllocAligned[byte](size)
			}
		})
	}
}
