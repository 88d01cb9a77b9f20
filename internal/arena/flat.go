package arena

import (
	"context"
	"errors"
	"sync/atomic"
	"unsafe"

	"github.com/hupe1980/countof"
)

// ErrArenaFull is returned when a Flat arena has no room left.
var ErrArenaFull = errors.New("arena: flat arena is full")

// Flat is a bump allocator over a single caller-owned buffer, such as a
// writable memory mapping. It never grows and never frees the buffer.
type Flat struct {
	buf []byte
	ptr atomic.Uint64 // Current allocation offset
}

// NewFlat creates a Flat arena over the bytes of v.
func NewFlat(v countof.View[byte]) *Flat {
	return &Flat{buf: v.Slice()}
}

// Alloc reserves size bytes at an 8-byte aligned address and returns their
// offset in the buffer.
func (a *Flat) Alloc(size countof.ByteCount) (countof.ByteCount, error) {
	off, err := a.reserve(size.ToUint64(), DefaultAlignment)
	return countof.Bytes(off), err
}

// reserve aligns by memory address, so a buffer that starts off a boundary
// still yields aligned allocations.
func (a *Flat) reserve(size, align uint64) (uint64, error) {
	var base uint64
	if len(a.buf) > 0 {
		base = uint64(uintptr(unsafe.Pointer(unsafe.SliceData(a.buf)))) //nolint:gosec
	}
	for {
		cur := a.ptr.Load()
		start := ((base + cur + align - 1) &^ (align - 1)) - base
		next := start + size

		if next > uint64(len(a.buf)) || next < start {
			return 0, ErrArenaFull
		}
		if a.ptr.CompareAndSwap(cur, next) {
			return start, nil
		}
	}
}

func (a *Flat) allocAligned(_ context.Context, size, align uint64) ([]byte, error) {
	if align < DefaultAlignment {
		align = DefaultAlignment
	}
	off, err := a.reserve(size, align)
	if err != nil {
		return nil, err
	}
	return a.buf[off : off+size : off+size], nil
}

// Get returns a view of size bytes at offset.
func (a *Flat) Get(offset, size countof.ByteCount) countof.View[byte] {
	return countof.ViewOfSlice(a.buf[offset.ToSize():offset.Add(size).ToSize()])
}

// Capacity returns the size of the underlying buffer.
func (a *Flat) Capacity() countof.ByteCount {
	return countof.LenOf(a.buf)
}

// Used returns the number of bytes handed out, padding included.
func (a *Flat) Used() countof.ByteCount {
	return countof.Bytes(a.ptr.Load())
}

// Remaining returns the number of bytes still available.
func (a *Flat) Remaining() countof.ByteCount {
	return a.Capacity().Sub(a.Used())
}

// Reset makes the whole buffer available again. Previous allocations are
// not cleared.
func (a *Flat) Reset() {
	a.ptr.Store(0)
}
