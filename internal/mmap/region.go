package mmap

import (
	"github.com/hupe1980/countof"
)

// Region is a window onto part of a Mapping.
// It does not own the memory; the parent Mapping does.
type Region struct {
	parent *Mapping
	offset countof.ByteCount
	size   countof.ByteCount
}

// Region returns the size bytes starting at offset.
func (m *Mapping) Region(offset, size countof.ByteCount) (*Region, error) {
	if m.closed.Load() {
		return nil, ErrClosed
	}
	end := offset.Add(size)
	if end.Lt(offset) || end.Gt(m.size) {
		return nil, ErrOutOfBounds
	}
	return &Region{
		parent: m,
		offset: offset,
		size:   size,
	}, nil
}

// Offset returns where the region starts inside its mapping.
func (r *Region) Offset() countof.ByteCount {
	return r.offset
}

// Size returns the length of the region.
func (r *Region) Size() countof.ByteCount {
	return r.size
}

// Bytes returns the byte slice for this region.
// Warning: The slice is valid only until the parent Mapping is closed.
func (r *Region) Bytes() []byte {
	if r.parent.closed.Load() {
		return nil
	}
	return r.parent.data[r.offset.ToSize():r.offset.Add(r.size).ToSize()]
}

// View returns a view over the region.
func (r *Region) View() countof.View[byte] {
	return countof.ViewOfSlice(r.Bytes())
}

// Advise provides hints to the kernel about how this region will be accessed.
func (r *Region) Advise(pattern AccessPattern) error {
	if r.parent.closed.Load() {
		return ErrClosed
	}
	return osAdvise(r.Bytes(), pattern)
}
