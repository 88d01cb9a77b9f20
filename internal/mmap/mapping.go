package mmap

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/hupe1980/countof"
	"github.com/hupe1980/countof/internal/conv"
)

// Mapping is a memory-mapped file or anonymous region.
// It owns the mapped bytes and is responsible for unmapping them.
type Mapping struct {
	data     []byte
	size     countof.ByteCount
	writable bool
	closed   atomic.Bool
	// unmap is the platform-specific function to unmap the memory.
	unmap func([]byte) error
	// sync is the platform-specific function to flush writable file mappings.
	sync func([]byte) error
}

// Open maps the file at path into memory as read-only.
func Open(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	size, err := conv.ToUint64(fi.Size())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSize, err)
	}
	if size == 0 {
		return &Mapping{}, nil
	}

	return mapFile(f, countof.Bytes(size), false)
}

// Create creates or truncates the file at path to size bytes and maps it
// read-write. Writes through Bytes or View reach the file on Sync or Close.
func Create(path string, size countof.ByteCount) (*Mapping, error) {
	if size.IsZero() {
		return nil, ErrInvalidSize
	}
	n, err := conv.ToInt64(size.ToUint64())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSize, err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := f.Truncate(n); err != nil {
		return nil, err
	}

	return mapFile(f, size, true)
}

func mapFile(f *os.File, size countof.ByteCount, writable bool) (*Mapping, error) {
	n, err := conv.ToInt(size.ToUint64())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSize, err)
	}

	data, unmap, err := osMap(f, n, writable)
	if err != nil {
		return nil, err
	}

	m := &Mapping{
		data:     data,
		size:     size,
		writable: writable,
		unmap:    unmap,
	}
	if writable {
		m.sync = osSync
	}
	return m, nil
}

// MapAnon creates a read-write anonymous mapping of size bytes outside the
// Go heap.
func MapAnon(size countof.ByteCount) (*Mapping, error) {
	if size.IsZero() {
		return nil, ErrInvalidSize
	}
	n, err := conv.ToInt(size.ToUint64())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSize, err)
	}

	data, unmap, err := osMapAnon(n)
	if err != nil {
		return nil, err
	}

	return &Mapping{
		data:     data,
		size:     size,
		writable: true,
		unmap:    unmap,
	}, nil
}

// Close unmaps the memory. It is idempotent.
func (m *Mapping) Close() error {
	if m.closed.Swap(true) {
		return nil // Already closed
	}
	if m.unmap != nil && m.data != nil {
		return m.unmap(m.data)
	}
	return nil
}

// Bytes returns the underlying byte slice.
// Warning: The slice is valid only until Close() is called.
func (m *Mapping) Bytes() []byte {
	if m.closed.Load() {
		return nil
	}
	return m.data
}

// View returns a view over the whole mapping. An empty or closed mapping
// yields an invalid view.
func (m *Mapping) View() countof.View[byte] {
	return countof.ViewOfSlice(m.Bytes())
}

// Size returns the size of the mapping.
func (m *Mapping) Size() countof.ByteCount {
	return m.size
}

// Pages returns the number of OS pages the mapping spans.
func (m *Mapping) Pages() uint64 {
	page := uint64(PageSize())
	return (m.size.ToUint64() + page - 1) / page
}

// Writable reports whether the mapping accepts writes.
func (m *Mapping) Writable() bool {
	return m.writable
}

// Advise provides hints to the kernel about how the memory will be accessed.
func (m *Mapping) Advise(pattern AccessPattern) error {
	if m.closed.Load() {
		return ErrClosed
	}
	if m.data == nil {
		return nil
	}
	return osAdvise(m.data, pattern)
}

// Sync flushes a writable file mapping to disk. Anonymous mappings have
// nothing to flush.
func (m *Mapping) Sync() error {
	if m.closed.Load() {
		return ErrClosed
	}
	if !m.writable {
		return ErrReadOnly
	}
	if m.sync == nil || m.data == nil {
		return nil
	}
	return m.sync(m.data)
}

// ReadAt implements io.ReaderAt.
func (m *Mapping) ReadAt(p []byte, off int64) (n int, err error) {
	if m.closed.Load() {
		return 0, ErrClosed
	}
	if off < 0 {
		return 0, ErrInvalidOffset
	}
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n = copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
