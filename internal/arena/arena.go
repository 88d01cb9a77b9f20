package arena

import (
	"context"
	"errors"
	"fmt"
	"math/bits"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/countof"
	"github.com/hupe1980/countof/internal/mmap"
)

// MemoryAcquirer reserves memory against a budget before the arena maps a
// new chunk. *resource.Controller implements it.
type MemoryAcquirer interface {
	AcquireMemory(ctx context.Context, size countof.ByteCount) error
	ReleaseMemory(size countof.ByteCount)
}

var (
	// ErrMaxChunksExceeded is returned when the arena exceeds the maximum number of chunks.
	ErrMaxChunksExceeded = errors.New("arena: max chunks exceeded")
	// ErrTooLarge is returned when a single allocation does not fit in a chunk.
	ErrTooLarge = errors.New("arena: allocation larger than chunk size")
	// ErrClosed is returned when allocating from a freed arena.
	ErrClosed = errors.New("arena: arena is closed")
	// ErrPointerType is returned when allocating a type that holds Go pointers.
	// The garbage collector does not scan arena memory.
	ErrPointerType = errors.New("arena: element type contains pointers")
)

// DefaultChunkSize is the chunk size used when New gets a zero size.
var DefaultChunkSize = countof.MBs(1)

const (
	// DefaultAlignment is the default memory alignment (8 bytes).
	DefaultAlignment = 8
	// MaxChunks limits the number of chunks to prevent excessive memory usage.
	MaxChunks = 65536
)

// Stats tracks arena memory usage.
//
// Note on semantics:
//   - Reserved: memory currently mapped for chunks
//   - Used: bytes requested by allocations (before alignment)
//   - Wasted: padding added for alignment
//   - DirtyPages: distinct pages written to by allocations since the last Reset
//   - ChunksAllocated, TotalAllocs: historical counters
type Stats struct {
	ChunksAllocated uint64
	ActiveChunks    uint64
	TotalAllocs     uint64
	Reserved        countof.ByteCount
	Used            countof.ByteCount
	Wasted          countof.ByteCount
	DirtyPages      countof.PageCount
}

// Ref is a generation-checked reference to an arena allocation.
type Ref struct {
	Gen    uint32
	Offset uint64
}

type atomicStats struct {
	ChunksAllocated atomic.Uint64
	BytesReserved   atomic.Uint64
	BytesUsed       atomic.Uint64
	BytesWasted     atomic.Uint64
	ActiveChunks    atomic.Uint64
	TotalAllocs     atomic.Uint64
}

type chunk struct {
	data    []byte
	mapping *mmap.Mapping
	offset  atomic.Uint64 // MUST be atomic - accessed concurrently without locks
	index   uint32
}

// Arena is a chunked bump allocator backed by anonymous mappings.
type Arena struct {
	chunkSize  countof.ByteCount
	chunkBits  int
	chunkMask  uint64
	alignment  uint64
	chunks     [MaxChunks]atomic.Pointer[chunk] // Fixed-size array to avoid slice race conditions
	chunkCount atomic.Uint32
	current    atomic.Pointer[chunk]
	mu         sync.Mutex
	stats      atomicStats
	refs       atomic.Int64
	generation atomic.Uint32

	pagesMu sync.Mutex
	dirty   *roaring64.Bitmap

	acquirer MemoryAcquirer
	logger   *countof.Logger
	metrics  countof.MetricsCollector
}

// Option is a configuration option for Arena.
type Option func(*Arena)

// WithMemoryAcquirer sets the memory acquirer for the arena.
func WithMemoryAcquirer(acquirer MemoryAcquirer) Option {
	return func(a *Arena) {
		a.acquirer = acquirer
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *countof.Logger) Option {
	return func(a *Arena) {
		if l != nil {
			a.logger = l.WithComponent("arena")
		}
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m countof.MetricsCollector) Option {
	return func(a *Arena) {
		if m != nil {
			a.metrics = m
		}
	}
}

// WithAlignment sets the minimum alignment of every allocation. Values that
// are not a power of two are rounded up to one.
func WithAlignment(align countof.ByteCount) Option {
	return func(a *Arena) {
		if n := align.ToUint64(); n > 0 {
			a.alignment = 1 << bits.Len64(n-1)
		}
	}
}

// New creates a new Arena. The chunk size may be given in any unit; it is
// rounded up to a power of two bytes. A zero size selects DefaultChunkSize.
func New[U any](chunkSize countof.Count[U], opts ...Option) (*Arena, error) {
	size := countof.To[countof.Byte](chunkSize)
	if size.IsZero() {
		size = countof.To[countof.Byte](DefaultChunkSize)
	}

	chunkBits := bits.Len64(size.ToUint64() - 1)
	if chunkBits >= 63 {
		return nil, fmt.Errorf("arena: chunk size %s is too large", countof.Humanize(size))
	}

	a := &Arena{
		chunkSize: countof.Bytes(1 << chunkBits),
		chunkBits: chunkBits,
		chunkMask: 1<<chunkBits - 1,
		alignment: DefaultAlignment,
		dirty:     roaring64.New(),
		logger:    countof.NoopLogger(),
		metrics:   countof.NoopMetricsCollector{},
	}

	for _, opt := range opts {
		opt(a)
	}

	// Initialize generation to 1 so 0 is invalid
	a.generation.Store(1)

	if err := a.allocateChunk(context.Background()); err != nil {
		return nil, err
	}
	// Reserve offset 0 as null
	if _, _, err := a.Alloc(countof.Bytes(1)); err != nil {
		return nil, err
	}
	return a, nil
}

// ChunkSize returns the size of each chunk.
func (a *Arena) ChunkSize() countof.ByteCount {
	return a.chunkSize
}

// IncRef increments the reference count.
// Call this when starting a long-running operation that uses the arena.
func (a *Arena) IncRef() {
	a.refs.Add(1)
}

// DecRef decrements the reference count.
func (a *Arena) DecRef() {
	a.refs.Add(-1)
}

// Generation returns the current generation of the arena.
func (a *Arena) Generation() uint32 {
	return a.generation.Load()
}

func (a *Arena) allocateChunk(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.allocateChunkLocked(ctx)
}

func (a *Arena) allocateChunkLocked(ctx context.Context) error {
	idx := a.chunkCount.Load()
	if idx >= MaxChunks {
		return ErrMaxChunksExceeded
	}

	if a.acquirer != nil {
		// Bound the wait when the caller did not.
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, 100*time.Millisecond)
			defer cancel()
		}
		if err := a.acquirer.AcquireMemory(ctx, a.chunkSize); err != nil {
			a.metrics.RecordReject(a.chunkSize)
			return err
		}
	}

	// Off-heap anonymous mapping keeps large arenas out of the GC's way.
	mapping, err := mmap.MapAnon(a.chunkSize)
	if err != nil {
		if a.acquirer != nil {
			a.acquirer.ReleaseMemory(a.chunkSize)
		}
		a.logger.LogAlloc(ctx, a.chunkSize, err)
		return fmt.Errorf("arena: failed to map chunk: %w", err)
	}

	newChunk := &chunk{
		data:    mapping.Bytes(),
		mapping: mapping,
		index:   idx,
	}

	a.chunks[idx].Store(newChunk)

	a.stats.ChunksAllocated.Add(1)
	a.stats.BytesReserved.Add(a.chunkSize.ToUint64())
	a.stats.ActiveChunks.Add(1)

	// Count before current: Get must see the chunk once Alloc hands out an
	// offset inside it.
	a.chunkCount.Add(1)
	a.current.Store(newChunk)

	a.logger.LogAlloc(ctx, a.chunkSize, nil)
	return nil
}

// Alloc allocates size bytes and returns a reference to them together with
// the bytes themselves.
func (a *Arena) Alloc(size countof.ByteCount) (Ref, []byte, error) {
	return a.AllocContext(context.Background(), size)
}

// AllocContext allocates size bytes. ctx bounds the wait for the memory
// acquirer when a new chunk is needed.
func (a *Arena) AllocContext(ctx context.Context, size countof.ByteCount) (Ref, []byte, error) {
	offset, data, err := a.alloc(ctx, size.ToUint64(), a.alignment)
	if err != nil {
		a.metrics.RecordAlloc(size, err)
		return Ref{}, nil, err
	}
	if data != nil {
		a.metrics.RecordAlloc(size, nil)
	}
	return Ref{Gen: a.generation.Load(), Offset: offset}, data, nil
}

// AllocBytes allocates a zeroed byte slice of the given size.
func (a *Arena) AllocBytes(size countof.ByteCount) ([]byte, error) {
	_, data, err := a.Alloc(size)
	return data, err
}

func (a *Arena) allocAligned(ctx context.Context, size, align uint64) ([]byte, error) {
	if align < a.alignment {
		align = a.alignment
	}
	_, data, err := a.alloc(ctx, size, align)
	a.metrics.RecordAlloc(countof.Bytes(size), err)
	return data, err
}

func (a *Arena) alloc(ctx context.Context, size, align uint64) (uint64, []byte, error) {
	if size == 0 {
		return 0, nil, nil
	}

	mask := align - 1
	// Compare before rounding so sizes near MaxUint64 cannot wrap.
	if size > a.chunkSize.ToUint64() || (size+mask)&^mask > a.chunkSize.ToUint64() {
		return 0, nil, fmt.Errorf("%w: %s > %s", ErrTooLarge,
			countof.Humanize(countof.Bytes(size)), countof.Humanize(a.chunkSize))
	}
	alignedSize := (size + mask) &^ mask

	for {
		curr := a.current.Load()
		if curr == nil {
			return 0, nil, ErrClosed
		}

		if offset, data, ok := a.tryAllocInChunk(curr, size, alignedSize, mask); ok {
			a.markDirty(offset, size)
			return offset, data, nil
		}

		// Current chunk is full. Somebody else may have replaced it already.
		if a.current.Load() != curr {
			continue
		}

		a.mu.Lock()
		if a.current.Load() != curr {
			a.mu.Unlock()
			continue
		}
		if err := a.allocateChunkLocked(ctx); err != nil {
			a.mu.Unlock()
			return 0, nil, err
		}
		a.mu.Unlock()
	}
}

func (a *Arena) tryAllocInChunk(curr *chunk, size, alignedSize, mask uint64) (uint64, []byte, bool) {
	oldOffset := curr.offset.Load()
	start := (oldOffset + mask) &^ mask
	newOffset := start + alignedSize

	if newOffset > uint64(len(curr.data)) {
		return 0, nil, false
	}
	if !curr.offset.CompareAndSwap(oldOffset, newOffset) {
		return 0, nil, false
	}

	a.stats.BytesUsed.Add(size)
	a.stats.BytesWasted.Add(newOffset - oldOffset - size)
	a.stats.TotalAllocs.Add(1)

	// GlobalOffset = (ChunkIndex << ChunkBits) | ChunkOffset
	globalOffset := uint64(curr.index)<<a.chunkBits | start
	return globalOffset, curr.data[start : start+size : start+size], true
}

// markDirty records the pages covered by [offset, offset+size).
func (a *Arena) markDirty(offset, size uint64) {
	first := countof.To[countof.Page](countof.Bytes(offset))
	last := countof.To[countof.Page](countof.Bytes(offset + size - 1))

	a.pagesMu.Lock()
	a.dirty.AddRange(first.ToUint64(), last.ToUint64()+1)
	a.pagesMu.Unlock()
}

// Get returns an unsafe.Pointer to the memory at the given global offset.
// It performs no generation check.
func (a *Arena) Get(offset uint64) unsafe.Pointer {
	chunkIdx := offset >> a.chunkBits
	chunkOffset := offset & a.chunkMask

	if chunkIdx >= uint64(a.chunkCount.Load()) {
		panic("arena: stale offset")
	}

	c := a.chunks[chunkIdx].Load()
	if c == nil {
		panic("arena: chunk is nil")
	}

	return unsafe.Add(unsafe.Pointer(&c.data[0]), chunkOffset) //nolint:gosec // unsafe is required for arena implementation
}

// GetSafe returns a pointer to the data at the given reference, or nil if
// the reference predates the last Reset or Free.
func (a *Arena) GetSafe(ref Ref) unsafe.Pointer {
	if ref.Gen != a.generation.Load() {
		return nil
	}
	return a.Get(ref.Offset)
}

// Stats returns the current arena statistics.
func (a *Arena) Stats() Stats {
	a.pagesMu.Lock()
	dirty := a.dirty.GetCardinality()
	a.pagesMu.Unlock()

	return Stats{
		ChunksAllocated: a.stats.ChunksAllocated.Load(),
		ActiveChunks:    a.stats.ActiveChunks.Load(),
		TotalAllocs:     a.stats.TotalAllocs.Load(),
		Reserved:        countof.Bytes(a.stats.BytesReserved.Load()),
		Used:            countof.Bytes(a.stats.BytesUsed.Load()),
		Wasted:          countof.Bytes(a.stats.BytesWasted.Load()),
		DirtyPages:      countof.Pages(dirty),
	}
}

// Free unmaps all arena memory.
//
// IMPORTANT:
//  1. Do NOT call Free concurrently with allocations
//  2. All slices and views allocated from this arena become invalid after Free
//
// After Free(), the arena cannot be reused. Create a new arena instead.
func (a *Arena) Free() {
	for a.refs.Load() > 0 {
		runtime.Gosched()
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	reserved := countof.Bytes(a.stats.BytesReserved.Load())
	if a.acquirer != nil && !reserved.IsZero() {
		a.acquirer.ReleaseMemory(reserved)
	}

	a.generation.Add(1)

	count := int(a.chunkCount.Load())
	for i := 0; i < count; i++ {
		if c := a.chunks[i].Load(); c != nil && c.mapping != nil {
			_ = c.mapping.Close()
		}
		a.chunks[i].Store(nil)
	}
	a.chunkCount.Store(0)
	a.current.Store(nil)

	a.stats.ActiveChunks.Store(0)
	a.stats.BytesReserved.Store(0)
	a.stats.BytesUsed.Store(0)
	a.stats.BytesWasted.Store(0)

	a.pagesMu.Lock()
	a.dirty.Clear()
	a.pagesMu.Unlock()

	a.metrics.RecordFree(reserved)
	a.logger.LogFree(context.Background(), reserved)
}

// Reset clears all allocations and releases extra chunks, keeping only the first chunk.
//
// IMPORTANT:
//  1. Do NOT call Reset concurrently with allocations
//  2. All slices and views allocated before Reset become invalid
func (a *Arena) Reset() {
	for a.refs.Load() > 0 {
		runtime.Gosched()
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.generation.Add(1)

	count := a.chunkCount.Load()
	if count > 0 {
		released := countof.Bytes(uint64(count-1) * a.chunkSize.ToUint64())
		if !released.IsZero() {
			if a.acquirer != nil {
				a.acquirer.ReleaseMemory(released)
			}
			a.metrics.RecordFree(released)
		}

		first := a.chunks[0].Load()
		clear(first.data)
		// Offset 0 stays reserved as null.
		first.offset.Store(1)

		for i := 1; i < int(count); i++ {
			if c := a.chunks[i].Load(); c != nil && c.mapping != nil {
				_ = c.mapping.Close()
			}
			a.chunks[i].Store(nil)
		}
		a.chunkCount.Store(1)
		a.current.Store(first)

		a.stats.ActiveChunks.Store(1)
		a.stats.BytesReserved.Store(a.chunkSize.ToUint64())
	}

	a.stats.BytesUsed.Store(0)
	a.stats.BytesWasted.Store(0)

	a.pagesMu.Lock()
	a.dirty.Clear()
	a.pagesMu.Unlock()
}

// Usage returns the memory usage percentage.
func (a *Arena) Usage() float64 {
	stats := a.Stats()
	if stats.Reserved.IsZero() {
		return 0
	}
	return float64(stats.Used.ToUint64()) / float64(stats.Reserved.ToUint64()) * 100
}

func (a *Arena) String() string {
	stats := a.Stats()
	return fmt.Sprintf(
		"Arena{chunks: %d, reserved: %s, used: %s, wasted: %s, dirty pages: %d, usage: %.1f%%, allocs: %d}",
		stats.ActiveChunks,
		countof.Humanize(stats.Reserved),
		countof.Humanize(stats.Used),
		countof.Humanize(stats.Wasted),
		stats.DirtyPages,
		a.Usage(),
		stats.TotalAllocs,
	)
}
