// Package arena provides off-heap allocation for typed views.
//
// Arena is a chunked bump allocator built on anonymous memory mappings.
// Flat is a bump allocator over a single caller-owned buffer. Both hand out
// countof.View values through AllocView and raw element pointers through
// AllocArray, with sizes given as typed counts:
//
//	a, _ := arena.New(countof.MBs(4))
//	defer a.Free()
//
//	v, _ := arena.AllocView(ctx, a, countof.WChars(256))
//
// # Features
//
//   - Off-heap allocation via mmap (no GC pressure)
//   - Lock-free concurrent allocation
//   - Generation tracking for stale references (Ref, GetSafe)
//   - Optional memory budget through a MemoryAcquirer
//   - Dirty-page accounting in countof.PageCount
//
// # Concurrency Model
//
// Allocation (Alloc, AllocBytes, AllocView, AllocArray) is safe from many
// goroutines. Reset and Free are NOT safe concurrently with allocations; call
// them once every buffer from the arena is dead.
//
// # Ownership
//
// Views and pointers from an arena do not own their memory. Releasing it is
// the caller's job through Reset or Free, after which every view handed out
// before is invalid.
package arena
