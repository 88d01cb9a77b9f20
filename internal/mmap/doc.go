// Package mmap provides memory-mapped file access for zero-copy I/O.
//
// Every size and offset is a countof.ByteCount, and mapped memory is handed
// out either as a raw slice or as a countof.View[byte].
//
// # Usage
//
//	m, err := mmap.Open("segment.bin")
//	if err != nil { ... }
//	defer m.Close()
//
//	v := m.View()                                          // whole file
//	r, _ := m.Region(countof.Bytes(4096), countof.Bytes(512)) // a window
//	m.Advise(mmap.AccessSequential)
//
// Create maps a new file read-write; MapAnon maps anonymous memory outside
// the Go heap, which is what the arena allocator builds its chunks from.
//
// # Platform Support
//
//   - Unix: mmap(2), msync(2) and madvise(2) via golang.org/x/sys/unix
//   - Windows: CreateFileMapping/MapViewOfFile and VirtualAlloc via
//     golang.org/x/sys/windows (Advise is a no-op)
//
// # Thread Safety
//
// Mapping and Region are safe for concurrent read access. Close is
// idempotent. Callers must not touch Bytes or a View after Close returns.
package mmap
