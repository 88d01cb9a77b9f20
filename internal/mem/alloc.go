package mem

import (
	"unsafe"
)

// Alignment is the byte alignment of every allocation (one AVX-512 register).
const Alignment = 64

// AllocAligned allocates n elements of T with 64-byte alignment.
// The returned slice is guaranteed to start at a memory address divisible by 64.
//
// Note: This function allocates slightly more memory than requested to ensure alignment.
// The underlying array is kept alive by the returned slice.
func AllocAligned[T any](n int) []T {
	if n <= 0 {
		return nil
	}

	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	if elemSize == 0 {
		return make([]T, n)
	}

	// Over-allocate so the start can be shifted up to Alignment-1 bytes.
	buf := make([]byte, n*elemSize+Alignment)

	addr := uintptr(unsafe.Pointer(&buf[0])) //nolint:gosec // unsafe is required for memory alignment
	offset := (Alignment - (addr & (Alignment - 1))) & (Alignment - 1)

	ptr := unsafe.Pointer(&buf[offset]) //nolint:gosec // unsafe is required for memory alignment
	return unsafe.Slice((*T)(ptr), n)   //nolint:gosec // unsafe is required for memory alignment
}

// IsAligned reports whether the first element of s sits on an Alignment boundary.
func IsAligned[T any](s []T) bool {
	if len(s) == 0 {
		return true
	}
	return uintptr(unsafe.Pointer(&s[0]))%Alignment == 0 //nolint:gosec // address check only
}
