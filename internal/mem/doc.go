// Package mem provides memory allocation utilities.
//
// # Aligned Allocation
//
// AllocAligned hands out 64-byte aligned slices of any element type, which
// keeps SIMD loads and cache lines lined up with the first element.
package mem
