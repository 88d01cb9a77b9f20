package countof

import "github.com/hupe1980/countof/internal/mem"

// MakeArray allocates storage for n elements of T.
func MakeArray[T any](n Count[T]) []T {
	return make([]T, n.n)
}

// MakeView allocates storage for n elements of T and returns a view over it.
func MakeView[T any](n Count[T]) View[T] {
	return View[T]{elems: make([]T, n.n)}
}

// MakeAligned allocates storage for n elements of T whose first element sits
// on a 64-byte boundary.
func MakeAligned[T any](n Count[T]) []T {
	return mem.AllocAligned[T](int(n.n)) //nolint:gosec // n is an element count
}
