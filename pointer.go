package countof

import "unsafe"

// Advance returns p moved forward by n elements.
//
// Nothing is checked: the result must stay inside the allocation p points
// into, as with any unsafe pointer arithmetic.
func Advance[T any](p *T, n Count[T]) *T {
	var zero T
	return (*T)(unsafe.Add(unsafe.Pointer(p), uintptr(n.n)*unsafe.Sizeof(zero))) //nolint:gosec // caller keeps p inside its allocation
}

// Retreat returns p moved backward by n elements.
func Retreat[T any](p *T, n Count[T]) *T {
	var zero T
	return (*T)(unsafe.Add(unsafe.Pointer(p), -int(uintptr(n.n)*unsafe.Sizeof(zero)))) //nolint:gosec // caller keeps p inside its allocation
}

// AdvanceAssign moves *pp forward by n elements and returns the new pointer.
func AdvanceAssign[T any](pp **T, n Count[T]) *T {
	*pp = Advance(*pp, n)
	return *pp
}

// RetreatAssign moves *pp backward by n elements and returns the new pointer.
func RetreatAssign[T any](pp **T, n Count[T]) *T {
	*pp = Retreat(*pp, n)
	return *pp
}

// Distance returns the number of elements between from and to. to must not
// precede from.
func Distance[T any](from, to *T) Count[T] {
	var zero T
	size := unsafe.Sizeof(zero)
	if size == 0 {
		return Count[T]{}
	}
	return Count[T]{n: uint64((uintptr(unsafe.Pointer(to)) - uintptr(unsafe.Pointer(from))) / size)} //nolint:gosec // address arithmetic only
}
