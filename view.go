package countof

import "unsafe"

// View is a borrowed run of T together with the number of elements that are
// still reachable from its current position.
//
// A View never owns its storage. Advancing it moves the position forward and
// shrinks the remaining count by the same amount, so the view never claims
// more elements than it can reach. Indexes are counts of T, never raw ints.
type View[T any] struct {
	elems []T
}

// ViewOf returns a view of n elements starting at p.
func ViewOf[T any](p *T, n uint64) View[T] {
	return ViewOfCount(p, Of[T](n))
}

// ViewOfCount returns a view of n elements starting at p. A nil p yields the
// empty view with a zero count, since there is no storage behind it.
func ViewOfCount[T any](p *T, n Count[T]) View[T] {
	if p == nil {
		return View[T]{}
	}
	return View[T]{elems: unsafe.Slice(p, n.n)}
}

// ViewOfSlice returns a view over the elements of s.
func ViewOfSlice[T any](s []T) View[T] {
	return View[T]{elems: s[:len(s):len(s)]}
}

// Count returns the number of elements remaining.
func (v View[T]) Count() Count[T] {
	return LenOf(v.elems)
}

// Valid reports whether the view points somewhere and has at least one
// element left.
func (v View[T]) Valid() bool {
	return v.elems != nil && len(v.elems) > 0
}

// At returns the element at index i.
func (v View[T]) At(i Count[T]) T {
	return v.elems[i.n]
}

// Set stores x at index i.
func (v View[T]) Set(i Count[T], x T) {
	v.elems[i.n] = x
}

// Ref returns a pointer to the element at index i.
func (v View[T]) Ref(i Count[T]) *T {
	return &v.elems[i.n]
}

// Deref returns a pointer to the element at the current position.
func (v View[T]) Deref() *T {
	return &v.elems[0]
}

// AdvanceBy moves v forward by n elements and returns v.
//
// The view itself does not check n against the remaining count. Going past
// the end of the underlying storage panics with a slice bounds error.
func (v *View[T]) AdvanceBy(n Count[T]) *View[T] {
	v.elems = v.elems[n.n:]
	return v
}

// Add returns a copy of v moved forward by n elements.
func (v View[T]) Add(n Count[T]) View[T] {
	return View[T]{elems: v.elems[n.n:]}
}

// Inc moves v forward by one element and returns v.
func (v *View[T]) Inc() *View[T] {
	return v.AdvanceBy(Count[T]{n: 1})
}

// PostInc moves v forward by one element and returns the view as it was
// before.
func (v *View[T]) PostInc() View[T] {
	old := *v
	v.AdvanceBy(Count[T]{n: 1})
	return old
}

// Pointer returns the current position as a raw pointer. An exhausted view
// has no position, so Pointer returns nil rather than one past the end.
func (v View[T]) Pointer() *T {
	if len(v.elems) == 0 {
		return nil
	}
	return &v.elems[0]
}

// Slice returns the remaining elements. The slice aliases the viewed storage.
func (v View[T]) Slice() []T {
	return v.elems
}
