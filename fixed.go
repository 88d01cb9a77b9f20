package countof

import (
	"fmt"
	"reflect"
	"unsafe"
)

// Fixed holds an array A of T by value. A must be [N]T for some N; using any
// other type panics on first use.
//
// A Fixed degrades to a View over its own storage, so the view stays valid
// only as long as the Fixed it came from.
//
//	name := countof.FixedOf[countof.Char]([5]countof.Char{'A', 'B', 'C', 'D'})
//	v := name.View() // 5 chars
type Fixed[T, A any] struct {
	Elems A
}

// FixedOf wraps the array a.
func FixedOf[T, A any](a A) Fixed[T, A] {
	fixedLen[T, A]()
	return Fixed[T, A]{Elems: a}
}

func fixedLen[T, A any]() uint64 {
	at := reflect.TypeFor[A]()
	if at.Kind() != reflect.Array || at.Elem() != reflect.TypeFor[T]() {
		panic(fmt.Sprintf("countof: %s is not an array of %s", at, reflect.TypeFor[T]()))
	}
	return uint64(at.Len())
}

// Count returns the array length.
func (f *Fixed[T, A]) Count() Count[T] {
	return Count[T]{n: fixedLen[T, A]()}
}

func (f *Fixed[T, A]) elems() []T {
	n := fixedLen[T, A]()
	if n == 0 {
		return []T{}
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&f.Elems)), n) //nolint:gosec // A is [n]T
}

// At returns the element at index i.
func (f *Fixed[T, A]) At(i Count[T]) T {
	return f.elems()[i.n]
}

// Set stores x at index i.
func (f *Fixed[T, A]) Set(i Count[T], x T) {
	f.elems()[i.n] = x
}

// Ref returns a pointer to the element at index i.
func (f *Fixed[T, A]) Ref(i Count[T]) *T {
	return &f.elems()[i.n]
}

// View returns a view over the whole array.
func (f *Fixed[T, A]) View() View[T] {
	return View[T]{elems: f.elems()}
}

// Pointer returns a pointer to the first element, or nil for an empty array.
func (f *Fixed[T, A]) Pointer() *T {
	if fixedLen[T, A]() == 0 {
		return nil
	}
	return (*T)(unsafe.Pointer(&f.Elems)) //nolint:gosec // A is [n]T
}

// Slice returns the array contents as a slice aliasing f.
func (f *Fixed[T, A]) Slice() []T {
	return f.elems()
}
