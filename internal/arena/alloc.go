package arena

import (
	"context"
	"fmt"
	"math"
	"math/bits"
	"reflect"
	"unsafe"

	"github.com/hupe1980/countof"
)

// Allocator is implemented by *Arena and *Flat.
type Allocator interface {
	allocAligned(ctx context.Context, size, align uint64) ([]byte, error)
}

// AllocView allocates n zeroed elements of T from a and returns a view over
// them. The view stays valid until the allocator is reset or freed; the
// arena, not the view, owns the memory.
//
// T must not contain Go pointers, since the garbage collector does not scan
// arena memory.
func AllocView[T any](ctx context.Context, a Allocator, n countof.Count[T]) (countof.View[T], error) {
	s, err := allocSlice[T](ctx, a, n)
	if err != nil {
		return countof.View[T]{}, err
	}
	return countof.ViewOfSlice(s), nil
}

// AllocArray allocates n zeroed elements of T from a and returns a pointer to
// the first one. Use countof.Advance to move through the array.
func AllocArray[T any](ctx context.Context, a Allocator, n countof.Count[T]) (*T, error) {
	s, err := allocSlice[T](ctx, a, n)
	if err != nil || len(s) == 0 {
		return nil, err
	}
	return &s[0], nil
}

func allocSlice[T any](ctx context.Context, a Allocator, n countof.Count[T]) ([]T, error) {
	if hasPointers(reflect.TypeFor[T]()) {
		return nil, ErrPointerType
	}
	if n.IsZero() {
		return nil, nil
	}

	var zero T
	hi, size := bits.Mul64(n.ToUint64(), uint64(unsafe.Sizeof(zero)))
	if hi != 0 || n.ToUint64() > math.MaxInt {
		return nil, fmt.Errorf("%w: %d elements of %s", ErrTooLarge, n.ToUint64(), countof.UnitName[T]())
	}
	if size == 0 {
		// Zero-width elements need no backing memory.
		return make([]T, n.ToSize()), nil
	}

	data, err := a.allocAligned(ctx, size, uint64(unsafe.Alignof(zero)))
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&data[0])), n.ToSize()), nil //nolint:gosec // data is sized and aligned for n T
}

func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.UnsafePointer, reflect.Map, reflect.Slice,
		reflect.String, reflect.Interface, reflect.Chan, reflect.Func:
		return true
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
