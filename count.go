package countof

import (
	"cmp"
	"fmt"
	"strconv"
)

// Count is a number of U.
//
// The unit exists only in the type: a Count is stored as a single uint64 and
// counts of different units cannot be added, compared or assigned to each
// other. Moving between units goes through To.
//
// Arithmetic is unchecked. Subtracting a larger count wraps around, exactly
// like the underlying unsigned integer.
type Count[U any] struct {
	n uint64
}

// Of returns a count of n units of U.
func Of[U any](n uint64) Count[U] {
	return Count[U]{n: n}
}

// Zero returns an empty count of U.
func Zero[U any]() Count[U] {
	return Count[U]{}
}

// LenOf returns the length of s as a count of its element type.
func LenOf[T any](s []T) Count[T] {
	return Count[T]{n: uint64(len(s))}
}

// CapOf returns the capacity of s as a count of its element type.
func CapOf[T any](s []T) Count[T] {
	return Count[T]{n: uint64(cap(s))}
}

// To converts c into a count of V. The result is truncated:
// To[Kb](Bytes(3)) is zero.
func To[V, U any](c Count[U]) Count[V] {
	return Count[V]{n: c.n * SizeOf[U]() / SizeOf[V]()}
}

// ToSize returns the magnitude as a platform-width unsigned integer.
func (c Count[U]) ToSize() uint {
	return uint(c.n)
}

// ToUint64 returns the magnitude.
func (c Count[U]) ToUint64() uint64 {
	return c.n
}

// ToInt returns the magnitude as a signed 32-bit integer. Values that do not
// fit are truncated.
func (c Count[U]) ToInt() int32 {
	return int32(c.n) //nolint:gosec // truncation is part of the contract
}

// ToUlong returns the magnitude as an unsigned 32-bit integer. Values that do
// not fit are truncated.
func (c Count[U]) ToUlong() uint32 {
	return uint32(c.n) //nolint:gosec // truncation is part of the contract
}

// IsZero reports whether the count is empty.
func (c Count[U]) IsZero() bool {
	return c.n == 0
}

// Add returns c + o.
func (c Count[U]) Add(o Count[U]) Count[U] {
	return Count[U]{n: c.n + o.n}
}

// Sub returns c - o. It wraps when o > c.
func (c Count[U]) Sub(o Count[U]) Count[U] {
	return Count[U]{n: c.n - o.n}
}

// AddAssign adds o to c and returns c.
func (c *Count[U]) AddAssign(o Count[U]) *Count[U] {
	c.n += o.n
	return c
}

// SubAssign subtracts o from c and returns c.
func (c *Count[U]) SubAssign(o Count[U]) *Count[U] {
	c.n -= o.n
	return c
}

// Inc increments c and returns the new value.
func (c *Count[U]) Inc() Count[U] {
	c.n++
	return *c
}

// PostInc increments c and returns the value it had before.
func (c *Count[U]) PostInc() Count[U] {
	old := *c
	c.n++
	return old
}

// Dec decrements c and returns the new value.
func (c *Count[U]) Dec() Count[U] {
	c.n--
	return *c
}

// PostDec decrements c and returns the value it had before.
func (c *Count[U]) PostDec() Count[U] {
	old := *c
	c.n--
	return old
}

// Compare returns -1, 0 or +1 depending on whether c is less than, equal to
// or greater than o.
func (c Count[U]) Compare(o Count[U]) int {
	return cmp.Compare(c.n, o.n)
}

func (c Count[U]) Eq(o Count[U]) bool { return c.n == o.n }
func (c Count[U]) Ne(o Count[U]) bool { return c.n != o.n }
func (c Count[U]) Lt(o Count[U]) bool { return c.n < o.n }
func (c Count[U]) Le(o Count[U]) bool { return c.n <= o.n }
func (c Count[U]) Gt(o Count[U]) bool { return c.n > o.n }
func (c Count[U]) Ge(o Count[U]) bool { return c.n >= o.n }

// Min returns the smaller of a and b.
func Min[U any](a, b Count[U]) Count[U] {
	if b.n < a.n {
		return b
	}
	return a
}

// Max returns the larger of a and b.
func Max[U any](a, b Count[U]) Count[U] {
	if b.n > a.n {
		return b
	}
	return a
}

// ToByteCount returns the size of c in bytes.
func (c Count[U]) ToByteCount() uint {
	return To[Byte](c).ToSize()
}

// ToIntByteCount returns the size of c in bytes as a truncated int32.
func (c Count[U]) ToIntByteCount() int32 {
	return To[Byte](c).ToInt()
}

// ToUlongByteCount returns the size of c in bytes as a truncated uint32.
func (c Count[U]) ToUlongByteCount() uint32 {
	return To[Byte](c).ToUlong()
}

// ToWCharCount returns the size of c in wide characters.
func (c Count[U]) ToWCharCount() uint {
	return To[WChar](c).ToSize()
}

// ToIntWCharCount returns the size of c in wide characters as a truncated int32.
func (c Count[U]) ToIntWCharCount() int32 {
	return To[WChar](c).ToInt()
}

// ToUlongWCharCount returns the size of c in wide characters as a truncated uint32.
func (c Count[U]) ToUlongWCharCount() uint32 {
	return To[WChar](c).ToUlong()
}

// String prints the magnitude without a unit suffix.
func (c Count[U]) String() string {
	return strconv.FormatUint(c.n, 10)
}

// Format implements fmt.Formatter. All verbs apply to the magnitude; %v and
// %s print it in decimal.
func (c Count[U]) Format(f fmt.State, verb rune) {
	switch verb {
	case 'v', 's':
		verb = 'd'
	}
	fmt.Fprintf(f, fmt.FormatString(f, verb), c.n)
}
