// Package countof provides counts that carry their unit in the type.
//
// A Count[U] is a plain uint64 at run time. The unit U exists only for the
// type checker, so a count of wide characters cannot be passed where a count
// of bytes is expected, added to a page count, or compared with a raw int.
//
// # Quick Start
//
//	wlen := countof.StrLen(countof.WString("ABCD"))  // WCharCount(4)
//	nlen := countof.StrLen(countof.CString("abcd"))  // CharCount(4)
//
//	// wlen.Eq(nlen)                                 // does not compile
//
//	countof.To[countof.Byte](wlen)                   // 8
//	countof.To[countof.WChar](nlen)                  // 2 (truncated)
//	countof.To[countof.Kb](countof.Pages(128))       // 1024
//
// # Units
//
// Any type can be a unit. Its size in bytes is taken from a UnitSize method
// when the type implements Unit, and from the Go size of the type otherwise.
// Zero-width types without UnitSize count as one byte, so conversions never
// divide by zero.
//
//	Byte   1          Char   1          WChar  2
//	Page   8 KiB      Kb     1 KiB      Mb     1 MiB
//	Gb     1 GiB      Tb     1 TiB
//
// # Arithmetic
//
// Add, Sub, AddAssign, SubAssign, Inc, PostInc, Dec and PostDec only accept
// counts of the same unit. They are unchecked: Sub wraps below zero and the
// ToInt/ToUlong accessors truncate, exactly like the integers underneath.
//
// # Views
//
// View[T] is a borrowed run of T plus the number of elements still
// reachable from its position. Advancing a view shrinks its count by the same
// amount. Indexes are Count[T] values. Pointer and Slice are the explicit way
// out to APIs that take raw pointers or slices.
//
//	v := countof.ViewOfSlice(buf)
//	v.AdvanceBy(countof.Of[byte](2))
//	v.Set(countof.Zero[byte](), 'C')
//
// Fixed[T, A] stores an [N]T by value and degrades to a View.
//
// # Strings
//
// StrLen and StrCpy work on NUL-terminated narrow ([]Char) and wide
// ([]WChar) strings and take their lengths and capacities as counts of the
// matching character type.
package countof
