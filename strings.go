package countof

import (
	"unicode/utf16"
	"unsafe"
)

// Character is a narrow or wide character unit.
type Character interface {
	Char | WChar
}

// StrLen returns the number of characters in s before the first NUL. If s
// has no terminator the whole slice is counted.
func StrLen[T Character](s []T) Count[T] {
	for i, c := range s {
		if c == 0 {
			return Count[T]{n: uint64(i)}
		}
	}
	return LenOf(s)
}

// StrCpy copies the NUL-terminated string in src into dst, terminator
// included. n is the capacity of dst in characters.
//
// It behaves like strcpy_s: on failure it returns an error and, when dst is
// usable, leaves dst holding an empty string.
func StrCpy[T Character](src, dst []T, n Count[T]) error {
	if dst == nil || n.n == 0 {
		return ErrInvalidArgument
	}
	if n.n > uint64(len(dst)) {
		return capacityError(n, LenOf(dst))
	}
	if src == nil {
		dst[0] = 0
		return ErrInvalidArgument
	}

	length := StrLen(src)
	if length.n >= n.n {
		dst[0] = 0
		return capacityError(length.Add(Count[T]{n: 1}), n)
	}

	copy(dst, src[:length.n])
	dst[length.n] = 0
	return nil
}

// CString returns s as a NUL-terminated narrow string.
func CString(s string) []Char {
	out := make([]Char, len(s)+1)
	copy(out, unsafe.Slice((*Char)(unsafe.Pointer(unsafe.StringData(s))), len(s))) //nolint:gosec // Char has the layout of byte
	return out
}

// GoString returns the narrow string in s up to its terminator.
func GoString(s []Char) string {
	n := StrLen(s)
	if n.n == 0 {
		return ""
	}
	return string(unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), n.n)) //nolint:gosec // Char has the layout of byte
}

// WString returns s encoded as a NUL-terminated UTF-16 wide string.
func WString(s string) []WChar {
	units := utf16.Encode([]rune(s))
	out := make([]WChar, len(units)+1)
	for i, u := range units {
		out[i] = WChar(u)
	}
	return out
}

// GoWString decodes the wide string in s up to its terminator.
func GoWString(s []WChar) string {
	n := StrLen(s)
	units := make([]uint16, n.n)
	for i := range units {
		units[i] = uint16(s[i])
	}
	return string(utf16.Decode(units))
}
