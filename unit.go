package countof

import (
	"reflect"
	"unsafe"
)

// Unit is implemented by marker types that declare their own size in bytes.
//
// Types that do not implement Unit can still be used as units; their size is
// the Go size of the type.
type Unit interface {
	UnitSize() uint64
}

// Named is implemented by units that want a display name other than their
// Go type name.
type Named interface {
	UnitName() string
}

// Byte counts raw bytes.
type Byte = byte

// Char is a narrow character.
type Char byte

// WChar is a wide character (a UTF-16 code unit).
type WChar uint16

// Page is an 8 KiB page.
type Page struct{}

// Kb is a kibibyte.
type Kb struct{}

// Mb is a mebibyte.
type Mb struct{}

// Gb is a gibibyte.
type Gb struct{}

// Tb is a tebibyte.
type Tb struct{}

// Sizes of the built-in units in bytes.
const (
	PageSize uint64 = 8 * 1024
	KbSize   uint64 = 1024
	MbSize          = 1024 * KbSize
	GbSize          = 1024 * MbSize
	TbSize          = 1024 * GbSize
)

func (Page) UnitSize() uint64 { return PageSize }
func (Kb) UnitSize() uint64   { return KbSize }
func (Mb) UnitSize() uint64   { return MbSize }
func (Gb) UnitSize() uint64   { return GbSize }
func (Tb) UnitSize() uint64   { return TbSize }

func (Page) UnitName() string  { return "page" }
func (Kb) UnitName() string    { return "KiB" }
func (Mb) UnitName() string    { return "MiB" }
func (Gb) UnitName() string    { return "GiB" }
func (Tb) UnitName() string    { return "TiB" }
func (Char) UnitName() string  { return "char" }
func (WChar) UnitName() string { return "wchar" }

// SizeOf returns the size of one U in bytes. It is never zero: a zero-width
// type that does not implement Unit occupies one byte.
func SizeOf[U any]() uint64 {
	var u U
	if s, ok := any(u).(Unit); ok {
		if n := s.UnitSize(); n > 0 {
			return n
		}
		return 1
	}
	if n := uint64(unsafe.Sizeof(u)); n > 0 {
		return n
	}
	return 1
}

// UnitName returns the display name of U.
func UnitName[U any]() string {
	var u U
	if n, ok := any(u).(Named); ok {
		return n.UnitName()
	}
	t := reflect.TypeFor[U]()
	switch {
	case t == reflect.TypeFor[byte]():
		return "byte"
	case t.Name() != "":
		return t.Name()
	default:
		return t.String()
	}
}
