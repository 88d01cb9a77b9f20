package countof

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Humanize renders the size of c in IEC units, e.g. "1.0 MiB".
func Humanize[U any](c Count[U]) string {
	return humanize.IBytes(To[Byte](c).n)
}

// ParseBytes parses a human-readable size such as "64 KiB", "1.5GB" or
// "4096" into a byte count. SI and IEC suffixes are both accepted.
func ParseBytes(s string) (ByteCount, error) {
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return ByteCount{}, fmt.Errorf("parse size %q: %w", s, err)
	}
	return ByteCount{n: n}, nil
}

// ParseCount parses a human-readable size and converts it to U, truncating
// any remainder.
func ParseCount[U any](s string) (Count[U], error) {
	b, err := ParseBytes(s)
	if err != nil {
		return Count[U]{}, err
	}
	return To[U](b), nil
}
