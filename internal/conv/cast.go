package conv

import (
	"fmt"
	"math"
)

// Unsigned is any unsigned integer type.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Signed is any signed integer type.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// ToInt converts an unsigned value to int, failing if it does not fit.
func ToInt[T Unsigned](v T) (int, error) {
	if uint64(v) > uint64(math.MaxInt) {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to int (too large)", uint64(v))
	}
	return int(v), nil //nolint:gosec // checked above
}

// ToInt64 converts an unsigned value to int64, failing if it does not fit.
func ToInt64[T Unsigned](v T) (int64, error) {
	if uint64(v) > math.MaxInt64 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to int64 (too large)", uint64(v))
	}
	return int64(v), nil //nolint:gosec // checked above
}

// ToUint32 converts an unsigned value to uint32, failing if it does not fit.
func ToUint32[T Unsigned](v T) (uint32, error) {
	if uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uint32 (too large)", uint64(v))
	}
	return uint32(v), nil //nolint:gosec // checked above
}

// ToUint64 converts a signed value to uint64, failing if it is negative.
func ToUint64[T Signed](v T) (uint64, error) {
	if v < 0 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uint64 (negative)", int64(v))
	}
	return uint64(v), nil
}
