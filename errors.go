package countof

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when a required buffer is missing or
	// has no capacity at all.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInsufficientSpace is returned when a destination cannot hold the
	// result.
	ErrInsufficientSpace = errors.New("insufficient space")
)

// CapacityError reports a destination that is too small.
//
// It wraps ErrInsufficientSpace, so errors.Is(err, ErrInsufficientSpace)
// holds for every CapacityError.
type CapacityError struct {
	// Need is the number of units required, terminator included.
	Need uint64
	// Have is the number of units available.
	Have uint64
	// Unit names what Need and Have count.
	Unit string
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("insufficient space: need %d %s, have %d", e.Need, e.Unit, e.Have)
}

func (e *CapacityError) Unwrap() error { return ErrInsufficientSpace }

func capacityError[T any](need, have Count[T]) error {
	return &CapacityError{Need: need.n, Have: have.n, Unit: UnitName[T]()}
}
