package aero

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrEmptyData indicates the table source produced zero rows.
	ErrEmptyData = errors.New("aero: table source produced no rows")

	// ErrDataUnavailable indicates the table source could not be read.
	ErrDataUnavailable = errors.New("aero: table source unavailable")

	// ErrUnsorted indicates samples are not in ascending angle order.
	ErrUnsorted = errors.New("aero: samples not sorted by angle")
)

// DataUnavailableError names the source that could not be read.
type DataUnavailableError struct {
	Path string
	Err  error
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("aero: could not open %q: %v", e.Path, e.Err)
}

func (e *DataUnavailableError) Unwrap() error {
	return e.Err
}

func (e *DataUnavailableError) Is(target error) bool {
	return target == ErrDataUnavailable
}

// OrderError reports the first sample that breaks ascending order, either
// by following a larger angle or by not being a finite number.
type OrderError struct {
	Index int
	Prev  float64
	Next  float64
}

func (e *OrderError) Error() string {
	if math.IsNaN(e.Next) || math.IsInf(e.Next, 0) {
		return fmt.Sprintf("aero: sample %d has non-finite alpha=%g", e.Index, e.Next)
	}
	return fmt.Sprintf("aero: sample %d (alpha=%g) follows alpha=%g", e.Index, e.Next, e.Prev)
}

func (e *OrderError) Unwrap() error {
	return ErrUnsorted
}
