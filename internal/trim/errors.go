package trim

import (
	"errors"
	"fmt"
)

var (
	// ErrPrecondition indicates the solver was asked to run with unusable inputs.
	ErrPrecondition = errors.New("trim: precondition failed")
)

// PreconditionError names the input that failed the pre-loop checks.
type PreconditionError struct {
	Field  string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("trim: precondition failed: %s %s", e.Field, e.Reason)
}

func (e *PreconditionError) Unwrap() error {
	return ErrPrecondition
}
