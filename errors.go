package offsets

import (
	"errors"
	"fmt"
)

var (
	// ErrConstruction marks invalid offset parameters.
	ErrConstruction = errors.New("invalid offset")

	// ErrNotApplicable marks an operand the offset cannot combine with. Callers
	// may try the reflected operation before reporting a type error.
	ErrNotApplicable = errors.New("offset not applicable to operand")

	// ErrNotImplemented marks a variant without a vectorized kernel. Callers
	// must choose a scalar fallback explicitly.
	ErrNotImplemented = errors.New("vectorized apply not implemented")

	// ErrInvalidFrequency marks a frequency string that cannot be resolved.
	ErrInvalidFrequency = errors.New("invalid frequency")

	// ErrOverflow marks a result outside the nanosecond timestamp range.
	ErrOverflow = errors.New("timestamp overflow")
)

// ConstructionError describes rejected offset parameters.
type ConstructionError struct {
	Kind   Kind
	Reason string
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("%v: %v", e.Kind, e.Reason)
}

func (e *ConstructionError) Unwrap() error {
	return ErrConstruction
}

func constructionErr(kind Kind, format string, args ...interface{}) error {
	return &ConstructionError{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// InvalidFrequencyError always carries the complete input string.
type InvalidFrequencyError struct {
	Freq string
	Err  error
}

func (e *InvalidFrequencyError) Error() string {
	return fmt.Sprintf("Invalid frequency: %v", e.Freq)
}

func (e *InvalidFrequencyError) Unwrap() error {
	return ErrInvalidFrequency
}

// Cause returns the underlying parse failure, if any.
func (e *InvalidFrequencyError) Cause() error {
	return e.Err
}

// OverflowError names the two operands of an overflowing addition.
type OverflowError struct {
	Offset  string
	Operand string
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("the add operation between %v and %v will overflow", e.Offset, e.Operand)
}

func (e *OverflowError) Unwrap() error {
	return ErrOverflow
}

func notImplemented(o *Offset, format string, args ...interface{}) error {
	return fmt.Errorf("%v: %v: %w", o, fmt.Sprintf(format, args...), ErrNotImplemented)
}
