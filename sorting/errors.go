package sorting

import (
	"errors"
	"fmt"
)

// ErrDomain is matched by every *DomainError.
var ErrDomain = errors.New("sorting: value outside routine domain")

// DomainError reports the first input value a domain-restricted routine
// refused.
type DomainError struct {
	// Routine is the sort that rejected the input ("counting", "radix", "bucket").
	Routine string
	// Index is the position of the offending value in the input.
	Index int
	// Value is the offending value.
	Value float64
	// Reason describes the violated precondition.
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("sorting: %s sort: value %v at index %d %s", e.Routine, e.Value, e.Index, e.Reason)
}

// Unwrap lets errors.Is(err, ErrDomain) succeed.
func (e *DomainError) Unwrap() error {
	return ErrDomain
}

func domainErr(routine string, i int, v float64, reason string) error {
	return &DomainError{Routine: routine, Index: i, Value: v, Reason: reason}
}
