package airline

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the backend reports 404 for a resource
var ErrNotFound = errors.New("resource not found")

// FetchError means the backend was unreachable or answered with an
// unexpected status. Callers must treat the data they were fetching as
// unknown: in particular a failed booked-seat fetch blocks booking rather
// than treating every seat as free.
type FetchError struct {
	Op     string // logical operation, e.g. "booked seats"
	Status int    // HTTP status, 0 when the request never completed
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: backend returned status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// SeatConflictError is the backend's 409 rejection: one or more requested
// seats were booked by someone else after the seat map was last fetched.
type SeatConflictError struct {
	Detail string
}

func (e *SeatConflictError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return "one or more seats are no longer available"
}

// ValidationError is the backend's 400 rejection; Detail is surfaced to the
// user verbatim.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string { return e.Detail }

// IsSeatConflict reports whether err is a seat-conflict rejection
func IsSeatConflict(err error) bool {
	var conflict *SeatConflictError
	return errors.As(err, &conflict)
}

// IsValidation reports whether err is a backend validation rejection
func IsValidation(err error) bool {
	var validation *ValidationError
	return errors.As(err, &validation)
}
