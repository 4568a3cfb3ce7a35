package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrResourceNotFound    = errors.New("resource not found")
	ErrInvalidRange        = errors.New("invalid range")
	ErrConflict            = errors.New("range conflicts with an existing reservation")
	ErrHoldExpired         = errors.New("hold expired")
	ErrHoldNotFound        = errors.New("hold not found")
	ErrHoldAlreadyConsumed = errors.New("hold already consumed")
	ErrStoreUnavailable    = errors.New("store unavailable")

	ErrInvalidInput    = errors.New("invalid input data")
	ErrBookingNotFound = errors.New("booking not found")
	ErrCannotCancel    = errors.New("booking cannot be cancelled")
	ErrCannotConfirm   = errors.New("booking cannot be confirmed")
)

// ConflictError names the reserved range that blocked a hold request.
// errors.Is(err, ErrConflict) is true for it.
type ConflictError struct {
	ResourceID string
	Start      time.Time
	End        time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: resource %s already reserved %s - %s",
		ErrConflict, e.ResourceID, e.Start.UTC().Format(time.RFC3339), e.End.UTC().Format(time.RFC3339))
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// NewConflictError builds a ConflictError for the blocking range
func NewConflictError(resourceID string, blocking TimeRange) *ConflictError {
	return &ConflictError{ResourceID: resourceID, Start: blocking.Start, End: blocking.End}
}

// IsBusinessError reports whether err is an expected outcome callers branch on,
// as opposed to an infrastructure failure
func IsBusinessError(err error) bool {
	for _, target := range []error{
		ErrResourceNotFound,
		ErrInvalidRange,
		ErrConflict,
		ErrHoldExpired,
		ErrHoldNotFound,
		ErrHoldAlreadyConsumed,
		ErrInvalidInput,
		ErrBookingNotFound,
		ErrCannotCancel,
		ErrCannotConfirm,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// AsStoreError wraps any non-business error into ErrStoreUnavailable
func AsStoreError(op string, err error) error {
	if err == nil || IsBusinessError(err) || errors.Is(err, ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}
