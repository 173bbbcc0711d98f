// Package errors defines the reservation domain sentinels. They are wrapped
// into transport-level errors by the service layer; callers can still match
// them with errors.Is.
package errors

import "errors"

var (
	ErrNotFound = errors.New("reservation not found")

	ErrUnknownRoom = errors.New("unknown room")

	ErrTimeConflict = errors.New("reservation time conflicts with an existing reservation")
)
