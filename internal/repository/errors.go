// Package repository defines error types that are reused across multiple
// repositories and by the service layer above them. These sentinel
// values let handlers map failure scenarios onto HTTP statuses without
// inspecting error strings: ownership violations become 403, illegal
// lifecycle transitions 409, seat conflicts 400, and absent rows 404.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// booking they do not own and they hold no administrative privilege.
// Handlers should translate this into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation cannot proceed because of
// conflicting state elsewhere, such as cancelling a cruise that is
// already terminal. Handlers should translate this into HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrInvalidState is returned when a booking status transition is not
// defined, e.g. paying for a Cancelled booking. No transition leads
// out of Cancelled, Expired or Completed.
var ErrInvalidState = errors.New("invalid state transition")

// ErrSeatTaken is returned when the conditional insert for a new
// booking finds another booking in a blocking status holding the same
// (cruise, seat) pair. Concurrent creations for one seat resolve to
// exactly one winner; the loser receives this error.
var ErrSeatTaken = errors.New("seat already taken")

// ErrSeatOutOfRange is returned when a requested seat number falls
// outside 1..capacity of the cruise's spaceship.
var ErrSeatOutOfRange = errors.New("seat number out of range")

// ErrBookingNotFound indicates that a booking row was not located.
var ErrBookingNotFound = errors.New("booking not found")

// ErrCruiseNotFound indicates that a cruise row was not located.
var ErrCruiseNotFound = errors.New("cruise not found")

// ErrStatusNotFound indicates that a status name has no row in its
// reference table. Reference data is seeded at install time, so this
// usually points at a misspelled name rather than missing data.
var ErrStatusNotFound = errors.New("status not found")
