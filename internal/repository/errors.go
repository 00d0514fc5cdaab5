// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios and map
// them onto the response envelope's error kinds: validation errors are
// the caller's fault and change no state, conflict errors depend on
// current state and may succeed after the caller inspects it, temporal
// errors reject scans on the wrong calendar day, and not-found errors
// cover unknown QR codes, bookings, seats and rods.
package repository

import "errors"

// ErrCapacityExceeded is returned when a booking's requested seats
// would exceed the remaining capacity of the pond slot or event.
// Handlers should translate this into an HTTP 409 response.
var ErrCapacityExceeded = errors.New("capacity exceeded")

// ErrSeatNotFound is returned when a seat ID does not exist or does
// not belong to the referenced booking.
var ErrSeatNotFound = errors.New("seat not found")

// ErrSeatAlreadyCheckedIn is returned when an operation requires a
// seat that has not yet been occupied, such as sharing a seat whose
// occupant already checked in.
var ErrSeatAlreadyCheckedIn = errors.New("seat already checked in")

// ErrSeatUnassigned is returned when a seat is scanned for check-in
// before it has been bound to an attendee.
var ErrSeatUnassigned = errors.New("seat has no assigned user")

// ErrUnknownRecipient is returned when a seat share names an email
// with no matching account in the user directory.
var ErrUnknownRecipient = errors.New("no account matches email")

// ErrWrongDay is returned when a seat is scanned before the booking's
// date (date-only comparison in UTC).
var ErrWrongDay = errors.New("booking is for a later day")

// ErrEventPassed is returned when a seat is scanned after the
// booking's date has passed.
var ErrEventPassed = errors.New("booking day has passed")

// ErrNotCheckedIn is returned when a rod is requested, or a catch is
// weighed, for a seat that is not currently checked in.
var ErrNotCheckedIn = errors.New("seat not checked in")

// ErrRodAlreadyIssued is returned when a rod print is requested
// without the replacement flag while an active rod already exists.
// This guards against accidental double-printing.
var ErrRodAlreadyIssued = errors.New("active rod already issued")

// ErrRodNotFound is returned when a rod QR resolves to no rod row.
var ErrRodNotFound = errors.New("rod not found")

// ErrRodNotActive is returned when a catch is weighed against a
// voided rod credential.
var ErrRodNotActive = errors.New("rod is voided")

// ErrNoGameConfigured is returned when a catch is recorded in an
// event context but the event has no games to attribute it to.
var ErrNoGameConfigured = errors.New("event has no games configured")

// ErrBookingNotFound is returned when a booking ID or reference does
// not exist.
var ErrBookingNotFound = errors.New("booking not found")
