package utils

import (
    "strings"

    "github.com/google/uuid"
)

// NewBookingReference returns a short human-quotable booking
// reference like "BK-9F3A2C1D".  Uniqueness is enforced by the
// bookings.reference unique key; the UUID source makes collisions on
// insert vanishingly rare rather than impossible.
func NewBookingReference() string {
    id := uuid.New()
    return "BK-" + strings.ToUpper(id.String()[:8])
}
