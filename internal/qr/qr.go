// Package qr generates and routes the QR code strings used on seat
// tickets and rod credentials.  Codes are opaque to consumers apart
// from a recognizable prefix used to route scans: anything matching
// the rod discriminator resolves as a rod credential, everything
// else is treated as a seat QR.
package qr

import (
    "crypto/rand"
    "encoding/hex"
    "fmt"
    "strings"
)

// Kind classifies a scanned QR string.
type Kind int

const (
    KindSeat Kind = iota // seat ticket QR
    KindRod              // rod credential QR
)

// SeatPrefix and DefaultRodPrefix are the leading markers embedded in
// generated codes.  The rod prefix is configurable (ROD_QR_PREFIX)
// because it is a routing discriminator, not a format requirement.
const (
    SeatPrefix       = "PB-"
    DefaultRodPrefix = "ROD-"
)

// suffixBytes controls the random tail length: 6 bytes encode to 12
// hex characters, enough to make codes unguessable without bloating
// printed labels.
const suffixBytes = 6

// randomSuffix returns a hex string of 2*n characters backed by
// crypto/rand.
func randomSuffix(n int) (string, error) {
    b := make([]byte, n)
    if _, err := rand.Read(b); err != nil {
        return "", err
    }
    return hex.EncodeToString(b), nil
}

// NewSeatQR builds a seat QR of the form PB-<bookingID>-S<seatNo>-<suffix>.
// Codes are generated once at booking creation and never regenerated.
func NewSeatQR(bookingID uint64, seatNo uint32) (string, error) {
    suffix, err := randomSuffix(suffixBytes)
    if err != nil {
        return "", err
    }
    return fmt.Sprintf("%s%d-S%d-%s", SeatPrefix, bookingID, seatNo, suffix), nil
}

// NewRodQR builds a rod QR of the form <prefix><bookingID>-S<seatNo>-<suffix>.
// Each replacement gets a fresh code; old codes stay resolvable so
// the issuance history can be walked.
func NewRodQR(prefix string, bookingID uint64, seatNo uint32) (string, error) {
    if prefix == "" {
        prefix = DefaultRodPrefix
    }
    suffix, err := randomSuffix(suffixBytes)
    if err != nil {
        return "", err
    }
    return fmt.Sprintf("%s%d-S%d-%s", prefix, bookingID, seatNo, suffix), nil
}

// Route decides whether a scanned string denotes a rod credential or
// a seat ticket.  The comparison is case-sensitive: printed codes are
// generated by this package and never change case in transit.
func Route(code, rodPrefix string) Kind {
    if rodPrefix == "" {
        rodPrefix = DefaultRodPrefix
    }
    if strings.HasPrefix(code, rodPrefix) {
        return KindRod
    }
    return KindSeat
}
