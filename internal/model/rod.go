package model

import "time"

// Rod statuses.  Replacing a rod never mutates the old row beyond
// flipping it to VOIDED; the replacement is a fresh row so the full
// issuance history survives.
const (
    RodActive = "ACTIVE"
    RodVoided = "VOIDED"
)

// FishingRod is a printed rod credential bound to a checked-in seat.
// Exactly one rod per seat is ACTIVE at any instant; versions are
// monotonic per seat and each replacement records the QR it
// superseded, forming an explicit history chain.
//
// Fields:
//  ID             – primary key identifier.
//  SeatID         – booking seat the rod is bound to.
//  UserID         – angler the rod attributes catches to.
//  QRCode         – rod QR string, unique system-wide.
//  Version        – 1 for the first rod, incremented on replacement.
//  Status         – ACTIVE or VOIDED.
//  PreviousQRCode – QR of the rod this one replaced (nullable).
//  VoidReason     – why the rod was voided (nullable).
//  VoidedAt       – when the rod was voided (nullable).
//  IssuedBy       – staff user who printed the rod.
//  StationID      – printing station the rod came out of.
//  CreatedAt      – creation timestamp.
type FishingRod struct {
    ID             uint64     // fishing_rods.id
    SeatID         uint64     // fishing_rods.seat_id
    UserID         uint64     // fishing_rods.user_id
    QRCode         string     // fishing_rods.qr_code
    Version        uint32     // fishing_rods.version
    Status         string     // fishing_rods.status
    PreviousQRCode *string    // fishing_rods.previous_qr_code (nullable)
    VoidReason     *string    // fishing_rods.void_reason (nullable)
    VoidedAt       *time.Time // fishing_rods.voided_at (nullable)
    IssuedBy       string     // fishing_rods.issued_by
    StationID      string     // fishing_rods.station_id
    CreatedAt      time.Time  // fishing_rods.created_at
}
