package model

import "time"

// CheckInRecord is an append-only audit entry written each time a
// seat is successfully checked in.  Records are never updated or
// deleted; a seat that is reset and checked in again accumulates a
// second record.
//
// Fields:
//  ID          – primary key identifier.
//  SeatID      – booking seat that was checked in.
//  UserID      – angler occupying the seat at check-in time.
//  ScannedBy   – identity of the operator who scanned the QR.
//  StationID   – station the scan originated from.
//  CheckedInAt – timestamp of the transition.
type CheckInRecord struct {
    ID          uint64    // check_in_records.id
    SeatID      uint64    // check_in_records.seat_id
    UserID      uint64    // check_in_records.user_id
    ScannedBy   string    // check_in_records.scanned_by
    StationID   string    // check_in_records.station_id
    CheckedInAt time.Time // check_in_records.checked_in_at
}
