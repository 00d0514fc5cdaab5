package model

import "time"

// Booking statuses.  A cancelled or no-show booking keeps its rows
// for audit but its seats no longer count against capacity.
const (
    BookingActive    = "ACTIVE"
    BookingCancelled = "CANCELLED"
    BookingNoShow    = "NO_SHOW"
)

// Booking types distinguish plain pond sessions from event entries.
const (
    BookingTypePond  = "POND"
    BookingTypeEvent = "EVENT"
)

// Booking records a reservation of one or more seats for a pond
// session or a competition event.  Seat count is fixed at creation;
// individual seats are tracked as BookingSeat rows.
//
// Fields:
//  ID          – primary key identifier.
//  Reference   – unique external booking reference.
//  Type        – POND or EVENT.
//  UserID      – user who made the booking.
//  PondID      – pond being booked (pond bookings, and host pond for events).
//  EventID     – event being entered (nullable for pond bookings).
//  BookingDate – calendar day the booking is for (UTC).
//  TimeSlotID  – time slot for pond bookings (nullable for events).
//  SeatCount   – number of seats allocated at creation.
//  PriceCents  – total price in cents.
//  Status      – ACTIVE, CANCELLED or NO_SHOW.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Booking struct {
    ID          uint64    // bookings.id
    Reference   string    // bookings.reference
    Type        string    // bookings.type
    UserID      uint64    // bookings.user_id
    PondID      uint64    // bookings.pond_id
    EventID     *uint64   // bookings.event_id (nullable)
    BookingDate time.Time // bookings.booking_date (date only)
    TimeSlotID  *uint64   // bookings.time_slot_id (nullable)
    SeatCount   uint32    // bookings.seat_count
    PriceCents  uint32    // bookings.price_cents
    Status      string    // bookings.status
    CreatedAt   time.Time // bookings.created_at
    UpdatedAt   time.Time // bookings.updated_at
}

// Seat statuses.  A seat moves UNASSIGNED → SHARED → CHECKED_IN.
// CHECKED_OUT is set by an administrative reset and allows a second
// legitimate check-in on the same day after the seat is re-shared.
const (
    SeatUnassigned = "UNASSIGNED"
    SeatShared     = "SHARED"
    SeatCheckedIn  = "CHECKED_IN"
    SeatCheckedOut = "CHECKED_OUT"
)

// BookingSeat is one physical seat within a booking.  The QR code is
// generated once at booking time and never regenerated.  Assignment
// is nullable: a seat may be booked but not yet bound to a specific
// attendee.
//
// Fields:
//  ID           – primary key identifier.
//  BookingID    – owning booking.
//  SeatNo       – seat number, unique within the booking.
//  QRCode       – seat QR string, unique system-wide.
//  AssignedTo   – user occupying the seat (nullable until shared).
//  Status       – UNASSIGNED, SHARED, CHECKED_IN or CHECKED_OUT.
//  CheckedInAt  – when the seat was checked in (nullable).
//  SharedBy     – user who shared the seat (nullable).
//  SharedAt     – when the seat was shared (nullable).
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type BookingSeat struct {
    ID          uint64     // booking_seats.id
    BookingID   uint64     // booking_seats.booking_id
    SeatNo      uint32     // booking_seats.seat_no
    QRCode      string     // booking_seats.qr_code
    AssignedTo  *uint64    // booking_seats.assigned_to (nullable)
    Status      string     // booking_seats.status
    CheckedInAt *time.Time // booking_seats.checked_in_at (nullable)
    SharedBy    *uint64    // booking_seats.shared_by (nullable)
    SharedAt    *time.Time // booking_seats.shared_at (nullable)
    CreatedAt   time.Time  // booking_seats.created_at
    UpdatedAt   time.Time  // booking_seats.updated_at
}
