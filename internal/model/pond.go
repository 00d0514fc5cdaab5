package model

import "time"

// Pond describes a fishing pond at the venue.  Capacity is the
// number of seats that may be booked for one date and time slot;
// overlapping bookings for the same (pond, date, slot) contend for
// this capacity.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – human readable pond name.
//  Capacity  – seats available per date and time slot.
//  IsActive  – whether the pond accepts new bookings.
//  CreatedAt – creation timestamp.
type Pond struct {
    ID        uint64    // ponds.id
    Name      string    // ponds.name
    Capacity  uint32    // ponds.capacity
    IsActive  bool      // ponds.is_active
    CreatedAt time.Time // ponds.created_at
}

// TimeSlot is a bookable window of the day (e.g. 07:00–12:00).
// Slots are administered externally; bookings reference them by ID.
//
// Fields:
//  ID        – primary key identifier.
//  Label     – display label such as "Morning".
//  StartTime – slot start, "HH:MM" 24h clock.
//  EndTime   – slot end, "HH:MM" 24h clock.
type TimeSlot struct {
    ID        uint64 // time_slots.id
    Label     string // time_slots.label
    StartTime string // time_slots.start_time
    EndTime   string // time_slots.end_time
}
