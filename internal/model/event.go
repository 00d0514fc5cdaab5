package model

import "time"

// Event is a competition event hosted at a pond.  Unlike plain pond
// sessions, events cap entries with MaxParticipants across the whole
// event rather than per time slot, and catches recorded during an
// event must be attributed to one of the event's games.
//
// Fields:
//  ID              – primary key identifier.
//  PondID          – pond hosting the event.
//  Name            – event name.
//  EventDate       – calendar day of the event (UTC).
//  MaxParticipants – entry cap across all bookings.
//  IsActive        – whether the event accepts new entries.
//  CreatedAt       – creation timestamp.
type Event struct {
    ID              uint64    // events.id
    PondID          uint64    // events.pond_id
    Name            string    // events.name
    EventDate       time.Time // events.event_date (date only)
    MaxParticipants uint32    // events.max_participants
    IsActive        bool      // events.is_active
    CreatedAt       time.Time // events.created_at
}

// EventGame is one scored discipline within an event, such as
// "Heaviest Catch" or "Most Fish".  Catches recorded in an event
// context reference exactly one game.
//
// Fields:
//  ID      – primary key identifier.
//  EventID – owning event.
//  Name    – game name.
type EventGame struct {
    ID      uint64 // event_games.id
    EventID uint64 // event_games.event_id
    Name    string // event_games.name
}
