package model

import "time"

// CatchRecord is one weighed catch attributed to a user through the
// rod that was scanned at the weighing station.  Weight is stored in
// grams (three decimals of a kilogram) and length in millimetres
// (one decimal of a centimetre), following the integer minor-unit
// convention used for prices.  Rows are immutable once written;
// corrections are recorded as new rows so ranking history is
// preserved.
//
// Fields:
//  ID          – primary key identifier.
//  RodID       – rod the catch was weighed against.
//  UserID      – angler credited with the catch.
//  EventID     – event context (nullable for plain pond sessions).
//  GameID      – game within the event (nullable outside events).
//  WeightGrams – normalized weight in grams.
//  LengthMM    – normalized length in millimetres (nullable).
//  Species     – reported species (nullable).
//  Verified    – whether a marshal confirmed the weighing.
//  WeighedBy   – identity of the weighing operator.
//  ScaleID     – reporting scale, when known (nullable).
//  Notes       – free-form operator notes (nullable).
//  CaughtAt    – timestamp of the weighing.
type CatchRecord struct {
    ID          uint64    // catch_records.id
    RodID       uint64    // catch_records.rod_id
    UserID      uint64    // catch_records.user_id
    EventID     *uint64   // catch_records.event_id (nullable)
    GameID      *uint64   // catch_records.game_id (nullable)
    WeightGrams uint32    // catch_records.weight_grams
    LengthMM    *uint32   // catch_records.length_mm (nullable)
    Species     *string   // catch_records.species (nullable)
    Verified    bool      // catch_records.verified
    WeighedBy   string    // catch_records.weighed_by
    ScaleID     *string   // catch_records.scale_id (nullable)
    Notes       *string   // catch_records.notes (nullable)
    CaughtAt    time.Time // catch_records.caught_at
}
