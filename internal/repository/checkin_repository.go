package repository

import (
    "context"
    "database/sql"

    "github.com/measaura/netlify-pond-booking-sub001/internal/model"
)

// CheckInRepo appends audit rows to check_in_records.  The table is
// append-only: rows are never updated or deleted, so the history of
// every seat transition survives resets and corrections.
type CheckInRepo struct {
    db *sql.DB
}

// NewCheckInRepo returns a new CheckInRepo bound to the given database.
func NewCheckInRepo(db *sql.DB) *CheckInRepo { return &CheckInRepo{db: db} }

// AppendTx writes an audit record inside the same transaction as the
// seat status flip so the two occur together or not at all.  The
// returned record carries the stored timestamp.
func (r *CheckInRepo) AppendTx(ctx context.Context, tx *sql.Tx, seatID, userID uint64, scannedBy, stationID string) (*model.CheckInRecord, error) {
    const q = `INSERT INTO check_in_records (seat_id, user_id, scanned_by, station_id, checked_in_at)
               VALUES (?, ?, ?, ?, UTC_TIMESTAMP())`
    res, err := tx.ExecContext(ctx, q, seatID, userID, scannedBy, stationID)
    if err != nil {
        return nil, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return nil, err
    }
    rec := model.CheckInRecord{
        ID:        uint64(id),
        SeatID:    seatID,
        UserID:    userID,
        ScannedBy: scannedBy,
        StationID: stationID,
    }
    const sel = `SELECT checked_in_at FROM check_in_records WHERE id = ?`
    if err := tx.QueryRowContext(ctx, sel, rec.ID).Scan(&rec.CheckedInAt); err != nil {
        return nil, err
    }
    return &rec, nil
}
