package repository

import (
    "context"
    "database/sql"

    "github.com/measaura/netlify-pond-booking-sub001/internal/model"
)

// PondRepo provides read access to ponds and time slots plus the
// transactional capacity accounting used while creating pond
// bookings.  The contention unit for a pond booking is the
// (pond, date, time slot) triple.
type PondRepo struct {
    db *sql.DB
}

// NewPondRepo returns a new PondRepo bound to the given database.
func NewPondRepo(db *sql.DB) *PondRepo { return &PondRepo{db: db} }

// GetByID returns a pond or sql.ErrNoRows.
func (r *PondRepo) GetByID(ctx context.Context, id uint64) (*model.Pond, error) {
    const q = `SELECT id, name, capacity, is_active, created_at FROM ponds WHERE id = ?`
    var p model.Pond
    if err := r.db.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.Name, &p.Capacity, &p.IsActive, &p.CreatedAt); err != nil {
        return nil, err
    }
    return &p, nil
}

// GetTimeSlot returns a time slot or sql.ErrNoRows.
func (r *PondRepo) GetTimeSlot(ctx context.Context, id uint64) (*model.TimeSlot, error) {
    const q = `SELECT id, label, start_time, end_time FROM time_slots WHERE id = ?`
    var s model.TimeSlot
    if err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.Label, &s.StartTime, &s.EndTime); err != nil {
        return nil, err
    }
    return &s, nil
}

// LockForBookingTx locks the pond row FOR UPDATE and returns its
// capacity.  Concurrent booking transactions for the same pond
// serialize on this lock, which makes the subsequent seat count and
// insert one atomic unit.  Returns sql.ErrNoRows for unknown or
// inactive ponds.
func (r *PondRepo) LockForBookingTx(ctx context.Context, tx *sql.Tx, pondID uint64) (uint32, error) {
    const q = `SELECT capacity FROM ponds WHERE id = ? AND is_active = 1 FOR UPDATE`
    var capacity uint32
    if err := tx.QueryRowContext(ctx, q, pondID).Scan(&capacity); err != nil {
        return 0, err
    }
    return capacity, nil
}

// CountBookedSeatsTx counts seats already allocated for the pond on
// the given date and time slot, across all active bookings.  Must be
// called after LockForBookingTx within the same transaction so the
// count cannot go stale before the insert.
func (r *PondRepo) CountBookedSeatsTx(ctx context.Context, tx *sql.Tx, pondID, timeSlotID uint64, date string) (uint32, error) {
    const q = `SELECT COALESCE(SUM(b.seat_count), 0)
               FROM bookings b
               WHERE b.type = 'POND' AND b.pond_id = ? AND b.time_slot_id = ?
                 AND b.booking_date = ? AND b.status = 'ACTIVE'`
    var n uint32
    if err := tx.QueryRowContext(ctx, q, pondID, timeSlotID, date).Scan(&n); err != nil {
        return 0, err
    }
    return n, nil
}
