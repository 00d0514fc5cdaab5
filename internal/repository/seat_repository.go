package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/measaura/netlify-pond-booking-sub001/internal/model"
)

// SeatRepo provides data access to booking_seats: QR resolution,
// seat sharing and the compare-and-swap check-in transition.  Seat
// status only ever moves forward within a session; an administrative
// reset (performed outside this core) returns a seat to SHARED with
// a cleared check-in timestamp, after which the same CAS transition
// applies again.
type SeatRepo struct {
    db *sql.DB
}

// NewSeatRepo returns a new SeatRepo bound to the given database.
func NewSeatRepo(db *sql.DB) *SeatRepo { return &SeatRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// that span several repositories.
func (r *SeatRepo) DB() *sql.DB { return r.db }

// ScanContext bundles a seat with the booking facts a scan needs to
// validate: the booking's calendar day, lifecycle status and type,
// plus the assigned angler when the seat is shared.
type ScanContext struct {
    Seat          model.BookingSeat
    BookingRef    string
    BookingDate   time.Time // date only, UTC
    BookingStatus string
    BookingType   string
    EventID       *uint64
    AssignedName  *string
    AssignedEmail *string
}

// ResolveScanByQR joins a seat QR to its booking and assigned user in
// one read.  Returns ErrSeatNotFound for unknown codes.
func (r *SeatRepo) ResolveScanByQR(ctx context.Context, qrCode string) (*ScanContext, error) {
    const q = `SELECT s.id, s.booking_id, s.seat_no, s.qr_code, s.assigned_to, s.status,
                      s.checked_in_at, s.shared_by, s.shared_at, s.created_at, s.updated_at,
                      b.reference, b.booking_date, b.status, b.type, b.event_id,
                      u.name, u.email
               FROM booking_seats s
               JOIN bookings b ON b.id = s.booking_id
               LEFT JOIN users u ON u.id = s.assigned_to
               WHERE s.qr_code = ?`
    var sc ScanContext
    var checkedInAt, sharedAt sql.NullTime
    var name, email sql.NullString
    err := r.db.QueryRowContext(ctx, q, qrCode).Scan(
        &sc.Seat.ID, &sc.Seat.BookingID, &sc.Seat.SeatNo, &sc.Seat.QRCode, &sc.Seat.AssignedTo,
        &sc.Seat.Status, &checkedInAt, &sc.Seat.SharedBy, &sharedAt,
        &sc.Seat.CreatedAt, &sc.Seat.UpdatedAt,
        &sc.BookingRef, &sc.BookingDate, &sc.BookingStatus, &sc.BookingType, &sc.EventID,
        &name, &email,
    )
    if err == sql.ErrNoRows {
        return nil, ErrSeatNotFound
    }
    if err != nil {
        return nil, err
    }
    if checkedInAt.Valid {
        t := checkedInAt.Time
        sc.Seat.CheckedInAt = &t
    }
    if sharedAt.Valid {
        t := sharedAt.Time
        sc.Seat.SharedAt = &t
    }
    if name.Valid {
        n := name.String
        sc.AssignedName = &n
    }
    if email.Valid {
        e := email.String
        sc.AssignedEmail = &e
    }
    return &sc, nil
}

// LockForShareTx loads a seat's status FOR UPDATE, verifying it
// belongs to the given booking.  Returns ErrSeatNotFound when the
// seat does not exist under that booking.
func (r *SeatRepo) LockForShareTx(ctx context.Context, tx *sql.Tx, seatID, bookingID uint64) (string, error) {
    const q = `SELECT status FROM booking_seats WHERE id = ? AND booking_id = ? FOR UPDATE`
    var status string
    err := tx.QueryRowContext(ctx, q, seatID, bookingID).Scan(&status)
    if err == sql.ErrNoRows {
        return "", ErrSeatNotFound
    }
    return status, err
}

// LockIssuanceTx takes the seat's row lock as the serialization point
// for rod issuance.  An existing row always locks, unlike the ACTIVE
// rod lookup, which matches nothing on a first print.  Returns
// ErrSeatNotFound for unknown seats.
func (r *SeatRepo) LockIssuanceTx(ctx context.Context, tx *sql.Tx, seatID uint64) error {
    const q = `SELECT id FROM booking_seats WHERE id = ? FOR UPDATE`
    var id uint64
    err := tx.QueryRowContext(ctx, q, seatID).Scan(&id)
    if err == sql.ErrNoRows {
        return ErrSeatNotFound
    }
    return err
}

// ShareTx binds a seat to a recipient and stamps the share metadata.
// Callers must have locked the seat and verified it is not checked
// in.  Sharing an already-shared seat re-binds it; seats are only
// immutable once occupied.
func (r *SeatRepo) ShareTx(ctx context.Context, tx *sql.Tx, seatID, recipientID, sharedBy uint64) error {
    const q = `UPDATE booking_seats
               SET assigned_to = ?, status = 'SHARED', shared_by = ?, shared_at = UTC_TIMESTAMP()
               WHERE id = ?`
    _, err := tx.ExecContext(ctx, q, recipientID, sharedBy, seatID)
    return err
}

// CheckInTx attempts the SHARED → CHECKED_IN transition with
// compare-and-swap semantics: the UPDATE is keyed on the current
// status, so of N concurrent scans exactly one observes a row change
// and every other one falls through to the already-checked-in path.
// It returns true when this call performed the transition.
func (r *SeatRepo) CheckInTx(ctx context.Context, tx *sql.Tx, seatID uint64) (bool, error) {
    const q = `UPDATE booking_seats
               SET status = 'CHECKED_IN', checked_in_at = UTC_TIMESTAMP()
               WHERE id = ? AND status = 'SHARED'`
    res, err := tx.ExecContext(ctx, q, seatID)
    if err != nil {
        return false, err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return false, err
    }
    return n == 1, nil
}

// CheckInTimeTx re-reads the check-in timestamp after a CAS miss so
// the already-checked-in response can report the original time.
func (r *SeatRepo) CheckInTimeTx(ctx context.Context, tx *sql.Tx, seatID uint64) (*time.Time, error) {
    const q = `SELECT checked_in_at FROM booking_seats WHERE id = ?`
    var t sql.NullTime
    if err := tx.QueryRowContext(ctx, q, seatID).Scan(&t); err != nil {
        return nil, err
    }
    if !t.Valid {
        return nil, nil
    }
    ts := t.Time
    return &ts, nil
}
