package repository

import (
    "context"
    "database/sql"
    "strings"
    "time"
)

// BookingRepo provides CRUD operations for bookings and their seats.
// A booking groups together one or more seats for a pond session or
// a competition event.  Seats allocated under a booking are stored in
// the booking_seats table.  All timestamp fields are assumed to be
// stored in UTC.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// that span several repositories.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// BookingRecord mirrors the schema of the bookings table.  It is
// used internally by the repository when constructing or scanning
// rows.  Business logic should use the model.Booking type instead.
type BookingRecord struct {
    ID          uint64
    Reference   string
    Type        string
    UserID      uint64
    PondID      uint64
    EventID     *uint64
    BookingDate string // YYYY-MM-DD
    TimeSlotID  *uint64
    SeatCount   uint32
    PriceCents  uint32
    Status      string
    CreatedAt   time.Time
    UpdatedAt   time.Time
}

// BookingSeatRecord mirrors the booking_seats table for insertion.
// The QR code must be generated before insert; it is never
// regenerated afterwards.
type BookingSeatRecord struct {
    BookingID uint64
    SeatNo    uint32
    QRCode    string
    Status    string
}

// CreateTx inserts a new booking within the scope of an existing
// transaction.  It populates the generated ID on the provided record
// and returns any error from the database.  The caller must commit or
// rollback the transaction.  Status should be a valid enumeration
// ('ACTIVE','CANCELLED','NO_SHOW').
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *BookingRecord) error {
    const q = `INSERT INTO bookings
               (reference, type, user_id, pond_id, event_id, booking_date, time_slot_id, seat_count, price_cents, status)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    result, err := tx.ExecContext(ctx, q,
        b.Reference, b.Type, b.UserID, b.PondID, b.EventID, b.BookingDate, b.TimeSlotID,
        b.SeatCount, b.PriceCents, b.Status,
    )
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    b.ID = uint64(id)
    // Query back the row to populate timestamps and defaults
    const sel = `SELECT created_at, updated_at FROM bookings WHERE id = ?`
    return tx.QueryRowContext(ctx, sel, b.ID).Scan(&b.CreatedAt, &b.UpdatedAt)
}

// CreateSeatsBulkTx inserts multiple booking_seats rows in a single
// statement.  Each seat carries its pre-generated unique QR code.
// The unique keys on (booking_id, seat_no) and qr_code are the last
// line of defense should a concurrent transaction slip past the
// capacity lock.  Passing an empty slice has no effect and returns nil.
func (r *BookingRepo) CreateSeatsBulkTx(ctx context.Context, tx *sql.Tx, seats []BookingSeatRecord) error {
    if len(seats) == 0 {
        return nil
    }
    query := `INSERT INTO booking_seats (booking_id, seat_no, qr_code, status) VALUES `
    args := make([]interface{}, 0, len(seats)*4)
    for i, s := range seats {
        if i > 0 {
            query += ","
        }
        query += "(?, ?, ?, ?)"
        args = append(args, s.BookingID, s.SeatNo, s.QRCode, s.Status)
    }
    _, err := tx.ExecContext(ctx, query, args...)
    return err
}

// SeatDetail is the seat shape embedded in booking responses.
type SeatDetail struct {
    ID          uint64  `json:"id"`
    SeatNo      uint32  `json:"seat_no"`
    QRCode      string  `json:"qr_code"`
    Status      string  `json:"status"`
    AssignedTo  *uint64 `json:"assigned_to,omitempty"`
    CheckedInAt *string `json:"checked_in_at,omitempty"`
}

// BookingDetail encapsulates a booking along with its seats and the
// target pond/event names.  It is returned by GetDetail and
// ListByUser for display to anglers.
type BookingDetail struct {
    ID          uint64       `json:"id"`
    Reference   string       `json:"reference"`
    Type        string       `json:"type"`
    UserID      uint64       `json:"user_id"`
    PondID      uint64       `json:"pond_id"`
    PondName    string       `json:"pond_name"`
    EventID     *uint64      `json:"event_id,omitempty"`
    EventName   *string      `json:"event_name,omitempty"`
    BookingDate string       `json:"booking_date"`
    TimeSlotID  *uint64      `json:"time_slot_id,omitempty"`
    SeatCount   uint32       `json:"seat_count"`
    PriceCents  uint32       `json:"price_cents"`
    Status      string       `json:"status"`
    Seats       []SeatDetail `json:"seats"`
}

// scanDetailRow scans one joined booking row shared by GetDetail and
// ListByUser.
func scanDetailRow(scan func(dest ...interface{}) error) (*BookingDetail, error) {
    var d BookingDetail
    var eventName sql.NullString
    var bookingDate time.Time
    if err := scan(
        &d.ID, &d.Reference, &d.Type, &d.UserID, &d.PondID, &d.PondName,
        &d.EventID, &eventName, &bookingDate, &d.TimeSlotID,
        &d.SeatCount, &d.PriceCents, &d.Status,
    ); err != nil {
        return nil, err
    }
    d.BookingDate = bookingDate.UTC().Format("2006-01-02")
    if eventName.Valid {
        n := eventName.String
        d.EventName = &n
    }
    d.Seats = []SeatDetail{}
    return &d, nil
}

const detailSelect = `SELECT b.id, b.reference, b.type, b.user_id, b.pond_id, p.name,
                             b.event_id, e.name, b.booking_date, b.time_slot_id,
                             b.seat_count, b.price_cents, b.status
                      FROM bookings b
                      JOIN ponds p ON p.id = b.pond_id
                      LEFT JOIN events e ON e.id = b.event_id`

// GetDetail returns a single booking with its seats.  When no booking
// with the specified ID exists, ErrBookingNotFound is returned.
func (r *BookingRepo) GetDetail(ctx context.Context, bookingID uint64) (*BookingDetail, error) {
    row := r.db.QueryRowContext(ctx, detailSelect+` WHERE b.id = ?`, bookingID)
    d, err := scanDetailRow(row.Scan)
    if err == sql.ErrNoRows {
        return nil, ErrBookingNotFound
    }
    if err != nil {
        return nil, err
    }
    if err := r.attachSeats(ctx, []*BookingDetail{d}); err != nil {
        return nil, err
    }
    return d, nil
}

// ListByUser returns all bookings made by the given user, newest
// first, each populated with its seats.  When no bookings exist an
// empty slice is returned.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]*BookingDetail, error) {
    rows, err := r.db.QueryContext(ctx, detailSelect+` WHERE b.user_id = ? ORDER BY b.created_at DESC`, userID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    details := make([]*BookingDetail, 0)
    for rows.Next() {
        d, err := scanDetailRow(rows.Scan)
        if err != nil {
            return nil, err
        }
        details = append(details, d)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    if len(details) == 0 {
        return details, nil
    }
    if err := r.attachSeats(ctx, details); err != nil {
        return nil, err
    }
    return details, nil
}

// attachSeats populates the Seats slice for all given bookings with a
// single IN query.
func (r *BookingRepo) attachSeats(ctx context.Context, details []*BookingDetail) error {
    ids := make([]interface{}, 0, len(details))
    placeholders := make([]string, 0, len(details))
    index := make(map[uint64]*BookingDetail, len(details))
    for _, d := range details {
        ids = append(ids, d.ID)
        placeholders = append(placeholders, "?")
        index[d.ID] = d
    }
    query := `SELECT booking_id, id, seat_no, qr_code, status, assigned_to, checked_in_at
              FROM booking_seats
              WHERE booking_id IN (` + strings.Join(placeholders, ",") + `)
              ORDER BY booking_id, seat_no`
    rows, err := r.db.QueryContext(ctx, query, ids...)
    if err != nil {
        return err
    }
    defer rows.Close()
    for rows.Next() {
        var bookingID uint64
        var s SeatDetail
        var checkedInAt sql.NullTime
        if err := rows.Scan(&bookingID, &s.ID, &s.SeatNo, &s.QRCode, &s.Status, &s.AssignedTo, &checkedInAt); err != nil {
            return err
        }
        if checkedInAt.Valid {
            iso := checkedInAt.Time.UTC().Format(time.RFC3339)
            s.CheckedInAt = &iso
        }
        if d, ok := index[bookingID]; ok {
            d.Seats = append(d.Seats, s)
        }
    }
    return rows.Err()
}

// LockTx loads the owner and status of a booking FOR UPDATE so that
// sharing and cancellation can validate ownership and current state
// atomically.  Returns ErrBookingNotFound when the booking does not
// exist.
func (r *BookingRepo) LockTx(ctx context.Context, tx *sql.Tx, bookingID uint64) (ownerID uint64, status string, err error) {
    const q = `SELECT user_id, status FROM bookings WHERE id = ? FOR UPDATE`
    err = tx.QueryRowContext(ctx, q, bookingID).Scan(&ownerID, &status)
    if err == sql.ErrNoRows {
        return 0, "", ErrBookingNotFound
    }
    return ownerID, status, err
}

// CancelTx marks a booking cancelled.  Seat rows are preserved for
// audit; capacity accounting ignores non-ACTIVE bookings so the seats
// are implicitly released.
func (r *BookingRepo) CancelTx(ctx context.Context, tx *sql.Tx, bookingID uint64) error {
    const q = `UPDATE bookings SET status = 'CANCELLED' WHERE id = ?`
    _, err := tx.ExecContext(ctx, q, bookingID)
    return err
}
