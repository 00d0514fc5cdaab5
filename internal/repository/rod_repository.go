package repository

import (
    "context"
    "database/sql"

    "github.com/measaura/netlify-pond-booking-sub001/internal/model"
)

// RodRepo manages fishing_rods rows.  At most one rod per seat is
// ACTIVE at any instant; a replacement voids the old row and inserts
// a new one with an incremented version inside a single transaction,
// so a scan arriving mid-replacement sees either the fully-old or
// the fully-new state.
type RodRepo struct {
    db *sql.DB
}

// NewRodRepo returns a new RodRepo bound to the given database.
func NewRodRepo(db *sql.DB) *RodRepo { return &RodRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// that span several repositories.
func (r *RodRepo) DB() *sql.DB { return r.db }

// scanRod scans one fishing_rods row into a model.FishingRod.
func scanRod(scan func(dest ...interface{}) error) (*model.FishingRod, error) {
    var rod model.FishingRod
    var prevQR, voidReason sql.NullString
    var voidedAt sql.NullTime
    if err := scan(
        &rod.ID, &rod.SeatID, &rod.UserID, &rod.QRCode, &rod.Version, &rod.Status,
        &prevQR, &voidReason, &voidedAt, &rod.IssuedBy, &rod.StationID, &rod.CreatedAt,
    ); err != nil {
        return nil, err
    }
    if prevQR.Valid {
        s := prevQR.String
        rod.PreviousQRCode = &s
    }
    if voidReason.Valid {
        s := voidReason.String
        rod.VoidReason = &s
    }
    if voidedAt.Valid {
        t := voidedAt.Time
        rod.VoidedAt = &t
    }
    return &rod, nil
}

const rodColumns = `id, seat_id, user_id, qr_code, version, status,
                    previous_qr_code, void_reason, voided_at, issued_by, station_id, created_at`

// ResolveByQR looks a rod up by its QR code.  Pure lookup, voided
// rods resolve too so their status can be reported.  Returns
// ErrRodNotFound for unknown codes.
func (r *RodRepo) ResolveByQR(ctx context.Context, qrCode string) (*model.FishingRod, error) {
    row := r.db.QueryRowContext(ctx, `SELECT `+rodColumns+` FROM fishing_rods WHERE qr_code = ?`, qrCode)
    rod, err := scanRod(row.Scan)
    if err == sql.ErrNoRows {
        return nil, ErrRodNotFound
    }
    return rod, err
}

// ActiveForSeatTx loads the seat's ACTIVE rod FOR UPDATE, or nil when
// the seat has none.  A missing row locks nothing, so issuance
// transactions must take the seat row lock (SeatRepo.LockIssuanceTx)
// first; without it two concurrent first prints could both observe
// "no active rod".
func (r *RodRepo) ActiveForSeatTx(ctx context.Context, tx *sql.Tx, seatID uint64) (*model.FishingRod, error) {
    row := tx.QueryRowContext(ctx,
        `SELECT `+rodColumns+` FROM fishing_rods WHERE seat_id = ? AND status = 'ACTIVE' FOR UPDATE`, seatID)
    rod, err := scanRod(row.Scan)
    if err == sql.ErrNoRows {
        return nil, nil
    }
    return rod, err
}

// MaxVersionTx returns the highest version ever issued for a seat,
// 0 when none.  Used to number a new rod after all prior rods were
// voided, so versions stay monotonic across lost-rod gaps.
func (r *RodRepo) MaxVersionTx(ctx context.Context, tx *sql.Tx, seatID uint64) (uint32, error) {
    const q = `SELECT COALESCE(MAX(version), 0) FROM fishing_rods WHERE seat_id = ?`
    var v uint32
    if err := tx.QueryRowContext(ctx, q, seatID).Scan(&v); err != nil {
        return 0, err
    }
    return v, nil
}

// VoidTx flips a rod to VOIDED with a reason and timestamp.  The row
// itself is otherwise immutable; history stays intact.
func (r *RodRepo) VoidTx(ctx context.Context, tx *sql.Tx, rodID uint64, reason string) error {
    const q = `UPDATE fishing_rods
               SET status = 'VOIDED', void_reason = ?, voided_at = UTC_TIMESTAMP()
               WHERE id = ?`
    _, err := tx.ExecContext(ctx, q, reason, rodID)
    return err
}

// CreateTx inserts a new rod row and populates the generated ID and
// created_at on the passed model.  PreviousQRCode links a replacement
// to the rod it superseded.
func (r *RodRepo) CreateTx(ctx context.Context, tx *sql.Tx, rod *model.FishingRod) error {
    const q = `INSERT INTO fishing_rods
               (seat_id, user_id, qr_code, version, status, previous_qr_code, issued_by, station_id)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
    res, err := tx.ExecContext(ctx, q,
        rod.SeatID, rod.UserID, rod.QRCode, rod.Version, rod.Status, rod.PreviousQRCode, rod.IssuedBy, rod.StationID,
    )
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    rod.ID = uint64(id)
    const sel = `SELECT created_at FROM fishing_rods WHERE id = ?`
    return tx.QueryRowContext(ctx, sel, rod.ID).Scan(&rod.CreatedAt)
}

// HistoryForSeat returns every rod ever issued for a seat ordered by
// version ascending, forming the audit chain from version 1 to the
// current active rod.
func (r *RodRepo) HistoryForSeat(ctx context.Context, seatID uint64) ([]model.FishingRod, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT `+rodColumns+` FROM fishing_rods WHERE seat_id = ? ORDER BY version`, seatID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    history := make([]model.FishingRod, 0)
    for rows.Next() {
        rod, err := scanRod(rows.Scan)
        if err != nil {
            return nil, err
        }
        history = append(history, *rod)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return history, nil
}

// WeighContext carries the facts the weighing station needs about a
// scanned rod: the rod itself plus the bound seat's check-in state
// and the booking's event context.
type WeighContext struct {
    Rod           model.FishingRod
    SeatStatus    string
    SeatCheckedIn bool
    BookingType   string
    EventID       *uint64
}

// ResolveWeighByQR joins a rod QR through its seat to the owning
// booking in one read.  Returns ErrRodNotFound for unknown codes.
func (r *RodRepo) ResolveWeighByQR(ctx context.Context, qrCode string) (*WeighContext, error) {
    const q = `SELECT r.id, r.seat_id, r.user_id, r.qr_code, r.version, r.status,
                      r.previous_qr_code, r.void_reason, r.voided_at, r.issued_by, r.created_at,
                      s.status, s.checked_in_at IS NOT NULL,
                      b.type, b.event_id
               FROM fishing_rods r
               JOIN booking_seats s ON s.id = r.seat_id
               JOIN bookings b ON b.id = s.booking_id
               WHERE r.qr_code = ?`
    var wc WeighContext
    var prevQR, voidReason sql.NullString
    var voidedAt sql.NullTime
    err := r.db.QueryRowContext(ctx, q, qrCode).Scan(
        &wc.Rod.ID, &wc.Rod.SeatID, &wc.Rod.UserID, &wc.Rod.QRCode, &wc.Rod.Version, &wc.Rod.Status,
        &prevQR, &voidReason, &voidedAt, &wc.Rod.IssuedBy, &wc.Rod.CreatedAt,
        &wc.SeatStatus, &wc.SeatCheckedIn,
        &wc.BookingType, &wc.EventID,
    )
    if err == sql.ErrNoRows {
        return nil, ErrRodNotFound
    }
    if err != nil {
        return nil, err
    }
    if prevQR.Valid {
        s := prevQR.String
        wc.Rod.PreviousQRCode = &s
    }
    if voidReason.Valid {
        s := voidReason.String
        wc.Rod.VoidReason = &s
    }
    if voidedAt.Valid {
        t := voidedAt.Time
        wc.Rod.VoidedAt = &t
    }
    return &wc, nil
}
