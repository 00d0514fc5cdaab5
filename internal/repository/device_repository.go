package repository

import (
    "context"
    "database/sql"

    "github.com/measaura/netlify-pond-booking-sub001/internal/model"
)

// DeviceRepo stores informational status reports from scales and
// printers.  These never gate a core transition; they exist for
// operational visibility only.
type DeviceRepo struct {
    db *sql.DB
}

// NewDeviceRepo returns a new DeviceRepo bound to the given database.
func NewDeviceRepo(db *sql.DB) *DeviceRepo { return &DeviceRepo{db: db} }

// Record appends one device event and populates the generated ID and
// received_at timestamp on the passed model.
func (r *DeviceRepo) Record(ctx context.Context, ev *model.DeviceEvent) error {
    const q = `INSERT INTO device_events (device_id, device_type, status, payload, received_at)
               VALUES (?, ?, ?, ?, UTC_TIMESTAMP())`
    res, err := r.db.ExecContext(ctx, q, ev.DeviceID, ev.DeviceType, ev.Status, ev.Payload)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    ev.ID = uint64(id)
    const sel = `SELECT received_at FROM device_events WHERE id = ?`
    return r.db.QueryRowContext(ctx, sel, ev.ID).Scan(&ev.ReceivedAt)
}
