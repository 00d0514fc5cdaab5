package repository

import (
    "context"
    "database/sql"

    "github.com/measaura/netlify-pond-booking-sub001/internal/model"
)

// EventRepo provides read access to competition events and their
// games plus the transactional capacity accounting used while
// creating event bookings.  The contention unit for an event booking
// is the event's max_participants across all bookings.
type EventRepo struct {
    db *sql.DB
}

// NewEventRepo returns a new EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// GetByID returns an event or sql.ErrNoRows.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
    const q = `SELECT id, pond_id, name, event_date, max_participants, is_active, created_at
               FROM events WHERE id = ?`
    var e model.Event
    if err := r.db.QueryRowContext(ctx, q, id).Scan(
        &e.ID, &e.PondID, &e.Name, &e.EventDate, &e.MaxParticipants, &e.IsActive, &e.CreatedAt,
    ); err != nil {
        return nil, err
    }
    return &e, nil
}

// ListGames returns the games configured for an event ordered by ID.
// An empty slice means the event cannot accept weighed catches.
func (r *EventRepo) ListGames(ctx context.Context, eventID uint64) ([]model.EventGame, error) {
    const q = `SELECT id, event_id, name FROM event_games WHERE event_id = ? ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q, eventID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    games := make([]model.EventGame, 0)
    for rows.Next() {
        var g model.EventGame
        if err := rows.Scan(&g.ID, &g.EventID, &g.Name); err != nil {
            return nil, err
        }
        games = append(games, g)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return games, nil
}

// GetGame returns one game of an event, or sql.ErrNoRows when the
// game does not exist or belongs to a different event.
func (r *EventRepo) GetGame(ctx context.Context, eventID, gameID uint64) (*model.EventGame, error) {
    const q = `SELECT id, event_id, name FROM event_games WHERE id = ? AND event_id = ?`
    var g model.EventGame
    if err := r.db.QueryRowContext(ctx, q, gameID, eventID).Scan(&g.ID, &g.EventID, &g.Name); err != nil {
        return nil, err
    }
    return &g, nil
}

// LockForBookingTx locks the event row FOR UPDATE and returns its
// participant cap.  Concurrent entry transactions for the same event
// serialize on this lock.  Returns sql.ErrNoRows for unknown or
// inactive events.
func (r *EventRepo) LockForBookingTx(ctx context.Context, tx *sql.Tx, eventID uint64) (uint32, error) {
    const q = `SELECT max_participants FROM events WHERE id = ? AND is_active = 1 FOR UPDATE`
    var cap32 uint32
    if err := tx.QueryRowContext(ctx, q, eventID).Scan(&cap32); err != nil {
        return 0, err
    }
    return cap32, nil
}

// CountEntriesTx counts seats already allocated to the event across
// all active bookings.  Must run after LockForBookingTx in the same
// transaction.
func (r *EventRepo) CountEntriesTx(ctx context.Context, tx *sql.Tx, eventID uint64) (uint32, error) {
    const q = `SELECT COALESCE(SUM(b.seat_count), 0)
               FROM bookings b
               WHERE b.type = 'EVENT' AND b.event_id = ? AND b.status = 'ACTIVE'`
    var n uint32
    if err := tx.QueryRowContext(ctx, q, eventID).Scan(&n); err != nil {
        return 0, err
    }
    return n, nil
}
