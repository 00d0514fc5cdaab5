package repository

import (
    "context"
    "database/sql"

    "github.com/measaura/netlify-pond-booking-sub001/internal/leaderboard"
    "github.com/measaura/netlify-pond-booking-sub001/internal/model"
)

// CatchRepo writes and reads catch_records.  Rows are append-only:
// corrections are recorded as new rows, never edits, so leaderboard
// state is always derivable by replaying the table.
type CatchRepo struct {
    db *sql.DB
}

// NewCatchRepo returns a new CatchRepo bound to the given database.
func NewCatchRepo(db *sql.DB) *CatchRepo { return &CatchRepo{db: db} }

// CreateTx inserts a catch record and populates the generated ID and
// caught_at timestamp on the passed model.
func (r *CatchRepo) CreateTx(ctx context.Context, tx *sql.Tx, c *model.CatchRecord) error {
    const q = `INSERT INTO catch_records
               (rod_id, user_id, event_id, game_id, weight_grams, length_mm, species, verified, weighed_by, scale_id, notes, caught_at)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, UTC_TIMESTAMP(3))`
    res, err := tx.ExecContext(ctx, q,
        c.RodID, c.UserID, c.EventID, c.GameID, c.WeightGrams, c.LengthMM, c.Species,
        c.Verified, c.WeighedBy, c.ScaleID, c.Notes,
    )
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    c.ID = uint64(id)
    const sel = `SELECT caught_at FROM catch_records WHERE id = ?`
    return tx.QueryRowContext(ctx, sel, c.ID).Scan(&c.CaughtAt)
}

// RankOfCatch reports the standing of one catch among all catches
// for the same event and game: weight descending, ties broken by the
// earlier catch, then by the lower row ID for identical timestamps.
// Used to tell the angler their position immediately after weighing.
func (r *CatchRepo) RankOfCatch(ctx context.Context, eventID, gameID uint64, c *model.CatchRecord) (uint32, error) {
    const q = `SELECT COUNT(*)
               FROM catch_records
               WHERE event_id = ? AND game_id = ?
                 AND (weight_grams > ?
                      OR (weight_grams = ? AND caught_at < ?)
                      OR (weight_grams = ? AND caught_at = ? AND id < ?))`
    var ahead uint32
    err := r.db.QueryRowContext(ctx, q, eventID, gameID,
        c.WeightGrams, c.WeightGrams, c.CaughtAt, c.WeightGrams, c.CaughtAt, c.ID,
    ).Scan(&ahead)
    if err != nil {
        return 0, err
    }
    return ahead + 1, nil
}

// catchRowSelect is shared by the leaderboard feeds.
const catchRowSelect = `SELECT user_id, event_id, game_id, weight_grams, caught_at FROM catch_records`

func collectRows(rows *sql.Rows) ([]leaderboard.CatchRow, error) {
    defer rows.Close()
    out := make([]leaderboard.CatchRow, 0)
    for rows.Next() {
        var cr leaderboard.CatchRow
        if err := rows.Scan(&cr.UserID, &cr.EventID, &cr.GameID, &cr.WeightGrams, &cr.CaughtAt); err != nil {
            return nil, err
        }
        out = append(out, cr)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// AllRows streams every catch into the flat row shape the ranking
// function consumes.  The overall leaderboard is always recomputed
// from this feed; there is no other source of truth.
func (r *CatchRepo) AllRows(ctx context.Context) ([]leaderboard.CatchRow, error) {
    rows, err := r.db.QueryContext(ctx, catchRowSelect+` ORDER BY caught_at`)
    if err != nil {
        return nil, err
    }
    return collectRows(rows)
}

// RowsForEvent returns the catches for one event, optionally limited
// to a single game.
func (r *CatchRepo) RowsForEvent(ctx context.Context, eventID uint64, gameID *uint64) ([]leaderboard.CatchRow, error) {
    query := catchRowSelect + ` WHERE event_id = ?`
    args := []interface{}{eventID}
    if gameID != nil {
        query += ` AND game_id = ?`
        args = append(args, *gameID)
    }
    query += ` ORDER BY caught_at`
    rows, err := r.db.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    return collectRows(rows)
}
