package repository

import (
    "context"
    "database/sql"

    "github.com/measaura/netlify-pond-booking-sub001/internal/model"
)

// StatsRepo maintains the per-user running aggregates and the
// achievement unlock table.  Stats exist to make achievement
// evaluation cheap after each catch; they are derived data and are
// never consulted by leaderboard generation.
type StatsRepo struct {
    db *sql.DB
}

// NewStatsRepo returns a new StatsRepo bound to the given database.
func NewStatsRepo(db *sql.DB) *StatsRepo { return &StatsRepo{db: db} }

// ApplyCatch folds one catch into the user's aggregates.  The upsert
// is a single statement so concurrent weighings for the same user
// cannot lose updates.
func (r *StatsRepo) ApplyCatch(ctx context.Context, userID uint64, weightGrams uint32) error {
    const q = `INSERT INTO user_stats (user_id, total_catches, total_weight_grams, biggest_grams, last_catch_at)
               VALUES (?, 1, ?, ?, UTC_TIMESTAMP())
               ON DUPLICATE KEY UPDATE
                   total_catches = total_catches + 1,
                   total_weight_grams = total_weight_grams + VALUES(total_weight_grams),
                   biggest_grams = GREATEST(biggest_grams, VALUES(biggest_grams)),
                   last_catch_at = UTC_TIMESTAMP()`
    _, err := r.db.ExecContext(ctx, q, userID, weightGrams, weightGrams)
    return err
}

// Get returns the user's aggregates, or zeroed stats when the user
// has no catches yet.
func (r *StatsRepo) Get(ctx context.Context, userID uint64) (*model.UserStats, error) {
    const q = `SELECT user_id, total_catches, total_weight_grams, biggest_grams, last_catch_at
               FROM user_stats WHERE user_id = ?`
    var s model.UserStats
    var lastCatch sql.NullTime
    err := r.db.QueryRowContext(ctx, q, userID).Scan(
        &s.UserID, &s.TotalCatches, &s.TotalWeightGrams, &s.BiggestGrams, &lastCatch,
    )
    if err == sql.ErrNoRows {
        return &model.UserStats{UserID: userID}, nil
    }
    if err != nil {
        return nil, err
    }
    if lastCatch.Valid {
        t := lastCatch.Time
        s.LastCatchAt = &t
    }
    return &s, nil
}

// ListAchievements returns the full externally administered rule
// table.  It is small and read on every evaluation rather than
// cached, keeping the core free of mutable in-memory state.
func (r *StatsRepo) ListAchievements(ctx context.Context) ([]model.Achievement, error) {
    const q = `SELECT id, code, name, threshold_type, threshold_value FROM achievements ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Achievement, 0)
    for rows.Next() {
        var a model.Achievement
        if err := rows.Scan(&a.ID, &a.Code, &a.Name, &a.ThresholdType, &a.ThresholdValue); err != nil {
            return nil, err
        }
        out = append(out, a)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// Unlock records an achievement for a user.  The unique key on
// (user_id, achievement_id) makes the insert idempotent: the unlock
// row is returned only when this call performed it, nil when the
// user already held the achievement.
func (r *StatsRepo) Unlock(ctx context.Context, userID, achievementID uint64) (*model.UserAchievement, error) {
    const q = `INSERT IGNORE INTO user_achievements (user_id, achievement_id, unlocked_at)
               VALUES (?, ?, UTC_TIMESTAMP())`
    res, err := r.db.ExecContext(ctx, q, userID, achievementID)
    if err != nil {
        return nil, err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return nil, err
    }
    if n != 1 {
        return nil, nil
    }
    id, err := res.LastInsertId()
    if err != nil {
        return nil, err
    }
    ua := model.UserAchievement{ID: uint64(id), UserID: userID, AchievementID: achievementID}
    const sel = `SELECT unlocked_at FROM user_achievements WHERE id = ?`
    if err := r.db.QueryRowContext(ctx, sel, ua.ID).Scan(&ua.UnlockedAt); err != nil {
        return nil, err
    }
    return &ua, nil
}
