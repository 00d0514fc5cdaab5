package repository

import (
    "context"
    "database/sql"
    "strings"

    "github.com/measaura/netlify-pond-booking-sub001/internal/model"
)

// UserRepo reads accounts from the users table.  Account creation and
// authentication live in the external user directory; this service
// only resolves recipients for seat sharing and display names for
// leaderboards.
type UserRepo struct {
    db *sql.DB
}

// NewUserRepo returns a new UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// GetByEmail looks up a user by email, case-insensitively.  It
// returns ErrUnknownRecipient when no account matches.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
    const q = `SELECT id, email, name, role, created_at FROM users WHERE LOWER(email) = ?`
    var u model.User
    err := r.db.QueryRowContext(ctx, q, strings.ToLower(strings.TrimSpace(email))).Scan(
        &u.ID, &u.Email, &u.Name, &u.Role, &u.CreatedAt,
    )
    if err == sql.ErrNoRows {
        return nil, ErrUnknownRecipient
    }
    if err != nil {
        return nil, err
    }
    return &u, nil
}

// NamesByIDs returns a map of user ID to display name for the given
// IDs.  Missing IDs are simply absent from the map.  Used when
// assembling leaderboard responses.
func (r *UserRepo) NamesByIDs(ctx context.Context, ids []uint64) (map[uint64]string, error) {
    names := make(map[uint64]string, len(ids))
    if len(ids) == 0 {
        return names, nil
    }
    placeholders := make([]string, 0, len(ids))
    args := make([]interface{}, 0, len(ids))
    for _, id := range ids {
        placeholders = append(placeholders, "?")
        args = append(args, id)
    }
    query := `SELECT id, name FROM users WHERE id IN (` + strings.Join(placeholders, ",") + `)`
    rows, err := r.db.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    for rows.Next() {
        var id uint64
        var name string
        if err := rows.Scan(&id, &name); err != nil {
            return nil, err
        }
        names[id] = name
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return names, nil
}
