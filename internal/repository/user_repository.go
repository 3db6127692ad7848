package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"
    "time"
)

// User mirrors the 'users' table.  See model.User for field docs; the
// repository keeps its own scan target so the model package stays free
// of persistence concerns.
type User struct {
    ID        uint64
    GoogleID  string
    Email     string
    FullName  string
    Role      string
    IsActive  bool
    CreatedAt time.Time
    UpdatedAt time.Time
}

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// ErrUserNotFound indicates that no user row matches the identity.
var ErrUserNotFound = errors.New("user not found")

const userSelect = `SELECT id, google_id, email, full_name, role, is_active, created_at, updated_at FROM users`

// UpsertGoogle inserts a user on first Google sign-in or refreshes the
// email/full name reported by the identity provider on later ones.
// The role defaults to CUSTOMER and is never downgraded here; admin
// promotion is a manual operation outside this service.
func (r *UserRepo) UpsertGoogle(ctx context.Context, googleID, email, fullName string) (User, error) {
    email = strings.ToLower(strings.TrimSpace(email))
    _, err := r.DB.ExecContext(ctx,
        `INSERT INTO users (google_id, email, full_name, role)
         VALUES (?,?,?,'CUSTOMER')
         ON DUPLICATE KEY UPDATE email = VALUES(email), full_name = VALUES(full_name)`,
        googleID, email, fullName)
    if err != nil {
        return User{}, err
    }
    return r.GetByGoogleID(ctx, googleID)
}

// GetByGoogleID fetches a user by federated identity subject.
func (r *UserRepo) GetByGoogleID(ctx context.Context, googleID string) (User, error) {
    var u User
    err := r.DB.QueryRowContext(ctx, userSelect+` WHERE google_id = ? LIMIT 1`, googleID).
        Scan(&u.ID, &u.GoogleID, &u.Email, &u.FullName, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
    if errors.Is(err, sql.ErrNoRows) {
        return User{}, ErrUserNotFound
    }
    return u, err
}
