package repository

import (
    "context"
    "database/sql"
    "time"
)

// TokenRepo persists refresh tokens for the session layer.  Only a
// SHA-256 digest of the raw token is stored; possession of the table
// contents is not enough to mint a session.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// StoreRefresh inserts a refresh token digest for the given identity.
func (r *TokenRepo) StoreRefresh(ctx context.Context, googleID, tokenHash string, exp time.Time) error {
    _, err := r.DB.ExecContext(ctx,
        "INSERT INTO refresh_tokens (google_id, token_hash, expires_at) VALUES (?,?,?)",
        googleID, tokenHash, exp)
    return err
}

// ValidateRefresh returns the identity a non-revoked, non-expired
// token belongs to.  Revoked and expired tokens both surface as
// sql.ErrNoRows so callers treat them identically to unknown tokens.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (string, error) {
    var (
        googleID  string
        expiresAt time.Time
        revokedAt sql.NullTime
    )
    err := r.DB.QueryRowContext(ctx,
        "SELECT google_id, expires_at, revoked_at FROM refresh_tokens WHERE token_hash=? LIMIT 1",
        tokenHash).Scan(&googleID, &expiresAt, &revokedAt)
    if err != nil {
        return "", err
    }
    if revokedAt.Valid || time.Now().UTC().After(expiresAt) {
        return "", sql.ErrNoRows
    }
    return googleID, nil
}

// RevokeByHash marks one token as revoked.
func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
    _, err := r.DB.ExecContext(ctx,
        "UPDATE refresh_tokens SET revoked_at=UTC_TIMESTAMP() WHERE token_hash=? AND revoked_at IS NULL",
        tokenHash)
    return err
}

// RevokeAllForUser revokes every active token of an identity.
func (r *TokenRepo) RevokeAllForUser(ctx context.Context, googleID string) error {
    _, err := r.DB.ExecContext(ctx,
        "UPDATE refresh_tokens SET revoked_at=UTC_TIMESTAMP() WHERE google_id=? AND revoked_at IS NULL",
        googleID)
    return err
}
