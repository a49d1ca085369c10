package repository

import (
	"context"
	"database/sql"
	"errors"
)

// RefreshSessionStore is the persistence contract for refresh-session rows.
// Delete reports whether a row was actually removed: reissue uses that
// affected-count as the gate that makes token rotation race-safe, so the
// contract is part of the security design, not an optimization.
type RefreshSessionStore interface {
	Store(ctx context.Context, subject, tok, expiresAt string) error
	Exists(ctx context.Context, tok string) (bool, error)
	Delete(ctx context.Context, tok string) (bool, error)
}

// RefreshSessionRepo implements RefreshSessionStore over MySQL. The token
// column holds the serialized refresh token and is matched exactly; no
// uniqueness is enforced on the subject, so multiple live sessions per user
// are permitted.
type RefreshSessionRepo struct{ DB *sql.DB }

func NewRefreshSessionRepo(db *sql.DB) *RefreshSessionRepo {
	return &RefreshSessionRepo{DB: db}
}

// Store inserts a refresh-session row.
func (r *RefreshSessionRepo) Store(ctx context.Context, subject, tok, expiresAt string) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO refresh_sessions (subject, token, expires_at) VALUES (?,?,?)",
		subject, tok, expiresAt)
	return err
}

// Exists reports whether a row with exactly this token string is present.
func (r *RefreshSessionRepo) Exists(ctx context.Context, tok string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM refresh_sessions WHERE token=? LIMIT 1", tok).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes the row matching the token string and reports whether one
// was removed. Deleting an already-rotated token is a no-op that returns
// false.
func (r *RefreshSessionRepo) Delete(ctx context.Context, tok string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM refresh_sessions WHERE token=?", tok)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
