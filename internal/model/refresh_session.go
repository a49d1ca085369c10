package model

// RefreshSession models an entry in the `refresh_sessions` table. A row
// exists for every currently valid, un-rotated refresh token. Rows are
// created on login and on every reissue, and removed when a reissue rotates
// them out; there is no expiry sweeper, so stale rows linger until a
// matching reissue or manual cleanup.
//
// Token stores the serialized refresh JWT itself and is the exact-match
// lookup key during reissue. ExpiresAt is kept as RFC3339 text for
// inspection only; the authoritative expiry is the token's own exp claim.
type RefreshSession struct {
	ID        uint64 // refresh_sessions.id
	Subject   string // refresh_sessions.subject (owning external user id)
	Token     string // refresh_sessions.token
	ExpiresAt string // refresh_sessions.expires_at (RFC3339 text)
}
