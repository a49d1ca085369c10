// Package auth holds the session lifecycle: minting access/refresh token
// pairs on login, rotating refresh tokens on reissue, and the ownership
// check that gates every mutating user operation.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/iliyamo/user-account-service/internal/repository"
	"github.com/iliyamo/user-account-service/internal/token"
	"github.com/iliyamo/user-account-service/internal/utils"
)

// ErrBadCredentials is returned by Login when the handle is unknown or the
// password does not match. The two cases are deliberately indistinguishable.
var ErrBadCredentials = errors.New("invalid credentials")

// ErrMissingToken is returned by Reissue when no token was presented.
var ErrMissingToken = errors.New("refresh token null")

// ErrWrongCategory is returned by Reissue when the presented token is valid
// but its category claim is not "refresh".
var ErrWrongCategory = errors.New("token is not a refresh token")

// ErrUnknownToken is returned by Reissue when no refresh-session row matches
// the presented token: it was already rotated out, or never issued by us.
var ErrUnknownToken = errors.New("unknown refresh token")

// Pair is an access/refresh token pair as returned to clients.
type Pair struct {
	Access  string
	Refresh string
}

// Issuer mints token pairs and owns the refresh-session lifecycle.
type Issuer struct {
	Codec    *token.Codec
	Users    repository.UserStore
	Sessions repository.RefreshSessionStore
}

func NewIssuer(c *token.Codec, users repository.UserStore, sessions repository.RefreshSessionStore) *Issuer {
	return &Issuer{Codec: c, Users: users, Sessions: sessions}
}

// Login verifies the credentials and, on success, mints an access/refresh
// pair and persists a refresh-session row. On failure nothing is written and
// ErrBadCredentials is returned.
func (i *Issuer) Login(ctx context.Context, username, password string) (Pair, error) {
	u, err := i.Users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return Pair{}, ErrBadCredentials
		}
		return Pair{}, err
	}
	if !utils.VerifyPassword(u.Password, password) {
		return Pair{}, ErrBadCredentials
	}
	return i.issue(ctx, u.UserID, u.Role)
}

// Reissue validates a presented refresh token and atomically replaces its
// session row with one for a freshly minted refresh token. The validation
// pipeline is ordered and short-circuits: missing, expired, wrong category,
// unknown. Each failure is caller-visible so the handler can report the
// exact reason.
func (i *Issuer) Reissue(ctx context.Context, presented string) (Pair, error) {
	if presented == "" {
		return Pair{}, ErrMissingToken
	}
	expired, err := i.Codec.IsExpired(presented)
	if err != nil {
		return Pair{}, err // token.ErrTokenInvalid
	}
	if expired {
		return Pair{}, token.ErrTokenExpired
	}
	claims, err := i.Codec.ParseClaims(presented)
	if err != nil {
		return Pair{}, err
	}
	if claims.Category != token.CategoryRefresh {
		return Pair{}, ErrWrongCategory
	}
	ok, err := i.Sessions.Exists(ctx, presented)
	if err != nil {
		return Pair{}, err
	}
	if !ok {
		return Pair{}, ErrUnknownToken
	}

	// Rotation: the conditional delete is the linearization point. Two
	// concurrent reissues of the same token both pass the checks above, but
	// only the one whose delete removes the row gets a successor; the other
	// fails as unknown. A crash after the delete forces a re-login rather
	// than leaving a reusable token behind.
	removed, err := i.Sessions.Delete(ctx, presented)
	if err != nil {
		return Pair{}, err
	}
	if !removed {
		return Pair{}, ErrUnknownToken
	}
	return i.issue(ctx, claims.Subject, claims.Role)
}

// issue mints both tokens and persists the refresh session.
func (i *Issuer) issue(ctx context.Context, subject, role string) (Pair, error) {
	access, err := i.Codec.CreateToken(token.CategoryAccess, subject, role, token.AccessTokenTTL)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := i.Codec.CreateToken(token.CategoryRefresh, subject, role, token.RefreshTokenTTL)
	if err != nil {
		return Pair{}, err
	}
	expiresAt := time.Now().UTC().Add(token.RefreshTokenTTL).Format(time.RFC3339)
	if err := i.Sessions.Store(ctx, subject, refresh, expiresAt); err != nil {
		return Pair{}, err
	}
	return Pair{Access: access, Refresh: refresh}, nil
}
