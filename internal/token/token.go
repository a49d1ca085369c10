// Package token creates and parses the signed, expiring tokens that carry a
// session's subject, role and category. The codec is pure: its only state is
// the signing secret and a clock, and creating a token has no side effects.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token categories. The category claim is what prevents an access token from
// being presented where a refresh token is required.
const (
	CategoryAccess  = "access"
	CategoryRefresh = "refresh"
)

// Fixed lifetimes for the two token categories (600000 ms and 86400000 ms).
// The codec itself is TTL-agnostic; these constants belong to callers.
const (
	AccessTokenTTL  = 10 * time.Minute
	RefreshTokenTTL = 24 * time.Hour
)

// ErrTokenExpired is returned when a structurally valid, correctly signed
// token is past its expiry claim. Callers must distinguish it from
// ErrTokenInvalid: the two map to different HTTP responses.
var ErrTokenExpired = errors.New("token expired")

// ErrTokenInvalid is returned when signature verification fails, the token
// is malformed, or a required claim is missing.
var ErrTokenInvalid = errors.New("invalid token")

// Claims are the application-level facts a parsed token proves.
type Claims struct {
	Subject  string // external user id
	Role     string
	Category string // CategoryAccess or CategoryRefresh
}

// Codec signs and verifies HS256 tokens with a shared secret.
type Codec struct {
	secret []byte
	now    func() time.Time // overridable clock for tests
}

// NewCodec returns a codec signing with the given shared secret.
func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret), now: func() time.Time { return time.Now().UTC() }}
}

// CreateToken builds and signs a token embedding category, subject and role
// plus issued-at and expiry (issued-at + ttl) claims.
func (c *Codec) CreateToken(category, subject, role string, ttl time.Duration) (string, error) {
	now := c.now()
	claims := jwt.MapClaims{
		"category": category,
		"sub":      subject,
		"role":     role,
		"iat":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
		// jti keeps two tokens minted within the same second from
		// serializing identically; it is never used for revocation.
		"jti": uuid.NewString(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// ParseClaims verifies the signature and expiry of a token and extracts its
// claims. It returns ErrTokenExpired when the token is past its exp claim
// and ErrTokenInvalid for every other defect.
func (c *Codec) ParseClaims(raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Reject tokens signed with anything but the HMAC family.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if !tok.Valid {
		return Claims{}, ErrTokenInvalid
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrTokenInvalid
	}
	out := Claims{}
	if out.Subject, ok = mc["sub"].(string); !ok || out.Subject == "" {
		return Claims{}, ErrTokenInvalid
	}
	if out.Role, ok = mc["role"].(string); !ok || out.Role == "" {
		return Claims{}, ErrTokenInvalid
	}
	if out.Category, ok = mc["category"].(string); !ok || out.Category == "" {
		return Claims{}, ErrTokenInvalid
	}
	return out, nil
}

// IsExpired reports whether a token is past its expiry without treating the
// non-expired case as an error. Malformed or badly signed input still fails
// with ErrTokenInvalid so callers can tell "expired" from "forged".
func (c *Codec) IsExpired(raw string) (bool, error) {
	_, err := c.ParseClaims(raw)
	if err == nil {
		return false, nil
	}
	if errors.Is(err, ErrTokenExpired) {
		return true, nil
	}
	return false, err
}
