package middleware // middleware contains reusable HTTP middleware for the account service

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-account-service/internal/model"
	"github.com/iliyamo/user-account-service/internal/token"
)

// principalKey is the context key under which Authenticate stores the caller.
const principalKey = "principal"

// HeaderUserID is the trusted header carrying an already-authenticated
// caller's external id. Authenticate populates it for downstream consumers;
// internal services behind the trusted network boundary may set it directly.
//
// The header is trusted as-is, so the trust model assumes an edge (gateway or
// ingress) that strips inbound X-User-Id from external traffic. A deployment
// exposing /api directly to the internet without that strip would let clients
// forge their identity on routes that accept header-based callers.
const HeaderUserID = "X-User-Id"

// Authenticate returns the per-request authentication gate. A missing or
// malformed Authorization header passes the request through unauthenticated;
// route-level gates decide whether that is acceptable. A present bearer
// token is validated with the codec and the request is short-circuited with
// 401 when it is expired or invalid, so handlers never see a bad token. On
// success the caller principal, rebuilt from the claims alone, is stored on
// the request context.
func Authenticate(codec *token.Codec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authz := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(authz, "Bearer ") {
				// No token is not an error at this layer.
				return next(c)
			}
			raw := strings.TrimPrefix(authz, "Bearer ")

			claims, err := codec.ParseClaims(raw)
			if err != nil {
				if errors.Is(err, token.ErrTokenExpired) {
					return c.JSON(http.StatusUnauthorized, echo.Map{
						"error": "Unauthorized", "message": "Token expired",
					})
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"error": "Unauthorized", "message": "Invalid JWT Token",
				})
			}

			c.Set(principalKey, model.Principal{UserID: claims.Subject, Role: claims.Role})
			// Propagate the identity the way the internal surface expects it.
			c.Request().Header.Set(HeaderUserID, claims.Subject)
			return next(c)
		}
	}
}
