package middleware

// identity.go resolves the caller's external id for handlers. The id comes
// either from the principal stored by Authenticate or, for requests that
// crossed the trusted boundary already authenticated, from the X-User-Id
// header populated upstream. Both paths feed the same ownership check.

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-account-service/internal/model"
)

// CallerID returns the authenticated caller's external id, or "" when the
// request carries no identity.
func CallerID(c echo.Context) string {
	if p, ok := c.Get(principalKey).(model.Principal); ok && p.UserID != "" {
		return p.UserID
	}
	return c.Request().Header.Get(HeaderUserID)
}

// RequireIdentity rejects requests that carry no caller identity with 401.
// It runs after Authenticate: an invalid token never reaches this point, so
// an empty id here means no credentials were presented at all.
func RequireIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if CallerID(c) == "" {
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"error": "Unauthorized", "message": "authentication required",
			})
		}
		return next(c)
	}
}
