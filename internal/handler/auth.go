package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-account-service/internal/auth"
	"github.com/iliyamo/user-account-service/internal/token"
)

// AuthHandler exposes the session lifecycle over HTTP: credential login and
// refresh-token reissue. Both bypass the request authenticator; they are the
// endpoints that create the tokens it checks.
type AuthHandler struct {
	Issuer       *auth.Issuer
	CookieSecure bool // Secure attribute on the refresh cookie; HTTPS deployments set it
}

func NewAuthHandler(issuer *auth.Issuer, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Issuer: issuer, CookieSecure: cookieSecure}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies credentials and, on success, returns the access token in
// the "access" response header and the refresh token in an HttpOnly cookie.
// The refresh token never travels in a response body.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil || req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "username and password are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pair, err := h.Issuer.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrBadCredentials) {
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"error": "Unauthorized", "message": "invalid credentials",
			})
		}
		return writeDomainError(c, err)
	}

	c.Response().Header().Set("access", pair.Access)
	c.SetCookie(h.refreshCookie(pair.Refresh))
	return c.NoContent(http.StatusOK)
}

// Reissue rotates a refresh token presented via the "refresh" cookie. All
// validation failures answer 400 with a plain-text reason; the exact bodies
// are part of the contract with existing clients.
func (h *AuthHandler) Reissue(c echo.Context) error {
	presented := ""
	if ck, err := c.Cookie("refresh"); err == nil {
		presented = ck.Value
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pair, err := h.Issuer.Reissue(ctx, presented)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingToken):
			return c.String(http.StatusBadRequest, "refresh token null")
		case errors.Is(err, token.ErrTokenExpired):
			return c.String(http.StatusBadRequest, "refresh token expired")
		case errors.Is(err, token.ErrTokenInvalid),
			errors.Is(err, auth.ErrWrongCategory),
			errors.Is(err, auth.ErrUnknownToken):
			return c.String(http.StatusBadRequest, "invalid refresh token")
		default:
			return writeDomainError(c, err)
		}
	}

	c.Response().Header().Set("access", pair.Access)
	c.SetCookie(h.refreshCookie(pair.Refresh))
	return c.NoContent(http.StatusOK)
}

// refreshCookie builds the refresh-token cookie: HttpOnly against XSS,
// SameSite=Strict against CSRF, lifetime matching the refresh TTL.
func (h *AuthHandler) refreshCookie(refresh string) *http.Cookie {
	return &http.Cookie{
		Name:     "refresh",
		Value:    refresh,
		Path:     "/",
		MaxAge:   int(token.RefreshTokenTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   h.CookieSecure,
	}
}
