package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/user-account-service/internal/token"
)

func runAuthenticated(t *testing.T, codec *token.Codec, authz string) (*httptest.ResponseRecorder, bool, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/probe", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	var caller string
	h := Authenticate(codec)(func(c echo.Context) error {
		reached = true
		caller = CallerID(c)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, reached, caller
}

func TestAuthenticateValidToken(t *testing.T) {
	codec := token.NewCodec("test-secret")
	raw, err := codec.CreateToken(token.CategoryAccess, "caller-id", "ROLE_USER", time.Minute)
	require.NoError(t, err)

	rec, reached, caller := runAuthenticated(t, codec, "Bearer "+raw)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
	assert.Equal(t, "caller-id", caller)
}

func TestAuthenticateMissingHeaderPassesThrough(t *testing.T) {
	codec := token.NewCodec("test-secret")

	tests := []struct {
		name  string
		authz string
	}{
		{name: "no header", authz: ""},
		{name: "not bearer", authz: "Basic dXNlcjpwYXNz"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, reached, caller := runAuthenticated(t, codec, tt.authz)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.True(t, reached, "absent token must pass through unauthenticated")
			assert.Empty(t, caller)
		})
	}
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	codec := token.NewCodec("test-secret")

	expired, err := codec.CreateToken(token.CategoryAccess, "caller-id", "ROLE_USER", -time.Minute)
	require.NoError(t, err)
	forged, err := token.NewCodec("other-secret").CreateToken(token.CategoryAccess, "caller-id", "ROLE_USER", time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name    string
		raw     string
		message string
	}{
		{name: "expired", raw: expired, message: "Token expired"},
		{name: "forged", raw: forged, message: "Invalid JWT Token"},
		{name: "garbage", raw: "zzz", message: "Invalid JWT Token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, reached, _ := runAuthenticated(t, codec, "Bearer "+tt.raw)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, reached, "handler must not run on a bad token")
			assert.JSONEq(t,
				`{"error":"Unauthorized","message":"`+tt.message+`"}`,
				rec.Body.String())
		})
	}
}

func TestRequireIdentity(t *testing.T) {
	e := echo.New()

	t.Run("rejects anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users/x", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		h := RequireIdentity(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
		require.NoError(t, h(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("accepts trusted header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/users/x", nil)
		req.Header.Set(HeaderUserID, "caller-id")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		h := RequireIdentity(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
		require.NoError(t, h(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
