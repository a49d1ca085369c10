package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-account-service/internal/cache"
	"github.com/iliyamo/user-account-service/internal/middleware"
	"github.com/iliyamo/user-account-service/internal/model"
	"github.com/iliyamo/user-account-service/internal/service"
)

// UserHandler serves the public account endpoints under /api/users. All
// operations on an existing account are keyed by the external id in the
// path and ownership-checked against the caller's identity.
type UserHandler struct {
	Svc   *service.UserService
	Cache *cache.UserCache
}

func NewUserHandler(svc *service.UserService, c *cache.UserCache) *UserHandler {
	return &UserHandler{Svc: svc, Cache: c}
}

// ----- DTOs -----

type createUserReq struct {
	Username    string `json:"username"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number"`
}

type updateUserReq struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
}

type changePasswordReq struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type userSummary struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

type userProfile struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role"`
}

// validate returns the first field-level violation, empty when valid.
func (r createUserReq) validate() string {
	switch {
	case r.Username == "":
		return "username is required"
	case r.Name == "":
		return "name is required"
	case r.Email == "":
		return "email is required"
	case r.Password == "":
		return "password is required"
	case r.PhoneNumber == "":
		return "phone_number is required"
	}
	return ""
}

// Register creates an account through the public entry point. The role is
// forced to the standard user role regardless of the request.
func (h *UserHandler) Register(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Svc.Register(ctx, service.RegisterRequest{
		Username:    req.Username,
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
	}, model.RoleUser)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, userSummary{UserID: u.UserID, Email: u.Email, Name: u.Name})
}

// Profile returns the caller's own account.
func (h *UserHandler) Profile(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Svc.Profile(ctx, c.Param("id"), middleware.CallerID(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, userProfile{
		UserID:      u.UserID,
		Username:    u.Username,
		Name:        u.Name,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
	})
}

// Update mutates the caller's own display name and phone number.
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "name is required"})
	}
	if req.PhoneNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "phone_number is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	userID := c.Param("id")
	if err := h.Svc.Update(ctx, userID, middleware.CallerID(c), req.Name, req.PhoneNumber); err != nil {
		return writeDomainError(c, err)
	}
	h.Cache.Invalidate(ctx, userID)
	return c.NoContent(http.StatusOK)
}

// ChangePassword verifies the current password and replaces it.
func (h *UserHandler) ChangePassword(c echo.Context) error {
	var req changePasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if req.CurrentPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "current_password is required"})
	}
	if req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "new_password is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Svc.ChangePassword(ctx, c.Param("id"), middleware.CallerID(c), req.CurrentPassword, req.NewPassword); err != nil {
		return writeDomainError(c, err)
	}
	return c.NoContent(http.StatusOK)
}

// Delete removes the caller's own account and, through the schema cascade,
// its payment methods.
func (h *UserHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	userID := c.Param("id")
	if err := h.Svc.Delete(ctx, userID, middleware.CallerID(c)); err != nil {
		return writeDomainError(c, err)
	}
	h.Cache.Invalidate(ctx, userID)
	return c.NoContent(http.StatusNoContent)
}
