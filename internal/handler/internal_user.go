package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-account-service/internal/cache"
	"github.com/iliyamo/user-account-service/internal/model"
	"github.com/iliyamo/user-account-service/internal/service"
)

// InternalUserHandler serves the service-to-service surface under
// /internal/api/users. These routes carry no end-user authentication; the
// deployment exposes them on the trusted network only.
type InternalUserHandler struct {
	Users    *service.UserService
	Payments *service.PaymentMethodService
	Cache    *cache.UserCache
}

func NewInternalUserHandler(users *service.UserService, payments *service.PaymentMethodService, c *cache.UserCache) *InternalUserHandler {
	return &InternalUserHandler{Users: users, Payments: payments, Cache: c}
}

type internalCreateReq struct {
	createUserReq
	Role string `json:"role"`
}

type internalUserResp struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role"`
}

type paymentInfoResp struct {
	UserID           string `json:"user_id"`
	Email            string `json:"email"`
	BillingKey       string `json:"billing_key"`
	CardIssuer       string `json:"card_issuer"`
	CardNumberMasked string `json:"card_number_masked"`
}

// Register creates an account with a caller-specified role, defaulting to
// the driver role that motivated this entry point.
func (h *InternalUserHandler) Register(c echo.Context) error {
	var req internalCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
	}
	role := req.Role
	if role == "" {
		role = model.RoleDriver
	}
	if role != model.RoleUser && role != model.RoleAdmin && role != model.RoleDriver {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "unknown role"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.Register(ctx, service.RegisterRequest{
		Username:    req.Username,
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
	}, role)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, userSummary{UserID: u.UserID, Email: u.Email, Name: u.Name})
}

// Lookup resolves an account by external id for other internal services,
// answering from the Redis cache when possible.
func (h *InternalUserHandler) Lookup(c echo.Context) error {
	userID := c.Param("userId")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var cached internalUserResp
	if h.Cache.Get(ctx, userID, &cached) {
		c.Response().Header().Set("X-Cache", "HIT")
		return c.JSON(http.StatusOK, cached)
	}

	u, err := h.Users.Lookup(ctx, userID)
	if err != nil {
		return writeDomainError(c, err)
	}
	resp := internalUserResp{
		UserID:      u.UserID,
		Username:    u.Username,
		Name:        u.Name,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
	}
	h.Cache.Set(ctx, userID, resp)
	return c.JSON(http.StatusOK, resp)
}

// DefaultPaymentMethod is the billing service's lookup: the account plus its
// default payment method, including the billing key.
func (h *InternalUserHandler) DefaultPaymentMethod(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, pm, err := h.Payments.GetDefault(ctx, c.Param("userId"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, paymentInfoResp{
		UserID:           u.UserID,
		Email:            u.Email,
		BillingKey:       pm.BillingKey,
		CardIssuer:       pm.CardIssuer,
		CardNumberMasked: pm.CardNumberMasked,
	})
}
