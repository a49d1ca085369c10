package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-account-service/internal/middleware"
	"github.com/iliyamo/user-account-service/internal/model"
	"github.com/iliyamo/user-account-service/internal/service"
)

// PaymentMethodHandler serves /api/users/:id/payment-methods. Every route is
// ownership-gated: the caller can only touch methods on their own account.
type PaymentMethodHandler struct {
	Svc *service.PaymentMethodService
}

func NewPaymentMethodHandler(svc *service.PaymentMethodService) *PaymentMethodHandler {
	return &PaymentMethodHandler{Svc: svc}
}

type registerPaymentReq struct {
	CardNumber string `json:"card_number"`
	ExpiryDate string `json:"expiry_date"`
}

type paymentMethodResp struct {
	ID               uint64 `json:"id"`
	CardIssuer       string `json:"card_issuer"`
	CardNumberMasked string `json:"card_number_masked"`
	IsDefault        bool   `json:"is_default"`
}

func toPaymentMethodResp(pm model.PaymentMethod) paymentMethodResp {
	return paymentMethodResp{
		ID:               pm.ID,
		CardIssuer:       pm.CardIssuer,
		CardNumberMasked: pm.CardNumberMasked,
		IsDefault:        pm.IsDefault,
	}
}

// Register stores a new payment method. The card number is masked before it
// is persisted; the billing key is a stub pending the gateway integration.
func (h *PaymentMethodHandler) Register(c echo.Context) error {
	var req registerPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid body"})
	}
	if req.CardNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "card_number is required"})
	}
	if req.ExpiryDate == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "expiry_date is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pm, err := h.Svc.Register(ctx, c.Param("id"), middleware.CallerID(c), req.CardNumber, req.ExpiryDate)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, toPaymentMethodResp(pm))
}

// List returns the caller's payment methods.
func (h *PaymentMethodHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	methods, err := h.Svc.List(ctx, c.Param("id"), middleware.CallerID(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	out := make([]paymentMethodResp, 0, len(methods))
	for _, pm := range methods {
		out = append(out, toPaymentMethodResp(pm))
	}
	return c.JSON(http.StatusOK, out)
}

// Delete removes one payment method.
func (h *PaymentMethodHandler) Delete(c echo.Context) error {
	methodID, err := strconv.ParseUint(c.Param("methodId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid payment method id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Svc.Delete(ctx, c.Param("id"), middleware.CallerID(c), methodID); err != nil {
		return writeDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SetDefault marks one payment method as the default for billing.
func (h *PaymentMethodHandler) SetDefault(c echo.Context) error {
	methodID, err := strconv.ParseUint(c.Param("methodId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid payment method id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Svc.SetDefault(ctx, c.Param("id"), middleware.CallerID(c), methodID); err != nil {
		return writeDomainError(c, err)
	}
	return c.NoContent(http.StatusOK)
}
