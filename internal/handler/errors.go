package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-account-service/internal/auth"
	"github.com/iliyamo/user-account-service/internal/repository"
	"github.com/iliyamo/user-account-service/internal/service"
)

// writeDomainError maps domain errors onto HTTP statuses in one place, the
// way the route handlers all expect: 409 for duplicates, 404 for missing
// resources, 403 for ownership violations, 400 for a bad password, and a
// redacted 500 for everything else. Domain bodies are {"message": ...};
// authentication failures use the {"error","message"} shape and are mapped
// where they occur.
func writeDomainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrEmailExists),
		errors.Is(err, repository.ErrPhoneNumberExists):
		return c.JSON(http.StatusConflict, echo.Map{"message": err.Error()})
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrPaymentMethodNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
	case errors.Is(err, auth.ErrAccessDenied):
		return c.JSON(http.StatusForbidden, echo.Map{"message": err.Error()})
	case errors.Is(err, service.ErrInvalidPassword):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	default:
		// Never echo internal error text on a 500.
		log.Printf("unexpected error: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "unexpected error"})
	}
}
