package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/user-account-service/internal/auth"
	"github.com/iliyamo/user-account-service/internal/model"
	"github.com/iliyamo/user-account-service/internal/repository"
)

// PaymentMethodService manages a user's stored payment methods. Billing-key
// creation is a stub: the real payment-gateway integration lives in the
// billing service, which consumes the default-method lookup.
type PaymentMethodService struct {
	Users   repository.UserStore
	Methods repository.PaymentMethodStore
}

func NewPaymentMethodService(users repository.UserStore, methods repository.PaymentMethodStore) *PaymentMethodService {
	return &PaymentMethodService{Users: users, Methods: methods}
}

// Register stores a new payment method for the caller's own account. The
// first method a user registers becomes the default.
func (s *PaymentMethodService) Register(ctx context.Context, userID, callerID, cardNumber, expiryDate string) (model.PaymentMethod, error) {
	u, err := s.Users.FindByUserID(ctx, userID)
	if err != nil {
		return model.PaymentMethod{}, err
	}
	if err := auth.AssertOwner(u, callerID); err != nil {
		return model.PaymentMethod{}, err
	}

	hasAny, err := s.Methods.ExistsByUser(ctx, u.ID)
	if err != nil {
		return model.PaymentMethod{}, err
	}

	return s.Methods.Create(ctx, model.PaymentMethod{
		UserID:           u.ID,
		BillingKey:       "dummy-billing-key-" + uuid.NewString(),
		CardIssuer:       inferCardIssuer(cardNumber),
		ExpiryDate:       expiryDate,
		CardNumberMasked: maskCardNumber(cardNumber),
		IsDefault:        !hasAny,
	})
}

// List returns the caller's own payment methods.
func (s *PaymentMethodService) List(ctx context.Context, userID, callerID string) ([]model.PaymentMethod, error) {
	u, err := s.Users.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := auth.AssertOwner(u, callerID); err != nil {
		return nil, err
	}
	return s.Methods.FindByUser(ctx, u.ID)
}

// Delete removes one of the caller's own payment methods. A method owned by
// someone else reads as not found rather than denied, so method ids cannot
// be probed across accounts.
func (s *PaymentMethodService) Delete(ctx context.Context, userID, callerID string, methodID uint64) error {
	u, err := s.Users.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if err := auth.AssertOwner(u, callerID); err != nil {
		return err
	}
	pm, err := s.Methods.FindByID(ctx, methodID)
	if err != nil {
		return err
	}
	if pm.UserID != u.ID {
		return repository.ErrPaymentMethodNotFound
	}
	return s.Methods.Delete(ctx, methodID)
}

// SetDefault marks one of the caller's own methods as the default.
func (s *PaymentMethodService) SetDefault(ctx context.Context, userID, callerID string, methodID uint64) error {
	u, err := s.Users.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if err := auth.AssertOwner(u, callerID); err != nil {
		return err
	}
	return s.Methods.SetDefault(ctx, u.ID, methodID)
}

// GetDefault returns a user's default payment method together with the
// owning account, for the billing service's lookup.
func (s *PaymentMethodService) GetDefault(ctx context.Context, userID string) (model.User, model.PaymentMethod, error) {
	u, err := s.Users.FindByUserID(ctx, userID)
	if err != nil {
		return model.User{}, model.PaymentMethod{}, err
	}
	pm, err := s.Methods.FindDefaultByUser(ctx, u.ID)
	if err != nil {
		return model.User{}, model.PaymentMethod{}, err
	}
	return u, pm, nil
}

// inferCardIssuer guesses the issuer from the leading digits, enough for
// display purposes only.
func inferCardIssuer(cardNumber string) string {
	switch {
	case len(cardNumber) < 4:
		return "Unknown"
	case strings.HasPrefix(cardNumber, "4"):
		return "Visa"
	case strings.HasPrefix(cardNumber, "5"):
		return "MasterCard"
	case strings.HasPrefix(cardNumber, "34"), strings.HasPrefix(cardNumber, "37"):
		return "American Express"
	default:
		return "Other"
	}
}

// maskCardNumber keeps the first and last four digits. Inputs too short to
// mask are returned as-is.
func maskCardNumber(cardNumber string) string {
	if len(cardNumber) < 10 {
		return cardNumber
	}
	return cardNumber[:4] + "-XXXX-XXXX-" + cardNumber[len(cardNumber)-4:]
}
