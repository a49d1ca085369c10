package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/user-account-service/internal/auth"
	"github.com/iliyamo/user-account-service/internal/model"
	"github.com/iliyamo/user-account-service/internal/repository"
)

func newPaymentFixture(t *testing.T) (*PaymentMethodService, model.User, model.User) {
	t.Helper()
	users := newMemUserStore()
	userSvc := NewUserService(users, 4, nil)
	ctx := context.Background()

	a, err := userSvc.Register(ctx, registerReq(), model.RoleUser)
	require.NoError(t, err)
	reqB := registerReq()
	reqB.Username = "bob"
	reqB.Email = "b@x.com"
	reqB.PhoneNumber = "01033334444"
	b, err := userSvc.Register(ctx, reqB, model.RoleUser)
	require.NoError(t, err)

	return NewPaymentMethodService(users, newMemPaymentStore()), a, b
}

func TestRegisterPaymentMethod(t *testing.T) {
	svc, a, _ := newPaymentFixture(t)
	ctx := context.Background()

	first, err := svc.Register(ctx, a.UserID, a.UserID, "4111111111111111", "12/27")
	require.NoError(t, err)
	assert.True(t, first.IsDefault, "first method becomes the default")
	assert.Equal(t, "Visa", first.CardIssuer)
	assert.Equal(t, "4111-XXXX-XXXX-1111", first.CardNumberMasked)
	assert.True(t, strings.HasPrefix(first.BillingKey, "dummy-billing-key-"))

	second, err := svc.Register(ctx, a.UserID, a.UserID, "5500000000000004", "01/28")
	require.NoError(t, err)
	assert.False(t, second.IsDefault)
	assert.Equal(t, "MasterCard", second.CardIssuer)

	methods, err := svc.List(ctx, a.UserID, a.UserID)
	require.NoError(t, err)
	assert.Len(t, methods, 2)
}

func TestPaymentMethodOwnership(t *testing.T) {
	svc, a, b := newPaymentFixture(t)
	ctx := context.Background()

	pm, err := svc.Register(ctx, a.UserID, a.UserID, "4111111111111111", "12/27")
	require.NoError(t, err)

	t.Run("register for someone else denied", func(t *testing.T) {
		_, err := svc.Register(ctx, a.UserID, b.UserID, "4222222222222222", "12/27")
		assert.ErrorIs(t, err, auth.ErrAccessDenied)
	})

	t.Run("list someone else denied", func(t *testing.T) {
		_, err := svc.List(ctx, a.UserID, b.UserID)
		assert.ErrorIs(t, err, auth.ErrAccessDenied)
	})

	t.Run("foreign method id reads as not found", func(t *testing.T) {
		// b deleting a's method through b's own path: the method does not
		// belong to b, so it must not be discoverable.
		_, err := svc.Register(ctx, b.UserID, b.UserID, "370000000000002", "12/27")
		require.NoError(t, err)
		err = svc.Delete(ctx, b.UserID, b.UserID, pm.ID)
		assert.ErrorIs(t, err, repository.ErrPaymentMethodNotFound)
	})
}

func TestSetDefaultAndBillingLookup(t *testing.T) {
	svc, a, _ := newPaymentFixture(t)
	ctx := context.Background()

	first, err := svc.Register(ctx, a.UserID, a.UserID, "4111111111111111", "12/27")
	require.NoError(t, err)
	second, err := svc.Register(ctx, a.UserID, a.UserID, "5500000000000004", "01/28")
	require.NoError(t, err)

	require.NoError(t, svc.SetDefault(ctx, a.UserID, a.UserID, second.ID))

	owner, def, err := svc.GetDefault(ctx, a.UserID)
	require.NoError(t, err)
	assert.Equal(t, a.UserID, owner.UserID)
	assert.Equal(t, second.ID, def.ID)
	assert.NotEqual(t, first.ID, def.ID)
}

func TestInferCardIssuer(t *testing.T) {
	tests := []struct {
		number string
		want   string
	}{
		{number: "4111111111111111", want: "Visa"},
		{number: "5500000000000004", want: "MasterCard"},
		{number: "340000000000009", want: "American Express"},
		{number: "370000000000002", want: "American Express"},
		{number: "6011000000000004", want: "Other"},
		{number: "41", want: "Unknown"},
		{number: "", want: "Unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, inferCardIssuer(tt.number), "number %q", tt.number)
	}
}

func TestMaskCardNumber(t *testing.T) {
	assert.Equal(t, "4111-XXXX-XXXX-1111", maskCardNumber("4111111111111111"))
	// Too short to mask: returned untouched.
	assert.Equal(t, "411111111", maskCardNumber("411111111"))
}
