package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/user-account-service/internal/auth"
	"github.com/iliyamo/user-account-service/internal/model"
	"github.com/iliyamo/user-account-service/internal/repository"
	"github.com/iliyamo/user-account-service/internal/utils"
)

func registerReq() RegisterRequest {
	return RegisterRequest{
		Username:    "alice",
		Name:        "Alice",
		Email:       "a@x.com",
		Password:    "secret-pw",
		PhoneNumber: "01011112222",
	}
}

func TestRegister(t *testing.T) {
	events := &recordingPublisher{}
	svc := NewUserService(newMemUserStore(), 4, events)
	ctx := context.Background()

	u, err := svc.Register(ctx, registerReq(), model.RoleUser)
	require.NoError(t, err)
	assert.NotEmpty(t, u.UserID)
	assert.Equal(t, model.RoleUser, u.Role)
	assert.NotEqual(t, "secret-pw", u.Password, "password must be stored hashed")
	assert.True(t, utils.VerifyPassword(u.Password, "secret-pw"))

	require.Len(t, events.created, 1)
	assert.Equal(t, u.UserID, events.created[0].UserID)
}

func TestRegisterDuplicates(t *testing.T) {
	svc := NewUserService(newMemUserStore(), 4, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerReq(), model.RoleUser)
	require.NoError(t, err)

	t.Run("duplicate email", func(t *testing.T) {
		req := registerReq()
		req.Username = "bob"
		req.PhoneNumber = "01033334444"
		_, err := svc.Register(ctx, req, model.RoleUser)
		assert.ErrorIs(t, err, repository.ErrEmailExists)
	})

	t.Run("duplicate phone", func(t *testing.T) {
		req := registerReq()
		req.Username = "bob"
		req.Email = "b@x.com"
		_, err := svc.Register(ctx, req, model.RoleUser)
		assert.ErrorIs(t, err, repository.ErrPhoneNumberExists)
	})
}

func TestRegisterEntryPointRoles(t *testing.T) {
	svc := NewUserService(newMemUserStore(), 4, nil)
	ctx := context.Background()

	roles := []string{model.RoleUser, model.RoleDriver, model.RoleAdmin}
	for i, role := range roles {
		req := registerReq()
		req.Username = req.Username + string(rune('a'+i))
		req.Email = req.Username + "@x.com"
		req.PhoneNumber = req.PhoneNumber + string(rune('0'+i))
		u, err := svc.Register(ctx, req, role)
		require.NoError(t, err)
		assert.Equal(t, role, u.Role)
	}
}

func TestOwnershipGates(t *testing.T) {
	store := newMemUserStore()
	svc := NewUserService(store, 4, nil)
	ctx := context.Background()

	a, err := svc.Register(ctx, registerReq(), model.RoleUser)
	require.NoError(t, err)
	reqB := registerReq()
	reqB.Username = "bob"
	reqB.Email = "b@x.com"
	reqB.PhoneNumber = "01033334444"
	b, err := svc.Register(ctx, reqB, model.RoleUser)
	require.NoError(t, err)

	t.Run("cross-user delete denied, target survives", func(t *testing.T) {
		err := svc.Delete(ctx, b.UserID, a.UserID)
		assert.ErrorIs(t, err, auth.ErrAccessDenied)
		_, err = store.FindByUserID(ctx, b.UserID)
		assert.NoError(t, err)
	})

	t.Run("cross-user profile read denied", func(t *testing.T) {
		_, err := svc.Profile(ctx, b.UserID, a.UserID)
		assert.ErrorIs(t, err, auth.ErrAccessDenied)
	})

	t.Run("cross-user update denied", func(t *testing.T) {
		err := svc.Update(ctx, b.UserID, a.UserID, "Mallory", "01099998888")
		assert.ErrorIs(t, err, auth.ErrAccessDenied)
	})

	t.Run("owner operations succeed", func(t *testing.T) {
		require.NoError(t, svc.Update(ctx, a.UserID, a.UserID, "Alice B", "01055556666"))
		got, err := svc.Profile(ctx, a.UserID, a.UserID)
		require.NoError(t, err)
		assert.Equal(t, "Alice B", got.Name)
		assert.Equal(t, "01055556666", got.PhoneNumber)
	})

	t.Run("unknown target reads as not found", func(t *testing.T) {
		_, err := svc.Profile(ctx, "no-such-id", a.UserID)
		assert.ErrorIs(t, err, repository.ErrUserNotFound)
	})
}

func TestChangePassword(t *testing.T) {
	store := newMemUserStore()
	svc := NewUserService(store, 4, nil)
	ctx := context.Background()

	u, err := svc.Register(ctx, registerReq(), model.RoleUser)
	require.NoError(t, err)

	t.Run("wrong current password", func(t *testing.T) {
		err := svc.ChangePassword(ctx, u.UserID, u.UserID, "wrong", "new-pw")
		assert.ErrorIs(t, err, ErrInvalidPassword)
	})

	t.Run("success re-hashes", func(t *testing.T) {
		require.NoError(t, svc.ChangePassword(ctx, u.UserID, u.UserID, "secret-pw", "new-pw"))
		got, err := store.FindByUserID(ctx, u.UserID)
		require.NoError(t, err)
		assert.True(t, utils.VerifyPassword(got.Password, "new-pw"))
		assert.False(t, utils.VerifyPassword(got.Password, "secret-pw"))
	})
}

func TestDeletePublishesEvent(t *testing.T) {
	events := &recordingPublisher{}
	svc := NewUserService(newMemUserStore(), 4, events)
	ctx := context.Background()

	u, err := svc.Register(ctx, registerReq(), model.RoleUser)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, u.UserID, u.UserID))

	require.Len(t, events.deleted, 1)
	assert.Equal(t, u.UserID, events.deleted[0].UserID)
}
