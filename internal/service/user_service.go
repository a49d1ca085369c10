// Package service orchestrates the account and payment-method use cases on
// top of the repositories, keeping handlers free of business rules.
package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/user-account-service/internal/auth"
	"github.com/iliyamo/user-account-service/internal/model"
	"github.com/iliyamo/user-account-service/internal/queue"
	"github.com/iliyamo/user-account-service/internal/repository"
	"github.com/iliyamo/user-account-service/internal/utils"
)

// ErrInvalidPassword is returned by ChangePassword when the presented
// current password does not match the stored hash. Handlers translate it
// into HTTP 400.
var ErrInvalidPassword = errors.New("invalid password")

// RegisterRequest carries the fields every registration entry point accepts.
// The role is decided by the entry point, never by this struct.
type RegisterRequest struct {
	Username    string
	Name        string
	Email       string
	Password    string
	PhoneNumber string
}

// UserService implements registration, profile mutation and password change.
// Every mutating operation on an existing account is gated by the ownership
// check before any read or write of the target.
type UserService struct {
	Users      repository.UserStore
	BcryptCost int
	Events     queue.Publisher // optional; nil disables event publishing
}

func NewUserService(users repository.UserStore, bcryptCost int, events queue.Publisher) *UserService {
	return &UserService{Users: users, BcryptCost: bcryptCost, Events: events}
}

// Register creates an account with the role chosen by the calling entry
// point. Duplicate email and phone number are checked before any write; the
// external id is generated here and never changes.
func (s *UserService) Register(ctx context.Context, req RegisterRequest, role string) (model.User, error) {
	if exists, err := s.Users.ExistsByEmail(ctx, req.Email); err != nil {
		return model.User{}, err
	} else if exists {
		return model.User{}, repository.ErrEmailExists
	}
	if exists, err := s.Users.ExistsByPhoneNumber(ctx, req.PhoneNumber); err != nil {
		return model.User{}, err
	} else if exists {
		return model.User{}, repository.ErrPhoneNumberExists
	}

	hash, err := utils.HashPassword(req.Password, s.BcryptCost)
	if err != nil {
		return model.User{}, err
	}
	u, err := s.Users.Create(ctx, model.User{
		UserID:      uuid.NewString(),
		Username:    req.Username,
		Name:        req.Name,
		Role:        role,
		Email:       req.Email,
		Password:    hash,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return model.User{}, err
	}
	log.Printf("user created: user_id=%s role=%s", u.UserID, u.Role)

	if s.Events != nil {
		// Best-effort: a broker outage must not fail the registration.
		_ = s.Events.PublishUserCreated(ctx, queue.UserCreatedEvent{
			UserID:    u.UserID,
			Email:     u.Email,
			Role:      u.Role,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}
	return u, nil
}

// Profile returns the account identified by userID, visible to its owner
// only.
func (s *UserService) Profile(ctx context.Context, userID, callerID string) (model.User, error) {
	u, err := s.Users.FindByUserID(ctx, userID)
	if err != nil {
		return model.User{}, err
	}
	if err := auth.AssertOwner(u, callerID); err != nil {
		return model.User{}, err
	}
	return u, nil
}

// Update mutates the caller's own display name and phone number.
func (s *UserService) Update(ctx context.Context, userID, callerID, name, phone string) error {
	u, err := s.Users.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if err := auth.AssertOwner(u, callerID); err != nil {
		return err
	}
	if phone != u.PhoneNumber {
		if exists, err := s.Users.ExistsByPhoneNumber(ctx, phone); err != nil {
			return err
		} else if exists {
			return repository.ErrPhoneNumberExists
		}
	}
	return s.Users.Update(ctx, userID, name, phone)
}

// ChangePassword verifies the current password before re-hashing and storing
// the new one.
func (s *UserService) ChangePassword(ctx context.Context, userID, callerID, current, next string) error {
	u, err := s.Users.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if err := auth.AssertOwner(u, callerID); err != nil {
		return err
	}
	if !utils.VerifyPassword(u.Password, current) {
		return ErrInvalidPassword
	}
	hash, err := utils.HashPassword(next, s.BcryptCost)
	if err != nil {
		return err
	}
	return s.Users.UpdatePassword(ctx, userID, hash)
}

// Delete removes the caller's own account. Payment methods go with it via
// the schema-level cascade.
func (s *UserService) Delete(ctx context.Context, userID, callerID string) error {
	u, err := s.Users.FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if err := auth.AssertOwner(u, callerID); err != nil {
		return err
	}
	if err := s.Users.Delete(ctx, userID); err != nil {
		return err
	}
	log.Printf("user deleted: user_id=%s", userID)

	if s.Events != nil {
		_ = s.Events.PublishUserDeleted(ctx, queue.UserDeletedEvent{
			UserID:    userID,
			DeletedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}
	return nil
}

// Lookup returns the account identified by userID for internal consumers.
// No ownership check: the internal surface sits behind the trusted network
// boundary.
func (s *UserService) Lookup(ctx context.Context, userID string) (model.User, error) {
	return s.Users.FindByUserID(ctx, userID)
}
