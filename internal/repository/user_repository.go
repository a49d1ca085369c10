package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/user-account-service/internal/model"
)

// UserStore is the persistence contract for user records. Services and
// handlers depend on this interface so tests can substitute in-memory fakes.
type UserStore interface {
	Create(ctx context.Context, u model.User) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
	FindByUserID(ctx context.Context, userID string) (model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhoneNumber(ctx context.Context, phone string) (bool, error)
	Update(ctx context.Context, userID, name, phone string) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	Delete(ctx context.Context, userID string) error
}

// UserRepo implements UserStore over MySQL.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,user_id,username,name,role,email,password,phone_number,created_at,updated_at"

// Create inserts a user row and returns it with the storage-assigned key.
// The caller is responsible for duplicate pre-checks; unique-constraint
// violations that slip through a race still surface as the domain errors.
func (r *UserRepo) Create(ctx context.Context, u model.User) (model.User, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (user_id, username, name, role, email, password, phone_number) VALUES (?,?,?,?,?,?,?)",
		u.UserID, u.Username, u.Name, u.Role, u.Email, u.Password, u.PhoneNumber)
	if err != nil {
		if isDuplicateKey(err) {
			switch {
			case strings.Contains(err.Error(), "email"):
				return model.User{}, ErrEmailExists
			case strings.Contains(err.Error(), "phone"):
				return model.User{}, ErrPhoneNumberExists
			}
		}
		return model.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}
	u.ID = uint64(id)
	return u, nil
}

// FindByUsername fetches a user by login handle.
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (model.User, error) {
	return r.findBy(ctx, "username", username)
}

// FindByUserID fetches a user by external identifier.
func (r *UserRepo) FindByUserID(ctx context.Context, userID string) (model.User, error) {
	return r.findBy(ctx, "user_id", userID)
}

func (r *UserRepo) findBy(ctx context.Context, column, value string) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE "+column+"=? LIMIT 1",
		value).Scan(&u.ID, &u.UserID, &u.Username, &u.Name, &u.Role, &u.Email, &u.Password, &u.PhoneNumber, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// ExistsByEmail reports whether any user holds the given email.
func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email", email)
}

// ExistsByPhoneNumber reports whether any user holds the given phone number.
func (r *UserRepo) ExistsByPhoneNumber(ctx context.Context, phone string) (bool, error) {
	return r.exists(ctx, "phone_number", phone)
}

func (r *UserRepo) exists(ctx context.Context, column, value string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM users WHERE "+column+"=? LIMIT 1", value).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Update rewrites the mutable profile fields of the user with the given
// external id.
func (r *UserRepo) Update(ctx context.Context, userID, name, phone string) error {
	// RowsAffected is not checked here: MySQL reports zero affected rows for
	// a no-op update, which is not a missing user. Callers load the target
	// first, so absence is caught before this point.
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET name=?, phone_number=? WHERE user_id=?",
		name, phone, userID)
	if err != nil && isDuplicateKey(err) {
		return ErrPhoneNumberExists
	}
	return err
}

// UpdatePassword replaces the stored password hash.
func (r *UserRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET password=? WHERE user_id=?", passwordHash, userID)
	if err != nil {
		return err
	}
	return noRowsAsNotFound(res, ErrUserNotFound)
}

// Delete removes the user row. Dependent payment methods go with it through
// the ON DELETE CASCADE foreign key declared in the schema.
func (r *UserRepo) Delete(ctx context.Context, userID string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE user_id=?", userID)
	if err != nil {
		return err
	}
	return noRowsAsNotFound(res, ErrUserNotFound)
}

// isDuplicateKey recognizes MySQL error 1062 (duplicate entry).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}

func noRowsAsNotFound(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
