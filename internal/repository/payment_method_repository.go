package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/user-account-service/internal/model"
)

// PaymentMethodStore is the persistence contract for payment methods. Keys
// are the internal numeric user id; callers resolve external ids first.
type PaymentMethodStore interface {
	Create(ctx context.Context, pm model.PaymentMethod) (model.PaymentMethod, error)
	FindByID(ctx context.Context, id uint64) (model.PaymentMethod, error)
	FindByUser(ctx context.Context, userID uint64) ([]model.PaymentMethod, error)
	FindDefaultByUser(ctx context.Context, userID uint64) (model.PaymentMethod, error)
	ExistsByUser(ctx context.Context, userID uint64) (bool, error)
	SetDefault(ctx context.Context, userID, methodID uint64) error
	Delete(ctx context.Context, id uint64) error
}

// PaymentMethodRepo implements PaymentMethodStore over MySQL.
type PaymentMethodRepo struct{ DB *sql.DB }

func NewPaymentMethodRepo(db *sql.DB) *PaymentMethodRepo {
	return &PaymentMethodRepo{DB: db}
}

const paymentMethodColumns = "id,user_id,billing_key,card_issuer,expiry_date,card_number_masked,is_default"

// Create inserts a payment-method row and returns it with its key.
func (r *PaymentMethodRepo) Create(ctx context.Context, pm model.PaymentMethod) (model.PaymentMethod, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO payment_methods (user_id, billing_key, card_issuer, expiry_date, card_number_masked, is_default) VALUES (?,?,?,?,?,?)",
		pm.UserID, pm.BillingKey, pm.CardIssuer, pm.ExpiryDate, pm.CardNumberMasked, pm.IsDefault)
	if err != nil {
		return model.PaymentMethod{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.PaymentMethod{}, err
	}
	pm.ID = uint64(id)
	return pm, nil
}

// FindByID fetches a payment method by its key.
func (r *PaymentMethodRepo) FindByID(ctx context.Context, id uint64) (model.PaymentMethod, error) {
	var pm model.PaymentMethod
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+paymentMethodColumns+" FROM payment_methods WHERE id=? LIMIT 1",
		id).Scan(&pm.ID, &pm.UserID, &pm.BillingKey, &pm.CardIssuer, &pm.ExpiryDate, &pm.CardNumberMasked, &pm.IsDefault)
	if errors.Is(err, sql.ErrNoRows) {
		return model.PaymentMethod{}, ErrPaymentMethodNotFound
	}
	return pm, err
}

// FindByUser lists all payment methods owned by a user.
func (r *PaymentMethodRepo) FindByUser(ctx context.Context, userID uint64) ([]model.PaymentMethod, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+paymentMethodColumns+" FROM payment_methods WHERE user_id=? ORDER BY id",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PaymentMethod
	for rows.Next() {
		var pm model.PaymentMethod
		if err := rows.Scan(&pm.ID, &pm.UserID, &pm.BillingKey, &pm.CardIssuer, &pm.ExpiryDate, &pm.CardNumberMasked, &pm.IsDefault); err != nil {
			return nil, err
		}
		out = append(out, pm)
	}
	return out, rows.Err()
}

// FindDefaultByUser fetches the user's default payment method.
func (r *PaymentMethodRepo) FindDefaultByUser(ctx context.Context, userID uint64) (model.PaymentMethod, error) {
	var pm model.PaymentMethod
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+paymentMethodColumns+" FROM payment_methods WHERE user_id=? AND is_default=1 LIMIT 1",
		userID).Scan(&pm.ID, &pm.UserID, &pm.BillingKey, &pm.CardIssuer, &pm.ExpiryDate, &pm.CardNumberMasked, &pm.IsDefault)
	if errors.Is(err, sql.ErrNoRows) {
		return model.PaymentMethod{}, ErrPaymentMethodNotFound
	}
	return pm, err
}

// ExistsByUser reports whether the user owns any payment method.
func (r *PaymentMethodRepo) ExistsByUser(ctx context.Context, userID uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM payment_methods WHERE user_id=? LIMIT 1", userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SetDefault makes methodID the user's only default. Clear-then-set runs in
// a transaction so a failure cannot leave the user with zero or two
// defaults.
func (r *PaymentMethodRepo) SetDefault(ctx context.Context, userID, methodID uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"UPDATE payment_methods SET is_default=0 WHERE user_id=?", userID); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx,
		"UPDATE payment_methods SET is_default=1 WHERE id=? AND user_id=?", methodID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPaymentMethodNotFound
	}
	return tx.Commit()
}

// Delete removes a payment-method row.
func (r *PaymentMethodRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM payment_methods WHERE id=?", id)
	if err != nil {
		return err
	}
	return noRowsAsNotFound(res, ErrPaymentMethodNotFound)
}
