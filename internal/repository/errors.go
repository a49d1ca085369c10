// Package repository defines typed stores over the MySQL schema plus the
// sentinel errors shared across them. Handlers and services match these
// values with errors.Is to pick HTTP statuses, so repositories must return
// them instead of driver-specific errors wherever the failure is part of the
// domain contract.
package repository

import "errors"

// ErrUserNotFound is returned when no user row matches the given key.
// Handlers translate it into HTTP 404.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailExists is returned when an insert or update would violate the
// unique email constraint. Handlers translate it into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrPhoneNumberExists is returned when an insert or update would violate
// the unique phone number constraint. Handlers translate it into HTTP 409.
var ErrPhoneNumberExists = errors.New("phone number already exists")

// ErrPaymentMethodNotFound is returned when no payment method matches the
// given key, or when it exists but belongs to a different user. Handlers
// translate it into HTTP 404.
var ErrPaymentMethodNotFound = errors.New("payment method not found")
