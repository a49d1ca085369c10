package model

import "time"

// Role values assigned at registration. The public signup endpoint always
// produces RoleUser; the internal endpoint may assign RoleDriver or RoleAdmin.
// A role is fixed at creation and never changed by self-service operations.
const (
	RoleUser   = "ROLE_USER"
	RoleAdmin  = "ROLE_ADMIN"
	RoleDriver = "ROLE_DRIVER"
)

// User represents an application user record as stored in the `users` table.
// Each field corresponds to a column in the database. The json tags are
// omitted because these structs are used by the repository layer; handlers
// define separate response types with appropriate JSON tags.
//
// ID is the storage-assigned numeric key and never leaves the process.
// UserID is the opaque external identifier generated once at creation; it is
// the token subject and the only key used for ownership comparison.
type User struct {
	ID          uint64    // users.id
	UserID      string    // users.user_id (external, immutable, unique)
	Username    string    // users.username (login handle, unique)
	Name        string    // users.name (display name)
	Role        string    // users.role
	Email       string    // users.email (unique)
	Password    string    // users.password (bcrypt hash)
	PhoneNumber string    // users.phone_number (unique)
	CreatedAt   time.Time // users.created_at
	UpdatedAt   time.Time // users.updated_at
}
