// Package queue defines account lifecycle events exchanged over the message
// broker and the publisher that emits them.
package queue

// Queue names for account lifecycle events.
const (
	QueueUserCreated = "user.created"
	QueueUserDeleted = "user.deleted"
)

// UserCreatedEvent is published after a successful registration. It carries
// enough for downstream consumers (billing, driver dispatch) to provision
// without querying this service. Only the external id identifies the user.
type UserCreatedEvent struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

// UserDeletedEvent is published after an account and its payment methods are
// removed, so consumers can drop their own dependent state.
type UserDeletedEvent struct {
	UserID    string `json:"user_id"`
	DeletedAt string `json:"deleted_at"`
}
