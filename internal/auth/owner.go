package auth

import (
	"errors"

	"github.com/iliyamo/user-account-service/internal/model"
)

// ErrAccessDenied is returned when the caller does not own the target
// resource. Handlers translate it into HTTP 403.
var ErrAccessDenied = errors.New("access denied")

// AssertOwner fails unless the caller's external id equals the target
// account's external id, byte for byte. Authorization is keyed on external
// ids only, so internal numeric keys never become an authorization boundary,
// and the same check serves callers authenticated by token and callers
// arriving via the trusted internal header.
func AssertOwner(target model.User, callerID string) error {
	if callerID == "" || target.UserID != callerID {
		return ErrAccessDenied
	}
	return nil
}
