package model

// Principal is the request-scoped authenticated caller, reconstructed from
// validated token claims alone. It is deliberately minimal: the external
// user id and the role are the only facts a validated token proves, and the
// id is all the ownership check needs.
type Principal struct {
	UserID string // external user id (token subject)
	Role   string
}
