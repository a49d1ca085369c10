package model

// PaymentMethod models a row in the `payment_methods` table. Rows belong to
// a user via the internal numeric key and are removed by the database-level
// ON DELETE CASCADE when the owning user is deleted.
//
// BillingKey is a stub value in this service; the real payment-gateway
// integration lives elsewhere. CardNumberMasked keeps only the first and
// last four digits of the original card number.
type PaymentMethod struct {
	ID               uint64 // payment_methods.id
	UserID           uint64 // payment_methods.user_id (FK users.id)
	BillingKey       string // payment_methods.billing_key
	CardIssuer       string // payment_methods.card_issuer
	ExpiryDate       string // payment_methods.expiry_date (MM/YY)
	CardNumberMasked string // payment_methods.card_number_masked
	IsDefault        bool   // payment_methods.is_default
}
