package payments

import "github.com/google/uuid"

// CreatePaymentRequest records an amount received, optionally against a
// client. PaymentDate defaults to now when omitted.
type CreatePaymentRequest struct {
	Amount      float64    `json:"amount" binding:"required"`
	ClientID    *uuid.UUID `json:"client_id"`
	Status      string     `json:"status"`
	PaymentDate *string    `json:"payment_date"`
	Notes       *string    `json:"notes"`
}

// UpdatePaymentRequest carries the fields being changed; nil means untouched.
type UpdatePaymentRequest struct {
	Amount *float64 `json:"amount"`
	Status *string  `json:"status"`
	Notes  *string  `json:"notes"`
}
