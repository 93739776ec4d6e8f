package payments

import (
	"errors"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/pkg/apperr"
)

var (
	ErrInvalidAmount        = apperr.Validation("payments.create", "amount must be a finite number greater than zero")
	ErrInvalidStatus        = apperr.Validation("payments.update", "status must be one of pending, confirmed, failed")
	ErrUnknownClient        = apperr.Validation("payments.create", "client_id does not match a known client")
	ErrConfirmFailedPayment = apperr.Conflict("payments.confirm", errors.New("failed payments cannot be confirmed"))
)
