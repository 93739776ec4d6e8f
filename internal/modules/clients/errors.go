package clients

import "github.com/Eli45-23/aichatflows-app-sub001/internal/pkg/apperr"

var (
	ErrNameRequired  = apperr.Validation("clients.create", "name is required")
	ErrInvalidStatus = apperr.Validation("clients.update", "status must be one of active, in_progress, paused, cancelled")
	ErrInvalidPlan   = apperr.Validation("clients.update", "plan must be starter or pro")
	ErrInvalidPaid   = apperr.Validation("clients.update", "payment status must be paid, unpaid or overdue")
)
