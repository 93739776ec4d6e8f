package goals

import "github.com/Eli45-23/aichatflows-app-sub001/internal/pkg/apperr"

var (
	ErrTitleRequired    = apperr.Validation("goals.create", "title is required")
	ErrInvalidTarget    = apperr.Validation("goals.create", "target must be greater than zero")
	ErrInvalidFrequency = apperr.Validation("goals.create", "frequency must be one of daily, weekly, monthly")
	ErrUnknownClient    = apperr.Validation("goals.create", "client_id does not match a known client")
)
