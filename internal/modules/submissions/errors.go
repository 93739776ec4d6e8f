package submissions

import "github.com/Eli45-23/aichatflows-app-sub001/internal/pkg/apperr"

var (
	ErrEmailRequired = apperr.Validation("submissions.create", "email is required")
	ErrInvalidEmail  = apperr.Validation("submissions.create", "email is not valid")
)
