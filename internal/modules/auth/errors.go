package auth

import "github.com/Eli45-23/aichatflows-app-sub001/internal/pkg/apperr"

var (
	ErrEmailRequired      = apperr.Validation("auth.signup", "email is required")
	ErrPasswordTooShort   = apperr.Validation("auth.signup", "password must be at least 8 characters")
	ErrInvalidCredentials = apperr.Validation("auth.signin", "email or password is incorrect")
)
