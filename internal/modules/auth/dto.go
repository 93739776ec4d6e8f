package auth

import "github.com/Eli45-23/aichatflows-app-sub001/internal/domain"

// SignUpRequest registers a new operator account.
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignInRequest opens a session for an existing account.
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SessionResponse is the bearer token plus the account it belongs to.
type SessionResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}
