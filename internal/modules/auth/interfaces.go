package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/domain"
)

// UserRepository defines the data access the module needs.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
