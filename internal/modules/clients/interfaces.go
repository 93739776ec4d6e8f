package clients

import (
	"context"

	"github.com/google/uuid"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/domain"
)

// ClientRepository defines the data access the module needs.
type ClientRepository interface {
	List(ctx context.Context) ([]domain.Client, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	Create(ctx context.Context, c *domain.Client) (*domain.Client, error)
	Update(ctx context.Context, c *domain.Client) (*domain.Client, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// NotificationSender receives domain events for best-effort alerting.
type NotificationSender interface {
	NotifyClientAdded(ctx context.Context, client domain.Client)
}
