package notifications

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/domain"
)

// NotificationRepository defines the data access the module needs.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	ExistsWithin(ctx context.Context, userID uuid.UUID, typ domain.NotificationType, uniqueKey string, window time.Duration) (bool, error)
	MarkAsRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
}

// RecipientDirectory yields the operator accounts a domain event fans out to.
type RecipientDirectory interface {
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
}

// Deduper is the fast-path claim check ahead of the database window query.
// Redis backs it in production; a nil Deduper falls through to the database.
type Deduper interface {
	ClaimOnce(ctx context.Context, key string, ttl time.Duration) (bool, error)
}
