package visits

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/domain"
)

// VisitRepository defines the data access the module needs. Visits have no
// update path: the location is resolved once at creation.
type VisitRepository interface {
	List(ctx context.Context) ([]domain.BusinessVisit, error)
	ListSince(ctx context.Context, since time.Time) ([]domain.BusinessVisit, error)
	Create(ctx context.Context, v *domain.BusinessVisit) (*domain.BusinessVisit, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ClientDirectory validates the optional client reference.
type ClientDirectory interface {
	Exists(id uuid.UUID) bool
}

// NotificationSender receives domain events for best-effort alerting.
type NotificationSender interface {
	NotifyVisitLogged(ctx context.Context, visit domain.BusinessVisit)
}
