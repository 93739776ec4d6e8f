package goals

import (
	"context"

	"github.com/google/uuid"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/domain"
)

// GoalRepository defines the data access the module needs. List and GetByID
// transparently fall back to the reduced column set on legacy tables.
type GoalRepository interface {
	List(ctx context.Context) ([]domain.Goal, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error)
	Create(ctx context.Context, g *domain.Goal) (*domain.Goal, error)
	Update(ctx context.Context, g *domain.Goal) (*domain.Goal, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ClientDirectory supplies the client snapshot progress is measured against
// and validates per-client scoping.
type ClientDirectory interface {
	Exists(id uuid.UUID) bool
	List() []domain.Client
}

// NotificationSender receives goal-completion events for best-effort alerting.
type NotificationSender interface {
	NotifyGoalCompleted(ctx context.Context, goal domain.Goal)
}
