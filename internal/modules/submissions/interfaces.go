package submissions

import (
	"context"

	"github.com/google/uuid"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/domain"
)

// SubmissionRepository defines the data access the module needs.
type SubmissionRepository interface {
	List(ctx context.Context) ([]domain.FormSubmission, error)
	Create(ctx context.Context, s *domain.FormSubmission) (*domain.FormSubmission, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ClientDirectory resolves the submitted email to an existing client or
// registers a fresh one.
type ClientDirectory interface {
	FindByEmail(email string) (domain.Client, bool)
	CreateFromSubmission(ctx context.Context, name, email string) (domain.Client, error)
}

// NotificationSender receives domain events for best-effort alerting.
type NotificationSender interface {
	NotifyFormSubmitted(ctx context.Context, submission domain.FormSubmission)
}
