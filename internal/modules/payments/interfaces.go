package payments

import (
	"context"

	"github.com/google/uuid"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/domain"
)

// PaymentRepository defines the data access the module needs.
type PaymentRepository interface {
	List(ctx context.Context) ([]domain.Payment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	Update(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ClientDirectory answers whether a referenced client exists and flips its
// payment state when a linked payment confirms.
type ClientDirectory interface {
	Exists(id uuid.UUID) bool
	MarkPaid(ctx context.Context, id uuid.UUID) (domain.Client, error)
}

// NotificationSender receives domain events for best-effort alerting.
type NotificationSender interface {
	NotifyPaymentConfirmed(ctx context.Context, payment domain.Payment)
}
