package payments

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/domain"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/metrics"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/pkg/apperr"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/realtime"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/store"
)

// repoSource adapts the repository to the store's source contract.
type repoSource struct {
	repo PaymentRepository
}

func (s repoSource) List(ctx context.Context) ([]domain.Payment, error) {
	return s.repo.List(ctx)
}

func (s repoSource) Insert(ctx context.Context, p domain.Payment) (domain.Payment, error) {
	created, err := s.repo.Create(ctx, &p)
	if err != nil {
		return domain.Payment{}, err
	}
	return *created, nil
}

func (s repoSource) Update(ctx context.Context, p domain.Payment) (domain.Payment, error) {
	updated, err := s.repo.Update(ctx, &p)
	if err != nil {
		return domain.Payment{}, err
	}
	return *updated, nil
}

func (s repoSource) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

type Service struct {
	store   *store.Store[domain.Payment]
	clients ClientDirectory
	notifs  NotificationSender
	logger  *slog.Logger
}

func NewService(repo PaymentRepository, bus *realtime.Bus, clients ClientDirectory, notifs NotificationSender, logger *slog.Logger, m *metrics.Metrics) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := store.New(store.Config[domain.Payment]{
		Table:   "payments",
		Source:  repoSource{repo: repo},
		Bus:     bus,
		Logger:  logger,
		Metrics: m,
		SearchFields: func(p domain.Payment) []string {
			fields := []string{strconv.FormatFloat(p.Amount, 'f', 2, 64), string(p.Status)}
			if p.Notes != nil {
				fields = append(fields, *p.Notes)
			}
			return fields
		},
	})
	return &Service{store: s, clients: clients, notifs: notifs, logger: logger}
}

func (s *Service) Store() *store.Store[domain.Payment] { return s.store }

func (s *Service) Refresh(ctx context.Context, foreground bool) error {
	return s.store.Refresh(ctx, foreground)
}

func (s *Service) List() []domain.Payment {
	records, _ := s.store.Snapshot()
	return records
}

func (s *Service) Search(q string) []domain.Payment {
	return s.store.Search(q)
}

func (s *Service) Get(id uuid.UUID) (domain.Payment, error) {
	p, ok := s.store.Find(id)
	if !ok {
		return domain.Payment{}, apperr.NotFound("payments.get", "payment is not in the local collection")
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, req CreatePaymentRequest) (domain.Payment, error) {
	if !validAmount(req.Amount) {
		return domain.Payment{}, ErrInvalidAmount
	}

	status := domain.PaymentPending
	if req.Status != "" {
		var err error
		if status, err = parseStatus(req.Status); err != nil {
			return domain.Payment{}, err
		}
	}

	if req.ClientID != nil && !s.clients.Exists(*req.ClientID) {
		return domain.Payment{}, ErrUnknownClient
	}

	paymentDate := time.Now()
	if req.PaymentDate != nil {
		parsed, err := time.Parse(time.RFC3339, *req.PaymentDate)
		if err != nil {
			return domain.Payment{}, apperr.Validation("payments.create", "payment_date must be RFC 3339")
		}
		paymentDate = parsed
	}

	created, err := s.store.Create(ctx, domain.Payment{
		Amount:      req.Amount,
		ClientID:    req.ClientID,
		Status:      status,
		PaymentDate: paymentDate,
		Notes:       req.Notes,
	})
	if err != nil {
		return domain.Payment{}, err
	}

	if created.Status == domain.PaymentConfirmed {
		s.afterConfirm(ctx, created)
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdatePaymentRequest) (domain.Payment, error) {
	var wasConfirmed bool
	if existing, ok := s.store.Find(id); ok {
		wasConfirmed = existing.Status == domain.PaymentConfirmed
	}

	updated, err := s.store.Update(ctx, id, func(p domain.Payment) (domain.Payment, error) {
		if req.Amount != nil {
			if !validAmount(*req.Amount) {
				return domain.Payment{}, ErrInvalidAmount
			}
			p.Amount = *req.Amount
		}
		if req.Status != nil {
			status, err := parseStatus(*req.Status)
			if err != nil {
				return domain.Payment{}, err
			}
			p.Status = status
		}
		if req.Notes != nil {
			p.Notes = req.Notes
		}
		return p, nil
	})
	if err != nil {
		return domain.Payment{}, err
	}

	if !wasConfirmed && updated.Status == domain.PaymentConfirmed {
		s.afterConfirm(ctx, updated)
	}
	return updated, nil
}

// Confirm marks a pending payment confirmed, flips the linked client to paid
// and emits a notification. Failed payments stay failed.
func (s *Service) Confirm(ctx context.Context, id uuid.UUID) (domain.Payment, error) {
	updated, err := s.store.Update(ctx, id, func(p domain.Payment) (domain.Payment, error) {
		if p.Status == domain.PaymentFailed {
			return domain.Payment{}, ErrConfirmFailedPayment
		}
		p.Status = domain.PaymentConfirmed
		return p, nil
	})
	if err != nil {
		return domain.Payment{}, err
	}

	s.afterConfirm(ctx, updated)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.Delete(ctx, id)
}

// afterConfirm runs the side effects of a confirmation. Both are best-effort:
// the payment itself is already saved.
func (s *Service) afterConfirm(ctx context.Context, p domain.Payment) {
	if p.ClientID != nil && s.clients != nil {
		if _, err := s.clients.MarkPaid(ctx, *p.ClientID); err != nil {
			s.logger.Warn("could not mark client paid after confirmation", "client_id", *p.ClientID, "err", err)
		}
	}
	if s.notifs != nil {
		s.notifs.NotifyPaymentConfirmed(ctx, p)
	}
}

func validAmount(amount float64) bool {
	return amount > 0 && !math.IsNaN(amount) && !math.IsInf(amount, 0)
}

func parseStatus(raw string) (domain.PaymentStatus, error) {
	switch domain.PaymentStatus(raw) {
	case domain.PaymentPending, domain.PaymentConfirmed, domain.PaymentFailed:
		return domain.PaymentStatus(raw), nil
	default:
		return "", ErrInvalidStatus
	}
}
