package clients

import (
	"context"
	"log/slog"
	"strings"
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
	repo ClientRepository
}

func (s repoSource) List(ctx context.Context) ([]domain.Client, error) {
	return s.repo.List(ctx)
}

func (s repoSource) Insert(ctx context.Context, c domain.Client) (domain.Client, error) {
	created, err := s.repo.Create(ctx, &c)
	if err != nil {
		return domain.Client{}, err
	}
	return *created, nil
}

func (s repoSource) Update(ctx context.Context, c domain.Client) (domain.Client, error) {
	updated, err := s.repo.Update(ctx, &c)
	if err != nil {
		return domain.Client{}, err
	}
	return *updated, nil
}

func (s repoSource) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Service owns the cached client collection. Clients are the anchor entity:
// payments, goals, visits and submissions all reference them, so the store
// here is also consulted by those modules for existence checks.
type Service struct {
	store  *store.Store[domain.Client]
	notifs NotificationSender
	logger *slog.Logger
}

func NewService(repo ClientRepository, bus *realtime.Bus, notifs NotificationSender, logger *slog.Logger, m *metrics.Metrics) *Service {
	s := store.New(store.Config[domain.Client]{
		Table:   "clients",
		Source:  repoSource{repo: repo},
		Bus:     bus,
		Logger:  logger,
		Metrics: m,
		SearchFields: func(c domain.Client) []string {
			return []string{c.Name, c.Email}
		},
	})
	return &Service{store: s, notifs: notifs, logger: logger}
}

// Store exposes the underlying collection for the dashboard and for modules
// that validate client references.
func (s *Service) Store() *store.Store[domain.Client] { return s.store }

func (s *Service) Refresh(ctx context.Context, foreground bool) error {
	return s.store.Refresh(ctx, foreground)
}

func (s *Service) List() []domain.Client {
	records, _ := s.store.Snapshot()
	return records
}

func (s *Service) Search(q string) []domain.Client {
	return s.store.Search(q)
}

func (s *Service) Get(id uuid.UUID) (domain.Client, error) {
	c, ok := s.store.Find(id)
	if !ok {
		return domain.Client{}, apperr.NotFound("clients.get", "client is not in the local collection")
	}
	return c, nil
}

// FindByEmail scans the local collection for a case-insensitive email match.
func (s *Service) FindByEmail(email string) (domain.Client, bool) {
	needle := strings.ToLower(strings.TrimSpace(email))
	if needle == "" {
		return domain.Client{}, false
	}
	matches := s.store.FilterFunc(func(c domain.Client) bool {
		return c.Email == needle
	})
	if len(matches) == 0 {
		return domain.Client{}, false
	}
	return matches[0], true
}

// CreateFromSubmission registers the minimal client record an inbound form
// implies. The full profile gets filled in later by hand.
func (s *Service) CreateFromSubmission(ctx context.Context, name, email string) (domain.Client, error) {
	return s.Create(ctx, CreateClientRequest{
		Name:   name,
		Email:  email,
		Status: string(domain.ClientInProgress),
	})
}

// Exists reports whether the id refers to a cached client. Used by other
// modules to validate optional foreign keys before they issue a write.
func (s *Service) Exists(id uuid.UUID) bool {
	_, ok := s.store.Find(id)
	return ok
}

func (s *Service) Create(ctx context.Context, req CreateClientRequest) (domain.Client, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Client{}, ErrNameRequired
	}

	plan := domain.PlanStarter
	if req.Plan != "" {
		var err error
		if plan, err = parsePlan(req.Plan); err != nil {
			return domain.Client{}, err
		}
	}

	status := domain.ClientActive
	if req.Status != "" {
		var err error
		if status, err = parseStatus(req.Status); err != nil {
			return domain.Client{}, err
		}
	}

	created, err := s.store.Create(ctx, domain.Client{
		Name:          name,
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:         strings.TrimSpace(req.Phone),
		Plan:          plan,
		Status:        status,
		PaymentStatus: domain.PaymentUnpaid,
		InPerson:      req.InPerson,
		Notes:         req.Notes,
	})
	if err != nil {
		return domain.Client{}, err
	}

	if s.notifs != nil {
		s.notifs.NotifyClientAdded(ctx, created)
	}
	return created, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateClientRequest) (domain.Client, error) {
	return s.store.Update(ctx, id, func(c domain.Client) (domain.Client, error) {
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return domain.Client{}, ErrNameRequired
			}
			c.Name = name
		}
		if req.Email != nil {
			c.Email = strings.ToLower(strings.TrimSpace(*req.Email))
		}
		if req.Phone != nil {
			c.Phone = strings.TrimSpace(*req.Phone)
		}
		if req.Plan != nil {
			plan, err := parsePlan(*req.Plan)
			if err != nil {
				return domain.Client{}, err
			}
			c.Plan = plan
		}
		if req.Status != nil {
			status, err := parseStatus(*req.Status)
			if err != nil {
				return domain.Client{}, err
			}
			c.Status = status
		}
		if req.PaymentStatus != nil {
			state, err := parsePaymentState(*req.PaymentStatus)
			if err != nil {
				return domain.Client{}, err
			}
			c.PaymentStatus = state
		}
		if req.Notes != nil {
			c.Notes = req.Notes
		}
		return c, nil
	})
}

// Cancel marks the client cancelled. Clients are never hard-deleted in the
// normal flow.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (domain.Client, error) {
	return s.store.Update(ctx, id, func(c domain.Client) (domain.Client, error) {
		c.Status = domain.ClientCancelled
		return c, nil
	})
}

// MarkPaid flips the payment state, used when a linked payment confirms.
func (s *Service) MarkPaid(ctx context.Context, id uuid.UUID) (domain.Client, error) {
	return s.store.Update(ctx, id, func(c domain.Client) (domain.Client, error) {
		c.PaymentStatus = domain.PaymentPaid
		return c, nil
	})
}

func (s *Service) Stats(now time.Time) StatsResponse {
	counts := s.store.CountCreated(now)
	byStatus := map[string]int{
		string(domain.ClientActive):     0,
		string(domain.ClientInProgress): 0,
		string(domain.ClientPaused):     0,
		string(domain.ClientCancelled):  0,
		string(domain.ClientUnknown):    0,
	}
	for _, c := range s.List() {
		byStatus[string(domain.NormalizeClientStatus(string(c.Status)))]++
	}
	return StatsResponse{
		Total:     counts.Total,
		Today:     counts.Today,
		ThisWeek:  counts.ThisWeek,
		ThisMonth: counts.ThisMonth,
		ByStatus:  byStatus,
	}
}

func parsePlan(raw string) (domain.Plan, error) {
	switch domain.Plan(raw) {
	case domain.PlanStarter, domain.PlanPro:
		return domain.Plan(raw), nil
	default:
		return "", ErrInvalidPlan
	}
}

func parseStatus(raw string) (domain.ClientStatus, error) {
	switch domain.ClientStatus(raw) {
	case domain.ClientActive, domain.ClientInProgress, domain.ClientPaused, domain.ClientCancelled:
		return domain.ClientStatus(raw), nil
	default:
		return "", ErrInvalidStatus
	}
}

func parsePaymentState(raw string) (domain.PaymentState, error) {
	switch domain.PaymentState(raw) {
	case domain.PaymentPaid, domain.PaymentUnpaid, domain.PaymentOverdue:
		return domain.PaymentState(raw), nil
	default:
		return "", ErrInvalidPaid
	}
}
