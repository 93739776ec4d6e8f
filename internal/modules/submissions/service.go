package submissions

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
// Submissions are append-only, so the update path is closed off.
type repoSource struct {
	repo SubmissionRepository
}

func (s repoSource) List(ctx context.Context) ([]domain.FormSubmission, error) {
	return s.repo.List(ctx)
}

func (s repoSource) Insert(ctx context.Context, sub domain.FormSubmission) (domain.FormSubmission, error) {
	created, err := s.repo.Create(ctx, &sub)
	if err != nil {
		return domain.FormSubmission{}, err
	}
	return *created, nil
}

func (s repoSource) Update(ctx context.Context, sub domain.FormSubmission) (domain.FormSubmission, error) {
	return domain.FormSubmission{}, apperr.Validation("submissions.update", "submissions cannot be edited")
}

func (s repoSource) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

type Service struct {
	store   *store.Store[domain.FormSubmission]
	clients ClientDirectory
	notifs  NotificationSender
	logger  *slog.Logger
}

func NewService(repo SubmissionRepository, bus *realtime.Bus, clients ClientDirectory, notifs NotificationSender, logger *slog.Logger, m *metrics.Metrics) *Service {
	s := store.New(store.Config[domain.FormSubmission]{
		Table:   "form_submissions",
		Source:  repoSource{repo: repo},
		Bus:     bus,
		Logger:  logger,
		Metrics: m,
		SearchFields: func(sub domain.FormSubmission) []string {
			return []string{sub.Email, sub.Status}
		},
	})
	return &Service{store: s, clients: clients, notifs: notifs, logger: logger}
}

func (s *Service) Store() *store.Store[domain.FormSubmission] { return s.store }

func (s *Service) Refresh(ctx context.Context, foreground bool) error {
	return s.store.Refresh(ctx, foreground)
}

func (s *Service) List() []domain.FormSubmission {
	records, _ := s.store.Snapshot()
	return records
}

func (s *Service) Search(q string) []domain.FormSubmission {
	return s.store.Search(q)
}

// Create links the form to the client matching its email, registering a new
// client first when none matches.
func (s *Service) Create(ctx context.Context, req CreateSubmissionRequest) (domain.FormSubmission, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return domain.FormSubmission{}, ErrEmailRequired
	}
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return domain.FormSubmission{}, ErrInvalidEmail
	}

	client, ok := s.clients.FindByEmail(email)
	if !ok {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			name = email[:at]
		}
		var err error
		client, err = s.clients.CreateFromSubmission(ctx, name, email)
		if err != nil {
			return domain.FormSubmission{}, err
		}
	}

	submittedAt := time.Now()
	if req.SubmittedAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.SubmittedAt)
		if err != nil {
			return domain.FormSubmission{}, apperr.Validation("submissions.create", "submitted_at must be RFC 3339")
		}
		submittedAt = parsed
	}

	created, err := s.store.Create(ctx, domain.FormSubmission{
		ClientID:    client.ID,
		Email:       email,
		Status:      "received",
		SubmittedAt: submittedAt,
	})
	if err != nil {
		return domain.FormSubmission{}, err
	}

	if s.notifs != nil {
		s.notifs.NotifyFormSubmitted(ctx, created)
	}
	return created, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.Delete(ctx, id)
}
