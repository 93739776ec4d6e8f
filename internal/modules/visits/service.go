package visits

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/domain"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/metrics"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/pkg/apperr"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/realtime"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/store"
)

// DefaultRecentWindow bounds the "recent visits" view.
const DefaultRecentWindow = 7 * 24 * time.Hour

// repoSource adapts the repository to the store's source contract. Visits
// are immutable after creation, so the update path is closed off.
type repoSource struct {
	repo VisitRepository
}

func (s repoSource) List(ctx context.Context) ([]domain.BusinessVisit, error) {
	return s.repo.List(ctx)
}

func (s repoSource) Insert(ctx context.Context, v domain.BusinessVisit) (domain.BusinessVisit, error) {
	created, err := s.repo.Create(ctx, &v)
	if err != nil {
		return domain.BusinessVisit{}, err
	}
	return *created, nil
}

func (s repoSource) Update(ctx context.Context, v domain.BusinessVisit) (domain.BusinessVisit, error) {
	return domain.BusinessVisit{}, apperr.Validation("visits.update", "visits cannot be edited once logged")
}

func (s repoSource) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

type Service struct {
	store   *store.Store[domain.BusinessVisit]
	clients ClientDirectory
	notifs  NotificationSender
	logger  *slog.Logger
}

func NewService(repo VisitRepository, bus *realtime.Bus, clients ClientDirectory, notifs NotificationSender, logger *slog.Logger, m *metrics.Metrics) *Service {
	s := store.New(store.Config[domain.BusinessVisit]{
		Table:   "business_visits",
		Source:  repoSource{repo: repo},
		Bus:     bus,
		Logger:  logger,
		Metrics: m,
		SearchFields: func(v domain.BusinessVisit) []string {
			if v.Location == nil {
				return nil
			}
			return []string{*v.Location}
		},
	})
	return &Service{store: s, clients: clients, notifs: notifs, logger: logger}
}

func (s *Service) Store() *store.Store[domain.BusinessVisit] { return s.store }

func (s *Service) Refresh(ctx context.Context, foreground bool) error {
	return s.store.Refresh(ctx, foreground)
}

func (s *Service) List() []domain.BusinessVisit {
	records, _ := s.store.Snapshot()
	return records
}

// Recent returns visits logged inside the window, newest first.
func (s *Service) Recent(now time.Time, window time.Duration) []domain.BusinessVisit {
	if window <= 0 {
		window = DefaultRecentWindow
	}
	cutoff := now.Add(-window)
	return s.store.FilterFunc(func(v domain.BusinessVisit) bool {
		return !v.CreatedAt.Before(cutoff)
	})
}

func (s *Service) Create(ctx context.Context, req CreateVisitRequest) (domain.BusinessVisit, error) {
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return domain.BusinessVisit{}, ErrBadCoordinate
	}
	if req.ClientID != nil && s.clients != nil && !s.clients.Exists(*req.ClientID) {
		return domain.BusinessVisit{}, ErrUnknownClient
	}

	created, err := s.store.Create(ctx, domain.BusinessVisit{
		ClientID: req.ClientID,
		Location: domain.ResolveLocation(req.ManualLocation, req.GeocodedPlace, req.Latitude, req.Longitude),
	})
	if err != nil {
		return domain.BusinessVisit{}, err
	}

	if s.notifs != nil {
		s.notifs.NotifyVisitLogged(ctx, created)
	}
	return created, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.Delete(ctx, id)
}
