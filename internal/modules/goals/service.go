package goals

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/domain"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/metrics"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/pkg/apperr"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/realtime"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/stats"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/store"
)

// repoSource adapts the repository to the store's source contract.
type repoSource struct {
	repo GoalRepository
}

func (s repoSource) List(ctx context.Context) ([]domain.Goal, error) {
	return s.repo.List(ctx)
}

func (s repoSource) Insert(ctx context.Context, g domain.Goal) (domain.Goal, error) {
	created, err := s.repo.Create(ctx, &g)
	if err != nil {
		return domain.Goal{}, err
	}
	return *created, nil
}

func (s repoSource) Update(ctx context.Context, g domain.Goal) (domain.Goal, error) {
	updated, err := s.repo.Update(ctx, &g)
	if err != nil {
		return domain.Goal{}, err
	}
	return *updated, nil
}

func (s repoSource) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

type Service struct {
	store   *store.Store[domain.Goal]
	clients ClientDirectory
	notifs  NotificationSender
	logger  *slog.Logger
}

func NewService(repo GoalRepository, bus *realtime.Bus, clients ClientDirectory, notifs NotificationSender, logger *slog.Logger, m *metrics.Metrics) *Service {
	s := store.New(store.Config[domain.Goal]{
		Table:   "goals",
		Source:  repoSource{repo: repo},
		Bus:     bus,
		Logger:  logger,
		Metrics: m,
		SearchFields: func(g domain.Goal) []string {
			return []string{g.Title, string(g.Frequency), strconv.Itoa(g.Target)}
		},
	})
	return &Service{store: s, clients: clients, notifs: notifs, logger: logger}
}

func (s *Service) Store() *store.Store[domain.Goal] { return s.store }

func (s *Service) Refresh(ctx context.Context, foreground bool) error {
	return s.store.Refresh(ctx, foreground)
}

func (s *Service) List() []domain.Goal {
	records, _ := s.store.Snapshot()
	return records
}

func (s *Service) Get(id uuid.UUID) (domain.Goal, error) {
	g, ok := s.store.Find(id)
	if !ok {
		return domain.Goal{}, apperr.NotFound("goals.get", "goal is not in the local collection")
	}
	return g, nil
}

func (s *Service) Create(ctx context.Context, req CreateGoalRequest) (domain.Goal, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.Goal{}, ErrTitleRequired
	}

	target := int(math.Round(req.Target))
	if target <= 0 {
		return domain.Goal{}, ErrInvalidTarget
	}

	freq := domain.DefaultGoalFrequency
	if req.Frequency != "" {
		var err error
		if freq, err = parseFrequency(req.Frequency); err != nil {
			return domain.Goal{}, err
		}
	}

	if req.ClientID != nil && s.clients != nil && !s.clients.Exists(*req.ClientID) {
		return domain.Goal{}, ErrUnknownClient
	}

	return s.store.Create(ctx, domain.Goal{
		Title:     title,
		Target:    target,
		Frequency: freq,
		ClientID:  req.ClientID,
	})
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateGoalRequest) (domain.Goal, error) {
	return s.store.Update(ctx, id, func(g domain.Goal) (domain.Goal, error) {
		if req.Title != nil {
			title := strings.TrimSpace(*req.Title)
			if title == "" {
				return domain.Goal{}, ErrTitleRequired
			}
			g.Title = title
		}
		if req.Target != nil {
			target := int(math.Round(*req.Target))
			if target <= 0 {
				return domain.Goal{}, ErrInvalidTarget
			}
			g.Target = target
		}
		if req.Frequency != nil {
			freq, err := parseFrequency(*req.Frequency)
			if err != nil {
				return domain.Goal{}, err
			}
			g.Frequency = freq
		}
		return g, nil
	})
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.Delete(ctx, id)
}

// Progress measures every goal against the current client collection.
func (s *Service) Progress(now time.Time) ProgressResponse {
	var clients []domain.Client
	if s.clients != nil {
		clients = s.clients.List()
	}

	goals := s.List()
	out := make([]stats.GoalProgress, 0, len(goals))
	for _, g := range goals {
		out = append(out, stats.ComputeGoalProgress(g, clients, now, s.logger))
	}
	return ProgressResponse{Goals: out}
}

// CheckCompletions emits a completion notification for every goal currently
// at or past its target. Deduplication downstream keeps repeated checks from
// re-alerting within the same period.
func (s *Service) CheckCompletions(ctx context.Context, now time.Time) {
	if s.notifs == nil {
		return
	}
	var clients []domain.Client
	if s.clients != nil {
		clients = s.clients.List()
	}
	for _, g := range s.List() {
		if stats.ComputeGoalProgress(g, clients, now, s.logger).IsComplete {
			s.notifs.NotifyGoalCompleted(ctx, g)
		}
	}
}

func parseFrequency(raw string) (domain.GoalFrequency, error) {
	switch domain.GoalFrequency(raw) {
	case domain.GoalDaily, domain.GoalWeekly, domain.GoalMonthly:
		return domain.GoalFrequency(raw), nil
	default:
		return "", ErrInvalidFrequency
	}
}
