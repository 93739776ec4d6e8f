package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/domain"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/realtime"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/stats"
)

// DebounceInterval batches bursts of change events into one recompute.
const DebounceInterval = 2 * time.Second

// Snapshot is the full dashboard payload, rebuilt after data changes and
// served from memory in between.
type Snapshot struct {
	Revenue      stats.RevenueStats   `json:"revenue"`
	Goals        []stats.GoalProgress `json:"goals"`
	Insights     []stats.Insight      `json:"insights"`
	ClientCounts ClientCounts         `json:"client_counts"`
	RecentVisits int                  `json:"recent_visits"`
	ComputedAt   time.Time            `json:"computed_at"`
}

// ClientCounts is the header widget: collection size over calendar windows.
type ClientCounts struct {
	Total     int `json:"total"`
	Today     int `json:"today"`
	ThisWeek  int `json:"this_week"`
	ThisMonth int `json:"this_month"`
}

// Collections supplies the cached entity snapshots the dashboard reads.
// Every method returns the store's current local state without touching the
// network.
type Collections interface {
	Clients() []domain.Client
	Payments() []domain.Payment
	Goals() []domain.Goal
	Visits() []domain.BusinessVisit
}

// GoalChecker re-evaluates goal completion after data changes.
type GoalChecker interface {
	CheckCompletions(ctx context.Context, now time.Time)
}

// Service recomputes the dashboard snapshot when entity data changes,
// debounced so a burst of realtime events costs one recompute.
type Service struct {
	data    Collections
	checker GoalChecker
	logger  *slog.Logger
	now     func() time.Time

	mu      sync.RWMutex
	current Snapshot

	timerMu sync.Mutex
	timer   *time.Timer
}

func NewService(data Collections, checker GoalChecker, bus *realtime.Bus, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{data: data, checker: checker, logger: logger, now: time.Now}

	if bus != nil {
		bus.SubscribeAll(func(ev realtime.Event) {
			// Notifications feed off the dashboard, not into it.
			if ev.Table == "notifications" {
				return
			}
			s.scheduleRecompute()
		})
	}
	return s
}

// Current returns the latest snapshot without recomputing.
func (s *Service) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Recompute rebuilds the snapshot immediately and returns it.
func (s *Service) Recompute(ctx context.Context) Snapshot {
	now := s.now()
	clients := s.data.Clients()
	payments := s.data.Payments()
	goals := s.data.Goals()
	visits := s.data.Visits()

	snap := Snapshot{
		Revenue:      stats.ComputeRevenue(payments, clients, now),
		Insights:     stats.ComputeInsights(clients, payments, visits, goals, now),
		ClientCounts: countClients(clients, now),
		RecentVisits: countSince(visits, now.AddDate(0, 0, -7)),
		ComputedAt:   now,
	}
	snap.Goals = make([]stats.GoalProgress, 0, len(goals))
	for _, g := range goals {
		snap.Goals = append(snap.Goals, stats.ComputeGoalProgress(g, clients, now, s.logger))
	}

	s.mu.Lock()
	s.current = snap
	s.mu.Unlock()

	if s.checker != nil {
		s.checker.CheckCompletions(ctx, now)
	}
	return snap
}

// scheduleRecompute arms the debounce timer, extending it while events keep
// arriving.
func (s *Service) scheduleRecompute() {
	s.timerMu.Lock()
	defer s.timerMu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(DebounceInterval, func() {
		s.Recompute(context.Background())
	})
}

func countClients(clients []domain.Client, now time.Time) ClientCounts {
	counts := ClientCounts{Total: len(clients)}
	day := stats.StartOfDay(now)
	week := stats.StartOfWeek(now)
	month := stats.StartOfMonth(now)
	for _, c := range clients {
		if c.CreatedAt.After(now) {
			continue
		}
		if !c.CreatedAt.Before(day) {
			counts.Today++
		}
		if !c.CreatedAt.Before(week) {
			counts.ThisWeek++
		}
		if !c.CreatedAt.Before(month) {
			counts.ThisMonth++
		}
	}
	return counts
}

func countSince(visits []domain.BusinessVisit, cutoff time.Time) int {
	n := 0
	for _, v := range visits {
		if !v.CreatedAt.Before(cutoff) {
			n++
		}
	}
	return n
}
