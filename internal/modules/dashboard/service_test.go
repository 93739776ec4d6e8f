package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/domain"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/realtime"
)

var now = time.Date(2026, 8, 26, 15, 0, 0, 0, time.UTC) // Wednesday

type stubCollections struct {
	clients  []domain.Client
	payments []domain.Payment
	goals    []domain.Goal
	visits   []domain.BusinessVisit
}

func (s stubCollections) Clients() []domain.Client       { return s.clients }
func (s stubCollections) Payments() []domain.Payment     { return s.payments }
func (s stubCollections) Goals() []domain.Goal           { return s.goals }
func (s stubCollections) Visits() []domain.BusinessVisit { return s.visits }

func fixedClock(svc *Service) *Service {
	svc.now = func() time.Time { return now }
	return svc
}

func TestRecomputeBuildsFullSnapshot(t *testing.T) {
	clientID := uuid.New()
	data := stubCollections{
		clients: []domain.Client{
			{ID: clientID, Name: "Acme", Status: domain.ClientActive, Plan: domain.PlanPro, CreatedAt: now.Add(-2 * time.Hour)},
			{ID: uuid.New(), Name: "Old Co", Status: domain.ClientActive, Plan: domain.PlanStarter, CreatedAt: now.AddDate(0, -2, 0)},
		},
		payments: []domain.Payment{
			{ID: uuid.New(), ClientID: &clientID, Amount: 200, Status: domain.PaymentConfirmed, PaymentDate: now.Add(-time.Hour), CreatedAt: now.Add(-time.Hour)},
			{ID: uuid.New(), Amount: 50, Status: domain.PaymentPending, PaymentDate: now, CreatedAt: now},
		},
		goals: []domain.Goal{
			{ID: uuid.New(), Title: "weekly one", Frequency: domain.GoalWeekly, Target: 1, CreatedAt: now},
		},
		visits: []domain.BusinessVisit{
			{ID: uuid.New(), CreatedAt: now.Add(-24 * time.Hour)},
			{ID: uuid.New(), CreatedAt: now.AddDate(0, 0, -10)},
		},
	}

	svc := fixedClock(NewService(data, nil, nil, nil))
	snap := svc.Recompute(context.Background())

	assert.Equal(t, 200.0, snap.Revenue.TodayRevenue)
	assert.Equal(t, 2, snap.ClientCounts.Total)
	assert.Equal(t, 1, snap.ClientCounts.Today)
	assert.Equal(t, 1, snap.RecentVisits, "only the visit inside the 7 day window counts")
	require.Len(t, snap.Goals, 1)
	assert.True(t, snap.Goals[0].IsComplete)
	assert.Equal(t, now, snap.ComputedAt)

	assert.Equal(t, snap, svc.Current(), "Current serves the snapshot Recompute stored")
}

func TestEventBurstRecomputesOnce(t *testing.T) {
	bus := realtime.NewBus()
	data := stubCollections{}
	svc := fixedClock(NewService(data, nil, bus, nil))

	for i := 0; i < 10; i++ {
		bus.Publish(realtime.Event{Table: "clients", Type: realtime.EventInsert, ID: uuid.New()})
	}

	// Inside the debounce window nothing has recomputed yet.
	assert.True(t, svc.Current().ComputedAt.IsZero())

	svc.timerMu.Lock()
	timer := svc.timer
	svc.timerMu.Unlock()
	require.NotNil(t, timer, "a recompute is scheduled")
}

func TestNotificationEventsDoNotTriggerRecompute(t *testing.T) {
	bus := realtime.NewBus()
	svc := fixedClock(NewService(stubCollections{}, nil, bus, nil))

	bus.Publish(realtime.Event{Table: "notifications", Type: realtime.EventInsert, ID: uuid.New()})

	svc.timerMu.Lock()
	timer := svc.timer
	svc.timerMu.Unlock()
	assert.Nil(t, timer, "notification inserts are not dashboard inputs")
}

type countingChecker struct{ calls int }

func (c *countingChecker) CheckCompletions(context.Context, time.Time) { c.calls++ }

func TestRecomputeReRunsGoalCompletionCheck(t *testing.T) {
	checker := &countingChecker{}
	svc := fixedClock(NewService(stubCollections{}, checker, nil, nil))

	svc.Recompute(context.Background())
	svc.Recompute(context.Background())
	assert.Equal(t, 2, checker.calls)
}
