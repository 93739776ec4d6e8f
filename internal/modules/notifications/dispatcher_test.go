package notifications

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/domain"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/realtime"
)

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	out := args.Get(0).(*domain.Notification)
	if out.ID == uuid.Nil {
		out.ID = uuid.New()
	}
	return out, args.Error(1)
}

func (m *MockNotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) ExistsWithin(ctx context.Context, userID uuid.UUID, typ domain.NotificationType, uniqueKey string, window time.Duration) (bool, error) {
	args := m.Called(ctx, userID, typ, uniqueKey, window)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationRepository) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *MockNotificationRepository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type stubRecipients struct{ ids []uuid.UUID }

func (s stubRecipients) ListIDs(context.Context) ([]uuid.UUID, error) { return s.ids, nil }

// memDeduper mimics the redis SetNX claim in memory.
type memDeduper struct {
	mu     sync.Mutex
	claims map[string]bool
	err    error
}

func (d *memDeduper) ClaimOnce(_ context.Context, key string, _ time.Duration) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.claims == nil {
		d.claims = make(map[string]bool)
	}
	if d.claims[key] {
		return false, nil
	}
	d.claims[key] = true
	return true, nil
}

func TestDispatchSameEventTwiceDeliversOnce(t *testing.T) {
	repo := new(MockNotificationRepository)
	user := uuid.New()
	bus := realtime.NewBus()
	d := NewDispatcher(repo, stubRecipients{ids: []uuid.UUID{user}}, &memDeduper{}, bus, nil, nil)

	var delivered int
	bus.Subscribe("notifications", func(realtime.Event) { delivered++ })

	repo.On("Create", mock.Anything, mock.Anything).Return(&domain.Notification{UserID: user}, nil)

	client := domain.Client{ID: uuid.New(), Name: "Acme", Plan: domain.PlanStarter}
	d.NotifyClientAdded(context.Background(), client)
	d.NotifyClientAdded(context.Background(), client)

	repo.AssertNumberOfCalls(t, "Create", 1)
	assert.Equal(t, 1, delivered, "second identical event inside the window is suppressed")
}

func TestDispatchFallsBackToHistoryWhenCacheIsDown(t *testing.T) {
	repo := new(MockNotificationRepository)
	user := uuid.New()
	d := NewDispatcher(repo, stubRecipients{ids: []uuid.UUID{user}}, &memDeduper{err: errors.New("connection refused")}, nil, nil, nil)

	goal := domain.Goal{ID: uuid.New(), Title: "five", Target: 5}
	repo.On("ExistsWithin", mock.Anything, user, domain.NotifGoalCompleted, goal.ID.String(), GoalDedupWindow).Return(true, nil)

	d.NotifyGoalCompleted(context.Background(), goal)

	repo.AssertCalled(t, "ExistsWithin", mock.Anything, user, domain.NotifGoalCompleted, goal.ID.String(), GoalDedupWindow)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDeliveryProceedsWhenHistoryWriteFails(t *testing.T) {
	repo := new(MockNotificationRepository)
	user := uuid.New()
	bus := realtime.NewBus()
	d := NewDispatcher(repo, stubRecipients{ids: []uuid.UUID{user}}, &memDeduper{}, bus, nil, nil)

	var delivered int
	bus.Subscribe("notifications", func(realtime.Event) { delivered++ })

	repo.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("disk full"))

	d.NotifyVisitLogged(context.Background(), domain.BusinessVisit{ID: uuid.New()})
	assert.Equal(t, 1, delivered, "realtime push is independent of history persistence")
}

func TestDispatchFansOutToEveryRecipient(t *testing.T) {
	repo := new(MockNotificationRepository)
	users := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	d := NewDispatcher(repo, stubRecipients{ids: users}, &memDeduper{}, nil, nil, nil)

	repo.On("Create", mock.Anything, mock.Anything).Return(&domain.Notification{}, nil)

	d.NotifyFormSubmitted(context.Background(), domain.FormSubmission{ID: uuid.New(), Email: "a@b.test"})
	repo.AssertNumberOfCalls(t, "Create", 3)
}

func TestGoalWindowIsLongerThanDefault(t *testing.T) {
	require.Greater(t, GoalDedupWindow, DefaultDedupWindow)
}
