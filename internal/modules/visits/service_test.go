package visits

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/domain"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/pkg/apperr"
)

type MockVisitRepository struct {
	mock.Mock
}

func (m *MockVisitRepository) List(ctx context.Context) ([]domain.BusinessVisit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BusinessVisit), args.Error(1)
}

func (m *MockVisitRepository) ListSince(ctx context.Context, since time.Time) ([]domain.BusinessVisit, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BusinessVisit), args.Error(1)
}

func (m *MockVisitRepository) Create(ctx context.Context, v *domain.BusinessVisit) (*domain.BusinessVisit, error) {
	args := m.Called(ctx, v)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	out := args.Get(0).(*domain.BusinessVisit)
	if out.ID == uuid.Nil {
		out.ID = uuid.New()
	}
	return out, args.Error(1)
}

func (m *MockVisitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type stubClients struct{ known map[uuid.UUID]bool }

func (s stubClients) Exists(id uuid.UUID) bool { return s.known[id] }

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) NotifyVisitLogged(ctx context.Context, visit domain.BusinessVisit) {
	m.Called(ctx, visit)
}

func TestCreateVisitPrefersManualLocation(t *testing.T) {
	repo := new(MockVisitRepository)
	notifs := new(MockNotificationSender)
	svc := NewService(repo, nil, nil, notifs, nil, nil)

	lat, lng := 40.7128, -74.006
	repo.On("Create", mock.Anything, mock.MatchedBy(func(v *domain.BusinessVisit) bool {
		return v.Location != nil && *v.Location == "Joe's Coffee"
	})).Return(&domain.BusinessVisit{Location: strPtr("Joe's Coffee"), CreatedAt: time.Now()}, nil)
	notifs.On("NotifyVisitLogged", mock.Anything, mock.Anything).Return()

	created, err := svc.Create(context.Background(), CreateVisitRequest{
		ManualLocation: "  Joe's Coffee ",
		GeocodedPlace:  "123 Main St",
		Latitude:       &lat,
		Longitude:      &lng,
	})
	require.NoError(t, err)
	require.NotNil(t, created.Location)
	assert.Equal(t, "Joe's Coffee", *created.Location)
	notifs.AssertCalled(t, "NotifyVisitLogged", mock.Anything, mock.Anything)
}

func TestCreateVisitFallsBackToCoordinates(t *testing.T) {
	repo := new(MockVisitRepository)
	svc := NewService(repo, nil, nil, nil, nil, nil)

	lat, lng := 40.7128, -74.006
	repo.On("Create", mock.Anything, mock.MatchedBy(func(v *domain.BusinessVisit) bool {
		return v.Location != nil && *v.Location == "40.71280, -74.00600"
	})).Return(&domain.BusinessVisit{Location: strPtr("40.71280, -74.00600"), CreatedAt: time.Now()}, nil)

	created, err := svc.Create(context.Background(), CreateVisitRequest{Latitude: &lat, Longitude: &lng})
	require.NoError(t, err)
	require.NotNil(t, created.Location)
	assert.Equal(t, "40.71280, -74.00600", *created.Location)
}

func TestCreateVisitWithNoSourceHasNilLocation(t *testing.T) {
	repo := new(MockVisitRepository)
	svc := NewService(repo, nil, nil, nil, nil, nil)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(v *domain.BusinessVisit) bool {
		return v.Location == nil
	})).Return(&domain.BusinessVisit{CreatedAt: time.Now()}, nil)

	created, err := svc.Create(context.Background(), CreateVisitRequest{})
	require.NoError(t, err)
	assert.Nil(t, created.Location)
}

func TestCreateVisitRejectsHalfCoordinate(t *testing.T) {
	repo := new(MockVisitRepository)
	svc := NewService(repo, nil, nil, nil, nil, nil)

	lat := 40.7128
	_, err := svc.Create(context.Background(), CreateVisitRequest{Latitude: &lat})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateVisitRejectsUnknownClient(t *testing.T) {
	repo := new(MockVisitRepository)
	svc := NewService(repo, nil, stubClients{}, nil, nil, nil)

	ghost := uuid.New()
	_, err := svc.Create(context.Background(), CreateVisitRequest{ClientID: &ghost})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecentFiltersByWindow(t *testing.T) {
	now := time.Date(2026, 8, 26, 15, 0, 0, 0, time.UTC)
	repo := new(MockVisitRepository)
	svc := NewService(repo, nil, nil, nil, nil, nil)

	repo.On("List", mock.Anything).Return([]domain.BusinessVisit{
		{ID: uuid.New(), CreatedAt: now.Add(-time.Hour)},
		{ID: uuid.New(), CreatedAt: now.AddDate(0, 0, -3)},
		{ID: uuid.New(), CreatedAt: now.AddDate(0, 0, -10)},
	}, nil)
	require.NoError(t, svc.Refresh(context.Background(), true))

	recent := svc.Recent(now, DefaultRecentWindow)
	assert.Len(t, recent, 2, "visits older than the window are excluded")
}

func strPtr(s string) *string { return &s }
