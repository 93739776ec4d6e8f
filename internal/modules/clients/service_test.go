package clients

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

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) List(ctx context.Context) ([]domain.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) Create(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	out := args.Get(0).(*domain.Client)
	if out.ID == uuid.Nil {
		out.ID = uuid.New() // simulate DB insert
	}
	return out, args.Error(1)
}

func (m *MockClientRepository) Update(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) NotifyClientAdded(ctx context.Context, client domain.Client) {
	m.Called(ctx, client)
}

func TestCreateClientValidationSkipsRepository(t *testing.T) {
	repo := new(MockClientRepository)
	svc := NewService(repo, nil, nil, nil, nil)

	_, err := svc.Create(context.Background(), CreateClientRequest{Name: "   "})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateClientRejectsUnknownPlan(t *testing.T) {
	repo := new(MockClientRepository)
	svc := NewService(repo, nil, nil, nil, nil)

	_, err := svc.Create(context.Background(), CreateClientRequest{Name: "Acme", Plan: "platinum"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateClientSanitizesAndNotifies(t *testing.T) {
	repo := new(MockClientRepository)
	notifs := new(MockNotificationSender)
	svc := NewService(repo, nil, notifs, nil, nil)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Client) bool {
		return c.Name == "Acme" && c.Email == "owner@acme.test"
	})).Return(&domain.Client{Name: "Acme", Email: "owner@acme.test", Status: domain.ClientActive}, nil)
	notifs.On("NotifyClientAdded", mock.Anything, mock.Anything).Return()

	created, err := svc.Create(context.Background(), CreateClientRequest{
		Name:  "  Acme ",
		Email: " Owner@Acme.Test ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme", created.Name)

	cached, ok := svc.Store().Find(created.ID)
	require.True(t, ok, "created client must land in the local collection")
	assert.Equal(t, created, cached)

	notifs.AssertCalled(t, "NotifyClientAdded", mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestUpdateUnknownClientSkipsRepository(t *testing.T) {
	repo := new(MockClientRepository)
	svc := NewService(repo, nil, nil, nil, nil)

	name := "new name"
	_, err := svc.Update(context.Background(), uuid.New(), UpdateClientRequest{Name: &name})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCancelIsAStatusChangeNotADelete(t *testing.T) {
	repo := new(MockClientRepository)
	svc := NewService(repo, nil, nil, nil, nil)

	existing := domain.Client{ID: uuid.New(), Name: "Acme", Status: domain.ClientActive}
	repo.On("List", mock.Anything).Return([]domain.Client{existing}, nil)
	require.NoError(t, svc.Refresh(context.Background(), true))

	repo.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.Client) bool {
		return c.ID == existing.ID && c.Status == domain.ClientCancelled
	})).Return(&domain.Client{ID: existing.ID, Name: "Acme", Status: domain.ClientCancelled}, nil)

	cancelled, err := svc.Cancel(context.Background(), existing.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ClientCancelled, cancelled.Status)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	assert.True(t, svc.Exists(existing.ID), "cancelled client stays in the collection")
}

func TestStatsBucketsUnknownStatus(t *testing.T) {
	repo := new(MockClientRepository)
	svc := NewService(repo, nil, nil, nil, nil)

	repo.On("List", mock.Anything).Return([]domain.Client{
		{ID: uuid.New(), Name: "a", Status: domain.ClientActive},
		{ID: uuid.New(), Name: "b", Status: domain.ClientStatus("mystery")},
	}, nil)
	require.NoError(t, svc.Refresh(context.Background(), true))

	stats := svc.Stats(time.Now())
	assert.Equal(t, 1, stats.ByStatus["active"])
	assert.Equal(t, 1, stats.ByStatus["unknown"], "unrecognised statuses degrade to the unknown bucket")
}
