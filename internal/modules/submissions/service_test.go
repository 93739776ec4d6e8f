package submissions

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/domain"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/pkg/apperr"
)

type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) List(ctx context.Context) ([]domain.FormSubmission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FormSubmission), args.Error(1)
}

func (m *MockSubmissionRepository) Create(ctx context.Context, s *domain.FormSubmission) (*domain.FormSubmission, error) {
	args := m.Called(ctx, s)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	out := args.Get(0).(*domain.FormSubmission)
	if out.ID == uuid.Nil {
		out.ID = uuid.New()
	}
	return out, args.Error(1)
}

func (m *MockSubmissionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockClientDirectory struct {
	mock.Mock
}

func (m *MockClientDirectory) FindByEmail(email string) (domain.Client, bool) {
	args := m.Called(email)
	return args.Get(0).(domain.Client), args.Bool(1)
}

func (m *MockClientDirectory) CreateFromSubmission(ctx context.Context, name, email string) (domain.Client, error) {
	args := m.Called(ctx, name, email)
	return args.Get(0).(domain.Client), args.Error(1)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) NotifyFormSubmitted(ctx context.Context, submission domain.FormSubmission) {
	m.Called(ctx, submission)
}

func TestCreateLinksExistingClientByEmail(t *testing.T) {
	repo := new(MockSubmissionRepository)
	clients := new(MockClientDirectory)
	notifs := new(MockNotificationSender)
	svc := NewService(repo, nil, clients, notifs, nil, nil)

	existing := domain.Client{ID: uuid.New(), Name: "Acme", Email: "owner@acme.test"}
	clients.On("FindByEmail", "owner@acme.test").Return(existing, true)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.FormSubmission) bool {
		return s.ClientID == existing.ID && s.Email == "owner@acme.test"
	})).Return(&domain.FormSubmission{ClientID: existing.ID, Email: "owner@acme.test", Status: "received"}, nil)
	notifs.On("NotifyFormSubmitted", mock.Anything, mock.Anything).Return()

	created, err := svc.Create(context.Background(), CreateSubmissionRequest{Email: " Owner@Acme.Test "})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, created.ClientID)
	clients.AssertNotCalled(t, "CreateFromSubmission", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateRegistersClientWhenEmailIsNew(t *testing.T) {
	repo := new(MockSubmissionRepository)
	clients := new(MockClientDirectory)
	svc := NewService(repo, nil, clients, nil, nil, nil)

	fresh := domain.Client{ID: uuid.New(), Name: "jane", Email: "jane@new.test"}
	clients.On("FindByEmail", "jane@new.test").Return(domain.Client{}, false)
	clients.On("CreateFromSubmission", mock.Anything, "jane", "jane@new.test").Return(fresh, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.FormSubmission) bool {
		return s.ClientID == fresh.ID
	})).Return(&domain.FormSubmission{ClientID: fresh.ID, Email: "jane@new.test", Status: "received"}, nil)

	created, err := svc.Create(context.Background(), CreateSubmissionRequest{Email: "jane@new.test"})
	require.NoError(t, err)
	assert.Equal(t, fresh.ID, created.ClientID)
	clients.AssertCalled(t, "CreateFromSubmission", mock.Anything, "jane", "jane@new.test")
}

func TestCreateUsesProvidedNameForNewClient(t *testing.T) {
	repo := new(MockSubmissionRepository)
	clients := new(MockClientDirectory)
	svc := NewService(repo, nil, clients, nil, nil, nil)

	fresh := domain.Client{ID: uuid.New(), Name: "Jane Doe"}
	clients.On("FindByEmail", "jane@new.test").Return(domain.Client{}, false)
	clients.On("CreateFromSubmission", mock.Anything, "Jane Doe", "jane@new.test").Return(fresh, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(&domain.FormSubmission{ClientID: fresh.ID}, nil)

	_, err := svc.Create(context.Background(), CreateSubmissionRequest{Email: "jane@new.test", Name: " Jane Doe "})
	require.NoError(t, err)
	clients.AssertCalled(t, "CreateFromSubmission", mock.Anything, "Jane Doe", "jane@new.test")
}

func TestCreateRejectsMalformedEmail(t *testing.T) {
	repo := new(MockSubmissionRepository)
	clients := new(MockClientDirectory)
	svc := NewService(repo, nil, clients, nil, nil, nil)

	for _, email := range []string{"", "   ", "no-at-sign", "@host", "user@"} {
		_, err := svc.Create(context.Background(), CreateSubmissionRequest{Email: email})
		require.Error(t, err, "email %q", email)
		assert.True(t, apperr.Is(err, apperr.KindValidation))
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	clients.AssertNotCalled(t, "FindByEmail", mock.Anything)
}
