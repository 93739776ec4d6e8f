package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/domain"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/pkg/apperr"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/pkg/jwt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	out := args.Get(0).(*domain.User)
	if out.ID == uuid.Nil {
		out.ID = uuid.New()
	}
	return out, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func testTokens() *jwt.Service {
	return jwt.New("test-secret", time.Hour)
}

func TestSignUpHashesPasswordAndIssuesToken(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewService(repo, testTokens(), nil)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		if u.Email != "owner@acme.test" || u.PasswordHash == "correct horse battery" {
			return false
		}
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("correct horse battery")) == nil
	})).Return(&domain.User{Email: "owner@acme.test", PasswordHash: "x"}, nil)

	session, err := svc.SignUp(context.Background(), SignUpRequest{
		Email:    " Owner@Acme.Test ",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "owner@acme.test", session.User.Email)
	repo.AssertExpectations(t)
}

func TestSignUpRejectsShortPassword(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewService(repo, testTokens(), nil)

	_, err := svc.SignUp(context.Background(), SignUpRequest{Email: "a@b.test", Password: "short"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSignInWithWrongPasswordFails(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewService(repo, testTokens(), nil)

	hash, err := bcrypt.GenerateFromPassword([]byte("the real password"), bcrypt.MinCost)
	require.NoError(t, err)
	repo.On("GetByEmail", mock.Anything, "a@b.test").Return(&domain.User{ID: uuid.New(), Email: "a@b.test", PasswordHash: string(hash)}, nil)

	_, err = svc.SignIn(context.Background(), SignInRequest{Email: "a@b.test", Password: "a wrong guess"})
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestSignInUnknownEmailLooksLikeWrongPassword(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewService(repo, testTokens(), nil)

	repo.On("GetByEmail", mock.Anything, "ghost@b.test").Return(nil, apperr.NotFound("users.get_by_email", "no such user"))

	_, err := svc.SignIn(context.Background(), SignInRequest{Email: "ghost@b.test", Password: "whatever-password"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCredentials, "unknown email and bad password are indistinguishable")
}

func TestSignInTokenRoundTrips(t *testing.T) {
	repo := new(MockUserRepository)
	tokens := testTokens()
	svc := NewService(repo, tokens, nil)

	userID := uuid.New()
	hash, err := bcrypt.GenerateFromPassword([]byte("the real password"), bcrypt.MinCost)
	require.NoError(t, err)
	repo.On("GetByEmail", mock.Anything, "a@b.test").Return(&domain.User{ID: userID, Email: "a@b.test", PasswordHash: string(hash)}, nil)

	session, err := svc.SignIn(context.Background(), SignInRequest{Email: "a@b.test", Password: "the real password"})
	require.NoError(t, err)

	claims, err := tokens.ValidateToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "a@b.test", claims.Email)
}
