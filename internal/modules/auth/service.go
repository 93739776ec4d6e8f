package auth

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/domain"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/pkg/apperr"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/pkg/jwt"
)

const minPasswordLength = 8

// Service handles operator account registration and sessions. Sessions are
// stateless bearer tokens; sign-out happens client-side by discarding the
// token.
type Service struct {
	repo   UserRepository
	tokens *jwt.Service
	logger *slog.Logger
}

func NewService(repo UserRepository, tokens *jwt.Service, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, tokens: tokens, logger: logger}
}

func (s *Service) SignUp(ctx context.Context, req SignUpRequest) (SessionResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return SessionResponse{}, ErrEmailRequired
	}
	if len(req.Password) < minPasswordLength {
		return SessionResponse{}, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return SessionResponse{}, apperr.Remote("auth.signup", err)
	}

	user, err := s.repo.Create(ctx, &domain.User{Email: email, PasswordHash: string(hash)})
	if err != nil {
		// A unique-violation on email surfaces as a conflict to the caller.
		return SessionResponse{}, err
	}

	return s.session(user)
}

func (s *Service) SignIn(ctx context.Context, req SignInRequest) (SessionResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return SessionResponse{}, ErrInvalidCredentials
		}
		return SessionResponse{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return SessionResponse{}, ErrInvalidCredentials
	}

	return s.session(user)
}

// Me resolves the account behind a validated token.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}
	return *user, nil
}

func (s *Service) session(user *domain.User) (SessionResponse, error) {
	token, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return SessionResponse{}, apperr.Remote("auth.session", err)
	}
	return SessionResponse{Token: token, User: *user}, nil
}
