package notifications

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/domain"
)

// DefaultHistoryLimit bounds the notification list endpoint.
const DefaultHistoryLimit = 50

// Service reads and mutates a user's notification history. Writes go through
// the Dispatcher; this side only lists and flips read state.
type Service struct {
	repo   NotificationRepository
	logger *slog.Logger
}

func NewService(repo NotificationRepository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = DefaultHistoryLimit
	}
	return s.repo.ListByUser(ctx, userID, limit)
}

func (s *Service) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *Service) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id, userID)
}

func (s *Service) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}
