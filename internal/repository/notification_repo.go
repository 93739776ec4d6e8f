package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/domain"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	if tx := r.db.WithContext(ctx).Create(n); tx.Error != nil {
		return nil, classify("notifications.create", tx.Error)
	}
	return n, nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error) {
	var list []domain.Notification
	tx := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&list)
	if tx.Error != nil {
		return nil, classify("notifications.list", tx.Error)
	}
	return list, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&domain.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&cnt)
	if tx.Error != nil {
		return 0, classify("notifications.count_unread", tx.Error)
	}
	return cnt, nil
}

// ExistsWithin reports whether the same logical event was already recorded
// for the user inside the dedup window.
func (r *NotificationRepository) ExistsWithin(ctx context.Context, userID uuid.UUID, typ domain.NotificationType, uniqueKey string, window time.Duration) (bool, error) {
	var cnt int64
	cutoff := time.Now().Add(-window)
	tx := r.db.WithContext(ctx).Model(&domain.Notification{}).
		Where("user_id = ? AND type = ? AND unique_key = ? AND created_at >= ?", userID, typ, uniqueKey, cutoff).
		Count(&cnt)
	if tx.Error != nil {
		return false, classify("notifications.exists_within", tx.Error)
	}
	return cnt > 0, nil
}

func (r *NotificationRepository) MarkAsRead(ctx context.Context, id, userID uuid.UUID) error {
	now := time.Now()
	tx := r.db.WithContext(ctx).Model(&domain.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{"is_read": true, "read_at": now})
	if tx.Error != nil {
		return classify("notifications.mark_read", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return classify("notifications.mark_read", gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	now := time.Now()
	tx := r.db.WithContext(ctx).Model(&domain.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]any{"is_read": true, "read_at": now})
	if tx.Error != nil {
		return classify("notifications.mark_all_read", tx.Error)
	}
	return nil
}
