package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationType identifies the domain event behind a notification.
type NotificationType string

const (
	NotifClientAdded      NotificationType = "client_added"
	NotifPaymentConfirmed NotificationType = "payment_confirmed"
	NotifVisitLogged      NotificationType = "visit_logged"
	NotifGoalCompleted    NotificationType = "goal_completed"
	NotifFormSubmitted    NotificationType = "form_submitted"
)

// Notification is a user-scoped history record of a delivered alert. The
// unique key embedded at creation suppresses re-sending the same logical
// event inside the dedup window.
type Notification struct {
	ID        uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID        `json:"user_id" gorm:"type:uuid;not null;index:idx_notifications_user_unread"`
	Type      NotificationType `json:"type" gorm:"type:varchar(32);not null;index"`
	Title     string           `json:"title" gorm:"not null"`
	Body      string           `json:"body"`
	Data      json.RawMessage  `json:"data,omitempty" gorm:"type:jsonb"`
	UniqueKey string           `json:"unique_key" gorm:"index"`
	IsRead    bool             `json:"is_read" gorm:"not null;default:false;index:idx_notifications_user_unread"`
	ReadAt    *time.Time       `json:"read_at,omitempty"`
	CreatedAt time.Time        `json:"created_at" gorm:"autoCreateTime;index"`
}

func (Notification) TableName() string { return "notifications" }

func (n *Notification) BeforeCreate(_ *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

func (n Notification) RecordID() uuid.UUID        { return n.ID }
func (n Notification) RecordCreatedAt() time.Time { return n.CreatedAt }

// SetData encodes the payload map onto the record.
func (n *Notification) SetData(data map[string]any) error {
	if data == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	n.Data = b
	return nil
}

// MarkAsRead marks the notification read with a timestamp.
func (n *Notification) MarkAsRead() {
	n.IsRead = true
	now := time.Now()
	n.ReadAt = &now
}
