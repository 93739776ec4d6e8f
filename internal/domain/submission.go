package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FormSubmission links an inbound onboarding form to a client. The client is
// created on the fly when no record matches the submitted email.
type FormSubmission struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ClientID    uuid.UUID `json:"client_id" gorm:"type:uuid;not null;index"`
	Email       string    `json:"email" gorm:"not null"`
	Status      string    `json:"status" gorm:"type:varchar(32);not null;default:'received'"`
	SubmittedAt time.Time `json:"submitted_at" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`

	Client *Client `json:"client,omitempty" gorm:"foreignKey:ClientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (FormSubmission) TableName() string { return "form_submissions" }

func (s *FormSubmission) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (s FormSubmission) RecordID() uuid.UUID        { return s.ID }
func (s FormSubmission) RecordCreatedAt() time.Time { return s.CreatedAt }
