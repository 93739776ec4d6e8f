package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentStatus is the processing state of a single payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentConfirmed PaymentStatus = "confirmed"
	PaymentFailed    PaymentStatus = "failed"
)

// Payment is a single amount received from (at most) one client. Unassigned
// payments are allowed; the client link is optional.
type Payment struct {
	ID          uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey"`
	ClientID    *uuid.UUID    `json:"client_id,omitempty" gorm:"type:uuid;index"`
	Amount      float64       `json:"amount" gorm:"type:numeric(12,2);not null"`
	Status      PaymentStatus `json:"status" gorm:"type:varchar(16);not null;default:'pending';index"`
	PaymentDate time.Time     `json:"payment_date" gorm:"not null;index"`
	Notes       *string       `json:"notes,omitempty"`
	CreatedAt   time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time     `json:"updated_at" gorm:"autoUpdateTime"`

	Client *Client `json:"client,omitempty" gorm:"foreignKey:ClientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

func (Payment) TableName() string { return "payments" }

func (p *Payment) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p Payment) RecordID() uuid.UUID        { return p.ID }
func (p Payment) RecordCreatedAt() time.Time { return p.CreatedAt }

// CountsTowardRevenue reports whether this payment enters revenue sums: only
// confirmed payments with a finite positive amount count.
func (p Payment) CountsTowardRevenue() bool {
	return p.Status == PaymentConfirmed &&
		p.Amount > 0 &&
		!math.IsNaN(p.Amount) &&
		!math.IsInf(p.Amount, 0)
}
