package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientStatus is the lifecycle status of a client account.
type ClientStatus string

const (
	ClientActive     ClientStatus = "active"
	ClientInProgress ClientStatus = "in_progress"
	ClientPaused     ClientStatus = "paused"
	ClientCancelled  ClientStatus = "cancelled"
	// ClientUnknown is the explicit bucket for missing or unrecognised
	// statuses so aggregation never drops or crashes on bad rows.
	ClientUnknown ClientStatus = "unknown"
)

// NormalizeClientStatus maps any raw value onto the fixed enumeration.
func NormalizeClientStatus(raw string) ClientStatus {
	switch ClientStatus(raw) {
	case ClientActive, ClientInProgress, ClientPaused, ClientCancelled:
		return ClientStatus(raw)
	default:
		return ClientUnknown
	}
}

// Plan is the subscription tier a client is on.
type Plan string

const (
	PlanStarter Plan = "starter"
	PlanPro     Plan = "pro"
)

// PaymentState tracks whether a client is current on their plan.
type PaymentState string

const (
	PaymentPaid    PaymentState = "paid"
	PaymentUnpaid  PaymentState = "unpaid"
	PaymentOverdue PaymentState = "overdue"
)

// Client is a business customer tracked by the dashboard. Cancellation is a
// status change; clients are not hard-deleted in the normal flow.
type Client struct {
	ID            uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey"`
	Name          string       `json:"name" gorm:"not null"`
	Email         string       `json:"email" gorm:"index"`
	Phone         string       `json:"phone"`
	Status        ClientStatus `json:"status" gorm:"type:varchar(16);not null;default:'active';index"`
	Plan          Plan         `json:"plan" gorm:"type:varchar(16);not null;default:'starter'"`
	PaymentStatus PaymentState `json:"payment_status" gorm:"type:varchar(16);not null;default:'unpaid'"`
	InPerson      bool         `json:"in_person" gorm:"not null;default:false"`
	Notes         *string      `json:"notes,omitempty"`
	CreatedAt     time.Time    `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt     time.Time    `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Client) TableName() string { return "clients" }

func (c *Client) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (c Client) RecordID() uuid.UUID        { return c.ID }
func (c Client) RecordCreatedAt() time.Time { return c.CreatedAt }
