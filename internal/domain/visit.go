package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BusinessVisit is a logged field visit, optionally tied to a client. The
// location is resolved once at creation and immutable afterwards.
type BusinessVisit struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	ClientID  *uuid.UUID `json:"client_id,omitempty" gorm:"type:uuid;index"`
	Location  *string    `json:"location,omitempty"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime;index"`
}

func (BusinessVisit) TableName() string { return "business_visits" }

func (v *BusinessVisit) BeforeCreate(_ *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

func (v BusinessVisit) RecordID() uuid.UUID        { return v.ID }
func (v BusinessVisit) RecordCreatedAt() time.Time { return v.CreatedAt }

// ResolveLocation merges manual input, device coordinates and a
// reverse-geocoded address into one display string. First non-empty source
// wins: manual entry, then geocoded address, then raw coordinates.
func ResolveLocation(manual, geocoded string, lat, lng *float64) *string {
	if s := strings.TrimSpace(manual); s != "" {
		return &s
	}
	if s := strings.TrimSpace(geocoded); s != "" {
		return &s
	}
	if lat != nil && lng != nil {
		s := fmt.Sprintf("%.5f, %.5f", *lat, *lng)
		return &s
	}
	return nil
}
