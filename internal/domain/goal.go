package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GoalFrequency determines the rolling window a goal is measured over.
type GoalFrequency string

const (
	GoalDaily   GoalFrequency = "daily"
	GoalWeekly  GoalFrequency = "weekly"
	GoalMonthly GoalFrequency = "monthly"
)

// DefaultGoalFrequency is applied when a goal row predates the frequency
// column or carries an unrecognised value.
const DefaultGoalFrequency = GoalWeekly

// NormalizeGoalFrequency maps any raw value onto the enumeration, defaulting
// to weekly.
func NormalizeGoalFrequency(raw string) GoalFrequency {
	switch GoalFrequency(raw) {
	case GoalDaily, GoalWeekly, GoalMonthly:
		return GoalFrequency(raw)
	default:
		return DefaultGoalFrequency
	}
}

// PeriodStart returns the start of the current window for the frequency:
// midnight today, the most recent Sunday 00:00, or the first of the month,
// in now's location.
func (f GoalFrequency) PeriodStart(now time.Time) time.Time {
	switch f {
	case GoalDaily:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case GoalMonthly:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	default: // weekly
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return midnight.AddDate(0, 0, -int(now.Weekday()))
	}
}

// Goal is a client-acquisition target, either global or scoped to one client.
type Goal struct {
	ID        uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey"`
	Title     string        `json:"title" gorm:"not null"`
	Frequency GoalFrequency `json:"frequency" gorm:"type:varchar(16);not null;default:'weekly'"`
	Target    int           `json:"target" gorm:"not null"`
	ClientID  *uuid.UUID    `json:"client_id,omitempty" gorm:"type:uuid;index"`
	CreatedAt time.Time     `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time     `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Goal) TableName() string { return "goals" }

func (g *Goal) BeforeCreate(_ *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

func (g Goal) RecordID() uuid.UUID        { return g.ID }
func (g Goal) RecordCreatedAt() time.Time { return g.CreatedAt }

// IsGlobal reports whether the goal counts every client rather than one.
func (g Goal) IsGlobal() bool { return g.ClientID == nil }
