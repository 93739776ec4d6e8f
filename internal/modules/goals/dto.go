package goals

import (
	"github.com/google/uuid"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/stats"
)

// CreateGoalRequest defines a new acquisition target. Target arrives as a
// float because some clients send "5.0"; it is rounded to the nearest int.
type CreateGoalRequest struct {
	Title     string     `json:"title" binding:"required"`
	Target    float64    `json:"target" binding:"required"`
	Frequency string     `json:"frequency"`
	ClientID  *uuid.UUID `json:"client_id"`
}

// UpdateGoalRequest carries the fields being changed; nil means untouched.
type UpdateGoalRequest struct {
	Title     *string  `json:"title"`
	Target    *float64 `json:"target"`
	Frequency *string  `json:"frequency"`
}

// ProgressResponse pairs each goal with its progress in the current window.
type ProgressResponse struct {
	Goals []stats.GoalProgress `json:"goals"`
}
