package stats

import (
	"log/slog"
	"time"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/domain"
)

// GoalProgress is the computed state of one goal over its current window.
type GoalProgress struct {
	GoalID      string    `json:"goal_id"`
	Title       string    `json:"title"`
	Current     int       `json:"current"`
	Target      int       `json:"target"`
	Percentage  float64   `json:"percentage"`
	IsComplete  bool      `json:"is_complete"`
	PeriodStart time.Time `json:"period_start"`
}

// ComputeGoalProgress counts the clients created inside the goal's rolling
// window (scoped to the goal's client when set) and derives a clamped
// percentage. Malformed goals never panic: a missing frequency defaults to
// weekly, a non-positive target degrades to a zero-progress result with a
// logged warning.
func ComputeGoalProgress(goal domain.Goal, clients []domain.Client, now time.Time, logger *slog.Logger) GoalProgress {
	progress := GoalProgress{
		GoalID: goal.ID.String(),
		Title:  goal.Title,
		Target: goal.Target,
	}

	if goal.Target <= 0 {
		if logger != nil {
			logger.Warn("goal has a non-positive target, reporting zero progress", "goal_id", goal.ID, "target", goal.Target)
		}
		progress.PeriodStart = now
		return progress
	}

	freq := domain.NormalizeGoalFrequency(string(goal.Frequency))
	periodStart := freq.PeriodStart(now)
	progress.PeriodStart = periodStart

	for _, c := range clients {
		if c.CreatedAt.Before(periodStart) || c.CreatedAt.After(now) {
			continue
		}
		if goal.ClientID != nil && c.ID != *goal.ClientID {
			continue
		}
		progress.Current++
	}

	pct := float64(progress.Current) / float64(goal.Target) * 100
	if pct > 100 {
		pct = 100
	}
	progress.Percentage = pct
	progress.IsComplete = progress.Current >= goal.Target
	return progress
}
