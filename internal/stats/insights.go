package stats

import (
	"fmt"
	"time"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/domain"
)

// InsightType signals how the dashboard should render an insight.
type InsightType string

const (
	InsightSuccess InsightType = "success"
	InsightWarning InsightType = "warning"
	InsightInfo    InsightType = "info"
)

// Insight is one rule-produced observation about recent activity.
type Insight struct {
	Type    InsightType `json:"type"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
}

const staleClientDays = 3

// ComputeInsights runs the rule list over recent-window snapshots. Insights
// are emitted in rule order, not ranked.
func ComputeInsights(clients []domain.Client, payments []domain.Payment, visits []domain.BusinessVisit, goals []domain.Goal, now time.Time) []Insight {
	insights := make([]Insight, 0, 4)

	// No new clients in 3+ days.
	latest := time.Time{}
	for _, c := range clients {
		if c.CreatedAt.After(latest) {
			latest = c.CreatedAt
		}
	}
	if len(clients) > 0 && now.Sub(latest) >= staleClientDays*24*time.Hour {
		insights = append(insights, Insight{
			Type:    InsightWarning,
			Title:   "Client growth stalled",
			Message: fmt.Sprintf("No new clients in the last %d days.", staleClientDays),
		})
	}

	// Overdue client payments.
	overdue := 0
	for _, c := range clients {
		if c.PaymentStatus == domain.PaymentOverdue {
			overdue++
		}
	}
	if overdue > 0 {
		insights = append(insights, Insight{
			Type:    InsightWarning,
			Title:   "Overdue payments",
			Message: fmt.Sprintf("%d client(s) have overdue payments.", overdue),
		})
	}

	// Completed goals this period.
	completed := 0
	for _, g := range goals {
		if ComputeGoalProgress(g, clients, now, nil).IsComplete {
			completed++
		}
	}
	if completed > 0 {
		insights = append(insights, Insight{
			Type:    InsightSuccess,
			Title:   "Goals reached",
			Message: fmt.Sprintf("%d goal(s) completed in their current period.", completed),
		})
	}

	// Strong revenue week.
	week := SumAmounts(ConfirmedInWindow(payments, StartOfWeek(now), now))
	if week >= 1000 {
		insights = append(insights, Insight{
			Type:    InsightSuccess,
			Title:   "Strong week",
			Message: fmt.Sprintf("Confirmed revenue this week is $%.2f.", week),
		})
	}

	// Recent field activity.
	weekVisits := 0
	for _, v := range visits {
		if !v.CreatedAt.Before(StartOfWeek(now)) {
			weekVisits++
		}
	}
	if weekVisits > 0 {
		insights = append(insights, Insight{
			Type:    InsightInfo,
			Title:   "Field activity",
			Message: fmt.Sprintf("%d business visit(s) logged this week.", weekVisits),
		})
	}

	return insights
}
