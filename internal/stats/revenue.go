package stats

import (
	"time"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/domain"
)

// RevenueStats summarises payments over the fixed calendar windows. Only
// confirmed payments with finite positive amounts enter the sums; counts by
// status cover every payment regardless.
type RevenueStats struct {
	TodayRevenue float64 `json:"today_revenue"`
	WeekRevenue  float64 `json:"week_revenue"`
	MonthRevenue float64 `json:"month_revenue"`
	YearRevenue  float64 `json:"year_revenue"`
	TotalRevenue float64 `json:"total_revenue"`

	RevenueByPlan    map[domain.Plan]float64      `json:"revenue_by_plan"`
	PaymentsByStatus map[domain.PaymentStatus]int `json:"payments_by_status"`
}

// ConfirmedInWindow returns the confirmed payments with countable amounts
// whose payment date falls in [from, now].
func ConfirmedInWindow(payments []domain.Payment, from, now time.Time) []domain.Payment {
	out := make([]domain.Payment, 0, len(payments))
	for _, p := range payments {
		if !p.CountsTowardRevenue() {
			continue
		}
		if p.PaymentDate.Before(from) || p.PaymentDate.After(now) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SumAmounts adds up the amounts of the given payments.
func SumAmounts(payments []domain.Payment) float64 {
	var total float64
	for _, p := range payments {
		total += p.Amount
	}
	return total
}

// ComputeRevenue builds the full revenue summary at the given instant.
// Clients are consulted to attribute revenue to a plan; payments without a
// resolvable client are left out of the per-plan split but still count in
// the totals.
func ComputeRevenue(payments []domain.Payment, clients []domain.Client, now time.Time) RevenueStats {
	stats := RevenueStats{
		RevenueByPlan: make(map[domain.Plan]float64),
		PaymentsByStatus: map[domain.PaymentStatus]int{
			domain.PaymentPending:   0,
			domain.PaymentConfirmed: 0,
			domain.PaymentFailed:    0,
		},
	}

	planByClient := make(map[string]domain.Plan, len(clients))
	for _, c := range clients {
		planByClient[c.ID.String()] = c.Plan
	}

	dayStart := StartOfDay(now)
	weekStart := StartOfWeek(now)
	monthStart := StartOfMonth(now)
	yearStart := StartOfYear(now)

	for _, p := range payments {
		stats.PaymentsByStatus[p.Status]++

		if !p.CountsTowardRevenue() || p.PaymentDate.After(now) {
			continue
		}

		stats.TotalRevenue += p.Amount
		if !p.PaymentDate.Before(dayStart) {
			stats.TodayRevenue += p.Amount
		}
		if !p.PaymentDate.Before(weekStart) {
			stats.WeekRevenue += p.Amount
		}
		if !p.PaymentDate.Before(monthStart) {
			stats.MonthRevenue += p.Amount
		}
		if !p.PaymentDate.Before(yearStart) {
			stats.YearRevenue += p.Amount
		}

		if p.ClientID != nil {
			if plan, ok := planByClient[p.ClientID.String()]; ok {
				stats.RevenueByPlan[plan] += p.Amount
			}
		}
	}

	return stats
}
