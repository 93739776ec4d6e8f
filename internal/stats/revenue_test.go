package stats

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/domain"
)

func payment(clientID *uuid.UUID, amount float64, status domain.PaymentStatus, date time.Time) domain.Payment {
	return domain.Payment{
		ID:          uuid.New(),
		ClientID:    clientID,
		Amount:      amount,
		Status:      status,
		PaymentDate: date,
	}
}

// Wednesday afternoon; the week started Sunday 2026-08-23 00:00.
var now = time.Date(2026, 8, 26, 15, 0, 0, 0, time.UTC)

func TestWeekRevenueScenario(t *testing.T) {
	clientA := uuid.New()
	inWeek := now.Add(-24 * time.Hour)

	payments := []domain.Payment{
		payment(&clientA, 100, domain.PaymentConfirmed, inWeek),
		payment(&clientA, 100, domain.PaymentConfirmed, inWeek),
		payment(&clientA, 100, domain.PaymentConfirmed, now.Add(-2*time.Hour)),
		payment(&clientA, 50, domain.PaymentPending, inWeek),
	}
	clients := []domain.Client{{ID: clientA, Name: "A", Plan: domain.PlanPro, CreatedAt: now.AddDate(0, -1, 0)}}

	got := ComputeRevenue(payments, clients, now)

	assert.Equal(t, 300.0, got.WeekRevenue)
	assert.Equal(t, 3, got.PaymentsByStatus[domain.PaymentConfirmed])
	assert.Equal(t, 1, got.PaymentsByStatus[domain.PaymentPending])
	assert.Equal(t, 0, got.PaymentsByStatus[domain.PaymentFailed])
	assert.Equal(t, 300.0, got.RevenueByPlan[domain.PlanPro])
}

func TestFilteredListMatchesAggregate(t *testing.T) {
	clientA := uuid.New()
	payments := []domain.Payment{
		payment(&clientA, 120.50, domain.PaymentConfirmed, now.Add(-time.Hour)),
		payment(&clientA, 80, domain.PaymentConfirmed, now.AddDate(0, 0, -2)),
		payment(nil, 40, domain.PaymentConfirmed, now.AddDate(0, 0, -1)),
		payment(&clientA, 999, domain.PaymentFailed, now.Add(-time.Hour)),
		payment(&clientA, 55, domain.PaymentConfirmed, now.AddDate(0, -2, 0)), // outside the week
	}

	weekStart := StartOfWeek(now)
	filtered := ConfirmedInWindow(payments, weekStart, now)
	require.Len(t, filtered, 3)

	stats := ComputeRevenue(payments, nil, now)
	assert.InDelta(t, SumAmounts(filtered), stats.WeekRevenue, 1e-9,
		"filter-then-reduce must agree with the aggregate view")
}

func TestNonFiniteAndNonPositiveAmountsAreExcluded(t *testing.T) {
	payments := []domain.Payment{
		payment(nil, math.NaN(), domain.PaymentConfirmed, now),
		payment(nil, math.Inf(1), domain.PaymentConfirmed, now),
		payment(nil, -10, domain.PaymentConfirmed, now),
		payment(nil, 0, domain.PaymentConfirmed, now),
		payment(nil, 25, domain.PaymentConfirmed, now.Add(-time.Minute)),
	}

	stats := ComputeRevenue(payments, nil, now)
	assert.Equal(t, 25.0, stats.TotalRevenue)
	assert.Equal(t, 25.0, stats.TodayRevenue)
}

func TestPendingPaymentsNeverEnterSums(t *testing.T) {
	payments := []domain.Payment{
		payment(nil, 500, domain.PaymentPending, now.Add(-time.Hour)),
		payment(nil, 500, domain.PaymentFailed, now.Add(-time.Hour)),
	}
	stats := ComputeRevenue(payments, nil, now)
	assert.Zero(t, stats.TotalRevenue)
	assert.Equal(t, 1, stats.PaymentsByStatus[domain.PaymentPending])
	assert.Equal(t, 1, stats.PaymentsByStatus[domain.PaymentFailed])
}
