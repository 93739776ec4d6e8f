package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/domain"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/metrics"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/realtime"
)

// Dedup windows. A repeated event with the same unique key inside the window
// is dropped. Goal completions stay suppressed for a day so a goal that keeps
// polling as complete alerts once.
const (
	DefaultDedupWindow = time.Hour
	GoalDedupWindow    = 24 * time.Hour
)

// Dispatcher fans domain events out to every operator account, once per
// (user, type, unique key) within the dedup window. History persistence and
// realtime delivery are independent best-effort effects: a database hiccup
// does not block the websocket push and vice versa.
type Dispatcher struct {
	repo   NotificationRepository
	users  RecipientDirectory
	dedup  Deduper
	bus    *realtime.Bus
	logger *slog.Logger
	m      *metrics.Metrics
}

func NewDispatcher(repo NotificationRepository, users RecipientDirectory, dedup Deduper, bus *realtime.Bus, logger *slog.Logger, m *metrics.Metrics) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{repo: repo, users: users, dedup: dedup, bus: bus, logger: logger, m: m}
}

func (d *Dispatcher) NotifyClientAdded(ctx context.Context, client domain.Client) {
	d.dispatch(ctx, domain.NotifClientAdded, client.ID.String(),
		"New client added",
		fmt.Sprintf("%s joined on the %s plan", client.Name, client.Plan),
		map[string]any{"client_id": client.ID},
	)
}

func (d *Dispatcher) NotifyPaymentConfirmed(ctx context.Context, payment domain.Payment) {
	d.dispatch(ctx, domain.NotifPaymentConfirmed, payment.ID.String(),
		"Payment confirmed",
		fmt.Sprintf("$%.2f received", payment.Amount),
		map[string]any{"payment_id": payment.ID, "amount": payment.Amount},
	)
}

func (d *Dispatcher) NotifyVisitLogged(ctx context.Context, visit domain.BusinessVisit) {
	body := "Visit logged"
	if visit.Location != nil {
		body = "Visit logged at " + *visit.Location
	}
	d.dispatch(ctx, domain.NotifVisitLogged, visit.ID.String(),
		"Business visit",
		body,
		map[string]any{"visit_id": visit.ID},
	)
}

func (d *Dispatcher) NotifyGoalCompleted(ctx context.Context, goal domain.Goal) {
	d.dispatch(ctx, domain.NotifGoalCompleted, goal.ID.String(),
		"Goal completed",
		fmt.Sprintf("%q hit its target of %d", goal.Title, goal.Target),
		map[string]any{"goal_id": goal.ID},
	)
}

func (d *Dispatcher) NotifyFormSubmitted(ctx context.Context, submission domain.FormSubmission) {
	d.dispatch(ctx, domain.NotifFormSubmitted, submission.ID.String(),
		"New form submission",
		fmt.Sprintf("Onboarding form received from %s", submission.Email),
		map[string]any{"submission_id": submission.ID, "client_id": submission.ClientID},
	)
}

func (d *Dispatcher) dispatch(ctx context.Context, typ domain.NotificationType, uniqueKey, title, body string, data map[string]any) {
	recipients, err := d.users.ListIDs(ctx)
	if err != nil {
		d.logger.Warn("could not resolve notification recipients, dropping event", "type", typ, "err", err)
		return
	}

	window := DefaultDedupWindow
	if typ == domain.NotifGoalCompleted {
		window = GoalDedupWindow
	}

	for _, userID := range recipients {
		if d.isDuplicate(ctx, userID, typ, uniqueKey, window) {
			if d.m != nil {
				d.m.NotificationsDedup.WithLabelValues(string(typ)).Inc()
			}
			continue
		}
		d.deliver(ctx, userID, typ, uniqueKey, title, body, data)
	}
}

// isDuplicate tries the redis claim first and falls back to the history
// table. A redis outage degrades to the slower database check rather than
// double-sending or going silent.
func (d *Dispatcher) isDuplicate(ctx context.Context, userID uuid.UUID, typ domain.NotificationType, uniqueKey string, window time.Duration) bool {
	if d.dedup != nil {
		key := fmt.Sprintf("notif:%s:%s:%s", userID, typ, uniqueKey)
		claimed, err := d.dedup.ClaimOnce(ctx, key, window)
		if err == nil {
			return !claimed
		}
		d.logger.Warn("dedup cache unavailable, falling back to history query", "err", err)
	}

	exists, err := d.repo.ExistsWithin(ctx, userID, typ, uniqueKey, window)
	if err != nil {
		d.logger.Warn("dedup history query failed, sending anyway", "type", typ, "err", err)
		return false
	}
	return exists
}

func (d *Dispatcher) deliver(ctx context.Context, userID uuid.UUID, typ domain.NotificationType, uniqueKey, title, body string, data map[string]any) {
	n := &domain.Notification{
		UserID:    userID,
		Type:      typ,
		Title:     title,
		Body:      body,
		UniqueKey: uniqueKey,
	}
	if err := n.SetData(data); err != nil {
		d.logger.Warn("could not encode notification payload", "type", typ, "err", err)
	}

	persisted := n
	if created, err := d.repo.Create(ctx, n); err != nil {
		d.logger.Warn("could not persist notification history", "type", typ, "user_id", userID, "err", err)
	} else {
		persisted = created
	}

	if d.bus != nil {
		d.bus.Publish(realtime.Event{
			Table:  "notifications",
			Type:   realtime.EventInsert,
			ID:     persisted.ID,
			Record: *persisted,
		})
	}
	if d.m != nil {
		d.m.NotificationsSent.WithLabelValues(string(typ)).Inc()
	}
}
