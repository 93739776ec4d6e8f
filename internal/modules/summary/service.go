package summary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Eli45-23/aichatflows-app-sub001/internal/config"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/llm"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/modules/dashboard"
	"github.com/Eli45-23/aichatflows-app-sub001/internal/pkg/apperr"
)

// Dashboard supplies the snapshot the summary is written from.
type Dashboard interface {
	Recompute(ctx context.Context) dashboard.Snapshot
}

// Service turns the current dashboard snapshot into an LLM-written business
// summary. A misconfigured key short-circuits with a diagnostic report
// before any network call.
type Service struct {
	summarizer llm.Summarizer
	dash       Dashboard
	keyReport  config.KeyReport
	logger     *slog.Logger
}

func NewService(summarizer llm.Summarizer, dash Dashboard, keyReport config.KeyReport, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{summarizer: summarizer, dash: dash, keyReport: keyReport, logger: logger}
}

// Diagnostics reports whether the summary feature is usable as configured.
func (s *Service) Diagnostics() config.KeyReport {
	return s.keyReport
}

// Generate produces the summary text for the current business state.
func (s *Service) Generate(ctx context.Context) (string, error) {
	if !s.keyReport.Valid {
		return "", apperr.Validation("summary.generate",
			"LLM key is not usable: "+strings.Join(s.keyReport.Problems, "; "))
	}

	snap := s.dash.Recompute(ctx)
	text, err := s.summarizer.Summarize(ctx, renderSnapshot(snap))
	if err != nil {
		return "", apperr.Remote("summary.generate", err)
	}
	return text, nil
}

// renderSnapshot flattens the snapshot into the compact plain-text form the
// prompt expects.
func renderSnapshot(snap dashboard.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Date: %s\n", snap.ComputedAt.Format(time.DateOnly))
	fmt.Fprintf(&b, "Revenue: today $%.2f, week $%.2f, month $%.2f, total $%.2f\n",
		snap.Revenue.TodayRevenue, snap.Revenue.WeekRevenue, snap.Revenue.MonthRevenue, snap.Revenue.TotalRevenue)
	fmt.Fprintf(&b, "Clients: %d total, %d new today, %d new this week\n",
		snap.ClientCounts.Total, snap.ClientCounts.Today, snap.ClientCounts.ThisWeek)
	fmt.Fprintf(&b, "Visits last 7 days: %d\n", snap.RecentVisits)

	for _, g := range snap.Goals {
		fmt.Fprintf(&b, "Goal %q: %d of %d (%.0f%%)\n", g.Title, g.Current, g.Target, g.Percentage)
	}
	for _, in := range snap.Insights {
		fmt.Fprintf(&b, "Insight: %s\n", in.Message)
	}
	return b.String()
}
