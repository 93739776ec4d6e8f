package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics stores Prometheus collectors used across the service.
type Metrics struct {
	StoreRefreshes     *prometheus.CounterVec
	StoreEvents        *prometheus.CounterVec
	SchemaFallbacks    *prometheus.CounterVec
	NotificationsSent  *prometheus.CounterVec
	NotificationsDedup *prometheus.CounterVec
	LLMRequests        *prometheus.CounterVec
	LLMLatency         *prometheus.HistogramVec
	Errors             *prometheus.CounterVec
}

var (
	regOnce         sync.Once
	metricsInstance *Metrics
)

// Registry builds and registers the metrics singleton with optional namespace.
func Registry(namespace string) *Metrics {
	regOnce.Do(func() {
		metricsInstance = &Metrics{
			StoreRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_refreshes_total",
				Help:      "Total entity store refreshes by table and outcome.",
			}, []string{"table", "status"}),
			StoreEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_events_total",
				Help:      "Total realtime events applied by table and type.",
			}, []string{"table", "type"}),
			SchemaFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "schema_fallbacks_total",
				Help:      "Total reduced-column fallback queries by table.",
			}, []string{"table"}),
			NotificationsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "notifications_sent_total",
				Help:      "Total notifications delivered by type.",
			}, []string{"type"}),
			NotificationsDedup: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "notifications_deduplicated_total",
				Help:      "Total notifications suppressed by the dedup window.",
			}, []string{"type"}),
			LLMRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "llm_requests_total",
				Help:      "Total LLM summary requests by outcome.",
			}, []string{"status"}),
			LLMLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "llm_request_duration_seconds",
				Help:      "Latency distribution for LLM summary calls.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"status"}),
			Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "errors_total",
				Help:      "Total errors grouped by component.",
			}, []string{"component"}),
		}

		prometheus.MustRegister(
			metricsInstance.StoreRefreshes,
			metricsInstance.StoreEvents,
			metricsInstance.SchemaFallbacks,
			metricsInstance.NotificationsSent,
			metricsInstance.NotificationsDedup,
			metricsInstance.LLMRequests,
			metricsInstance.LLMLatency,
			metricsInstance.Errors,
		)
	})
	return metricsInstance
}
