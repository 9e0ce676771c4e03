package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Webhook metrics
	WebhookDurationSeconds *prometheus.HistogramVec
	WebhookRequestsTotal   *prometheus.CounterVec

	// Routing metrics
	RoutedKeywordsTotal      *prometheus.CounterVec
	CapabilityFallbacksTotal *prometheus.CounterVec
	SelectionsTotal          *prometheus.CounterVec

	// HTTP metrics
	HTTPErrorsTotal *prometheus.CounterVec

	// Rate limiter metrics
	RateLimiterDropped *prometheus.CounterVec

	// Turn log metrics
	TurnLogWriteErrorsTotal prometheus.Counter
	TurnLogRows             prometheus.Gauge

	// Archive metrics
	ArchiveUploadsTotal *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		// Webhook metrics
		WebhookDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "assistant_webhook_duration_seconds",
				Help:    "Webhook turn processing duration in seconds by intent",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2}, // turns are in-memory, sub-ms typical
			},
			[]string{"intent"}, // intent: main, text, option, media_status, cancel
		),

		WebhookRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_webhook_requests_total",
				Help: "Total number of webhook requests by intent and status",
			},
			[]string{"intent", "status"}, // status: success, error
		),

		// Routing metrics
		RoutedKeywordsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_routed_keywords_total",
				Help: "Total number of routed text turns by catalogue keyword",
			},
			[]string{"keyword"}, // keyword: basic card, list, ..., fallback
		),

		CapabilityFallbacksTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_capability_fallbacks_total",
				Help: "Total number of turns downgraded by a missing device capability",
			},
			[]string{"capability"}, // capability: screen, audio, web_browser
		),

		SelectionsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_selections_total",
				Help: "Total number of list/carousel selections by outcome",
			},
			[]string{"outcome"}, // outcome: known, unknown, none
		),

		// HTTP metrics
		HTTPErrorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_http_errors_total",
				Help: "Total HTTP errors by type",
			},
			[]string{"error_type"}, // error_type: bad_request, rate_limit, timeout
		),

		// Rate limiter metrics
		RateLimiterDropped: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_rate_limiter_dropped_total",
				Help: "Total number of requests dropped by rate limiter",
			},
			[]string{"limiter_type"}, // limiter_type: conversation, global
		),

		// Turn log metrics
		TurnLogWriteErrorsTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "assistant_turn_log_write_errors_total",
				Help: "Total number of failed turn-log inserts",
			},
		),

		TurnLogRows: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "assistant_turn_log_rows",
				Help: "Current number of rows in the turn log",
			},
		),

		// Archive metrics
		ArchiveUploadsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "assistant_archive_uploads_total",
				Help: "Total number of turn-log archive uploads by status",
			},
			[]string{"status"}, // status: success, error
		),
	}

	return m
}

// RecordWebhook records a webhook turn
func (m *Metrics) RecordWebhook(intent, status string, duration float64) {
	m.WebhookRequestsTotal.WithLabelValues(intent, status).Inc()
	m.WebhookDurationSeconds.WithLabelValues(intent).Observe(duration)
}

// RecordRoutedKeyword records the catalogue keyword a text turn resolved to
func (m *Metrics) RecordRoutedKeyword(keyword string) {
	m.RoutedKeywordsTotal.WithLabelValues(keyword).Inc()
}

// RecordCapabilityFallback records a turn downgraded by a missing capability
func (m *Metrics) RecordCapabilityFallback(capability string) {
	m.CapabilityFallbacksTotal.WithLabelValues(capability).Inc()
}

// RecordSelection records a list/carousel selection outcome
func (m *Metrics) RecordSelection(outcome string) {
	m.SelectionsTotal.WithLabelValues(outcome).Inc()
}

// RecordHTTPError records HTTP error metrics
func (m *Metrics) RecordHTTPError(errorType string) {
	m.HTTPErrorsTotal.WithLabelValues(errorType).Inc()
}

// RecordRateLimiterDrop records a request dropped by rate limiter
func (m *Metrics) RecordRateLimiterDrop(limiterType string) {
	m.RateLimiterDropped.WithLabelValues(limiterType).Inc()
}

// RecordTurnLogWriteError records a failed turn-log insert
func (m *Metrics) RecordTurnLogWriteError() {
	m.TurnLogWriteErrorsTotal.Inc()
}

// SetTurnLogRows updates the turn-log row count gauge
func (m *Metrics) SetTurnLogRows(rows int64) {
	m.TurnLogRows.Set(float64(rows))
}

// RecordArchiveUpload records a turn-log archive upload attempt
func (m *Metrics) RecordArchiveUpload(status string) {
	m.ArchiveUploadsTotal.WithLabelValues(status).Inc()
}
