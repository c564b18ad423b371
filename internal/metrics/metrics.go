package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	TriggerDecisionsTotal *prometheus.CounterVec

	SearchRequestsTotal   *prometheus.CounterVec
	SearchRequestDuration *prometheus.HistogramVec

	LLMRequestsTotal   *prometheus.CounterVec
	LLMRequestDuration *prometheus.HistogramVec

	RateLimitHitsTotal *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "websearch_bot_requests_total",
				Help: "Total number of conversation turns processed",
			},
			[]string{"type", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "websearch_bot_request_duration_seconds",
				Help:    "Conversation turn duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"type"},
		),

		TriggerDecisionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "websearch_bot_trigger_decisions_total",
				Help: "Search-trigger classifier decisions",
			},
			[]string{"triggered"},
		),

		SearchRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "websearch_bot_search_requests_total",
				Help: "Total number of search backend requests",
			},
			[]string{"provider", "status"},
		),
		SearchRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "websearch_bot_search_request_duration_seconds",
				Help:    "Search request duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
			},
			[]string{"provider"},
		),

		LLMRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "websearch_bot_llm_requests_total",
				Help: "Total number of LLM API requests",
			},
			[]string{"provider", "status"},
		),
		LLMRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "websearch_bot_llm_request_duration_seconds",
				Help:    "LLM request duration in seconds",
				Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"provider"},
		),

		RateLimitHitsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "websearch_bot_rate_limit_hits_total",
				Help: "Total number of rate limit hits",
			},
			[]string{"chat_id"},
		),
	}

	return m
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func (m *Metrics) RecordRequest(reqType, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(reqType, status).Inc()
	m.RequestDuration.WithLabelValues(reqType).Observe(duration.Seconds())
}

func (m *Metrics) RecordTrigger(triggered bool) {
	label := "no"
	if triggered {
		label = "yes"
	}
	m.TriggerDecisionsTotal.WithLabelValues(label).Inc()
}

func (m *Metrics) RecordSearch(provider, status string, duration time.Duration) {
	m.SearchRequestsTotal.WithLabelValues(provider, status).Inc()
	m.SearchRequestDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

func (m *Metrics) RecordLLMRequest(provider, status string, duration time.Duration) {
	m.LLMRequestsTotal.WithLabelValues(provider, status).Inc()
	m.LLMRequestDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

func (m *Metrics) RecordRateLimitHit(chatID string) {
	m.RateLimitHitsTotal.WithLabelValues(chatID).Inc()
}
