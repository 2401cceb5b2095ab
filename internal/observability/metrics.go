// Package observability exposes Prometheus metrics for the assistant:
// how often each intent fires and how long turns take.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	ace "github.com/acelabs/ace"
)

// Metrics holds the assistant's Prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	replies      *prometheus.CounterVec
	turnDuration prometheus.Histogram
}

// NewMetrics creates the collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		replies: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ace_replies_total",
			Help: "Total replies produced, by intent.",
		}, []string{"intent"}),
		turnDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ace_turn_duration_seconds",
			Help:    "Time from input text to reply, including handler work.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Hooks returns assistant hooks that feed these collectors.
func (m *Metrics) Hooks() ace.Hooks {
	return ace.Hooks{
		OnReply: func(reply ace.Reply, elapsed time.Duration) {
			m.replies.WithLabelValues(reply.Intent).Inc()
			m.turnDuration.Observe(elapsed.Seconds())
		},
	}
}

// Handler serves the metrics over HTTP.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
