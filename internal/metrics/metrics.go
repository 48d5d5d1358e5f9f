// Package metrics holds the Prometheus collectors shared by the agents.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// WSConnected is 1 while the realtime channel is open.
	WSConnected = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "rideclient",
		Subsystem: "realtime",
		Name:      "connected",
		Help:      "Whether the realtime channel is currently open.",
	})

	// Reconnects counts reconnect attempts scheduled after a lost connection.
	Reconnects = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "rideclient",
		Subsystem: "realtime",
		Name:      "reconnects_total",
		Help:      "Total realtime reconnect attempts.",
	})

	// PushEvents counts inbound realtime frames by event type.
	PushEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rideclient",
		Subsystem: "realtime",
		Name:      "push_events_total",
		Help:      "Total inbound realtime frames by type.",
	}, []string{"type"})

	// Polls counts completed poll cycles by target resource.
	Polls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rideclient",
		Subsystem: "poll",
		Name:      "cycles_total",
		Help:      "Total completed poll cycles by resource.",
	}, []string{"resource"})

	// PollFailures counts poll cycles that failed even after the retry.
	PollFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rideclient",
		Subsystem: "poll",
		Name:      "failures_total",
		Help:      "Total failed poll cycles by resource.",
	}, []string{"resource"})

	// APIRequests counts REST calls by method and outcome class.
	APIRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rideclient",
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "Total REST requests by method and status class.",
	}, []string{"method", "class"})
)
