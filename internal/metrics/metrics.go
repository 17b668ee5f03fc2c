package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics, recorded by the middleware for every request.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// Safety-domain metrics.
	CheckinsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "checkins_started_total",
			Help: "Total number of check-in sessions started",
		},
	)

	CheckinsCancelled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "checkins_cancelled_total",
			Help: "Total number of check-in sessions cancelled before expiry",
		},
	)

	SOSEventsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sos_events_created_total",
			Help: "Total number of SOS events created, by status",
		},
		[]string{"status"}, // "triggered" | "auto-triggered"
	)

	AlertsDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alerts_dispatched_total",
			Help: "Total number of alert deliveries attempted, by outcome",
		},
		[]string{"outcome"}, // "sent" | "failed" | "skipped"
	)

	WebSocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of open alert-feed connections",
		},
	)
)
