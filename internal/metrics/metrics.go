package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ActiveConnections tracks currently-open display push channels.
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "signage_active_connections",
			Help: "Number of currently-open display push channels",
		},
	)

	// BroadcastSends counts per-channel broadcast deliveries by outcome.
	BroadcastSends = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signage_broadcast_sends_total",
			Help: "Per-channel broadcast delivery attempts by status",
		},
		[]string{"status"},
	)

	// ResolveDuration tracks display config resolution latency in seconds.
	ResolveDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "signage_resolve_duration_seconds",
			Help:    "Display configuration resolution duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
	)

	// WeatherFetchFailures counts weather provider failures (recovered with
	// the unavailable sentinel, never surfaced).
	WeatherFetchFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "signage_weather_fetch_failures_total",
			Help: "Total weather provider fetch failures",
		},
	)
)
