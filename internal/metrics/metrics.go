package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of events published",
		},
		[]string{"type"},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_handler_errors_total",
			Help: "Total number of event handler errors",
		},
		[]string{"type"},
	)
)

// Business Metrics
var (
	BattlesStarted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "battles_started_total",
			Help: "Total number of battles started",
		},
		[]string{"stage_id"},
	)

	BattlesCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "battles_completed_total",
			Help: "Total number of battles completed, by result",
		},
		[]string{"result"},
	)

	GachaPulls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gacha_pulls_total",
			Help: "Total number of gacha pulls, by banner",
		},
		[]string{"banner_id"},
	)

	HeroesLeveledUp = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "heroes_leveled_up_total",
			Help: "Total number of hero level-ups",
		},
	)

	EquipmentEnhanced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "equipment_enhanced_total",
			Help: "Total number of equipment enhancements, by outcome",
		},
		[]string{"outcome"},
	)

	StagesCleared = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stages_cleared_total",
			Help: "Total number of stage clears, by first-clear status",
		},
		[]string{"first_clear"},
	)
)
