// Package metrics provides the centralized Prometheus metrics registry for
// the tracker.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	RefreshCyclesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ekiden_tracker",
		Name:      "refresh_cycles_total",
		Help:      "Total number of completed refresh cycles",
	})
	RefreshFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ekiden_tracker",
		Name:      "refresh_failures_total",
		Help:      "Total number of refresh cycles that failed",
	})
	DocumentFetchErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ekiden_tracker",
		Name:      "document_fetch_errors_total",
		Help:      "Total number of document fetch errors",
	}, []string{"document"})
	RankEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ekiden_tracker",
		Name:      "rank_events_total",
		Help:      "Total number of rank events detected",
	}, []string{"kind"})
	CircuitBreakerTripsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ekiden_tracker",
		Name:      "circuit_breaker_trips_total",
		Help:      "Total number of upstream circuit breaker trips",
	})
)

// Gauge metrics
var (
	TeamsTotal = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "ekiden_tracker",
		Name:      "teams_total",
		Help:      "Number of teams in the latest snapshot",
	})
	TeamsFinished = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "ekiden_tracker",
		Name:      "teams_finished",
		Help:      "Number of teams that have completed the course",
	})
	RaceDay = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "ekiden_tracker",
		Name:      "race_day",
		Help:      "Race day of the latest snapshot",
	})
	LastRefreshTimestamp = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "ekiden_tracker",
		Name:      "last_refresh_timestamp_seconds",
		Help:      "Unix timestamp of the last successful refresh",
	})
)

// Histogram metrics
var (
	RefreshDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "ekiden_tracker",
		Name:      "refresh_duration_seconds",
		Help:      "Duration of a full refresh cycle in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(RefreshCyclesTotal)
		registry.MustRegister(RefreshFailuresTotal)
		registry.MustRegister(DocumentFetchErrorsTotal)
		registry.MustRegister(RankEventsTotal)
		registry.MustRegister(CircuitBreakerTripsTotal)

		// Register gauge metrics
		registry.MustRegister(TeamsTotal)
		registry.MustRegister(TeamsFinished)
		registry.MustRegister(RaceDay)
		registry.MustRegister(LastRefreshTimestamp)

		// Register histogram metrics
		registry.MustRegister(RefreshDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordRefreshSuccess records a completed refresh cycle.
func RecordRefreshSuccess(durationSeconds float64) {
	RefreshCyclesTotal.Inc()
	RefreshDuration.Observe(durationSeconds)
	LastRefreshTimestamp.SetToCurrentTime()
}

// RecordRefreshFailure records a failed refresh cycle.
func RecordRefreshFailure() {
	RefreshFailuresTotal.Inc()
}

// RecordDocumentFetchError records a fetch error for one document.
func RecordDocumentFetchError(document string) {
	DocumentFetchErrorsTotal.WithLabelValues(document).Inc()
}

// RecordRankEvent records a detected rank event.
func RecordRankEvent(kind string) {
	RankEventsTotal.WithLabelValues(kind).Inc()
}

// RecordCircuitBreakerTrip records an upstream circuit breaker trip.
func RecordCircuitBreakerTrip() {
	CircuitBreakerTripsTotal.Inc()
}

// UpdateRaceGauges updates the per-snapshot race gauges.
func UpdateRaceGauges(raceDay, teamsTotal, teamsFinished int) {
	RaceDay.Set(float64(raceDay))
	TeamsTotal.Set(float64(teamsTotal))
	TeamsFinished.Set(float64(teamsFinished))
}
