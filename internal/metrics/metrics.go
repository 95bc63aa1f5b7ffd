// Package metrics provides the centralized Prometheus metrics registry for
// the pick generation pipeline.
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
	GamesIngestedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "games_ingested_total",
		Help:      "Total number of completed games ingested",
	})
	RatingFitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "rating_fits_total",
		Help:      "Total number of rating fits run, by method",
	}, []string{"method"})
	BoardsEvaluatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "boards_evaluated_total",
		Help:      "Total number of odds boards evaluated for picks",
	})
	TicketsGeneratedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "tickets_generated_total",
		Help:      "Total number of tickets passing the edge and stake filters",
	})
	OddsFetchErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "odds_fetch_errors_total",
		Help:      "Total number of failed odds API fetches",
	})
	NotifyFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "notify_failures_total",
		Help:      "Total number of failed pick notifications",
	})
)

// Gauge metrics
var (
	CurrentBankroll = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gridiron_edge",
		Name:      "current_bankroll",
		Help:      "Configured bankroll in currency units",
	})
	RatedTeams = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gridiron_edge",
		Name:      "rated_teams",
		Help:      "Number of teams in the most recent rating fit",
	})
	LastRunTickets = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gridiron_edge",
		Name:      "last_run_tickets",
		Help:      "Number of tickets produced by the most recent pipeline run",
	})
)

// Histogram metrics
var (
	PipelineDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gridiron_edge",
		Name:      "pipeline_duration_seconds",
		Help:      "Duration of full pipeline runs in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300},
	})
	OddsFetchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gridiron_edge",
		Name:      "odds_fetch_duration_seconds",
		Help:      "Duration of odds API fetches in seconds",
		Buckets:   prometheus.DefBuckets,
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(GamesIngestedTotal)
		registry.MustRegister(RatingFitsTotal)
		registry.MustRegister(BoardsEvaluatedTotal)
		registry.MustRegister(TicketsGeneratedTotal)
		registry.MustRegister(OddsFetchErrorsTotal)
		registry.MustRegister(NotifyFailuresTotal)

		registry.MustRegister(CurrentBankroll)
		registry.MustRegister(RatedTeams)
		registry.MustRegister(LastRunTickets)

		registry.MustRegister(PipelineDuration)
		registry.MustRegister(OddsFetchDuration)
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

// RecordRatingFit records a completed rating fit.
func RecordRatingFit(method string, teams int) {
	RatingFitsTotal.WithLabelValues(method).Inc()
	RatedTeams.Set(float64(teams))
}

// RecordPipelineRun records the outcome of a full pipeline run.
func RecordPipelineRun(durationSeconds float64, tickets int) {
	PipelineDuration.Observe(durationSeconds)
	LastRunTickets.Set(float64(tickets))
}

// RecordOddsFetch records an odds API fetch attempt.
func RecordOddsFetch(durationSeconds float64, err error) {
	OddsFetchDuration.Observe(durationSeconds)
	if err != nil {
		OddsFetchErrorsTotal.Inc()
	}
}

// RecordNotifyFailure records a failed pick notification.
func RecordNotifyFailure() {
	NotifyFailuresTotal.Inc()
}
