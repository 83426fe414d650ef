package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce             sync.Once
	apiRequestsTotal         *prometheus.CounterVec
	apiLatencySeconds        *prometheus.HistogramVec
	apiErrorsTotal           *prometheus.CounterVec
	stressEventsTotal        prometheus.Counter
	alertsTotal              prometheus.Counter
	detectionDuplicatesTotal *prometheus.CounterVec
	detectionFailuresTotal   prometheus.Counter
	alertBroadcastsTotal     *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the API and the detection engine.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wellbeing_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wellbeing_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wellbeing_errors_total",
			Help: "Total number of error responses returned by API endpoints.",
		}, []string{"method", "route", "status"})

		stressEventsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wellbeing_stress_events_total",
			Help: "Stress events recorded by the detection engine.",
		})

		alertsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wellbeing_alerts_total",
			Help: "Consecutive-week stress alerts raised by the detection engine.",
		})

		detectionDuplicatesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wellbeing_detection_duplicates_total",
			Help: "Detection inserts skipped because an active record already existed.",
		}, []string{"kind"})

		detectionFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wellbeing_detection_failures_total",
			Help: "Detection runs that failed and rolled back the survey write.",
		})

		alertBroadcastsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wellbeing_alert_broadcasts_total",
			Help: "Alert broadcast attempts by transport and outcome.",
		}, []string{"transport", "outcome"})

		prometheus.MustRegister(
			apiRequestsTotal,
			apiLatencySeconds,
			apiErrorsTotal,
			stressEventsTotal,
			alertsTotal,
			detectionDuplicatesTotal,
			detectionFailuresTotal,
			alertBroadcastsTotal,
		)
	})
}

// APIRequests exposes the counter for API requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for API requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the counter for API error responses.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// StressEventsCreated exposes the stress event counter.
func StressEventsCreated() prometheus.Counter {
	RegisterMetrics()
	return stressEventsTotal
}

// AlertsCreated exposes the alert counter.
func AlertsCreated() prometheus.Counter {
	RegisterMetrics()
	return alertsTotal
}

// DetectionDuplicates exposes the duplicate-skip counter, labelled by record kind.
func DetectionDuplicates() *prometheus.CounterVec {
	RegisterMetrics()
	return detectionDuplicatesTotal
}

// DetectionFailures exposes the detection failure counter.
func DetectionFailures() prometheus.Counter {
	RegisterMetrics()
	return detectionFailuresTotal
}

// AlertBroadcasts exposes the broadcast outcome counter.
func AlertBroadcasts() *prometheus.CounterVec {
	RegisterMetrics()
	return alertBroadcastsTotal
}
