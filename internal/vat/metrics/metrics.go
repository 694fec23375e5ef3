package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the VAT validation engine.
type Metrics struct {
	// Cache lookups by tier ("transient", "persistent") and result ("hit", "miss", "error")
	CacheLookups *prometheus.CounterVec

	// Registry call latency by result ("valid", "invalid", or an error category)
	RemoteLatency *prometheus.HistogramVec

	// Engine outcomes by status and source
	Outcomes *prometheus.CounterVec

	// Offline resolutions by policy and decision
	OfflineResolutions *prometheus.CounterVec

	// Failed writes to the persistent store
	PersistFailures prometheus.Counter

	// Circuit breaker transitions by state
	BreakerTransitions *prometheus.CounterVec
}

// New creates a new Metrics instance with all engine metrics registered.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the metrics on reg. Tests pass a fresh registry.
func NewWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vatchecker_cache_lookups_total",
			Help: "Validation cache lookups by tier and result",
		}, []string{"tier", "result"}),

		RemoteLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "vatchecker_registry_call_duration_seconds",
			Help:    "Duration of VIES checkVat calls by result",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"result"}),

		Outcomes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vatchecker_outcomes_total",
			Help: "Validation outcomes by status and source",
		}, []string{"status", "source"}),

		OfflineResolutions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vatchecker_offline_resolutions_total",
			Help: "Outcomes decided by the offline policy while the registry was unavailable",
		}, []string{"policy", "valid"}),

		PersistFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "vatchecker_persist_failures_total",
			Help: "Validation records that could not be written to the persistent store",
		}),

		BreakerTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "vatchecker_registry_breaker_transitions_total",
			Help: "Registry circuit breaker state transitions",
		}, []string{"state"}),
	}
}

// RecordCacheLookup records a lookup against a cache tier.
func (m *Metrics) RecordCacheLookup(tier, result string) {
	if m != nil {
		m.CacheLookups.WithLabelValues(tier, result).Inc()
	}
}

// ObserveRemoteCall records the duration of one registry call.
func (m *Metrics) ObserveRemoteCall(result string, d time.Duration) {
	if m != nil {
		m.RemoteLatency.WithLabelValues(result).Observe(d.Seconds())
	}
}

// IncrementOutcome records an engine outcome.
func (m *Metrics) IncrementOutcome(status, source string) {
	if m != nil {
		m.Outcomes.WithLabelValues(status, source).Inc()
	}
}

// IncrementOfflineResolution records a policy decision.
func (m *Metrics) IncrementOfflineResolution(policy string, valid bool) {
	if m != nil {
		label := "false"
		if valid {
			label = "true"
		}
		m.OfflineResolutions.WithLabelValues(policy, label).Inc()
	}
}

// IncrementPersistFailure records a failed persistent write.
func (m *Metrics) IncrementPersistFailure() {
	if m != nil {
		m.PersistFailures.Inc()
	}
}

// RecordBreakerTransition records the breaker opening or closing.
func (m *Metrics) RecordBreakerTransition(state string) {
	if m != nil {
		m.BreakerTransitions.WithLabelValues(state).Inc()
	}
}
