// Package metrics collects per-run counters for the resolver. A run owns its
// own registry; the result can be dumped in the node exporter textfile format
// once the run ends.
package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// Candidate outcomes.
const (
	OutcomeResolved = "resolved"
	OutcomeAbsent   = "absent"
	OutcomeFailed   = "failed"
	OutcomeSkipped  = "skipped"
)

// UnknownReason labels failures that carry no semantic error kind.
const UnknownReason = "UNKNOWN"

// Metrics groups every collector used during a run.
type Metrics struct {
	Registry *prometheus.Registry

	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	LookupRetries   prometheus.Counter
	Candidates      *prometheus.CounterVec
	LookupFailures  *prometheus.CounterVec
	Tiers           *prometheus.CounterVec
}

// New creates a registry and registers all collectors on it.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "idresolve_requests_total",
			Help: "Outbound requests by endpoint and HTTP status (0 for transport errors)",
		}, []string{"endpoint", "status"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "idresolve_request_duration_seconds",
			Help:    "Outbound request latency by endpoint",
			Buckets: DefaultBuckets,
		}, []string{"endpoint"}),
		LookupRetries: f.NewCounter(prometheus.CounterOpts{
			Name: "idresolve_lookup_retries_total",
			Help: "Contact lookup retries caused by throttling",
		}),
		Candidates: f.NewCounterVec(prometheus.CounterOpts{
			Name: "idresolve_candidates_total",
			Help: "Processed candidates by outcome",
		}, []string{"outcome"}),
		LookupFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "idresolve_lookup_failures_total",
			Help: "Contact lookups that returned no hint because of an error, by error kind",
		}, []string{"reason"}),
		Tiers: f.NewCounterVec(prometheus.CounterOpts{
			Name: "idresolve_match_tiers_total",
			Help: "Emitted results by match tier",
		}, []string{"tier"}),
	}
}

// ObserveRequest records one outbound request. status is 0 when the request
// never got a response.
func (m *Metrics) ObserveRequest(endpoint string, status int, took time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(endpoint).Observe(took.Seconds())
}

// IncLookupRetry records a throttled lookup attempt that will be retried.
func (m *Metrics) IncLookupRetry() {
	if m == nil {
		return
	}
	m.LookupRetries.Inc()
}

// IncCandidate records a candidate outcome.
func (m *Metrics) IncCandidate(outcome string) {
	if m == nil {
		return
	}
	m.Candidates.WithLabelValues(outcome).Inc()
}

// IncLookupFailure records a failed contact lookup. An empty reason is
// recorded as UnknownReason.
func (m *Metrics) IncLookupFailure(reason string) {
	if m == nil {
		return
	}
	if reason == "" {
		reason = UnknownReason
	}
	m.LookupFailures.WithLabelValues(reason).Inc()
}

// IncTier records an emitted result tier.
func (m *Metrics) IncTier(tier string) {
	if m == nil {
		return
	}
	m.Tiers.WithLabelValues(tier).Inc()
}

// WriteTextfile dumps the registry to path in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("could not write metrics textfile: %w", err)
	}

	return nil
}
