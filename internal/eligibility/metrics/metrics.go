package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for eligibility vetting.
type Metrics struct {
	// Checks by rule and outcome
	Checks *prometheus.CounterVec

	// Verdicts by overall result
	Verdicts *prometheus.CounterVec

	// Rule evaluation errors by rule
	EvaluationErrors *prometheus.CounterVec

	// Duration of one vetting run, rules load included
	VetLatency prometheus.Histogram
}

// New registers the eligibility metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Checks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "saku_eligibility_checks_total",
			Help: "Total eligibility checks by rule and outcome",
		}, []string{"rule", "outcome"}), // outcome: "passed", "failed", "not_applicable"

		Verdicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "saku_eligibility_verdicts_total",
			Help: "Total eligibility verdicts by overall result",
		}, []string{"overall"}),

		EvaluationErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "saku_eligibility_evaluation_errors_total",
			Help: "Total rule evaluation errors by rule",
		}, []string{"rule"}),

		VetLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "saku_eligibility_vet_duration_seconds",
			Help:    "Duration of a vetting run including rule loading",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// IncrementCheck records one evaluated check.
func (m *Metrics) IncrementCheck(rule, outcome string) {
	if m != nil {
		m.Checks.WithLabelValues(rule, outcome).Inc()
	}
}

// IncrementVerdict records a verdict.
func (m *Metrics) IncrementVerdict(passed bool) {
	if m != nil {
		overall := "failed"
		if passed {
			overall = "passed"
		}
		m.Verdicts.WithLabelValues(overall).Inc()
	}
}

// IncrementEvaluationError records a rule that could not be evaluated.
func (m *Metrics) IncrementEvaluationError(rule string) {
	if m != nil {
		m.EvaluationErrors.WithLabelValues(rule).Inc()
	}
}

// ObserveVetLatency records the duration of a vetting run.
func (m *Metrics) ObserveVetLatency(d time.Duration) {
	if m != nil {
		m.VetLatency.Observe(d.Seconds())
	}
}
