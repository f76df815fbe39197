package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"saku/internal/coverage"
)

// Metrics exposes the latest coverage report as gauges.
type Metrics struct {
	Score     prometheus.Gauge
	GapToMin  *prometheus.GaugeVec
	GenderGap *prometheus.GaugeVec
	Qualified *prometheus.GaugeVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Score: factory.NewGauge(prometheus.GaugeOpts{
			Name: "saku_coverage_score",
			Help: "Weighted coverage score, 0 to 100",
		}),
		GapToMin: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "saku_coverage_gap_to_min",
			Help: "Qualified candidates still needed to reach the department minimum",
		}, []string{"department"}),
		GenderGap: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "saku_coverage_gender_gap",
			Help: "Shortfall of the female ratio below its department target",
		}, []string{"department"}),
		Qualified: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "saku_coverage_qualified",
			Help: "Qualified candidates per department",
		}, []string{"department"}),
	}
}

// Record replaces the gauges with the values of report.
func (m *Metrics) Record(report coverage.Report) {
	if m == nil {
		return
	}
	m.GapToMin.Reset()
	m.GenderGap.Reset()
	m.Qualified.Reset()
	m.Score.Set(report.Score.Score)
	for _, d := range report.Departments {
		m.GapToMin.WithLabelValues(d.Code).Set(float64(d.GapToMin))
		m.GenderGap.WithLabelValues(d.Code).Set(d.GenderGap)
		m.Qualified.WithLabelValues(d.Code).Set(float64(d.Qualified))
	}
}
