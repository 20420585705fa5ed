package export

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records export activity.
type Metrics struct {
	Exports  *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	Pages    prometheus.Counter
	Staged   prometheus.Gauge
}

// NewMetrics creates the export metrics and registers them with reg. A nil
// registerer creates unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Exports: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fosterdocs_exports_total",
			Help: "PDF exports by kind and outcome",
		}, []string{"kind", "outcome"}), // kind: "single", "batch"; outcome: "ok", "error"

		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fosterdocs_export_duration_seconds",
			Help:    "Time spent rasterising an export, excluding time queued for the stage",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"kind"}),

		Pages: factory.NewCounter(prometheus.CounterOpts{
			Name: "fosterdocs_export_documents_total",
			Help: "Documents staged for export, copies included",
		}),

		Staged: factory.NewGauge(prometheus.GaugeOpts{
			Name: "fosterdocs_export_staged_containers",
			Help: "Containers currently attached to the staging area",
		}),
	}
}

func (m *Metrics) observe(kind string, d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.Exports.WithLabelValues(kind, outcome).Inc()
	m.Duration.WithLabelValues(kind).Observe(d.Seconds())
}

func (m *Metrics) staged(documents int) {
	if m != nil {
		m.Pages.Add(float64(documents))
	}
}

func (m *Metrics) attached(n int) {
	if m != nil {
		m.Staged.Set(float64(n))
	}
}
