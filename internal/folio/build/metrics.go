package build

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes build results to Prometheus.
type Metrics struct {
	builds     *prometheus.CounterVec
	duration   prometheus.Histogram
	files      prometheus.Gauge
	pageErrors prometheus.Gauge
	lastBuild  prometheus.Gauge
}

// NewMetrics creates the build metrics and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "folio",
			Name:      "builds_total",
			Help:      "Number of site builds, by result.",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "folio",
			Name:      "build_duration_seconds",
			Help:      "Duration of site builds.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		files: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "folio",
			Name:      "build_files_written",
			Help:      "Files written by the last successful build.",
		}),
		pageErrors: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "folio",
			Name:      "build_page_errors",
			Help:      "Pages that failed to render in the last successful build.",
		}),
		lastBuild: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "folio",
			Name:      "last_build_timestamp_seconds",
			Help:      "Unix time of the last successful build.",
		}),
	}
	reg.MustRegister(m.builds, m.duration, m.files, m.pageErrors, m.lastBuild)
	return m
}

func (m *Metrics) observe(report *Report, err error, elapsed time.Duration) {
	m.duration.Observe(elapsed.Seconds())
	if err != nil {
		m.builds.WithLabelValues("error").Inc()
		return
	}
	m.builds.WithLabelValues("success").Inc()
	m.files.Set(float64(report.Written))
	m.pageErrors.Set(float64(report.PageErrors))
	m.lastBuild.SetToCurrentTime()
}
