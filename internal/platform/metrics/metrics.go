package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "mpl_analyzer"

// Reports records report generation outcomes. A nil *Reports is a no-op.
type Reports struct {
	generated *prometheus.CounterVec
	failures  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	tableRows prometheus.Histogram
	cacheHits prometheus.Counter
	roleGaps  *prometheus.CounterVec
}

func NewReports(registry prometheus.Registerer) *Reports {
	m := &Reports{
		generated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_generated_total",
			Help:      "Reports generated, by scoring policy.",
		}, []string{"policy"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_failures_total",
			Help:      "Report requests that failed, by reason.",
		}, []string{"reason"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_duration_seconds",
			Help:      "Time spent loading a sheet and deriving the report.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}, []string{"policy"}),
		tableRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sheet_rows",
			Help:      "Data rows per loaded sheet.",
			Buckets:   []float64{10, 25, 50, 100, 250, 500, 1000},
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sheet_cache_hits_total",
			Help:      "Sheets served from the parsed-table cache.",
		}),
		roleGaps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "allstar_role_gaps_total",
			Help:      "All-star roles that could not fill both rosters.",
		}, []string{"role"}),
	}

	if registry != nil {
		registry.MustRegister(m.generated, m.failures, m.duration, m.tableRows, m.cacheHits, m.roleGaps)
	}
	return m
}

func (m *Reports) ObserveReport(policy string, rows int, took time.Duration) {
	if m == nil {
		return
	}
	m.generated.WithLabelValues(policy).Inc()
	m.duration.WithLabelValues(policy).Observe(took.Seconds())
	m.tableRows.Observe(float64(rows))
}

func (m *Reports) ObserveFailure(reason string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(reason).Inc()
}

func (m *Reports) ObserveCacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

func (m *Reports) ObserveRoleGap(role string) {
	if m == nil {
		return
	}
	m.roleGaps.WithLabelValues(role).Inc()
}
