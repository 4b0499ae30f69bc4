package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Database metrics
	DatabaseOperations *prometheus.CounterVec
	DatabaseLatency    *prometheus.HistogramVec

	// Export metrics
	ExportsGenerated *prometheus.CounterVec
	ExportedRows     prometheus.Counter

	// Retention metrics
	StatsPurged prometheus.Counter
}

// New creates all application metrics and registers them with reg.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		DatabaseOperations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "database_operations_total",
			Help:      "Total number of database operations",
		}, []string{"table", "operation", "status"}),
		DatabaseLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "database_operation_duration_seconds",
			Help:      "Duration of database operations",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"table", "operation"}),

		ExportsGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_generated_total",
			Help:      "Total number of call log exports by format and outcome",
		}, []string{"format", "status"}),
		ExportedRows: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exported_rows_total",
			Help:      "Total number of call log rows written to exports",
		}),

		StatsPurged: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "system_stats_purged_total",
			Help:      "Total number of system stats rows removed by age-based purges",
		}),
	}
}

// ObserveQuery records one database operation. Safe on a nil receiver.
func (m *Metrics) ObserveQuery(table, operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.DatabaseOperations.WithLabelValues(table, operation, status).Inc()
	m.DatabaseLatency.WithLabelValues(table, operation).Observe(time.Since(start).Seconds())
}

// ObserveExport records one export attempt. Safe on a nil receiver.
func (m *Metrics) ObserveExport(format string, rows int, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.ExportsGenerated.WithLabelValues(format, status).Inc()
	m.ExportedRows.Add(float64(rows))
}

// ObservePurge records rows removed by a retention purge. Safe on a nil receiver.
func (m *Metrics) ObservePurge(rows int64) {
	if m == nil {
		return
	}
	m.StatsPurged.Add(float64(rows))
}
