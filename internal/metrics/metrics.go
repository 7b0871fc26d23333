// Package metrics provides Prometheus metrics for reconciliation passes.
//
// rigmap runs as a batch job, so metrics are collected into a private
// registry and written to a node_exporter textfile at the end of the run.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hamcat/rigmap/pkg/errors"
	"github.com/hamcat/rigmap/pkg/reconcile"
)

// Row outcomes.
const (
	OutcomeAccepted   = "accepted"
	OutcomeMalformed  = "malformed"
	OutcomeUnresolved = "unresolved"
	OutcomeDropped    = "dropped"
)

// Metrics contains the counters a pass updates.
type Metrics struct {
	registry *prometheus.Registry

	rowsTotal         *prometheus.CounterVec
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	recordsAbsorbed   *prometheus.CounterVec
	fieldsTotal       *prometheus.CounterVec
	renamedTotal      prometheus.Counter
	brandsCreated     prometheus.Counter
	catalogRecords    prometheus.Gauge

	collectors []prometheus.Collector
}

// New creates metrics registered on a fresh registry.
func New() (*Metrics, error) {
	return NewWithRegistry(prometheus.NewRegistry())
}

// NewWithRegistry creates metrics and registers them on registry.
func NewWithRegistry(registry *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, errors.WrapResource("register", "metrics", "", err)
	}
	return m, nil
}

func (m *Metrics) initMetrics() {
	m.rowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rigmap_rows_total",
			Help: "Input rows read, by source and outcome",
		},
		[]string{"source", "outcome"},
	)
	m.operationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rigmap_operations_total",
			Help: "Catalog operations run, by operation and status",
		},
		[]string{"operation", "status"},
	)
	m.operationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rigmap_operation_duration_seconds",
			Help:    "Time taken by catalog operations",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
		},
		[]string{"operation"},
	)
	m.recordsAbsorbed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rigmap_records_absorbed_total",
			Help: "Records merged into a surviving record",
		},
		[]string{"operation"},
	)
	m.fieldsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rigmap_merge_fields_total",
			Help: "Field-level merge decisions, by action",
		},
		[]string{"action"},
	)
	m.renamedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rigmap_records_renamed_total",
		Help: "Records moved to another brand",
	})
	m.brandsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rigmap_brands_created_total",
		Help: "Brand identities created",
	})
	m.catalogRecords = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "rigmap_catalog_records",
		Help: "Records in the catalog after the last operation",
	})

	m.collectors = []prometheus.Collector{
		m.rowsTotal, m.operationsTotal, m.operationDuration, m.recordsAbsorbed,
		m.fieldsTotal, m.renamedTotal, m.brandsCreated, m.catalogRecords,
	}
}

// Describe implements prometheus.Collector.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	for _, c := range m.collectors {
		c.Describe(ch)
	}
}

// Collect implements prometheus.Collector.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	for _, c := range m.collectors {
		c.Collect(ch)
	}
}

// Registry returns the registry the metrics live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordRows adds n rows with the given outcome.
func (m *Metrics) RecordRows(source, outcome string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.rowsTotal.WithLabelValues(source, outcome).Add(float64(n))
}

// RecordOperation counts one operation and its duration.
func (m *Metrics) RecordOperation(operation string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.operationsTotal.WithLabelValues(operation, status).Inc()
	m.operationDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// RecordResult adds the counters of a finished operation.
func (m *Metrics) RecordResult(res *reconcile.Result) {
	if m == nil || res == nil {
		return
	}
	s := res.Metadata.Stats
	m.recordsAbsorbed.WithLabelValues(res.Operation).Add(float64(s.Absorbed))
	m.fieldsTotal.WithLabelValues("adopted").Add(float64(s.FieldsAdopted))
	m.fieldsTotal.WithLabelValues("kept").Add(float64(s.FieldsKept))
	m.fieldsTotal.WithLabelValues("appended").Add(float64(s.NotesAppended))
	m.renamedTotal.Add(float64(s.Renamed))
	m.brandsCreated.Add(float64(s.BrandsCreated))
	m.catalogRecords.Set(float64(len(res.Records)))
}

// WriteTextfile writes every metric in the text exposition format, for
// node_exporter's textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
