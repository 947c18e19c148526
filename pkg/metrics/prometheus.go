package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	upstreamRequests *prometheus.CounterVec
	upstreamLatency  *prometheus.HistogramVec
	rowsDropped      prometheus.Counter
	snapshots        *prometheus.CounterVec
	snapshotRecords  *prometheus.GaugeVec
	cacheLookups     *prometheus.CounterVec
	errorsTotal      *prometheus.CounterVec
}

// New creates a recorder registered with the default Prometheus registry.
func New() *Recorder {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a recorder registered with reg.
func NewWithRegistry(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		upstreamRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cropadvisor_upstream_requests_total",
				Help: "Total upstream price queries by operation and result",
			},
			[]string{"operation", "result"},
		),
		upstreamLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cropadvisor_upstream_duration_seconds",
				Help:    "Duration of upstream price queries in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 4, 8, 15},
			},
			[]string{"operation"},
		),
		rowsDropped: f.NewCounter(
			prometheus.CounterOpts{
				Name: "cropadvisor_rows_dropped_total",
				Help: "Upstream rows dropped for a non-positive price",
			},
		),
		snapshots: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cropadvisor_snapshots_total",
				Help: "Successful upstream snapshots by scope",
			},
			[]string{"scope"},
		),
		snapshotRecords: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cropadvisor_snapshot_records",
				Help: "Record count of the last snapshot by scope",
			},
			[]string{"scope"},
		),
		cacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cropadvisor_cache_lookups_total",
				Help: "Snapshot cache lookups by result",
			},
			[]string{"result"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cropadvisor_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
	}
}

// RecordUpstreamRequest records one upstream query and its latency.
func (r *Recorder) RecordUpstreamRequest(op, result string, seconds float64) {
	r.upstreamRequests.WithLabelValues(op, result).Inc()
	r.upstreamLatency.WithLabelValues(op).Observe(seconds)
}

func (r *Recorder) RecordRowsDropped(n int) {
	r.rowsDropped.Add(float64(n))
}

// RecordSnapshot records a successful snapshot of the given scope.
func (r *Recorder) RecordSnapshot(scope string, records int) {
	r.snapshots.WithLabelValues(scope).Inc()
	r.snapshotRecords.WithLabelValues(scope).Set(float64(records))
}

// RecordCache records a cache lookup result (hit, miss, error).
func (r *Recorder) RecordCache(result string) {
	r.cacheLookups.WithLabelValues(result).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}
