package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorageMetrics counts and times object storage operations.
// It satisfies storage.Observer.
type StorageMetrics struct {
	ops     *prometheus.CounterVec
	bytes   *prometheus.CounterVec
	latency *prometheus.HistogramVec
}

// NewStorageMetrics registers storage metrics on the provided registry.
func NewStorageMetrics(reg prometheus.Registerer) *StorageMetrics {
	sm := &StorageMetrics{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "ops_total",
			Help:      "Total number of storage operations by result.",
		}, []string{"op", "result"}), // result = "ok" | "error"
		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "bytes_total",
			Help:      "Total bytes transferred by successful storage operations.",
		}, []string{"op"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "op_duration_seconds",
			Help:      "Histogram of storage operation durations in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
	}
	reg.MustRegister(sm.ops, sm.bytes, sm.latency)
	return sm
}

// Observe records one storage operation.
func (s *StorageMetrics) Observe(op string, bytes int64, err error, dur time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	s.ops.WithLabelValues(op, result).Inc()
	if bytes > 0 {
		s.bytes.WithLabelValues(op).Add(float64(bytes))
	}
	s.latency.WithLabelValues(op).Observe(dur.Seconds())
}
