package store

import (
	"time"

	"github.com/heysubinoy/kvs/pkg/kv"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const (
	opGet    = "get"
	opSet    = "set"
	opRemove = "remove"
)

// InstrumentedStore wraps any kv.Store implementation with Prometheus
// metrics. It is a prometheus.Collector and must be registered to be
// exported.
type InstrumentedStore struct {
	store kv.Store

	opsTotal   *prometheus.CounterVec
	getResults *prometheus.CounterVec
	opDuration *prometheus.HistogramVec
	keysDesc   *prometheus.Desc
}

var (
	_ kv.Store             = (*InstrumentedStore)(nil)
	_ prometheus.Collector = (*InstrumentedStore)(nil)
)

// NewInstrumentedStore wraps a store with instrumentation.
func NewInstrumentedStore(store kv.Store) *InstrumentedStore {
	s := &InstrumentedStore{store: store}

	s.opsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kvs_store_operations_total",
		Help: "Total number of store operations. op will be one of: get, set, or remove.",
	}, []string{"op"})
	s.getResults = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kvs_store_get_results_total",
		Help: "Total number of lookups by outcome. result will be one of: hit or miss.",
	}, []string{"result"})
	s.opDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kvs_store_operation_duration_seconds",
		Help:    "Histogram of the latency of store operations.",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
	s.keysDesc = prometheus.NewDesc(
		"kvs_store_keys",
		"Current number of keys held by the store.",
		nil, nil,
	)

	// Initialize label values so every series is exported from the start.
	for _, op := range []string{opGet, opSet, opRemove} {
		s.opsTotal.WithLabelValues(op)
		s.opDuration.WithLabelValues(op)
	}
	s.getResults.WithLabelValues("hit")
	s.getResults.WithLabelValues("miss")

	return s
}

// Get delegates to the wrapped store and records timing and the lookup result.
func (s *InstrumentedStore) Get(key string) (string, bool) {
	defer s.observe(opGet, time.Now())

	value, found := s.store.Get(key)
	if found {
		s.getResults.WithLabelValues("hit").Inc()
	} else {
		s.getResults.WithLabelValues("miss").Inc()
	}
	return value, found
}

// Set delegates to the wrapped store and records timing.
func (s *InstrumentedStore) Set(key, value string) {
	defer s.observe(opSet, time.Now())
	s.store.Set(key, value)
}

// Remove delegates to the wrapped store and records timing.
func (s *InstrumentedStore) Remove(key string) {
	defer s.observe(opRemove, time.Now())
	s.store.Remove(key)
}

func (s *InstrumentedStore) observe(op string, start time.Time) {
	s.opsTotal.WithLabelValues(op).Inc()
	s.opDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// Snapshot returns the number of operations recorded so far.
func (s *InstrumentedStore) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		GetCount:    counterValue(s.opsTotal.WithLabelValues(opGet)),
		SetCount:    counterValue(s.opsTotal.WithLabelValues(opSet)),
		RemoveCount: counterValue(s.opsTotal.WithLabelValues(opRemove)),
		Hits:        counterValue(s.getResults.WithLabelValues("hit")),
		Misses:      counterValue(s.getResults.WithLabelValues("miss")),
	}
}

// Describe implements prometheus.Collector.
func (s *InstrumentedStore) Describe(ch chan<- *prometheus.Desc) {
	s.opsTotal.Describe(ch)
	s.getResults.Describe(ch)
	s.opDuration.Describe(ch)
	ch <- s.keysDesc
}

// Collect implements prometheus.Collector. The key count is only
// reported when the wrapped store implements kv.Lener.
func (s *InstrumentedStore) Collect(ch chan<- prometheus.Metric) {
	s.opsTotal.Collect(ch)
	s.getResults.Collect(ch)
	s.opDuration.Collect(ch)

	if l, ok := s.store.(kv.Lener); ok {
		if n := l.Len(); n >= 0 {
			ch <- prometheus.MustNewConstMetric(s.keysDesc, prometheus.GaugeValue, float64(n))
		}
	}
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	GetCount    uint64
	SetCount    uint64
	RemoveCount uint64
	Hits        uint64
	Misses      uint64
}

func counterValue(c prometheus.Counter) uint64 {
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return uint64(m.GetCounter().GetValue())
}
