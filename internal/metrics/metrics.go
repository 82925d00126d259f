package metrics

import (
	"sync"
	"sync/atomic"
)

// MetricKey is a strongly typed metric identifier.
type MetricKey string

// Metric keys (centralized)
const (
	// Ticks
	TicksTotal        MetricKey = "ticks_total"
	TicksSkippedTotal MetricKey = "ticks_skipped_total"

	// Generator
	ReadingsGeneratedTotal MetricKey = "readings_generated_total"

	// History
	HistorySize           MetricKey = "history_size"
	HistoryEvictionsTotal MetricKey = "history_evictions_total"
	HistoryResetsTotal    MetricKey = "history_resets_total"

	// Classification
	StatusStableTotal         MetricKey = "status_stable_total"
	StatusWarningTotal        MetricKey = "status_warning_total"
	StatusCriticalTotal       MetricKey = "status_critical_total"
	StatusUnclassifiableTotal MetricKey = "status_unclassifiable_total"

	// Rendering
	RenderFailuresTotal      MetricKey = "render_failures_total"
	MQTTPublishedTotal       MetricKey = "mqtt_published_total"
	MQTTPublishFailuresTotal MetricKey = "mqtt_publish_failures_total"
)

// Registry stores all metrics.
type Registry struct {
	mu       sync.RWMutex
	counters map[MetricKey]*int64
}

// NewRegistry creates a metrics registry.
func NewRegistry() *Registry {
	return &Registry{
		counters: make(map[MetricKey]*int64),
	}
}

// Inc increments a metric by 1.
func (r *Registry) Inc(key MetricKey) {
	r.Add(key, 1)
}

// Add increments a metric by delta.
func (r *Registry) Add(key MetricKey, delta int64) {
	atomic.AddInt64(r.counter(key), delta)
}

// Set overwrites a gauge-style metric.
func (r *Registry) Set(key MetricKey, value int64) {
	atomic.StoreInt64(r.counter(key), value)
}

// counter returns the slot for key, creating it on first use.
func (r *Registry) counter(key MetricKey) *int64 {
	r.mu.RLock()
	ptr, ok := r.counters[key]
	r.mu.RUnlock()

	if ok {
		return ptr
	}

	// Slow path: metric not yet initialized
	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock
	if ptr, ok = r.counters[key]; ok {
		return ptr
	}

	var val int64
	r.counters[key] = &val
	return &val
}
