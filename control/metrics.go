// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Runtime counters for the gateway adapters.
// Exposes counters in a thread-safe map with dynamic registration.

package control

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metric keys recorded by the adapters.
const (
	MetricOps            = "ops"
	MetricBytesIn        = "bytes.in"
	MetricBytesOut       = "bytes.out"
	MetricRejectsBusy    = "rejects.busy"
	MetricRejectsInvalid = "rejects.invalid"
	MetricErrorsOS       = "errors.os"
)

// MetricsRegistry holds counters and gauges.
type MetricsRegistry struct {
	mu       sync.RWMutex
	counters map[string]*atomic.Int64
	gauges   map[string]any
	updated  atomic.Int64 // unix nanos
}

// NewMetricsRegistry creates an empty registry.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		counters: make(map[string]*atomic.Int64),
		gauges:   make(map[string]any),
	}
}

func (mr *MetricsRegistry) counter(key string) *atomic.Int64 {
	mr.mu.RLock()
	c, ok := mr.counters[key]
	mr.mu.RUnlock()
	if ok {
		return c
	}
	mr.mu.Lock()
	defer mr.mu.Unlock()
	if c, ok = mr.counters[key]; ok {
		return c
	}
	c = new(atomic.Int64)
	mr.counters[key] = c
	return c
}

// Add increments a counter. A nil registry ignores the call.
func (mr *MetricsRegistry) Add(key string, delta int64) {
	if mr == nil {
		return
	}
	mr.counter(key).Add(delta)
	mr.updated.Store(time.Now().UnixNano())
}

// Counter returns the value of a counter, 0 if never touched.
func (mr *MetricsRegistry) Counter(key string) int64 {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	if c, ok := mr.counters[key]; ok {
		return c.Load()
	}
	return 0
}

// Set sets or updates a gauge.
func (mr *MetricsRegistry) Set(key string, value any) {
	mr.mu.Lock()
	mr.gauges[key] = value
	mr.mu.Unlock()
	mr.updated.Store(time.Now().UnixNano())
}

// Updated returns the time of the last change.
func (mr *MetricsRegistry) Updated() time.Time {
	ns := mr.updated.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}

// GetSnapshot returns the latest counters and gauges.
func (mr *MetricsRegistry) GetSnapshot() map[string]any {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	out := make(map[string]any, len(mr.counters)+len(mr.gauges))
	for k, v := range mr.gauges {
		out[k] = v
	}
	for k, c := range mr.counters {
		out[k] = c.Load()
	}
	return out
}
