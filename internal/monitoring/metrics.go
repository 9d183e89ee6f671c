package monitoring

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Metric names emitted by MetricsObservabilityHook.
const (
	MetricStarted   = "cfgx.process.started"
	MetricSucceeded = "cfgx.process.succeeded"
	MetricFailed    = "cfgx.process.failed"
	MetricDuration  = "cfgx.process.duration"
	MetricErrors    = "cfgx.errors"
)

// MetricsCollector receives counters, gauges and timings.
type MetricsCollector interface {
	IncrementCounter(name string, tags map[string]string)
	SetGauge(name string, value float64, tags map[string]string)
	RecordTiming(name string, duration time.Duration, tags map[string]string)
	// Flush any buffered metrics
	Flush() error
}

// NoOpMetricsCollector discards every metric.
type NoOpMetricsCollector struct{}

func (NoOpMetricsCollector) IncrementCounter(string, map[string]string)            {}
func (NoOpMetricsCollector) SetGauge(string, float64, map[string]string)           {}
func (NoOpMetricsCollector) RecordTiming(string, time.Duration, map[string]string) {}
func (NoOpMetricsCollector) Flush() error                                          { return nil }

// InMemoryMetricsCollector keeps metrics in memory. It is meant for tests and
// for the CLI's summary output.
type InMemoryMetricsCollector struct {
	mu       sync.RWMutex
	counters map[string]int64
	gauges   map[string]float64
	timings  map[string][]time.Duration
}

func NewInMemoryMetricsCollector() *InMemoryMetricsCollector {
	return &InMemoryMetricsCollector{
		counters: make(map[string]int64),
		gauges:   make(map[string]float64),
		timings:  make(map[string][]time.Duration),
	}
}

func (m *InMemoryMetricsCollector) IncrementCounter(name string, tags map[string]string) {
	key := seriesKey(name, tags)
	m.mu.Lock()
	m.counters[key]++
	m.mu.Unlock()
}

func (m *InMemoryMetricsCollector) SetGauge(name string, value float64, tags map[string]string) {
	key := seriesKey(name, tags)
	m.mu.Lock()
	m.gauges[key] = value
	m.mu.Unlock()
}

func (m *InMemoryMetricsCollector) RecordTiming(name string, duration time.Duration, tags map[string]string) {
	key := seriesKey(name, tags)
	m.mu.Lock()
	m.timings[key] = append(m.timings[key], duration)
	m.mu.Unlock()
}

func (m *InMemoryMetricsCollector) Flush() error { return nil }

// Counter returns the value of one counter series.
func (m *InMemoryMetricsCollector) Counter(name string, tags map[string]string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.counters[seriesKey(name, tags)]
}

// CounterTotal sums a counter over all tag combinations.
func (m *InMemoryMetricsCollector) CounterTotal(name string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var total int64
	for key, v := range m.counters {
		if key == name || strings.HasPrefix(key, name+",") {
			total += v
		}
	}
	return total
}

func (m *InMemoryMetricsCollector) Gauge(name string, tags map[string]string) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gauges[seriesKey(name, tags)]
}

// Timings returns a copy of the timings recorded for one series.
func (m *InMemoryMetricsCollector) Timings(name string, tags map[string]string) []time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]time.Duration(nil), m.timings[seriesKey(name, tags)]...)
}

// Reset clears all metrics.
func (m *InMemoryMetricsCollector) Reset() {
	m.mu.Lock()
	m.counters = make(map[string]int64)
	m.gauges = make(map[string]float64)
	m.timings = make(map[string][]time.Duration)
	m.mu.Unlock()
}

// seriesKey renders name and tags as "name,k1=v1,k2=v2" with sorted keys.
func seriesKey(name string, tags map[string]string) string {
	if len(tags) == 0 {
		return name
	}
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(name)
	for _, k := range keys {
		b.WriteString(",")
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(tags[k])
	}
	return b.String()
}
