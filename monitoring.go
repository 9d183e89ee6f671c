package cfgx

import "github.com/hengadev/cfgx/internal/monitoring"

// Observability types accepted by WithObservabilityHook and WithMetricsCollector.
type (
	MetricsCollector           = monitoring.MetricsCollector
	ObservabilityHook          = monitoring.ObservabilityHook
	NoOpObservabilityHook      = monitoring.NoOpObservabilityHook
	InMemoryMetricsCollector   = monitoring.InMemoryMetricsCollector
	CompositeObservabilityHook = monitoring.CompositeObservabilityHook
)

// Metric names recorded for every engine operation.
const (
	MetricStarted   = monitoring.MetricStarted
	MetricSucceeded = monitoring.MetricSucceeded
	MetricFailed    = monitoring.MetricFailed
	MetricDuration  = monitoring.MetricDuration
	MetricErrors    = monitoring.MetricErrors
)

// NewInMemoryMetricsCollector creates a collector that keeps metrics in memory.
func NewInMemoryMetricsCollector() *InMemoryMetricsCollector {
	return monitoring.NewInMemoryMetricsCollector()
}

// NewLoggingObservabilityHook, NewMetricsObservabilityHook and
// NewCompositeObservabilityHook build the stock hooks.
var (
	NewLoggingObservabilityHook   = monitoring.NewLoggingObservabilityHook
	NewMetricsObservabilityHook   = monitoring.NewMetricsObservabilityHook
	NewCompositeObservabilityHook = monitoring.NewCompositeObservabilityHook
	NewLogger                     = monitoring.NewLogger
)
