package monitoring

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ObservabilityHook is notified around every engine operation.
type ObservabilityHook interface {
	// Called before the operation starts
	OnProcessStart(ctx context.Context, operation string, metadata map[string]any)

	// Called after the operation completes (success or failure)
	OnProcessComplete(ctx context.Context, operation string, duration time.Duration, err error, metadata map[string]any)

	// Called when the operation fails
	OnError(ctx context.Context, operation string, err error, metadata map[string]any)
}

// NoOpObservabilityHook ignores every notification.
type NoOpObservabilityHook struct{}

func (NoOpObservabilityHook) OnProcessStart(context.Context, string, map[string]any) {}
func (NoOpObservabilityHook) OnProcessComplete(context.Context, string, time.Duration, error, map[string]any) {
}
func (NoOpObservabilityHook) OnError(context.Context, string, error, map[string]any) {}

// LoggingObservabilityHook writes operations to a zap logger. Starts and
// completions are logged at debug level, failures at error level.
type LoggingObservabilityHook struct {
	logger *zap.Logger
}

// NewLoggingObservabilityHook creates a logging hook. A nil logger discards
// everything.
func NewLoggingObservabilityHook(logger *zap.Logger) *LoggingObservabilityHook {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingObservabilityHook{logger: logger}
}

func (l *LoggingObservabilityHook) OnProcessStart(_ context.Context, operation string, metadata map[string]any) {
	l.logger.Debug("operation started", zap.String("operation", operation), zap.Any("metadata", metadata))
}

func (l *LoggingObservabilityHook) OnProcessComplete(_ context.Context, operation string, duration time.Duration, err error, metadata map[string]any) {
	if err != nil {
		l.logger.Error("operation failed",
			zap.String("operation", operation),
			zap.Duration("duration", duration),
			zap.Error(err),
			zap.Any("metadata", metadata))
		return
	}
	l.logger.Debug("operation completed",
		zap.String("operation", operation),
		zap.Duration("duration", duration),
		zap.Any("metadata", metadata))
}

func (l *LoggingObservabilityHook) OnError(_ context.Context, operation string, err error, _ map[string]any) {
	l.logger.Debug("operation error", zap.String("operation", operation), zap.Error(err))
}

// MetricsObservabilityHook turns notifications into counters and timings.
type MetricsObservabilityHook struct {
	collector MetricsCollector
}

// NewMetricsObservabilityHook creates a metrics hook. A nil collector discards
// everything.
func NewMetricsObservabilityHook(collector MetricsCollector) *MetricsObservabilityHook {
	if collector == nil {
		collector = NoOpMetricsCollector{}
	}
	return &MetricsObservabilityHook{collector: collector}
}

func operationTags(operation string, metadata map[string]any) map[string]string {
	tags := map[string]string{"operation": operation}
	if typ, ok := metadata["type"].(string); ok {
		tags["type"] = typ
	}
	return tags
}

func (m *MetricsObservabilityHook) OnProcessStart(_ context.Context, operation string, metadata map[string]any) {
	m.collector.IncrementCounter(MetricStarted, operationTags(operation, metadata))
}

func (m *MetricsObservabilityHook) OnProcessComplete(_ context.Context, operation string, duration time.Duration, err error, metadata map[string]any) {
	tags := operationTags(operation, metadata)
	if err != nil {
		tags["status"] = "error"
		m.collector.IncrementCounter(MetricFailed, tags)
	} else {
		tags["status"] = "success"
		m.collector.IncrementCounter(MetricSucceeded, tags)
	}
	m.collector.RecordTiming(MetricDuration, duration, tags)
}

func (m *MetricsObservabilityHook) OnError(_ context.Context, operation string, err error, _ map[string]any) {
	m.collector.IncrementCounter(MetricErrors, map[string]string{
		"operation": operation,
		"error":     fmt.Sprintf("%T", err),
	})
}

// CompositeObservabilityHook fans notifications out to several hooks in order.
type CompositeObservabilityHook struct {
	hooks []ObservabilityHook
}

func NewCompositeObservabilityHook(hooks ...ObservabilityHook) *CompositeObservabilityHook {
	return &CompositeObservabilityHook{hooks: hooks}
}

func (c *CompositeObservabilityHook) OnProcessStart(ctx context.Context, operation string, metadata map[string]any) {
	for _, hook := range c.hooks {
		hook.OnProcessStart(ctx, operation, metadata)
	}
}

func (c *CompositeObservabilityHook) OnProcessComplete(ctx context.Context, operation string, duration time.Duration, err error, metadata map[string]any) {
	for _, hook := range c.hooks {
		hook.OnProcessComplete(ctx, operation, duration, err, metadata)
	}
}

func (c *CompositeObservabilityHook) OnError(ctx context.Context, operation string, err error, metadata map[string]any) {
	for _, hook := range c.hooks {
		hook.OnError(ctx, operation, err, metadata)
	}
}
