package cfgx

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/hengadev/cfgx/internal/config"
	"github.com/hengadev/cfgx/internal/monitoring"
	"github.com/hengadev/cfgx/registry"
)

// Option configures an Engine.
type Option = config.Option

// WithMaxDepth sets the deepest nesting level accepted. Values nested deeper
// fail with ErrRecursionLimitExceeded.
func WithMaxDepth(depth int) Option { return config.WithMaxDepth(depth) }

// WithCycleDetection makes a value that refers back to one of its ancestors
// fail immediately instead of at the depth limit.
func WithCycleDetection(enabled bool) Option { return config.WithCycleDetection(enabled) }

// WithRegistry shares r with the engine. Handlers added to r later are seen by
// the engine.
func WithRegistry(r *registry.Registry) Option { return config.WithRegistry(r) }

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option { return config.WithLogger(logger) }

// WithObservabilityHook adds hook after the built-in logging and metrics hooks.
func WithObservabilityHook(hook ObservabilityHook) Option { return config.WithObservabilityHook(hook) }

// WithMetricsCollector sets the metrics collector
func WithMetricsCollector(collector MetricsCollector) Option {
	return config.WithMetricsCollector(collector)
}

// WithoutBuiltinHandlers leaves the time, duration and uuid handlers out. A
// time.Time then has no serializable capability unless the caller registers a
// handler for it; durations fall back to integers and UUIDs to byte sequences.
func WithoutBuiltinHandlers() Option { return config.WithoutBuiltinHandlers() }

// WithConfig applies a loaded Config, including a logger built from its log
// level and format.
func WithConfig(cfg Config) Option {
	return func(c *config.Config) error {
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
		}
		logger, err := monitoring.NewLogger(cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
		}
		c.MaxDepth = cfg.MaxDepth
		c.DetectCycles = cfg.DetectCycles
		c.BuiltinHandlers = cfg.UseBuiltinHandlers()
		c.Logger = logger
		return nil
	}
}
