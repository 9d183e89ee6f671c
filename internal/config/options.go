package config

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/hengadev/cfgx/registry"
)

// Option represents a configuration option for creating an engine
type Option func(*Config) error

// WithMaxDepth sets the deepest nesting level the walkers accept.
func WithMaxDepth(depth int) Option {
	return func(c *Config) error {
		if depth < 1 {
			return fmt.Errorf("max depth must be at least 1, got %d", depth)
		}
		if depth > MaxDepthLimit {
			return fmt.Errorf("max depth must be at most %d, got %d", MaxDepthLimit, depth)
		}
		c.MaxDepth = depth
		return nil
	}
}

// WithCycleDetection turns on reference cycle detection.
func WithCycleDetection(enabled bool) Option {
	return func(c *Config) error {
		c.DetectCycles = enabled
		return nil
	}
}

// WithRegistry shares an existing handler registry with the engine.
func WithRegistry(r *registry.Registry) Option {
	return func(c *Config) error {
		if r == nil {
			return fmt.Errorf("registry cannot be nil")
		}
		c.Registry = r
		return nil
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		c.Logger = logger
		return nil
	}
}

// WithMetricsCollector sets the metrics collector
func WithMetricsCollector(collector MetricsCollector) Option {
	return func(c *Config) error {
		c.MetricsCollector = collector
		return nil
	}
}

// WithObservabilityHook sets the observability hook
func WithObservabilityHook(hook ObservabilityHook) Option {
	return func(c *Config) error {
		c.ObservabilityHook = hook
		return nil
	}
}

// WithoutBuiltinHandlers leaves the time, duration and uuid handlers out.
func WithoutBuiltinHandlers() Option {
	return func(c *Config) error {
		c.BuiltinHandlers = false
		return nil
	}
}

// ApplyOptions applies all configuration options to a config
func ApplyOptions(config *Config, options []Option) error {
	for i, opt := range options {
		if opt == nil {
			continue
		}
		if err := opt(config); err != nil {
			return fmt.Errorf("option %d failed: %w", i, err)
		}
	}
	return nil
}
