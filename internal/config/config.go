package config

import (
	"fmt"

	"github.com/hengadev/errsx"
	"go.uber.org/zap"

	"github.com/hengadev/cfgx/internal/guard"
	"github.com/hengadev/cfgx/internal/monitoring"
	"github.com/hengadev/cfgx/registry"
)

// MaxDepthLimit caps the configurable recursion depth. Deeper trees would
// overflow the goroutine stack before the guard could report them.
const MaxDepthLimit = 10000

// Type aliases for interfaces from monitoring package
type (
	MetricsCollector  = monitoring.MetricsCollector
	ObservabilityHook = monitoring.ObservabilityHook
)

// Config holds the settings an engine is built from.
type Config struct {
	MaxDepth          int
	DetectCycles      bool
	BuiltinHandlers   bool
	Registry          *registry.Registry
	Logger            *zap.Logger
	ObservabilityHook ObservabilityHook
	MetricsCollector  MetricsCollector
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	return &Config{
		MaxDepth:        guard.DefaultMax,
		BuiltinHandlers: true,
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	errs := errsx.Map{}
	if c.MaxDepth < 1 {
		errs.Set("maxDepth", fmt.Errorf("max depth must be at least 1, got %d", c.MaxDepth))
	}
	if c.MaxDepth > MaxDepthLimit {
		errs.Set("maxDepth", fmt.Errorf("max depth must be at most %d, got %d", MaxDepthLimit, c.MaxDepth))
	}
	return errs.AsError()
}

// Finalize fills in the collaborators that were not configured. The logging
// and metrics hooks always run; a configured hook runs after them.
func (c *Config) Finalize() {
	if c.Registry == nil {
		c.Registry = registry.New()
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.MetricsCollector == nil {
		c.MetricsCollector = monitoring.NoOpMetricsCollector{}
	}
	hooks := []ObservabilityHook{
		monitoring.NewLoggingObservabilityHook(c.Logger),
		monitoring.NewMetricsObservabilityHook(c.MetricsCollector),
	}
	if c.ObservabilityHook != nil {
		hooks = append(hooks, c.ObservabilityHook)
	}
	c.ObservabilityHook = monitoring.NewCompositeObservabilityHook(hooks...)
}
