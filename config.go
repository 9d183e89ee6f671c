package cfgx

import (
	"fmt"
	"strings"

	"github.com/hengadev/errsx"

	"github.com/hengadev/cfgx/internal/config"
	"github.com/hengadev/cfgx/internal/monitoring"
)

// Config holds the file and environment configuration of an Engine.
//
// This struct contains only data. It can be loaded with LoadConfig or
// LoadConfigFromEnvironment, or written in code, and is applied with WithConfig:
//
//	cfg, err := cfgx.LoadConfig("cfgx.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	engine, err := cfgx.New(cfgx.WithConfig(cfg))
type Config struct {
	// MaxDepth is the deepest nesting level accepted. Default: 20
	MaxDepth int `yaml:"maxDepth"`

	// DetectCycles reports reference cycles instead of letting them run into
	// the depth limit.
	DetectCycles bool `yaml:"detectCycles"`

	// LogLevel is one of debug, info, warn or error. Default: info
	LogLevel string `yaml:"logLevel"`

	// LogFormat is json or console. Default: json
	LogFormat string `yaml:"logFormat"`

	// BuiltinHandlers registers the time, duration and uuid handlers.
	// A nil value means true.
	BuiltinHandlers *bool `yaml:"builtinHandlers,omitempty"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		MaxDepth:  DefaultMaxDepth,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

// Validate checks the configuration and applies defaults to empty fields. All
// problems are reported together.
func (c *Config) Validate() error {
	if c.MaxDepth == 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}

	errs := errsx.Map{}
	if c.MaxDepth < 1 || c.MaxDepth > config.MaxDepthLimit {
		errs.Set("maxDepth", fmt.Errorf("max depth must be between 1 and %d, got %d", config.MaxDepthLimit, c.MaxDepth))
	}
	if _, err := monitoring.ParseLevel(c.LogLevel); err != nil {
		errs.Set("logLevel", err)
	}
	switch strings.ToLower(c.LogFormat) {
	case monitoring.FormatJSON, monitoring.FormatConsole:
	default:
		errs.Set("logFormat", fmt.Errorf("log format must be %q or %q, got %q", monitoring.FormatJSON, monitoring.FormatConsole, c.LogFormat))
	}
	return errs.AsError()
}

// UseBuiltinHandlers reports whether the built-in handlers are registered.
func (c Config) UseBuiltinHandlers() bool {
	return c.BuiltinHandlers == nil || *c.BuiltinHandlers
}
