package cfgx

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadConfig reads a YAML configuration file and validates it. Unknown keys
// are rejected.
//
//	maxDepth: 32
//	detectCycles: true
//	logLevel: debug
//	logFormat: console
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	cfg := DefaultConfig()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: parse config %s: %w", ErrInvalidConfiguration, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	return cfg, nil
}

// WriteConfig writes cfg as YAML to path.
func WriteConfig(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// LoadConfigFromEnvironment loads configuration from environment variables.
//
// A .env file in the working directory is loaded first when present; variables
// already set in the environment win over it.
//
// Optional environment variables (defaults are applied if not set):
//   - CFGX_MAX_DEPTH: recursion limit (default: 20)
//   - CFGX_DETECT_CYCLES: true to report reference cycles
//   - CFGX_LOG_LEVEL: debug, info, warn or error (default: info)
//   - CFGX_LOG_FORMAT: json or console (default: json)
func LoadConfigFromEnvironment() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := DefaultConfig()
	if v := os.Getenv(EnvMaxDepth); v != "" {
		depth, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalidConfiguration, EnvMaxDepth, v)
		}
		cfg.MaxDepth = depth
	}
	if v := os.Getenv(EnvDetectCycles); v != "" {
		detect, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s must be a boolean, got %q", ErrInvalidConfiguration, EnvDetectCycles, v)
		}
		cfg.DetectCycles = detect
	}
	cfg.LogLevel = getEnvOrDefault(EnvLogLevel, DefaultLogLevel)
	cfg.LogFormat = getEnvOrDefault(EnvLogFormat, DefaultLogFormat)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%w: configuration validation failed: %w", ErrInvalidConfiguration, err)
	}
	return cfg, nil
}

// getEnvOrDefault returns the value of an environment variable, or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
