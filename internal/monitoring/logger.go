package monitoring

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// NewLogger builds a zap logger writing to stderr. level is one of debug, info,
// warn or error; format is "json" or "console".
func NewLogger(level, format string) (*zap.Logger, error) {
	zapLevel, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder

	switch strings.ToLower(format) {
	case "", FormatJSON:
		format = FormatJSON
	case FormatConsole:
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	default:
		return nil, fmt.Errorf("unknown log format %q, expected %q or %q", format, FormatJSON, FormatConsole)
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         format,
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger.Named("cfgx"), nil
}

// ParseLevel parses a level name. An empty name means info.
func ParseLevel(level string) (zapcore.Level, error) {
	if level == "" {
		return zap.InfoLevel, nil
	}
	l, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zap.InfoLevel, fmt.Errorf("unknown log level %q: %w", level, err)
	}
	return l, nil
}
