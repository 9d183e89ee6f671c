package cfgx

import "github.com/hengadev/cfgx/internal/guard"

// Environment variable names
const (
	// EnvMaxDepth is the environment variable name for the recursion limit.
	EnvMaxDepth = "CFGX_MAX_DEPTH"

	// EnvDetectCycles turns reference cycle detection on when set to a true value.
	EnvDetectCycles = "CFGX_DETECT_CYCLES"

	// EnvLogLevel is one of debug, info, warn or error.
	EnvLogLevel = "CFGX_LOG_LEVEL"

	// EnvLogFormat is json or console.
	EnvLogFormat = "CFGX_LOG_FORMAT"
)

// Default values
const (
	// DefaultMaxDepth is the deepest nesting level accepted when none is configured.
	DefaultMaxDepth = guard.DefaultMax

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Operation names reported to observability hooks.
const (
	OperationSerialize   = "serialize"
	OperationDeserialize = "deserialize"
	OperationSave        = "save"
	OperationLoad        = "load"
)
