package cfgx

import (
	"errors"

	"github.com/hengadev/cfgx/internal/cfgxerr"
)

var (
	// Structural errors
	ErrUnserializableType         = cfgxerr.ErrUnserializableType
	ErrRecursionLimitExceeded     = cfgxerr.ErrRecursionLimitExceeded
	ErrMissingDefaultConstructor  = cfgxerr.ErrMissingDefaultConstructor
	ErrMalformedNode              = cfgxerr.ErrMalformedNode
	ErrUnresolvableTypeIdentifier = cfgxerr.ErrUnresolvableTypeIdentifier

	// Handler errors
	ErrHandlerFailed = cfgxerr.ErrHandlerFailed

	// Caller errors
	ErrInvalidTarget        = cfgxerr.ErrInvalidTarget
	ErrInvalidConfiguration = cfgxerr.ErrInvalidConfiguration
)

// Error is the detailed form of every serialize or deserialize failure. Use
// errors.As to read the field path and the type involved.
type Error = cfgxerr.Error

// IsStructuralError returns true if the value graph or the node tree cannot be
// converted as given.
func IsStructuralError(err error) bool {
	return errors.Is(err, ErrUnserializableType) ||
		errors.Is(err, ErrRecursionLimitExceeded) ||
		errors.Is(err, ErrMissingDefaultConstructor) ||
		errors.Is(err, ErrMalformedNode) ||
		errors.Is(err, ErrUnresolvableTypeIdentifier)
}

// IsHandlerError returns true if a registered handler failed.
func IsHandlerError(err error) bool {
	return errors.Is(err, ErrHandlerFailed)
}

// IsConfigurationError returns true if the error represents a configuration problem.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration) ||
		errors.Is(err, ErrInvalidTarget)
}

// FieldPath returns the dotted path of the field a failure happened at, or ""
// when err carries none.
func FieldPath(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.FieldPath()
	}
	return ""
}
