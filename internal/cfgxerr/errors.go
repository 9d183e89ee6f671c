package cfgxerr

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	// Structural errors
	ErrUnserializableType         = errors.New("unserializable type")
	ErrRecursionLimitExceeded     = errors.New("recursion limit exceeded")
	ErrMissingDefaultConstructor  = errors.New("missing default constructor")
	ErrMalformedNode              = errors.New("malformed node")
	ErrUnresolvableTypeIdentifier = errors.New("unresolvable type identifier")

	// Handler errors
	ErrHandlerFailed = errors.New("handler failed")

	// Caller errors
	ErrInvalidTarget        = errors.New("invalid target")
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// Error is a failure inside one serialize or deserialize call tree. Path holds
// the field names from the root value down to the failing field.
type Error struct {
	Action Action
	Kind   error
	Path   []string
	Type   reflect.Type
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if len(e.Path) > 0 {
		fmt.Fprintf(&b, ": field '%s'", e.FieldPath())
	} else {
		b.WriteString(": root value")
	}
	if e.Type != nil {
		fmt.Fprintf(&b, " of type %s", e.Type)
	}
	fmt.Fprintf(&b, " during %s", e.Action)
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap exposes both the error kind and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// FieldPath returns the dotted path of the failing field. Sequence indexes are
// attached to their parent key, as in "items[2].name".
func (e *Error) FieldPath() string {
	var b strings.Builder
	for i, p := range e.Path {
		if i > 0 && !strings.HasPrefix(p, "[") {
			b.WriteByte('.')
		}
		b.WriteString(p)
	}
	return b.String()
}

func newError(action Action, kind error, path []string, t reflect.Type, detail string, cause error) *Error {
	p := make([]string, len(path))
	copy(p, path)
	return &Error{
		Action: action,
		Kind:   kind,
		Path:   p,
		Type:   t,
		Detail: detail,
		Cause:  cause,
	}
}

func NewUnserializableTypeError(action Action, path []string, t reflect.Type) error {
	return newError(action, ErrUnserializableType, path, t, "type matches no serializable capability", nil)
}

// NewUnserializableDynamicTypeError reports a value held by an interface of
// the declared type whose dynamic type cannot be serialized.
func NewUnserializableDynamicTypeError(action Action, path []string, declared, dynamic reflect.Type) error {
	return newError(action, ErrUnserializableType, path, declared,
		fmt.Sprintf("dynamic type %s matches no serializable capability", dynamic), nil)
}

func NewRecursionLimitError(action Action, path []string, t reflect.Type, depth, max int) error {
	return newError(action, ErrRecursionLimitExceeded, path, t,
		fmt.Sprintf("depth %d exceeds maximum %d, probable reference cycle", depth, max), nil)
}

func NewCycleError(action Action, path []string, t reflect.Type) error {
	return newError(action, ErrRecursionLimitExceeded, path, t, "reference cycle detected", nil)
}

func NewMissingConstructorError(path []string, t reflect.Type) error {
	return newError(Deserialize, ErrMissingDefaultConstructor, path, t, "type cannot be instantiated without a registered handler", nil)
}

func NewMalformedNodeError(path []string, t reflect.Type, expected, actual string) error {
	return newError(Deserialize, ErrMalformedNode, path, t,
		fmt.Sprintf("expected %s node, got %s", expected, actual), nil)
}

func NewUnresolvableTypeError(path []string, t reflect.Type, tag string, cause error) error {
	return newError(Deserialize, ErrUnresolvableTypeIdentifier, path, t,
		fmt.Sprintf("type identifier %q", tag), cause)
}

func NewHandlerError(action Action, path []string, t reflect.Type, cause error) error {
	return newError(action, ErrHandlerFailed, path, t, "", cause)
}

func NewHandlerResultError(action Action, path []string, t reflect.Type, got reflect.Type) error {
	return newError(action, ErrHandlerFailed, path, t, fmt.Sprintf("handler produced %v", got), nil)
}

func NewInvalidTargetError(target any) error {
	return fmt.Errorf("%w: deserialize target must be a non-nil pointer, got %T", ErrInvalidTarget, target)
}
