package cfgxerr

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_MatchesKindAndCause(t *testing.T) {
	cause := errors.New("boom")
	err := NewHandlerError(Serialize, []string{"line", "a"}, reflect.TypeOf(0), cause)

	assert.ErrorIs(t, err, ErrHandlerFailed)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrMalformedNode)

	wrapped := fmt.Errorf("outer: %w", err)
	var target *Error
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "line.a", target.FieldPath())
}

func TestError_Message(t *testing.T) {
	err := NewMalformedNodeError([]string{"a", "x"}, reflect.TypeOf(int8(0)), "scalar", "mapping")
	assert.Equal(t, "malformed node: field 'a.x' of type int8 during deserialize: expected scalar node, got mapping", err.Error())

	root := NewUnserializableTypeError(Serialize, nil, reflect.TypeOf(make(chan int)))
	assert.Contains(t, root.Error(), "root value of type chan int during serialize")
}

func TestError_PathIsCopied(t *testing.T) {
	path := []string{"a", "b"}
	err := NewRecursionLimitError(Serialize, path, nil, 21, 20).(*Error)
	path[0] = "changed"
	assert.Equal(t, "a.b", err.FieldPath())
}

func TestError_FieldPathWithIndexes(t *testing.T) {
	err := NewMalformedNodeError([]string{"items", "[2]", "name"}, reflect.TypeOf(""), "scalar", "mapping").(*Error)
	assert.Equal(t, "items[2].name", err.FieldPath())
}

func TestAction_String(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{Serialize, "serialize"},
		{Deserialize, "deserialize"},
		{Register, "register"},
		{Load, "load"},
		{Save, "save"},
		{Action(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.action.String())
		})
	}
}
