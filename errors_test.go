package cfgx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		structural    bool
		handler       bool
		configuration bool
	}{
		{"unserializable", ErrUnserializableType, true, false, false},
		{"recursion", ErrRecursionLimitExceeded, true, false, false},
		{"constructor", ErrMissingDefaultConstructor, true, false, false},
		{"malformed", ErrMalformedNode, true, false, false},
		{"unresolvable", ErrUnresolvableTypeIdentifier, true, false, false},
		{"handler", ErrHandlerFailed, false, true, false},
		{"target", ErrInvalidTarget, false, false, true},
		{"configuration", ErrInvalidConfiguration, false, false, true},
		{"wrapped", fmt.Errorf("load: %w", ErrMalformedNode), true, false, false},
		{"unrelated", errors.New("boom"), false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.structural, IsStructuralError(tt.err))
			assert.Equal(t, tt.handler, IsHandlerError(tt.err))
			assert.Equal(t, tt.configuration, IsConfigurationError(tt.err))
		})
	}
}

func TestFieldPath(t *testing.T) {
	type inner struct{ Ch chan int }
	type outer struct{ Items []inner }

	e, err := New()
	require.NoError(t, err)

	_, err = e.Serialize(outer{Items: []inner{{}, {Ch: make(chan int)}}})
	require.ErrorIs(t, err, ErrUnserializableType)
	assert.Equal(t, "items[1].ch", FieldPath(err))

	var detailed *Error
	require.ErrorAs(t, err, &detailed)
	assert.Equal(t, "chan int", detailed.Type.String())

	assert.Empty(t, FieldPath(errors.New("plain")))
}
