package scalar

import (
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hengadev/cfgx/node"
)

type level int16

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected bool
	}{
		{"string", "x", true},
		{"bool", true, true},
		{"int8", int8(1), true},
		{"uint64", uint64(1), true},
		{"float32", float32(1), true},
		{"named int", level(2), true},
		{"struct", struct{}{}, false},
		{"slice", []int{}, false},
		{"complex", complex(1, 2), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Is(reflect.TypeOf(tt.value)))
		})
	}
}

func TestEncode_RecordsNumKind(t *testing.T) {
	s, ok := Encode(reflect.ValueOf(float32(3.5)))
	require.True(t, ok)
	assert.Equal(t, node.NumFloat32, s.NumKind())

	s, ok = Encode(reflect.ValueOf(level(4)))
	require.True(t, ok)
	assert.Equal(t, node.NumInt16, s.NumKind())
	assert.Equal(t, int16(4), s.Value())

	_, ok = Encode(reflect.ValueOf([]int{1}))
	assert.False(t, ok)
}

func TestAssign_Narrowing(t *testing.T) {
	t.Run("float64 into float32 keeps 3.5", func(t *testing.T) {
		var f float32
		require.NoError(t, Assign(reflect.ValueOf(&f).Elem(), node.Float(3.5, node.NumFloat64)))
		assert.Equal(t, float32(3.5), f)
	})

	t.Run("int into int8", func(t *testing.T) {
		var b int8
		require.NoError(t, Assign(reflect.ValueOf(&b).Elem(), node.Int(7, node.NumInt64)))
		assert.Equal(t, int8(7), b)
	})

	t.Run("int into int8 wraps", func(t *testing.T) {
		var b int8
		require.NoError(t, Assign(reflect.ValueOf(&b).Elem(), node.Int(300, node.NumInt)))
		assert.Equal(t, int8(44), b)
	})

	t.Run("float into int truncates toward zero", func(t *testing.T) {
		var i int
		require.NoError(t, Assign(reflect.ValueOf(&i).Elem(), node.Float(-7.9, node.NumFloat64)))
		assert.Equal(t, -7, i)
	})

	t.Run("float into int64 saturates", func(t *testing.T) {
		var i int64
		require.NoError(t, Assign(reflect.ValueOf(&i).Elem(), node.Float(1e300, node.NumFloat64)))
		assert.Equal(t, int64(math.MaxInt64), i)
	})

	t.Run("NaN into int is zero", func(t *testing.T) {
		i := 5
		require.NoError(t, Assign(reflect.ValueOf(&i).Elem(), node.Float(math.NaN(), node.NumFloat64)))
		assert.Equal(t, 0, i)
	})

	t.Run("negative float into uint is zero", func(t *testing.T) {
		var u uint32
		require.NoError(t, Assign(reflect.ValueOf(&u).Elem(), node.Float(-2, node.NumFloat64)))
		assert.Equal(t, uint32(0), u)
	})

	t.Run("int into float64 widens", func(t *testing.T) {
		var f float64
		require.NoError(t, Assign(reflect.ValueOf(&f).Elem(), node.Int(12, node.NumInt)))
		assert.Equal(t, 12.0, f)
	})

	t.Run("named target", func(t *testing.T) {
		var l level
		require.NoError(t, Assign(reflect.ValueOf(&l).Elem(), node.Int(3, node.NumInt64)))
		assert.Equal(t, level(3), l)
	})
}

func TestAssign_Mismatch(t *testing.T) {
	tests := []struct {
		name   string
		target any
		scalar *node.Scalar
	}{
		{"string into int", new(int), node.String("1")},
		{"number into string", new(string), node.Int(1, node.NumInt)},
		{"number into bool", new(bool), node.Int(1, node.NumInt)},
		{"bool into float", new(float64), node.Bool(true)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Assign(reflect.ValueOf(tt.target).Elem(), tt.scalar)
			var mismatch *MismatchError
			require.ErrorAs(t, err, &mismatch)
			assert.Equal(t, tt.scalar.Type(), mismatch.Got)
		})
	}
}
