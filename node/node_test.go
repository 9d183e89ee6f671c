package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapping_SetKeepsInsertionOrder(t *testing.T) {
	m := NewMapping(3)
	m.Set("b", String("1")).Set("a", Bool(true)).Set("c", Nil())

	assert.Equal(t, []string{"b", "a", "c"}, m.Keys())

	m.Set("b", Int(7, NumInt))
	assert.Equal(t, []string{"b", "a", "c"}, m.Keys(), "replacing a key keeps its position")

	got, ok := m.Get("b")
	require.True(t, ok)
	v, _ := got.(*Scalar).Int64()
	assert.Equal(t, int64(7), v)
}

func TestMapping_NullAndAbsentAreDistinct(t *testing.T) {
	m := NewMapping(1)
	m.Set("cleared", nil)

	assert.True(t, m.Has("cleared"))
	n, _ := m.Get("cleared")
	assert.True(t, IsNull(n))

	assert.False(t, m.Has("missing"))
}

func TestMapping_Delete(t *testing.T) {
	m := NewMapping(3)
	m.Set("a", String("x")).Set("b", String("y")).Set("c", String("z"))
	m.Delete("b")
	m.Delete("nope")

	assert.Equal(t, []string{"a", "c"}, m.Keys())
	assert.Equal(t, 2, m.Len())
}

func TestMapping_All(t *testing.T) {
	m := NewMapping(2)
	m.Set("x", Int(1, NumInt)).Set("y", Int(2, NumInt))

	var keys []string
	for k := range m.All() {
		keys = append(keys, k)
	}
	assert.Equal(t, []string{"x", "y"}, keys)
}

func TestScalar_Value(t *testing.T) {
	tests := []struct {
		name     string
		scalar   *Scalar
		expected any
	}{
		{"string", String("hi"), "hi"},
		{"bool", Bool(true), true},
		{"int", Int(7, NumInt), 7},
		{"int8", Int(-3, NumInt8), int8(-3)},
		{"int64", Int(9, NumInt64), int64(9)},
		{"uint16", Uint(12, NumUint16), uint16(12)},
		{"uint64", Uint(12, NumUint64), uint64(12)},
		{"float32", Float(3.5, NumFloat32), float32(3.5)},
		{"float64", Float(3.5, NumFloat64), 3.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.scalar.Value())
		})
	}
}

func TestScalar_Accessors(t *testing.T) {
	s := Float(2.25, NumFloat64)
	_, ok := s.Int64()
	assert.False(t, ok)
	f, ok := s.Float64()
	assert.True(t, ok)
	assert.Equal(t, 2.25, f)

	i := Int(-1, NumInt)
	f, ok = i.Float64()
	assert.True(t, ok)
	assert.Equal(t, -1.0, f)

	_, ok = String("x").Float64()
	assert.False(t, ok)
}

func TestEqual(t *testing.T) {
	left := NewMapping(2)
	left.Set("a", Int(1, NumInt8)).Set("list", NewSequence(2).Append("int", Int(1, NumInt)).Append("", Nil()))

	right := NewMapping(2)
	right.Set("a", Int(1, NumInt64)).Set("list", NewSequence(2).Append("int", Int(1, NumInt64)).Append("", nil))

	assert.True(t, Equal(left, right), "numeric kind is not significant")

	reordered := NewMapping(2)
	reordered.Set("list", NewSequence(0)).Set("a", Int(1, NumInt))
	assert.False(t, Equal(left, reordered))

	assert.True(t, Equal(nil, Nil()))
	assert.False(t, Equal(String("1"), Int(1, NumInt)))
	assert.False(t, Equal(Float(1, NumFloat64), Int(1, NumInt)))
}
