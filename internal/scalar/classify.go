// Package scalar recognizes the value kinds a configuration store holds natively
// and converts stored numbers back to the exact declared width of a field.
package scalar

import (
	"reflect"

	"github.com/hengadev/cfgx/node"
)

// Is reports whether values of type t are stored as scalars. Named types whose
// underlying kind is a string, bool or number are scalars too.
func Is(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// NumKindOf maps a reflect kind to its numeric kind, or node.NumNone.
func NumKindOf(k reflect.Kind) node.NumKind {
	switch k {
	case reflect.Int:
		return node.NumInt
	case reflect.Int8:
		return node.NumInt8
	case reflect.Int16:
		return node.NumInt16
	case reflect.Int32:
		return node.NumInt32
	case reflect.Int64:
		return node.NumInt64
	case reflect.Uint:
		return node.NumUint
	case reflect.Uint8:
		return node.NumUint8
	case reflect.Uint16:
		return node.NumUint16
	case reflect.Uint32:
		return node.NumUint32
	case reflect.Uint64, reflect.Uintptr:
		return node.NumUint64
	case reflect.Float32:
		return node.NumFloat32
	case reflect.Float64:
		return node.NumFloat64
	default:
		return node.NumNone
	}
}

// Encode converts a scalar value into a scalar node. The second result is false
// when v is not of a scalar kind.
func Encode(v reflect.Value) (*node.Scalar, bool) {
	switch v.Kind() {
	case reflect.String:
		return node.String(v.String()), true
	case reflect.Bool:
		return node.Bool(v.Bool()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return node.Int(v.Int(), NumKindOf(v.Kind())), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return node.Uint(v.Uint(), NumKindOf(v.Kind())), true
	case reflect.Float32, reflect.Float64:
		return node.Float(v.Float(), NumKindOf(v.Kind())), true
	default:
		return nil, false
	}
}
