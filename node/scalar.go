package node

import (
	"fmt"
	"strconv"
)

// ScalarType is the storage category of a scalar.
type ScalarType uint8

const (
	TypeString ScalarType = iota
	TypeBool
	TypeInt
	TypeUint
	TypeFloat
)

func (t ScalarType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeUint:
		return "uint"
	case TypeFloat:
		return "float"
	default:
		return "unknown"
	}
}

// NumKind records the numeric width a scalar was produced from.
type NumKind uint8

const (
	NumNone NumKind = iota
	NumInt
	NumInt8
	NumInt16
	NumInt32
	NumInt64
	NumUint
	NumUint8
	NumUint16
	NumUint32
	NumUint64
	NumFloat32
	NumFloat64
)

var numKindNames = map[NumKind]string{
	NumNone:    "none",
	NumInt:     "int",
	NumInt8:    "int8",
	NumInt16:   "int16",
	NumInt32:   "int32",
	NumInt64:   "int64",
	NumUint:    "uint",
	NumUint8:   "uint8",
	NumUint16:  "uint16",
	NumUint32:  "uint32",
	NumUint64:  "uint64",
	NumFloat32: "float32",
	NumFloat64: "float64",
}

func (k NumKind) String() string {
	if s, ok := numKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Scalar holds a string, a bool or a number.
type Scalar struct {
	typ ScalarType
	num NumKind
	s   string
	b   bool
	i   int64
	u   uint64
	f   float64
}

func (*Scalar) Kind() Kind { return KindScalar }
func (*Scalar) node()      {}

// String returns a string scalar.
func String(s string) *Scalar { return &Scalar{typ: TypeString, s: s} }

// Bool returns a boolean scalar.
func Bool(b bool) *Scalar { return &Scalar{typ: TypeBool, b: b} }

// Int returns a signed integer scalar produced from a value of kind k.
func Int(v int64, k NumKind) *Scalar { return &Scalar{typ: TypeInt, num: k, i: v} }

// Uint returns an unsigned integer scalar produced from a value of kind k.
func Uint(v uint64, k NumKind) *Scalar { return &Scalar{typ: TypeUint, num: k, u: v} }

// Float returns a floating point scalar produced from a value of kind k.
func Float(v float64, k NumKind) *Scalar { return &Scalar{typ: TypeFloat, num: k, f: v} }

// Type returns the storage category of the scalar.
func (s *Scalar) Type() ScalarType { return s.typ }

// NumKind returns the numeric kind the scalar was produced from, or NumNone for
// strings and booleans.
func (s *Scalar) NumKind() NumKind { return s.num }

// IsNumber reports whether the scalar holds a number.
func (s *Scalar) IsNumber() bool {
	return s.typ == TypeInt || s.typ == TypeUint || s.typ == TypeFloat
}

// Str returns the string value when the scalar is a string.
func (s *Scalar) Str() (string, bool) { return s.s, s.typ == TypeString }

// Boolean returns the bool value when the scalar is a boolean.
func (s *Scalar) Boolean() (bool, bool) { return s.b, s.typ == TypeBool }

// Int64 returns the signed value of an integer scalar.
func (s *Scalar) Int64() (int64, bool) {
	switch s.typ {
	case TypeInt:
		return s.i, true
	case TypeUint:
		return int64(s.u), true
	}
	return 0, false
}

// Uint64 returns the unsigned value of an integer scalar.
func (s *Scalar) Uint64() (uint64, bool) {
	switch s.typ {
	case TypeUint:
		return s.u, true
	case TypeInt:
		return uint64(s.i), true
	}
	return 0, false
}

// Float64 returns the value of any numeric scalar widened to float64.
func (s *Scalar) Float64() (float64, bool) {
	switch s.typ {
	case TypeInt:
		return float64(s.i), true
	case TypeUint:
		return float64(s.u), true
	case TypeFloat:
		return s.f, true
	}
	return 0, false
}

// Value returns the scalar as a plain Go value of its recorded kind.
func (s *Scalar) Value() any {
	switch s.typ {
	case TypeString:
		return s.s
	case TypeBool:
		return s.b
	case TypeInt:
		switch s.num {
		case NumInt8:
			return int8(s.i)
		case NumInt16:
			return int16(s.i)
		case NumInt32:
			return int32(s.i)
		case NumInt64:
			return s.i
		default:
			return int(s.i)
		}
	case TypeUint:
		switch s.num {
		case NumUint8:
			return uint8(s.u)
		case NumUint16:
			return uint16(s.u)
		case NumUint32:
			return uint32(s.u)
		case NumUint:
			return uint(s.u)
		default:
			return s.u
		}
	case TypeFloat:
		if s.num == NumFloat32 {
			return float32(s.f)
		}
		return s.f
	}
	return nil
}

func (s *Scalar) String() string {
	switch s.typ {
	case TypeString:
		return strconv.Quote(s.s)
	case TypeBool:
		return strconv.FormatBool(s.b)
	case TypeInt:
		return strconv.FormatInt(s.i, 10)
	case TypeUint:
		return strconv.FormatUint(s.u, 10)
	case TypeFloat:
		return strconv.FormatFloat(s.f, 'g', -1, 64)
	}
	return fmt.Sprintf("scalar(%d)", s.typ)
}
