package scalar

import (
	"fmt"
	"math"
	"reflect"

	"github.com/hengadev/cfgx/node"
)

// MismatchError reports a scalar whose storage category cannot be assigned to
// the destination kind.
type MismatchError struct {
	Want reflect.Kind
	Got  node.ScalarType
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("cannot assign %s scalar to %s", e.Got, e.Want)
}

// Assign stores s into dst, converting numbers to dst's declared kind.
//
// Integer targets truncate floats toward zero, saturating at the int64 or uint64
// range, then wrap to the target width. Float targets round to nearest.
func Assign(dst reflect.Value, s *node.Scalar) error {
	switch dst.Kind() {
	case reflect.String:
		str, ok := s.Str()
		if !ok {
			return &MismatchError{Want: dst.Kind(), Got: s.Type()}
		}
		dst.SetString(str)
	case reflect.Bool:
		b, ok := s.Boolean()
		if !ok {
			return &MismatchError{Want: dst.Kind(), Got: s.Type()}
		}
		dst.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, ok := ToInt64(s)
		if !ok {
			return &MismatchError{Want: dst.Kind(), Got: s.Type()}
		}
		dst.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, ok := ToUint64(s)
		if !ok {
			return &MismatchError{Want: dst.Kind(), Got: s.Type()}
		}
		dst.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, ok := s.Float64()
		if !ok {
			return &MismatchError{Want: dst.Kind(), Got: s.Type()}
		}
		dst.SetFloat(f)
	default:
		return &MismatchError{Want: dst.Kind(), Got: s.Type()}
	}
	return nil
}

// ToInt64 returns the numeric value of s as an int64.
func ToInt64(s *node.Scalar) (int64, bool) {
	switch s.Type() {
	case node.TypeInt, node.TypeUint:
		return s.Int64()
	case node.TypeFloat:
		f, _ := s.Float64()
		return floatToInt64(f), true
	}
	return 0, false
}

// ToUint64 returns the numeric value of s as a uint64.
func ToUint64(s *node.Scalar) (uint64, bool) {
	switch s.Type() {
	case node.TypeInt, node.TypeUint:
		return s.Uint64()
	case node.TypeFloat:
		f, _ := s.Float64()
		return floatToUint64(f), true
	}
	return 0, false
}

func floatToInt64(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	default:
		return int64(f)
	}
}

func floatToUint64(f float64) uint64 {
	switch {
	case math.IsNaN(f), f <= 0:
		return 0
	case f >= math.MaxUint64:
		return math.MaxUint64
	default:
		return uint64(f)
	}
}
