package registry

import (
	"fmt"
	"reflect"

	"github.com/hengadev/cfgx/node"
)

// Register stores typed serialize/deserialize functions for T. When T is an
// interface type the functions serve every implementation of T.
func Register[T any](r *Registry, ser func(T) (*node.Mapping, error), de func(*node.Mapping) (T, error)) error {
	t := reflect.TypeFor[T]()
	if ser == nil || de == nil {
		return fmt.Errorf("registry: handler for %s needs both Serialize and Deserialize", t)
	}
	return r.Set(t, Handler{
		Serialize: func(v reflect.Value) (*node.Mapping, error) {
			return ser(as[T](v, t))
		},
		Deserialize: func(m *node.Mapping) (reflect.Value, error) {
			out, err := de(m)
			if err != nil {
				return reflect.Value{}, err
			}
			return reflect.ValueOf(&out).Elem(), nil
		},
	})
}

// as converts v to T, taking its address when only *V implements an interface T.
func as[T any](v reflect.Value, t reflect.Type) T {
	if v.Type().AssignableTo(t) {
		return v.Interface().(T)
	}
	if v.CanAddr() {
		return v.Addr().Interface().(T)
	}
	p := reflect.New(v.Type())
	p.Elem().Set(v)
	return p.Interface().(T)
}
