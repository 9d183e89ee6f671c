package codec

import (
	"errors"
	"reflect"
	"sort"

	"github.com/hengadev/cfgx/internal/cfgxerr"
	"github.com/hengadev/cfgx/internal/fields"
	"github.com/hengadev/cfgx/internal/guard"
	"github.com/hengadev/cfgx/internal/scalar"
	"github.com/hengadev/cfgx/node"
)

// Serializer converts values into node trees.
type Serializer struct {
	opts Options
}

// NewSerializer returns a serializer using opts.
func NewSerializer(opts Options) *Serializer {
	return &Serializer{opts: opts}
}

// Serialize converts v into a node tree, starting at depth zero.
func (s *Serializer) Serialize(v reflect.Value) (node.Node, error) {
	w := serializeWalk{Options: s.opts, max: s.opts.maxDepth()}
	if s.opts.DetectCycles {
		w.visited = guard.NewVisited()
	}
	return w.value(v, 0, nil)
}

type serializeWalk struct {
	Options
	max     int
	visited *guard.Visited
}

func (w *serializeWalk) value(v reflect.Value, depth guard.Depth, path []string) (node.Node, error) {
	if !v.IsValid() {
		return node.Nil(), nil
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		if v.IsNil() {
			return node.Nil(), nil
		}
	}
	if depth.Exceeds(w.max) {
		return nil, cfgxerr.NewRecursionLimitError(cfgxerr.Serialize, path, v.Type(), int(depth), w.max)
	}

	if v.Kind() == reflect.Interface {
		n, err := w.value(v.Elem(), depth, path)
		var e *cfgxerr.Error
		if errors.As(err, &e) && e.Kind == cfgxerr.ErrUnserializableType && len(e.Path) == len(path) {
			return nil, cfgxerr.NewUnserializableDynamicTypeError(cfgxerr.Serialize, path, v.Type(), e.Type)
		}
		return n, err
	}

	t := v.Type()
	if h, ok := w.Registry.Resolve(t); ok {
		m, err := h.Serialize(v)
		if err != nil {
			return nil, cfgxerr.NewHandlerError(cfgxerr.Serialize, path, t, err)
		}
		return orEmpty(m), nil
	}
	if m, ok, err := w.selfDescribing(v, path); ok {
		return m, err
	}

	if v.Kind() == reflect.Pointer {
		leave, ok := w.visited.Enter(v)
		if !ok {
			return nil, cfgxerr.NewCycleError(cfgxerr.Serialize, path, t)
		}
		defer leave()
		return w.value(v.Elem(), depth, path)
	}

	if sc, ok := scalar.Encode(v); ok {
		return sc, nil
	}

	switch v.Kind() {
	case reflect.Struct:
		if opaque(t) {
			break
		}
		return w.structure(v, depth, path)
	case reflect.Slice, reflect.Array:
		return w.sequence(v, depth, path)
	case reflect.Map:
		if stringKeyed(t) {
			return w.mapping(v, depth, path)
		}
	}
	return nil, cfgxerr.NewUnserializableTypeError(cfgxerr.Serialize, path, t)
}

// selfDescribing calls MarshalNode when v or its address implements
// node.Marshaler.
func (w *serializeWalk) selfDescribing(v reflect.Value, path []string) (node.Node, bool, error) {
	var target reflect.Value
	switch {
	case v.Type().Implements(marshalerType):
		target = v
	case v.Kind() != reflect.Pointer && reflect.PointerTo(v.Type()).Implements(marshalerType):
		if v.CanAddr() {
			target = v.Addr()
		} else {
			target = reflect.New(v.Type())
			target.Elem().Set(v)
		}
	default:
		return nil, false, nil
	}

	m, err := target.Interface().(node.Marshaler).MarshalNode()
	if err != nil {
		return nil, true, cfgxerr.NewHandlerError(cfgxerr.Serialize, path, v.Type(), err)
	}
	return orEmpty(m), true, nil
}

func (w *serializeWalk) structure(v reflect.Value, depth guard.Depth, path []string) (node.Node, error) {
	fs := fields.For(v.Type())
	m := node.NewMapping(len(fs))
	for _, f := range fs {
		fn, err := w.value(v.FieldByIndex(f.Index), depth.Descend(), child(path, f.Key))
		if err != nil {
			return nil, err
		}
		m.Set(f.Key, fn)
	}
	return m, nil
}

func (w *serializeWalk) mapping(v reflect.Value, depth guard.Depth, path []string) (node.Node, error) {
	leave, ok := w.visited.Enter(v)
	if !ok {
		return nil, cfgxerr.NewCycleError(cfgxerr.Serialize, path, v.Type())
	}
	defer leave()

	keys := v.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })

	m := node.NewMapping(len(keys))
	for _, k := range keys {
		fn, err := w.value(v.MapIndex(k), depth.Descend(), child(path, k.String()))
		if err != nil {
			return nil, err
		}
		m.Set(k.String(), fn)
	}
	return m, nil
}

func orEmpty(m *node.Mapping) *node.Mapping {
	if m == nil {
		return node.NewMapping(0)
	}
	return m
}
