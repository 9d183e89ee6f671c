package codec

import (
	"errors"
	"reflect"

	"github.com/hengadev/cfgx/internal/cfgxerr"
	"github.com/hengadev/cfgx/internal/fields"
	"github.com/hengadev/cfgx/internal/guard"
	"github.com/hengadev/cfgx/internal/scalar"
	"github.com/hengadev/cfgx/node"
	"github.com/hengadev/cfgx/registry"
)

// Deserializer rebuilds values from node trees.
type Deserializer struct {
	opts Options
}

// NewDeserializer returns a deserializer using opts.
func NewDeserializer(opts Options) *Deserializer {
	return &Deserializer{opts: opts}
}

// Deserialize builds a new value of type t from n, starting at depth zero.
// Nothing outside the returned value is modified, so a failed call leaves the
// caller's data as it was.
func (d *Deserializer) Deserialize(t reflect.Type, n node.Node) (reflect.Value, error) {
	w := deserializeWalk{Options: d.opts, max: d.opts.maxDepth()}
	return w.value(t, n, 0, nil)
}

// Into decodes n into the value target points to. target must be a non-nil
// pointer; it is only written when decoding succeeds.
func (d *Deserializer) Into(n node.Node, target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return cfgxerr.NewInvalidTargetError(target)
	}
	v, err := d.Deserialize(rv.Type().Elem(), n)
	if err != nil {
		return err
	}
	rv.Elem().Set(v)
	return nil
}

type deserializeWalk struct {
	Options
	max int
}

// value dispatches on the declared type t, not on the shape of n.
func (w *deserializeWalk) value(t reflect.Type, n node.Node, depth guard.Depth, path []string) (reflect.Value, error) {
	if node.IsNull(n) {
		return reflect.Zero(t), nil
	}
	if depth.Exceeds(w.max) {
		return reflect.Value{}, cfgxerr.NewRecursionLimitError(cfgxerr.Deserialize, path, t, int(depth), w.max)
	}

	if h, ok := w.Registry.Resolve(t); ok {
		return w.proxy(h, t, n, path)
	}
	if t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface && reflect.PointerTo(t).Implements(unmarshalerType) {
		return w.selfDescribing(t, n, path)
	}

	switch t.Kind() {
	case reflect.Pointer:
		ev, err := w.value(t.Elem(), n, depth, path)
		if err != nil {
			return reflect.Value{}, err
		}
		p := reflect.New(t.Elem())
		p.Elem().Set(ev)
		return p, nil
	case reflect.Interface:
		return w.iface(t, n, depth, path)
	}

	if scalar.Is(t) {
		return w.scalar(t, n, path)
	}

	switch t.Kind() {
	case reflect.Struct:
		if opaque(t) {
			break
		}
		return w.structure(t, n, depth, path)
	case reflect.Slice, reflect.Array:
		return w.sequence(t, n, depth, path)
	case reflect.Map:
		if stringKeyed(t) {
			return w.mapping(t, n, depth, path)
		}
	}
	return reflect.Value{}, cfgxerr.NewUnserializableTypeError(cfgxerr.Deserialize, path, t)
}

func (w *deserializeWalk) proxy(h registry.Handler, t reflect.Type, n node.Node, path []string) (reflect.Value, error) {
	m, ok := n.(*node.Mapping)
	if !ok {
		return reflect.Value{}, cfgxerr.NewMalformedNodeError(path, t, node.KindMapping.String(), kindName(n))
	}
	rv, err := h.Deserialize(m)
	if err != nil {
		return reflect.Value{}, cfgxerr.NewHandlerError(cfgxerr.Deserialize, path, t, err)
	}
	return adapt(rv, t, path)
}

// adapt fits a handler result to the declared type t. Interface results are
// unwrapped, and pointers are followed or taken as needed.
func adapt(rv reflect.Value, t reflect.Type, path []string) (reflect.Value, error) {
	if !rv.IsValid() {
		return reflect.Value{}, cfgxerr.NewHandlerResultError(cfgxerr.Deserialize, path, t, nil)
	}
	if rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Zero(t), nil
		}
		rv = rv.Elem()
	}

	out := reflect.New(t).Elem()
	switch {
	case rv.Type().AssignableTo(t):
		out.Set(rv)
	case rv.Kind() == reflect.Pointer && !rv.IsNil() && rv.Elem().Type().AssignableTo(t):
		out.Set(rv.Elem())
	case t.Kind() == reflect.Pointer && rv.Type().AssignableTo(t.Elem()):
		p := reflect.New(t.Elem())
		p.Elem().Set(rv)
		out.Set(p)
	default:
		return reflect.Value{}, cfgxerr.NewHandlerResultError(cfgxerr.Deserialize, path, t, rv.Type())
	}
	return out, nil
}

func (w *deserializeWalk) selfDescribing(t reflect.Type, n node.Node, path []string) (reflect.Value, error) {
	m, ok := n.(*node.Mapping)
	if !ok {
		return reflect.Value{}, cfgxerr.NewMalformedNodeError(path, t, node.KindMapping.String(), kindName(n))
	}
	p := reflect.New(t)
	if err := p.Interface().(node.Unmarshaler).UnmarshalNode(m); err != nil {
		return reflect.Value{}, cfgxerr.NewHandlerError(cfgxerr.Deserialize, path, t, err)
	}
	return p.Elem(), nil
}

// iface decodes into an interface type. The empty interface receives the
// natural Go value of the node; any other interface needs a handler or a type
// tag to pick an implementation.
func (w *deserializeWalk) iface(t reflect.Type, n node.Node, depth guard.Depth, path []string) (reflect.Value, error) {
	if t.NumMethod() > 0 {
		return reflect.Value{}, cfgxerr.NewMissingConstructorError(path, t)
	}

	var (
		v   reflect.Value
		err error
	)
	switch typed := n.(type) {
	case *node.Scalar:
		v = reflect.ValueOf(typed.Value())
	case *node.Mapping:
		v, err = w.mapping(anyMapType, n, depth, path)
	case *node.Sequence:
		v, err = w.sequence(anySliceType, n, depth, path)
	default:
		return reflect.Value{}, cfgxerr.NewMalformedNodeError(path, t, "scalar, mapping or sequence", kindName(n))
	}
	if err != nil {
		return reflect.Value{}, err
	}
	out := reflect.New(t).Elem()
	out.Set(v)
	return out, nil
}

func (w *deserializeWalk) scalar(t reflect.Type, n node.Node, path []string) (reflect.Value, error) {
	s, ok := n.(*node.Scalar)
	if !ok {
		return reflect.Value{}, cfgxerr.NewMalformedNodeError(path, t, node.KindScalar.String(), kindName(n))
	}
	out := reflect.New(t).Elem()
	if err := scalar.Assign(out, s); err != nil {
		var mismatch *scalar.MismatchError
		if errors.As(err, &mismatch) {
			return reflect.Value{}, cfgxerr.NewMalformedNodeError(path, t, mismatch.Want.String()+" scalar", kindName(n))
		}
		return reflect.Value{}, err
	}
	return out, nil
}

// structure allocates t, applies SetDefaults when *t provides it, then assigns
// the fields whose keys are present. Absent keys keep their defaults and null
// keys reset the field to its zero value. Unknown keys are ignored.
func (w *deserializeWalk) structure(t reflect.Type, n node.Node, depth guard.Depth, path []string) (reflect.Value, error) {
	m, ok := n.(*node.Mapping)
	if !ok {
		return reflect.Value{}, cfgxerr.NewMalformedNodeError(path, t, node.KindMapping.String(), kindName(n))
	}

	p := reflect.New(t)
	if d, ok := p.Interface().(fields.Defaulter); ok {
		d.SetDefaults()
	}
	out := p.Elem()

	for _, f := range fields.For(t) {
		fn, present := m.Get(f.Key)
		if !present {
			continue
		}
		fv, err := w.value(f.Type, fn, depth.Descend(), child(path, f.Key))
		if err != nil {
			return reflect.Value{}, err
		}
		out.FieldByIndex(f.Index).Set(fv)
	}
	return out, nil
}

func (w *deserializeWalk) mapping(t reflect.Type, n node.Node, depth guard.Depth, path []string) (reflect.Value, error) {
	m, ok := n.(*node.Mapping)
	if !ok {
		return reflect.Value{}, cfgxerr.NewMalformedNodeError(path, t, node.KindMapping.String(), kindName(n))
	}

	out := reflect.MakeMapWithSize(t, m.Len())
	for key, vn := range m.All() {
		ev, err := w.value(t.Elem(), vn, depth.Descend(), child(path, key))
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetMapIndex(reflect.ValueOf(key).Convert(t.Key()), ev)
	}
	return out, nil
}
