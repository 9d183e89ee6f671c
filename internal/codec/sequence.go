package codec

import (
	"fmt"
	"reflect"

	"github.com/hengadev/cfgx/internal/cfgxerr"
	"github.com/hengadev/cfgx/internal/guard"
	"github.com/hengadev/cfgx/node"
)

// sequence writes a slice or array. Elements carry a type tag only when the
// static element type is an interface, since only then the element type cannot
// be recovered from the declaration.
func (w *serializeWalk) sequence(v reflect.Value, depth guard.Depth, path []string) (node.Node, error) {
	if v.Kind() == reflect.Slice {
		leave, ok := w.visited.Enter(v)
		if !ok {
			return nil, cfgxerr.NewCycleError(cfgxerr.Serialize, path, v.Type())
		}
		defer leave()
	}

	tagged := v.Type().Elem().Kind() == reflect.Interface
	seq := node.NewSequence(v.Len())
	for i := range v.Len() {
		elem := v.Index(i)
		tag := ""
		if tagged {
			if elem.IsNil() {
				seq.Append("", node.Nil())
				continue
			}
			tag = w.Tags.TagFor(elem.Elem().Type())
		}
		en, err := w.value(elem, depth.Descend(), index(path, i))
		if err != nil {
			return nil, err
		}
		seq.Append(tag, en)
	}
	return seq, nil
}

// sequence rebuilds a slice or array of type t. A tagged item is decoded into
// the type its tag names, which must be assignable to the element type.
func (w *deserializeWalk) sequence(t reflect.Type, n node.Node, depth guard.Depth, path []string) (reflect.Value, error) {
	seq, ok := n.(*node.Sequence)
	if !ok {
		return reflect.Value{}, cfgxerr.NewMalformedNodeError(path, t, node.KindSequence.String(), kindName(n))
	}

	var out reflect.Value
	if t.Kind() == reflect.Array {
		if seq.Len() > t.Len() {
			return reflect.Value{}, cfgxerr.NewMalformedNodeError(path, t,
				fmt.Sprintf("sequence of at most %d items", t.Len()), fmt.Sprintf("%d items", seq.Len()))
		}
		out = reflect.New(t).Elem()
	} else {
		out = reflect.MakeSlice(t, seq.Len(), seq.Len())
	}

	elemType := t.Elem()
	for i, item := range seq.Items() {
		itemPath := index(path, i)
		target := elemType
		if item.Tag != "" {
			resolved, err := w.Tags.Resolve(item.Tag)
			if err != nil {
				return reflect.Value{}, cfgxerr.NewUnresolvableTypeError(itemPath, elemType, item.Tag, err)
			}
			if !resolved.AssignableTo(elemType) {
				return reflect.Value{}, cfgxerr.NewUnresolvableTypeError(itemPath, elemType, item.Tag,
					fmt.Errorf("%s is not assignable to %s", resolved, elemType))
			}
			target = resolved
		}

		ev, err := w.value(target, item.Value, depth.Descend(), itemPath)
		if err != nil {
			return reflect.Value{}, err
		}
		out.Index(i).Set(ev)
	}
	return out, nil
}
