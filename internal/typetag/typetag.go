// Package typetag maps stable type identifiers to Go types for tagged sequences.
package typetag

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

var (
	ErrUnknownTag  = errors.New("unknown type tag")
	ErrTagConflict = errors.New("type tag already bound to another type")
)

// Builtin tags. Scalars use the Go kind name; the generic containers produced
// when reading into an untyped value get short names.
var builtins = map[string]reflect.Type{
	"string":  reflect.TypeFor[string](),
	"bool":    reflect.TypeFor[bool](),
	"int":     reflect.TypeFor[int](),
	"int8":    reflect.TypeFor[int8](),
	"int16":   reflect.TypeFor[int16](),
	"int32":   reflect.TypeFor[int32](),
	"int64":   reflect.TypeFor[int64](),
	"uint":    reflect.TypeFor[uint](),
	"uint8":   reflect.TypeFor[uint8](),
	"uint16":  reflect.TypeFor[uint16](),
	"uint32":  reflect.TypeFor[uint32](),
	"uint64":  reflect.TypeFor[uint64](),
	"float32": reflect.TypeFor[float32](),
	"float64": reflect.TypeFor[float64](),
	"list":    reflect.TypeFor[[]any](),
	"map":     reflect.TypeFor[map[string]any](),
}

// Table is a bidirectional tag <-> type index. It is safe for concurrent use.
type Table struct {
	mu     sync.RWMutex
	byTag  map[string]reflect.Type
	byType map[reflect.Type]string
}

// New returns a table preloaded with the builtin tags.
func New() *Table {
	t := &Table{
		byTag:  make(map[string]reflect.Type, len(builtins)),
		byType: make(map[reflect.Type]string, len(builtins)),
	}
	for tag, typ := range builtins {
		t.byTag[tag] = typ
		t.byType[typ] = tag
	}
	return t
}

// Register binds tag to typ. Rebinding a tag to the same type is a no-op;
// binding it to a different type fails. A type registered under a new tag keeps
// resolving from its old tags but is written with the new one.
func (t *Table) Register(tag string, typ reflect.Type) error {
	if tag == "" {
		return fmt.Errorf("%w: empty tag", ErrUnknownTag)
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if existing, ok := t.byTag[tag]; ok && existing != typ {
		return fmt.Errorf("%w: %q is bound to %s", ErrTagConflict, tag, existing)
	}
	t.byTag[tag] = typ
	t.byType[typ] = tag
	return nil
}

// TagFor returns the identifier written for typ. Types without an explicit tag
// receive one derived from their package path and name, which is recorded so the
// same table resolves it later. Distinct types that derive the same identifier,
// such as two function-local types of one name, get a numeric suffix.
func (t *Table) TagFor(typ reflect.Type) string {
	t.mu.RLock()
	tag, ok := t.byType[typ]
	t.mu.RUnlock()
	if ok {
		return tag
	}

	tag = mint(typ)
	t.mu.Lock()
	defer t.mu.Unlock()
	if existing, ok := t.byType[typ]; ok {
		return existing
	}
	base := tag
	for n := 2; ; n++ {
		existing, taken := t.byTag[tag]
		if !taken || existing == typ {
			break
		}
		tag = fmt.Sprintf("%s~%d", base, n)
	}
	t.byTag[tag] = typ
	t.byType[typ] = tag
	return tag
}

// Resolve returns the type bound to tag.
func (t *Table) Resolve(tag string) (reflect.Type, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	typ, ok := t.byTag[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}
	return typ, nil
}

// mint spells typ with full package paths, so types sharing a package name
// stay apart.
func mint(typ reflect.Type) string {
	if typ.Name() != "" {
		if typ.PkgPath() != "" {
			return typ.PkgPath() + "." + typ.Name()
		}
		return typ.Name()
	}
	switch typ.Kind() {
	case reflect.Pointer:
		return "*" + mint(typ.Elem())
	case reflect.Slice:
		return "[]" + mint(typ.Elem())
	case reflect.Array:
		return fmt.Sprintf("[%d]%s", typ.Len(), mint(typ.Elem()))
	case reflect.Map:
		return "map[" + mint(typ.Key()) + "]" + mint(typ.Elem())
	}
	return typ.String()
}
