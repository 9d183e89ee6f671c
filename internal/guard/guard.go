// Package guard bounds recursion depth for the graph walkers.
//
// A Depth is passed by value through every recursive call and grows by exactly one
// per descent into a field, a collection element, a map value or a handler
// boundary. It never decreases, so the largest depth reached equals the longest
// nesting chain of the data, not its total size.
package guard

import "reflect"

// DefaultMax is the maximum depth used when none is configured.
const DefaultMax = 20

// Depth is the current recursion depth. The zero value is the root.
type Depth int

// Descend returns the depth of a child.
func (d Depth) Descend() Depth { return d + 1 }

// Exceeds reports whether d is beyond max.
func (d Depth) Exceeds(max int) bool { return int(d) > max }

// Visited tracks the pointers on the current descent path. It is only used when
// cycle detection is enabled; a nil *Visited records nothing.
type Visited struct {
	seen map[visit]struct{}
}

type visit struct {
	ptr uintptr
	typ reflect.Type
}

// NewVisited returns an empty path set.
func NewVisited() *Visited {
	return &Visited{seen: make(map[visit]struct{})}
}

// Enter records v on the current path. It returns false when v is already on
// the path, meaning the graph loops back on itself. The returned func removes v
// again and must be called when the descent below v is done.
func (p *Visited) Enter(v reflect.Value) (leave func(), ok bool) {
	if p == nil || !isReference(v) || v.IsNil() {
		return func() {}, true
	}
	key := visit{ptr: v.Pointer(), typ: v.Type()}
	if _, seen := p.seen[key]; seen {
		return func() {}, false
	}
	p.seen[key] = struct{}{}
	return func() { delete(p.seen, key) }, true
}

func isReference(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Map:
		return true
	case reflect.Slice:
		return v.Len() > 0
	default:
		return false
	}
}
