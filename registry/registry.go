// Package registry holds the serialization handlers ("proxies") for types the
// engine cannot walk on its own, typically third-party value types.
//
// Resolution runs in two steps. An exact entry for the type wins. Otherwise the
// ordered rules are evaluated top-down: interface entries match every type that
// implements the interface (directly or through its pointer), and named predicate
// entries match whatever their predicate accepts. Handlers for concrete structs
// are exact entries only, so a handler for an embedded struct never intercepts the
// struct that embeds it.
package registry

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/hengadev/cfgx/node"
)

// Handler converts values of one type to and from a mapping.
//
// Deserialize returns a value assignable to the registered type; for interface
// entries it returns the concrete value behind the interface.
type Handler struct {
	Serialize   func(v reflect.Value) (*node.Mapping, error)
	Deserialize func(m *node.Mapping) (reflect.Value, error)
}

func (h Handler) valid() bool {
	return h.Serialize != nil && h.Deserialize != nil
}

type rule struct {
	iface   reflect.Type // set for interface entries
	name    string       // set for predicate entries
	match   func(reflect.Type) bool
	handler Handler
}

// Registry maps types to handlers. The zero value is not usable; use New.
type Registry struct {
	mu    sync.RWMutex
	exact map[reflect.Type]Handler
	rules []rule
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{exact: make(map[reflect.Type]Handler)}
}

// Set stores h for t, replacing any previous handler for t. If t is an
// interface type the entry applies to every implementation of t.
func (r *Registry) Set(t reflect.Type, h Handler) error {
	if t == nil {
		return fmt.Errorf("registry: nil type")
	}
	if !h.valid() {
		return fmt.Errorf("registry: handler for %s needs both Serialize and Deserialize", t)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if t.Kind() != reflect.Interface {
		r.exact[t] = h
		return nil
	}

	iface := t
	r.putRule(rule{
		iface:   iface,
		match:   func(x reflect.Type) bool { return implements(x, iface) },
		handler: h,
	}, func(existing rule) bool { return existing.iface == iface })
	return nil
}

// RegisterFunc adds a named predicate entry. Re-registering a name replaces the
// entry in place, keeping its position in the evaluation order.
func (r *Registry) RegisterFunc(name string, match func(reflect.Type) bool, h Handler) error {
	if name == "" || match == nil {
		return fmt.Errorf("registry: predicate entry needs a name and a match func")
	}
	if !h.valid() {
		return fmt.Errorf("registry: handler %q needs both Serialize and Deserialize", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.putRule(rule{name: name, match: match, handler: h},
		func(existing rule) bool { return existing.iface == nil && existing.name == name })
	return nil
}

func (r *Registry) putRule(nr rule, same func(rule) bool) {
	for i := range r.rules {
		if same(r.rules[i]) {
			r.rules[i] = nr
			return
		}
	}
	r.rules = append(r.rules, nr)
}

// Unregister removes the exact or interface entry for t. It reports whether an
// entry was removed.
func (r *Registry) Unregister(t reflect.Type) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.exact[t]; ok {
		delete(r.exact, t)
		return true
	}
	return r.dropRule(func(existing rule) bool { return existing.iface != nil && existing.iface == t })
}

// UnregisterFunc removes the predicate entry called name.
func (r *Registry) UnregisterFunc(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.dropRule(func(existing rule) bool { return existing.iface == nil && existing.name == name })
}

func (r *Registry) dropRule(same func(rule) bool) bool {
	for i := range r.rules {
		if same(r.rules[i]) {
			r.rules = append(r.rules[:i], r.rules[i+1:]...)
			return true
		}
	}
	return false
}

// Resolve returns the handler for t. Absence is not an error.
func (r *Registry) Resolve(t reflect.Type) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if h, ok := r.exact[t]; ok {
		return h, true
	}
	for _, rl := range r.rules {
		if rl.match(t) {
			return rl.handler, true
		}
	}
	return Handler{}, false
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.exact) + len(r.rules)
}

// Types returns the types with an exact or interface entry.
func (r *Registry) Types() []reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]reflect.Type, 0, len(r.exact)+len(r.rules))
	for t := range r.exact {
		out = append(out, t)
	}
	for _, rl := range r.rules {
		if rl.iface != nil {
			out = append(out, rl.iface)
		}
	}
	return out
}

func implements(t, iface reflect.Type) bool {
	if t.Implements(iface) {
		return true
	}
	return t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface && reflect.PointerTo(t).Implements(iface)
}
