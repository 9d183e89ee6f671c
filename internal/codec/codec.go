// Package codec walks Go values into node trees and rebuilds values from them.
//
// Both walkers classify a type in the same order: a registered handler, a
// self-describing type (node.Marshaler / node.Unmarshaler), a scalar, a struct,
// then a slice or array. String-keyed maps become mappings; pointers and
// interfaces are followed without counting as a level.
package codec

import (
	"reflect"
	"strconv"

	"github.com/hengadev/cfgx/internal/fields"
	"github.com/hengadev/cfgx/internal/guard"
	"github.com/hengadev/cfgx/internal/typetag"
	"github.com/hengadev/cfgx/node"
	"github.com/hengadev/cfgx/registry"
)

// Options configures both walkers. Registry and Tags must be non-nil.
type Options struct {
	Registry     *registry.Registry
	Tags         *typetag.Table
	MaxDepth     int
	DetectCycles bool
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return guard.DefaultMax
	}
	return o.MaxDepth
}

var (
	marshalerType   = reflect.TypeFor[node.Marshaler]()
	unmarshalerType = reflect.TypeFor[node.Unmarshaler]()
	anySliceType    = reflect.TypeFor[[]any]()
	anyMapType      = reflect.TypeFor[map[string]any]()
)

func child(path []string, key string) []string {
	return append(path[:len(path):len(path)], key)
}

func index(path []string, i int) []string {
	return child(path, "["+strconv.Itoa(i)+"]")
}

func stringKeyed(t reflect.Type) bool {
	return t.Kind() == reflect.Map && t.Key().Kind() == reflect.String
}

// opaque reports a struct whose fields are all hidden from the walk, such as
// time.Time without its handler. Writing it would silently drop its state.
func opaque(t reflect.Type) bool {
	return t.NumField() > 0 && len(fields.For(t)) == 0
}

func kindName(n node.Node) string {
	if n == nil {
		return node.KindNull.String()
	}
	if s, ok := n.(*node.Scalar); ok {
		return s.Type().String() + " " + n.Kind().String()
	}
	return n.Kind().String()
}
