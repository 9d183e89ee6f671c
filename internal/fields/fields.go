// Package fields selects which struct fields take part in serialization.
package fields

import (
	"reflect"
	"strings"
	"sync"
	"unicode"
)

// TagKey is the struct tag read by the selector.
//
//	Name  string `cfgx:"display_name"` // explicit key
//	Cache []byte `cfgx:"-"`            // transient, never serialized
const TagKey = "cfgx"

// Field describes one serializable struct field.
type Field struct {
	Name  string // Go field name
	Key   string // mapping key
	Index []int
	Type  reflect.Type
}

// Defaulter is implemented by pointer types that fill in their own defaults after
// allocation, before any stored field is applied.
type Defaulter interface {
	SetDefaults()
}

var cache sync.Map // map[reflect.Type][]Field

// For returns the serializable fields of struct type t in declaration order.
// Unexported and `cfgx:"-"` fields are excluded. Fields of embedded structs
// without an explicit key are promoted, and a shallower field shadows a promoted
// one with the same key. A key claimed by several fields at the shallowest depth
// is ambiguous and none of them is selected.
func For(t reflect.Type) []Field {
	if cached, ok := cache.Load(t); ok {
		return cached.([]Field)
	}

	collected := collect(t, nil, 0)
	best := make(map[string]int, len(collected))
	ambiguous := make(map[string]bool)
	for i, c := range collected {
		j, seen := best[c.field.Key]
		switch {
		case !seen || c.depth < collected[j].depth:
			best[c.field.Key] = i
			delete(ambiguous, c.field.Key)
		case c.depth == collected[j].depth:
			ambiguous[c.field.Key] = true
		}
	}
	out := make([]Field, 0, len(best))
	for i, c := range collected {
		if best[c.field.Key] == i && !ambiguous[c.field.Key] {
			out = append(out, c.field)
		}
	}

	actual, _ := cache.LoadOrStore(t, out)
	return actual.([]Field)
}

type candidate struct {
	field Field
	depth int
}

func collect(t reflect.Type, prefix []int, depth int) []candidate {
	var out []candidate
	for i := range t.NumField() {
		sf := t.Field(i)
		tag := sf.Tag.Get(TagKey)
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")

		index := make([]int, len(prefix)+1)
		copy(index, prefix)
		index[len(prefix)] = i

		if sf.Anonymous && name == "" && sf.Type.Kind() == reflect.Struct {
			out = append(out, collect(sf.Type, index, depth+1)...)
			continue
		}
		if !sf.IsExported() {
			continue
		}

		key := name
		if key == "" {
			key = KeyName(sf.Name)
		}
		out = append(out, candidate{
			field: Field{Name: sf.Name, Key: key, Index: index, Type: sf.Type},
			depth: depth,
		})
	}
	return out
}

// KeyName derives the default mapping key from a Go field name by lowering its
// leading capital run: Label -> label, ID -> id, URLPath -> urlPath.
func KeyName(goName string) string {
	if goName == "" {
		return goName
	}
	runes := []rune(goName)
	run := 0
	for run < len(runes) && unicode.IsUpper(runes[run]) {
		run++
	}
	switch {
	case run == 0:
		return goName
	case run == len(runes), run == 1:
		for i := 0; i < run; i++ {
			runes[i] = unicode.ToLower(runes[i])
		}
	default:
		for i := 0; i < run-1; i++ {
			runes[i] = unicode.ToLower(runes[i])
		}
	}
	return string(runes)
}
