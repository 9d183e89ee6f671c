package fields

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

type base struct {
	ID      int
	Comment string
}

type sample struct {
	base
	Label     string
	Comment   string `cfgx:"comment"`
	Secret    string `cfgx:"-"`
	Display   string `cfgx:"display_name"`
	URLPath   string
	internal  int
	Ptr       *int
	Canonical bool `cfgx:",opt"`
}

func keys(fs []Field) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Key
	}
	return out
}

func TestFor_SelectsExportedNonTransientFields(t *testing.T) {
	got := For(reflect.TypeOf(sample{}))

	assert.Equal(t, []string{"id", "label", "comment", "display_name", "urlPath", "ptr", "canonical"}, keys(got))
}

func TestFor_ShallowFieldShadowsPromoted(t *testing.T) {
	got := For(reflect.TypeOf(sample{}))

	for _, f := range got {
		if f.Key == "comment" {
			assert.Equal(t, []int{2}, f.Index)
		}
		if f.Key == "id" {
			assert.Equal(t, []int{0, 0}, f.Index)
		}
	}
}

type audit struct {
	Owner string
	Note  string
}

type history struct {
	Owner string
}

type record struct {
	audit
	history
	Name string
}

type annotated struct {
	record
	Owner string
}

func TestFor_AmbiguousPromotedKeysAreDropped(t *testing.T) {
	got := For(reflect.TypeOf(record{}))
	assert.Equal(t, []string{"note", "name"}, keys(got))

	shadowed := For(reflect.TypeOf(annotated{}))
	assert.ElementsMatch(t, []string{"note", "name", "owner"}, keys(shadowed))
	for _, f := range shadowed {
		if f.Key == "owner" {
			assert.Equal(t, []int{1}, f.Index)
		}
	}
}

func TestFor_IsCached(t *testing.T) {
	a := For(reflect.TypeOf(sample{}))
	b := For(reflect.TypeOf(sample{}))
	assert.Equal(t, reflect.ValueOf(a).Pointer(), reflect.ValueOf(b).Pointer())
}

func TestFor_FieldsAreSettable(t *testing.T) {
	var s sample
	v := reflect.ValueOf(&s).Elem()
	for _, f := range For(v.Type()) {
		assert.True(t, v.FieldByIndex(f.Index).CanSet(), f.Name)
	}
}

func TestKeyName(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"Label", "label"},
		{"ID", "id"},
		{"URLPath", "urlPath"},
		{"MaxDepth", "maxDepth"},
		{"already", "already"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, KeyName(tt.in))
		})
	}
}
