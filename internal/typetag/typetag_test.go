package typetag

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct{ X, Y int }

type other struct{}

func TestTable_Builtins(t *testing.T) {
	table := New()

	assert.Equal(t, "int", table.TagFor(reflect.TypeOf(1)))
	assert.Equal(t, "float64", table.TagFor(reflect.TypeOf(3.0)))
	assert.Equal(t, "list", table.TagFor(reflect.TypeOf([]any{})))

	typ, err := table.Resolve("string")
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(""), typ)
}

func TestTable_MintsAndResolvesUnregisteredTypes(t *testing.T) {
	table := New()
	typ := reflect.TypeOf(point{})

	tag := table.TagFor(typ)
	assert.Equal(t, "github.com/hengadev/cfgx/internal/typetag.point", tag)

	resolved, err := table.Resolve(tag)
	require.NoError(t, err)
	assert.Equal(t, typ, resolved)
}

func TestTable_Register(t *testing.T) {
	table := New()
	typ := reflect.TypeOf(point{})

	require.NoError(t, table.Register("point", typ))
	require.NoError(t, table.Register("point", typ))
	assert.Equal(t, "point", table.TagFor(typ))

	err := table.Register("point", reflect.TypeOf(other{}))
	assert.ErrorIs(t, err, ErrTagConflict)

	err = table.Register("", typ)
	assert.ErrorIs(t, err, ErrUnknownTag)
}

func TestTable_ResolveUnknown(t *testing.T) {
	_, err := New().Resolve("example.com/missing.Type")
	assert.ErrorIs(t, err, ErrUnknownTag)
}

func TestTables_AreIndependent(t *testing.T) {
	a, b := New(), New()
	tag := a.TagFor(reflect.TypeOf(point{}))

	_, err := b.Resolve(tag)
	assert.ErrorIs(t, err, ErrUnknownTag)
}

func localA() reflect.Type {
	type P struct{ X int }
	return reflect.TypeOf(P{})
}

func localB() reflect.Type {
	type P struct{ S string }
	return reflect.TypeOf(P{})
}

func TestTable_SameNamedTypesGetDistinctTags(t *testing.T) {
	table := New()
	a, b := localA(), localB()

	tagA := table.TagFor(a)
	tagB := table.TagFor(b)
	assert.NotEqual(t, tagA, tagB)
	assert.Equal(t, tagA+"~2", tagB)
	assert.Equal(t, tagA, table.TagFor(a))
	assert.Equal(t, tagB, table.TagFor(b))

	resolved, err := table.Resolve(tagA)
	require.NoError(t, err)
	assert.Equal(t, a, resolved)
	resolved, err = table.Resolve(tagB)
	require.NoError(t, err)
	assert.Equal(t, b, resolved)
}

func TestTable_CompositeTagsUseFullPackagePath(t *testing.T) {
	table := New()
	const path = "github.com/hengadev/cfgx/internal/typetag.point"

	assert.Equal(t, "*"+path, table.TagFor(reflect.TypeOf(&point{})))
	assert.Equal(t, "[]"+path, table.TagFor(reflect.TypeOf([]point{})))
	assert.Equal(t, "map[string]"+path, table.TagFor(reflect.TypeOf(map[string]point{})))
	assert.Equal(t, "[2]"+path, table.TagFor(reflect.TypeOf([2]point{})))
}
