package manifest_test

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/baseclass"
	"github.com/reoring/baseclass/manifest"
)

func loadShop(t *testing.T) *manifest.Registry {
	t.Helper()
	r, err := manifest.LoadFile("testdata/shop.yaml")
	require.NoError(t, err)
	return r
}

func TestLoadFile_ClassesInOrder(t *testing.T) {
	r := loadShop(t)
	assert.Equal(t, []string{"Item", "FrozenItem", "Point"}, r.Names())
	assert.Equal(t, []string{"Identified"}, r.MixinNames())
	assert.Len(t, r.Classes(), 3)
}

func TestLoadFile_MixinFieldsFirst(t *testing.T) {
	r := loadShop(t)
	item, ok := r.Class("Item")
	require.True(t, ok)

	var names []string
	for _, f := range item.Fields() {
		names = append(names, f.Name())
	}
	assert.Equal(t, []string{"id", "sku", "price", "tags"}, names)

	id, _ := item.Field("id")
	assert.False(t, id.InCompare())
	d, _ := id.Metadata().Get("description")
	assert.Equal(t, "generated identifier", d)

	price, _ := item.Field("price")
	v, _ := price.Default().Get()
	assert.Equal(t, float64(0), v)
	assert.Equal(t, reflect.TypeOf(float64(0)), price.Type())
}

func TestLoadFile_FactoriesRun(t *testing.T) {
	r := loadShop(t)
	item, _ := r.Class("Item")

	a := item.MustNew(baseclass.Kwargs{"sku": "A"})
	b := item.MustNew(baseclass.Kwargs{"sku": "A"})
	ida, _ := a.Get("id")
	idb, _ := b.Get("id")
	assert.Len(t, ida, 26)
	assert.NotEqual(t, ida, idb)

	tags, _ := a.Get("tags")
	assert.Equal(t, []string{}, tags)

	// id does not take part in comparison
	eq, err := a.Equal(b)
	require.NoError(t, err)
	assert.True(t, eq)
}

func TestLoadFile_FrozenSubclassOverridesDefault(t *testing.T) {
	r := loadShop(t)
	fi, _ := r.Class("FrozenItem")
	assert.True(t, fi.Immutable())

	price, _ := fi.Field("price")
	v, _ := price.Default().Get()
	assert.Equal(t, 9.5, v)
	assert.Equal(t, reflect.TypeOf(float64(0)), price.Type())

	inst := fi.MustNew(baseclass.Kwargs{"sku": "B"})
	assert.True(t, baseclass.IsImmutabilityError(inst.Set("sku", "C")))
	_, err := inst.Hash()
	assert.NoError(t, err)
}

func TestLoadFile_CopyFactoryAndInternal(t *testing.T) {
	r := loadShop(t)
	pt, _ := r.Class("Point")

	_, err := pt.New(baseclass.Kwargs{"x": 1, "name": "p"})
	assert.True(t, baseclass.IsConfigurationCode(err, baseclass.CodeUnexpectedArguments))

	inst := pt.MustNew(baseclass.Kwargs{"x": 1})
	label, _ := inst.Get("label")
	assert.Nil(t, label)
	assert.Equal(t, "Point(x=1, y=0, label=nil)", inst.DebugRepr())
}

func TestParse_UnknownKey(t *testing.T) {
	_, err := manifest.Parse([]byte("classes:\n  - name: A\n    colour: red\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")
}

func TestParse_DuplicateKey(t *testing.T) {
	_, err := manifest.Parse([]byte("classes:\n  - name: A\n    name: B\n"))
	var dk *manifest.DuplicateKeyError
	require.True(t, errors.As(err, &dk))
	assert.Equal(t, "name", dk.Key)
	assert.Equal(t, 3, dk.Line)
	assert.Equal(t, 2, dk.FirstLine)
}

func TestParse_BadDefault(t *testing.T) {
	_, err := manifest.Parse([]byte("classes:\n  - name: A\n    fields:\n      - {name: n, type: int, default: abc}\n"))
	ce, ok := baseclass.AsConfigurationError(err)
	require.True(t, ok)
	assert.Equal(t, "A", ce.Class)
	assert.Equal(t, []string{"n"}, ce.Fields)
}

func TestParse_DefaultAndFactoryConflict(t *testing.T) {
	_, err := manifest.Parse([]byte("classes:\n  - name: A\n    fields:\n      - {name: n, type: string, default: x, factory: uuid}\n"))
	assert.True(t, baseclass.IsConfigurationCode(err, baseclass.CodeDefaultConflict))
}

func TestParse_UnknownTypeAndFactory(t *testing.T) {
	_, err := manifest.Parse([]byte("classes:\n  - name: A\n    fields:\n      - {name: n, type: decimal}\n"))
	assert.True(t, baseclass.IsConfigurationCode(err, baseclass.CodeInvalidDeclaration))

	_, err = manifest.Parse([]byte("classes:\n  - name: A\n    fields:\n      - {name: n, factory: dice}\n"))
	assert.True(t, baseclass.IsConfigurationCode(err, baseclass.CodeInvalidDeclaration))
}

func TestParse_BasesForwardReferenceAndCycle(t *testing.T) {
	r, err := manifest.Parse([]byte(`
classes:
  - name: Child
    bases: [Parent]
  - name: Parent
    fields:
      - {name: a, type: int, default: 1}
`))
	require.NoError(t, err)
	child, _ := r.Class("Child")
	parent, _ := r.Class("Parent")
	assert.True(t, child.Extends(parent))

	_, err = manifest.Parse([]byte(`
classes:
  - {name: A, bases: [B]}
  - {name: B, bases: [A]}
`))
	assert.True(t, baseclass.IsConfigurationCode(err, baseclass.CodeInvalidDeclaration))
}

func TestParse_ReservedAndUnknownBase(t *testing.T) {
	_, err := manifest.Parse([]byte("classes:\n  - name: BaseClass\n"))
	assert.True(t, baseclass.IsConfigurationCode(err, baseclass.CodeInvalidDeclaration))

	_, err = manifest.Parse([]byte("classes:\n  - {name: A, bases: [Nope]}\n"))
	assert.True(t, baseclass.IsConfigurationCode(err, baseclass.CodeInvalidDeclaration))
}

func TestParse_FrozenBaseClassRoot(t *testing.T) {
	r, err := manifest.Parse([]byte("classes:\n  - {name: A, bases: [FrozenBaseClass], fields: [{name: v, type: int}]}\n"))
	require.NoError(t, err)
	a, _ := r.Class("A")
	assert.True(t, a.Immutable())
	inst, err := a.NewPositional([]any{3}, nil)
	require.NoError(t, err)
	assert.Equal(t, "A(v=3)", inst.DisplayStr())
}

func TestParse_BareDefaultKeepsInheritedFlags(t *testing.T) {
	r, err := manifest.Parse([]byte(`
classes:
  - name: Base
    fields:
      - {name: secret, type: string, default: a, repr: false}
  - name: Sub
    bases: [Base]
    fields:
      - {name: secret, default: b}
`))
	require.NoError(t, err)
	sub, _ := r.Class("Sub")
	f, _ := sub.Field("secret")
	assert.False(t, f.Repr())
	v, _ := f.Default().Get()
	assert.Equal(t, "b", v)
}

func TestParse_ExplicitNullDefault(t *testing.T) {
	r, err := manifest.Parse([]byte("classes:\n  - {name: A, fields: [{name: v, type: int, default: null}]}\n"))
	require.NoError(t, err)
	a, _ := r.Class("A")
	f, _ := a.Field("v")
	assert.False(t, f.Required())
	assert.Nil(t, a.MustNew(nil).Values()[0])
}

func TestLoader_RegisterTypeAndFactory(t *testing.T) {
	type level int
	l := manifest.NewLoader()
	l.RegisterType("level", reflect.TypeOf(level(0)))
	l.RegisterFactory("seven", func(reflect.Type, string) (*baseclass.DefaultFactory, error) {
		return baseclass.Factory(func() any { return level(7) }), nil
	})
	r, err := l.Parse([]byte("classes:\n  - {name: A, fields: [{name: lv, type: level, factory: seven}, {name: n, type: \"[]level\", default: [1, 2]}]}\n"))
	require.NoError(t, err)
	a, _ := r.Class("A")
	inst := a.MustNew(nil)
	lv, _ := inst.Get("lv")
	assert.Equal(t, level(7), lv)
	n, _ := inst.Get("n")
	assert.Equal(t, []level{1, 2}, n)
}

func TestParseValue(t *testing.T) {
	v, err := manifest.ParseValue("42", reflect.TypeOf(0))
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = manifest.ParseValue("yes", reflect.TypeOf(""))
	require.NoError(t, err)
	assert.Equal(t, "yes", v)

	v, err = manifest.ParseValue("[a, b]", reflect.TypeOf([]string(nil)))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v)

	v, err = manifest.ParseValue("1m30s", reflect.TypeOf(time.Duration(0)))
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, v)

	v, err = manifest.ParseValue("true", nil)
	require.NoError(t, err)
	assert.Equal(t, true, v)

	_, err = manifest.ParseValue("x", reflect.TypeOf(0))
	assert.Error(t, err)
}
