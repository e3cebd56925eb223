package baseclass_test

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/baseclass"
)

var intT, strT = typeOf[int](), typeOf[string]()

func TestSynthesize_FieldMergeOrder(t *testing.T) {
	l1 := baseclass.MustSynthesize(baseclass.ClassDecl{Name: "L1", Attrs: []baseclass.Attr{
		ann("a", intT), val("b", intT, 1), ann("c", intT),
	}})
	l2 := baseclass.MustSynthesize(baseclass.ClassDecl{Name: "L2", Bases: []baseclass.Base{l1}, Attrs: []baseclass.Attr{
		val("b", intT, 20),
	}})
	l3 := baseclass.MustSynthesize(baseclass.ClassDecl{Name: "L3", Bases: []baseclass.Base{l2}, Attrs: []baseclass.Attr{
		val("d", intT, 4),
	}})

	assert.Equal(t, []string{"a", "b", "c", "d"}, fieldNames(l3))
	b, _ := l3.Field("b")
	v, _ := b.Default().Get()
	assert.Equal(t, 20, v)

	// ancestors are untouched
	b1, _ := l1.Field("b")
	v, _ = b1.Default().Get()
	assert.Equal(t, 1, v)
}

func TestSynthesize_MultipleBasesMergeInOrder(t *testing.T) {
	left := baseclass.MustSynthesize(baseclass.ClassDecl{Name: "Left", Attrs: []baseclass.Attr{
		val("a", intT, 1), val("shared", strT, "left"),
	}})
	right := baseclass.MustSynthesize(baseclass.ClassDecl{Name: "Right", Attrs: []baseclass.Attr{
		val("shared", strT, "right"), val("b", intT, 2),
	}})
	both := baseclass.MustSynthesize(baseclass.ClassDecl{Name: "Both", Bases: []baseclass.Base{left, right}})

	assert.Equal(t, []string{"a", "shared", "b"}, fieldNames(both))
	f, _ := both.Field("shared")
	v, _ := f.Default().Get()
	assert.Equal(t, "right", v)
}

func TestSynthesize_AnnotationOnlyKeepsEarlierDefault(t *testing.T) {
	left := baseclass.MustSynthesize(baseclass.ClassDecl{Name: "Left", Attrs: []baseclass.Attr{val("x", intT, 1)}})
	right := baseclass.MustSynthesize(baseclass.ClassDecl{Name: "Right", Attrs: []baseclass.Attr{ann("x", typeOf[int64]())}})
	both := baseclass.MustSynthesize(baseclass.ClassDecl{Name: "Both", Bases: []baseclass.Base{left, right}})

	f, _ := both.Field("x")
	v, ok := f.Default().Get()
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, typeOf[int64](), f.Type())
}

func TestSynthesize_UntypedRedeclarationKeepsType(t *testing.T) {
	base := baseclass.MustSynthesize(baseclass.ClassDecl{Name: "Base", Attrs: []baseclass.Attr{ann("x", intT)}})
	sub := baseclass.MustSynthesize(baseclass.ClassDecl{Name: "Sub", Bases: []baseclass.Base{base}, Attrs: []baseclass.Attr{val("x", nil, 3)}})
	f, _ := sub.Field("x")
	assert.Equal(t, intT, f.Type())
}

func TestSynthesize_BareOverridePreservesFlags(t *testing.T) {
	secret := baseclass.MustField(
		baseclass.WithDefault("s"),
		baseclass.WithRepr(false),
		baseclass.WithCompare(false),
		baseclass.WithMetadata(map[string]any{"k": "v"}),
	)
	base := baseclass.MustSynthesize(baseclass.ClassDecl{Name: "Base", Attrs: []baseclass.Attr{val("secret", strT, secret)}})
	sub := baseclass.MustSynthesize(baseclass.ClassDecl{Name: "Sub", Bases: []baseclass.Base{base}, Attrs: []baseclass.Attr{val("secret", nil, "t")}})

	f, _ := sub.Field("secret")
	assert.False(t, f.Repr())
	assert.False(t, f.InCompare())
	v, _ := f.Default().Get()
	assert.Equal(t, "t", v)
	md, _ := f.Metadata().Get("k")
	assert.Equal(t, "v", md)
}

func TestSynthesize_BareOverrideDropsFactory(t *testing.T) {
	fd := baseclass.MustField(baseclass.WithDefaultFactory(baseclass.Factory(func() any { return 1 })))
	base := baseclass.MustSynthesize(baseclass.ClassDecl{Name: "Base", Attrs: []baseclass.Attr{val("n", intT, fd)}})
	sub := baseclass.MustSynthesize(baseclass.ClassDecl{Name: "Sub", Bases: []baseclass.Base{base}, Attrs: []baseclass.Attr{val("n", nil, 2)}})

	f, _ := sub.Field("n")
	assert.Nil(t, f.DefaultFactory())
	assert.Equal(t, 2, get(sub.MustNew(nil), "n"))
}

func TestSynthesize_FieldsAreClonedPerClass(t *testing.T) {
	fd := baseclass.MustField(baseclass.WithDefault(1))
	a := baseclass.MustSynthesize(baseclass.ClassDecl{Name: "A", Attrs: []baseclass.Attr{val("x", intT, fd)}})
	b := baseclass.MustSynthesize(baseclass.ClassDecl{Name: "B", Attrs: []baseclass.Attr{val("y", strT, fd)}})

	fa, _ := a.Field("x")
	fb, _ := b.Field("y")
	assert.NotSame(t, fa, fb)
	assert.Equal(t, "x", fa.Name())
	assert.Equal(t, "y", fb.Name())
	assert.Equal(t, "", fd.Name())
}

func TestSynthesize_Immutability(t *testing.T) {
	mutable := baseclass.MustSynthesize(baseclass.ClassDecl{Name: "M"})
	frozen := baseclass.MustSynthesize(baseclass.ClassDecl{Name: "F", Bases: []baseclass.Base{baseclass.FrozenBaseClass}})
	assert.False(t, mutable.Immutable())
	assert.True(t, frozen.Immutable())

	// first base defining the flag wins
	fm := baseclass.MustSynthesize(baseclass.ClassDecl{Name: "FM", Bases: []baseclass.Base{frozen, mutable}})
	mf := baseclass.MustSynthesize(baseclass.ClassDecl{Name: "MF", Bases: []baseclass.Base{mutable, frozen}})
	assert.True(t, fm.Immutable())
	assert.False(t, mf.Immutable())

	local := baseclass.MustSynthesize(baseclass.ClassDecl{Name: "L", Bases: []baseclass.Base{frozen}, Immutable: baseclass.Some(false)})
	assert.False(t, local.Immutable())
	assert.True(t, baseclass.IsImmutable(frozen))
	assert.False(t, baseclass.IsImmutable(local))
}

func TestSynthesize_InvalidDeclarations(t *testing.T) {
	base := baseclass.MustSynthesize(baseclass.ClassDecl{Name: "Base"})
	cases := map[string]baseclass.ClassDecl{
		"empty name":      {},
		"nil base":        {Name: "X", Bases: []baseclass.Base{nil}},
		"duplicate base":  {Name: "X", Bases: []baseclass.Base{base, base}},
		"empty attribute": {Name: "X", Attrs: []baseclass.Attr{ann("", intT)}},
		"duplicate attr":  {Name: "X", Attrs: []baseclass.Attr{ann("a", intT), ann("a", intT)}},
		"nil field":       {Name: "X", Attrs: []baseclass.Attr{val("a", intT, (*baseclass.Field)(nil))}},
	}
	for name, decl := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := baseclass.Synthesize(decl)
			assert.True(t, baseclass.IsConfigurationCode(err, baseclass.CodeInvalidDeclaration), "%v", err)
		})
	}
	assert.Panics(t, func() { baseclass.MustSynthesize(baseclass.ClassDecl{}) })
}

func TestSynthesize_DefaultBaseIsBaseClass(t *testing.T) {
	c := baseclass.MustSynthesize(baseclass.ClassDecl{Name: "C"})
	require.Len(t, c.Bases(), 1)
	assert.Same(t, baseclass.BaseClass, c.Bases()[0])
	assert.True(t, c.Extends(baseclass.BaseClass))
	assert.False(t, baseclass.BaseClass.Extends(c))
	assert.True(t, baseclass.FrozenBaseClass.Extends(baseclass.BaseClass))
}

func TestSynthesize_Mixins(t *testing.T) {
	mx, err := baseclass.NewMixin(baseclass.MixinDecl{Name: "Audit", Attrs: []baseclass.Attr{val("by", strT, "system")}})
	require.NoError(t, err)
	base := baseclass.MustSynthesize(baseclass.ClassDecl{Name: "Base", Attrs: []baseclass.Attr{ann("id", intT)}})
	c := baseclass.MustSynthesize(baseclass.ClassDecl{Name: "C", Bases: []baseclass.Base{base, mx}})

	assert.Equal(t, []string{"id", "by"}, fieldNames(c))
	assert.Nil(t, baseclass.SchemaFieldsOf(mx))
	assert.Len(t, baseclass.SchemaFieldsOf(c), 2)
	assert.True(t, c.Extends(mx))
	assert.Equal(t, "<mixin Audit>", mx.String())

	_, err = baseclass.NewMixin(baseclass.MixinDecl{})
	assert.True(t, baseclass.IsConfigurationCode(err, baseclass.CodeInvalidDeclaration))
}

func TestSynthesize_HookInheritance(t *testing.T) {
	var calls []string
	first, err := baseclass.NewMixin(baseclass.MixinDecl{Name: "First", PreInit: func(baseclass.Kwargs) error {
		calls = append(calls, "first")
		return nil
	}})
	require.NoError(t, err)
	second, err := baseclass.NewMixin(baseclass.MixinDecl{Name: "Second", PreInit: func(baseclass.Kwargs) error {
		calls = append(calls, "second")
		return nil
	}})
	require.NoError(t, err)

	c := baseclass.MustSynthesize(baseclass.ClassDecl{Name: "C", Bases: []baseclass.Base{first, second}})
	c.MustNew(nil)
	assert.Equal(t, []string{"first"}, calls)

	// a local hook replaces the inherited one and may chain to it
	parent := c.PreInitHook()
	sub := baseclass.MustSynthesize(baseclass.ClassDecl{Name: "Sub", Bases: []baseclass.Base{c}, PreInit: func(kw baseclass.Kwargs) error {
		calls = append(calls, "sub")
		return parent(kw)
	}})
	calls = nil
	sub.MustNew(nil)
	assert.Equal(t, []string{"sub", "first"}, calls)
}

func TestSignature(t *testing.T) {
	c := baseclass.MustSynthesize(baseclass.ClassDecl{Name: "P", Attrs: []baseclass.Attr{
		ann("x", intT),
		val("y", intT, 1),
		val("tags", typeOf[[]string](), baseclass.MustField(baseclass.WithDefaultFactory(baseclass.Factory(func() any { return []string{} })))),
		ann("any", nil),
	}})
	sig := c.Signature()
	assert.Equal(t, `P(*, x int, y int = 1, tags []string = <factory>, any)`, sig.String())
	require.Len(t, sig.Params, 4)
	assert.True(t, sig.Params[0].Required())
	assert.Equal(t, baseclass.KeywordOnly, sig.Params[1].Kind)
	assert.Equal(t, "keyword_only", sig.Params[1].Kind.String())
	assert.False(t, sig.Params[2].Required())

	b, err := json.Marshal(sig)
	require.NoError(t, err)
	assert.JSONEq(t, `{"class":"P","parameters":[
		{"name":"x","type":"int","kind":"keyword_only","required":true},
		{"name":"y","type":"int","kind":"keyword_only","required":false,"default":1},
		{"name":"tags","type":"[]string","kind":"keyword_only","required":false,"factory":true},
		{"name":"any","kind":"keyword_only","required":true}]}`, string(b))

	assert.Equal(t, "BaseClass()", baseclass.BaseClass.Signature().String())
}

func TestSignature_UnencodableDefault(t *testing.T) {
	c := baseclass.MustSynthesize(baseclass.ClassDecl{Name: "F", Attrs: []baseclass.Attr{val("ch", nil, make(chan int))}})
	b, err := json.Marshal(c.Signature())
	require.NoError(t, err)
	assert.Contains(t, string(b), `"default":"`)
}
