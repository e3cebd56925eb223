package baseclass_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/baseclass"
	g "github.com/reoring/baseclass/dsl"
)

// parent/middle/child chain redeclaring defaults at every level
func chain() (parent, middle, child *baseclass.Class) {
	parent = g.Class("Parent").
		Field("x", g.Type[int]()).
		Field("y", g.Type[int]()).
		Field("z", g.Type[string]()).Default("parent").
		MustBuild()
	middle = g.Class("Middle", parent).
		Field("y", nil).Default(1).
		Field("z", nil).Default("middle").
		MustBuild()
	child = g.Class("Child", middle).
		Field("z", nil).With(baseclass.WithDefault("child")).
		Field("alpha", g.Type[float64]()).
		MustBuild()
	return parent, middle, child
}

func TestChain_Basic(t *testing.T) {
	parent, _, _ := chain()

	for _, kw := range []baseclass.Kwargs{nil, {"x": 1}, {"foobar": 1}, {"x": 1, "y": 2, "foobar": 1}} {
		_, err := parent.New(kw)
		assert.Error(t, err, "%v", kw)
	}

	inst := parent.MustNew(baseclass.Kwargs{"x": 1, "y": 2})
	assert.Equal(t, []any{1, 2, "parent"}, inst.Values())
	assert.Equal(t, 3, parent.NumFields())
}

func TestChain_DefaultsPerLevel(t *testing.T) {
	_, middle, child := chain()

	m := middle.MustNew(baseclass.Kwargs{"x": 1})
	assert.Equal(t, []any{1, 1, "middle"}, m.Values())

	c := child.MustNew(baseclass.Kwargs{"x": 1, "alpha": 1.5})
	assert.Equal(t, []string{"x", "y", "z", "alpha"}, fieldNames(child))
	assert.Equal(t, []any{1, 1, "child", 1.5}, c.Values())
	assert.True(t, child.Extends(baseclass.BaseClass))
}

func TestChain_OverrideRequiredWithDefault(t *testing.T) {
	bcParent := g.Class("BCParent", baseclass.FrozenBaseClass).
		Field("x", g.Type[int]()).
		Field("y", g.Type[int]()).
		Field("z", g.Type[string]()).Default("parent").
		MustBuild()
	childX := g.Class("BCChildX", bcParent).
		Field("x", nil).Default(2).
		Field("z", nil).Default("child").
		Field("alpha", g.Type[float64]()).
		MustBuild()
	childY := g.Class("BCChildY", bcParent).
		Field("y", nil).Default(2).
		Field("z", nil).Default("child").
		Field("alpha", g.Type[float64]()).
		MustBuild()

	x := childX.MustNew(baseclass.Kwargs{"y": 3, "alpha": 1.5})
	assert.Equal(t, []any{2, 3, "child", 1.5}, x.Values())
	y := childY.MustNew(baseclass.Kwargs{"x": 3, "alpha": 1.5})
	assert.Equal(t, []any{3, 2, "child", 1.5}, y.Values())

	assert.True(t, childX.Immutable())
	assert.True(t, baseclass.IsImmutabilityError(x.Set("x", 0)))
}

func TestChain_WindowCom(t *testing.T) {
	c := g.Class("BCKwargs", baseclass.FrozenBaseClass).
		Field("window", g.Type[int]()).
		Field("com", g.Type[int]()).DefaultFactoryKw(func(kw baseclass.Kwargs) any { return kw["window"] }).
		MustBuild()

	a := c.MustNew(baseclass.Kwargs{"window": 252})
	assert.Equal(t, 252, get(a, "com"))
	b := c.MustNew(baseclass.Kwargs{"window": 252, "com": 181})
	assert.Equal(t, 181, get(b, "com"))
}

func TestChain_PreInitKeepsFrozen(t *testing.T) {
	c := g.Class("BCPreInit", baseclass.FrozenBaseClass).
		Field("x", g.Type[*int]()).Default(nil).
		Field("y", g.Type[*int]()).Default(nil).
		Field("z", g.Type[*int]()).Default(nil).
		PreInit(func(kw baseclass.Kwargs) error {
			if kw["x"] == nil && kw["y"] == nil {
				kw["z"] = 100
			}
			return nil
		}).
		MustBuild()

	a := c.MustNew(baseclass.Kwargs{"x": 1, "y": 2})
	assert.Equal(t, []any{1, 2, nil}, a.Values())

	b := c.MustNew(nil)
	assert.Equal(t, []any{nil, nil, 100}, b.Values())
	require.Error(t, b.Set("x", 1))
}
