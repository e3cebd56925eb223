package dsl

import (
	"reflect"

	"github.com/reoring/baseclass"
)

type mixinBuilder struct {
	cb *classBuilder
}

// Mixin creates a builder for a raw mixin base. Field steps are the same as
// for Class; mixins have no bases and no immutability flag.
func Mixin(name string) *mixinBuilder {
	return &mixinBuilder{cb: Class(name)}
}

// Default declares name with a bare default.
func (m *mixinBuilder) Default(name string, typ reflect.Type, v any) *mixinBuilder {
	m.cb.Field(name, typ).Default(v)
	return m
}

// Annotate declares name without a value.
func (m *mixinBuilder) Annotate(name string, typ reflect.Type) *mixinBuilder {
	m.cb.Field(name, typ)
	return m
}

// Spec declares name with a *Field policy.
func (m *mixinBuilder) Spec(name string, typ reflect.Type, fd *baseclass.Field) *mixinBuilder {
	m.cb.Field(name, typ).Spec(fd)
	return m
}

// PreInit sets the mixin's pre-init hook.
func (m *mixinBuilder) PreInit(fn baseclass.PreInitFunc) *mixinBuilder {
	m.cb.PreInit(fn)
	return m
}

// PostInit sets the mixin's post-init hook.
func (m *mixinBuilder) PostInit(fn baseclass.PostInitFunc) *mixinBuilder {
	m.cb.PostInit(fn)
	return m
}

// Build validates the declarations and returns the mixin.
func (m *mixinBuilder) Build() (*baseclass.Mixin, error) {
	if m.cb.err != nil {
		return nil, m.cb.err
	}
	return baseclass.NewMixin(baseclass.MixinDecl{
		Name:     m.cb.name,
		Attrs:    append([]baseclass.Attr(nil), m.cb.attrs...),
		PreInit:  m.cb.preInit,
		PostInit: m.cb.postInit,
	})
}

// MustBuild is like Build but panics on error.
func (m *mixinBuilder) MustBuild() *baseclass.Mixin {
	mx, err := m.Build()
	if err != nil {
		panic(err)
	}
	return mx
}
