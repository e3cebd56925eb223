package dsl

import (
	"fmt"
	"reflect"

	"github.com/reoring/baseclass"
)

type classBuilder struct {
	name      string
	bases     []baseclass.Base
	attrs     []baseclass.Attr
	index     map[string]int
	immutable baseclass.Option[bool]
	preInit   baseclass.PreInitFunc
	postInit  baseclass.PostInitFunc
	err       error
}

type fieldStep struct {
	b    *classBuilder
	name string
}

// Class creates a class builder. No bases means baseclass.BaseClass.
func Class(name string, bases ...baseclass.Base) *classBuilder {
	return &classBuilder{name: name, bases: bases, index: map[string]int{}}
}

// Type returns the reflect.Type of T, for use as a field annotation.
func Type[T any]() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }

// Field declares (or re-declares) an annotated name. A re-declared name
// keeps its position and value; a non-nil typ replaces the type.
func (b *classBuilder) Field(name string, typ reflect.Type) *fieldStep {
	if i, ok := b.index[name]; ok {
		if typ != nil {
			b.attrs[i].Type = typ
		}
		return &fieldStep{b: b, name: name}
	}
	b.index[name] = len(b.attrs)
	b.attrs = append(b.attrs, baseclass.Attr{Name: name, Type: typ})
	return &fieldStep{b: b, name: name}
}

func (f *fieldStep) attr() *baseclass.Attr { return &f.b.attrs[f.b.index[f.name]] }

// Default sets a bare default. Over a *Field already declared here the
// Field's flags are kept.
func (f *fieldStep) Default(v any) *classBuilder {
	a := f.attr()
	if cur, ok := a.Value.Get(); ok {
		if fd, isField := cur.(*baseclass.Field); isField {
			a.Value = baseclass.Some[any](fd.Override(v))
			return f.b
		}
	}
	a.Value = baseclass.Some(v)
	return f.b
}

// DefaultFactory declares the field with a zero-argument default factory.
func (f *fieldStep) DefaultFactory(fn func() any) *classBuilder {
	return f.With(baseclass.WithDefaultFactory(baseclass.Factory(fn)))
}

// DefaultFactoryKw declares the field with a factory receiving the call's
// keyword arguments.
func (f *fieldStep) DefaultFactoryKw(fn func(baseclass.Kwargs) any) *classBuilder {
	return f.With(baseclass.WithDefaultFactory(baseclass.FactoryKw(fn)))
}

// Spec attaches a prebuilt *Field policy.
func (f *fieldStep) Spec(fd *baseclass.Field) *classBuilder {
	if fd == nil {
		f.b.fail(fmt.Errorf("dsl: %s.%s: nil field spec", f.b.name, f.name))
		return f.b
	}
	f.attr().Value = baseclass.Some[any](fd)
	return f.b
}

// With builds a *Field from opts and attaches it.
func (f *fieldStep) With(opts ...baseclass.FieldOption) *classBuilder {
	fd, err := baseclass.NewField(opts...)
	if err != nil {
		f.b.fail(fieldError(f.b.name, f.name, err))
		return f.b
	}
	f.attr().Value = baseclass.Some[any](fd)
	return f.b
}

// Internal attaches an internal-state Field: excluded from every rendering,
// comparison and hash.
func (f *fieldStep) Internal(opts ...baseclass.FieldOption) *classBuilder {
	fd, err := baseclass.InternalStateField(opts...)
	if err != nil {
		f.b.fail(fieldError(f.b.name, f.name, err))
		return f.b
	}
	f.attr().Value = baseclass.Some[any](fd)
	return f.b
}

func (f *fieldStep) Field(name string, typ reflect.Type) *fieldStep { return f.b.Field(name, typ) }
func (f *fieldStep) Build() (*baseclass.Class, error)                { return f.b.Build() }
func (f *fieldStep) MustBuild() *baseclass.Class                     { return f.b.MustBuild() }

// Frozen makes instances immutable regardless of the bases.
func (b *classBuilder) Frozen() *classBuilder {
	b.immutable = baseclass.Some(true)
	return b
}

// Mutable makes instances mutable regardless of the bases.
func (b *classBuilder) Mutable() *classBuilder {
	b.immutable = baseclass.Some(false)
	return b
}

// PreInit sets the local pre-init hook.
func (b *classBuilder) PreInit(fn baseclass.PreInitFunc) *classBuilder {
	b.preInit = fn
	return b
}

// PostInit sets the local post-init hook.
func (b *classBuilder) PostInit(fn baseclass.PostInitFunc) *classBuilder {
	b.postInit = fn
	return b
}

func (b *classBuilder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Build synthesizes the class. The first error recorded by a step wins.
func (b *classBuilder) Build() (*baseclass.Class, error) {
	if b.err != nil {
		return nil, b.err
	}
	return baseclass.Synthesize(baseclass.ClassDecl{
		Name:      b.name,
		Bases:     b.bases,
		Attrs:     append([]baseclass.Attr(nil), b.attrs...),
		Immutable: b.immutable,
		PreInit:   b.preInit,
		PostInit:  b.postInit,
	})
}

// MustBuild is like Build but panics on error.
func (b *classBuilder) MustBuild() *baseclass.Class {
	c, err := b.Build()
	if err != nil {
		panic(err)
	}
	return c
}

// fieldError stamps class and field onto a ConfigurationError from NewField.
func fieldError(class, field string, err error) error {
	if ce, ok := baseclass.AsConfigurationError(err); ok {
		cp := *ce
		cp.Class = class
		cp.Fields = []string{field}
		return &cp
	}
	return fmt.Errorf("dsl: %s.%s: %w", class, field, err)
}
