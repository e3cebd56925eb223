package dsl

import (
	"fmt"
	"reflect"

	"github.com/reoring/baseclass"
)

// Binding maps the fields of a class onto the exported fields of struct T,
// keyed by baseclass.ResolveStructKey.
type Binding[T any] struct {
	class      *baseclass.Class
	t          reflect.Type
	fieldByKey map[string]int // class field name -> struct field index
}

// Bind binds class c to struct type T. Every bound struct key must name a
// field of c; class fields without a struct counterpart are left out.
func Bind[T any](c *baseclass.Class) (*Binding[T], error) {
	rt := Type[T]()
	if rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		e := baseclass.NewConfigurationError(baseclass.CodeInvalidDeclaration, c.Name())
		e.Hint = fmt.Sprintf("Bind[T] requires struct T, got %s", rt)
		return nil, e
	}
	fm := make(map[string]int)
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := baseclass.ResolveStructKey(sf)
		if name == "-" || name == "" {
			continue
		}
		if _, ok := c.Field(name); !ok {
			e := baseclass.NewConfigurationError(baseclass.CodeUnknownField, c.Name(), name)
			e.Hint = fmt.Sprintf("struct field %s.%s", rt.Name(), sf.Name)
			return nil, e
		}
		fm[name] = i
	}
	return &Binding[T]{class: c, t: rt, fieldByKey: fm}, nil
}

// MustBind is like Bind but panics on error.
func MustBind[T any](c *baseclass.Class) *Binding[T] {
	b, err := Bind[T](c)
	if err != nil {
		panic(err)
	}
	return b
}

// Class returns the bound class.
func (b *Binding[T]) Class() *baseclass.Class { return b.class }

// Decode copies the instance's values into a new T. nil values leave the
// struct field zero; values neither assignable nor convertible are a
// type_mismatch ConfigurationError.
func (b *Binding[T]) Decode(inst *baseclass.Instance) (T, error) {
	var out T
	if inst.Class() != b.class {
		return out, fmt.Errorf("dsl: instance of %s bound as %s: %w", inst.ClassName(), b.class.Name(), baseclass.ErrNotSupported)
	}
	rv := reflect.ValueOf(&out).Elem()
	if rv.Kind() == reflect.Pointer {
		rv.Set(reflect.New(b.t))
		rv = rv.Elem()
	}
	for key, idx := range b.fieldByKey {
		v, _ := inst.Get(key)
		if v == nil {
			continue
		}
		dst := rv.Field(idx)
		src := reflect.ValueOf(v)
		switch {
		case src.Type().AssignableTo(dst.Type()):
			dst.Set(src)
		case src.Type().ConvertibleTo(dst.Type()) && (dst.Kind() != reflect.String || src.Kind() == reflect.String):
			dst.Set(src.Convert(dst.Type()))
		default:
			e := baseclass.NewConfigurationError(baseclass.CodeTypeMismatch, b.class.Name(), key)
			e.Hint = fmt.Sprintf("holds %T, struct field is %s", v, dst.Type())
			return out, e
		}
	}
	return out, nil
}

// Encode constructs an instance from v. Every bound struct field is passed
// as a keyword argument; class fields without a struct counterpart take
// their defaults.
func (b *Binding[T]) Encode(v T) (*baseclass.Instance, error) {
	rv := reflect.ValueOf(&v).Elem()
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("dsl: Encode of nil %s", b.t)
		}
		rv = rv.Elem()
	}
	kw := make(baseclass.Kwargs, len(b.fieldByKey))
	for key, idx := range b.fieldByKey {
		kw[key] = rv.Field(idx).Interface()
	}
	return b.class.New(kw)
}

// New constructs an instance of c from struct v in one step.
func New[T any](c *baseclass.Class, v T) (*baseclass.Instance, error) {
	b, err := Bind[T](c)
	if err != nil {
		return nil, err
	}
	return b.Encode(v)
}
