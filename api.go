package baseclass

import (
	"fmt"
)

// SchemaFieldsOf returns the ordered fields of a synthesized class. A raw
// Mixin has no schema and yields nil.
func SchemaFieldsOf(b Base) []*Field {
	c, ok := b.(*Class)
	if !ok || c == nil {
		return nil
	}
	return c.Fields()
}

// IsImmutable reports whether b is a class whose instances are immutable.
func IsImmutable(b Base) bool {
	c, ok := b.(*Class)
	return ok && c != nil && c.immutable
}

// AsOrderedValues returns every field value in schema order.
func AsOrderedValues(inst *Instance) []any { return inst.Values() }

// AsMapping returns every field value keyed by name. Feeding the result
// back into New of the same class reproduces an equal instance when the
// hooks have no side effects.
func AsMapping(inst *Instance) Kwargs { return inst.Mapping() }

// Value returns a field value asserted to T.
func Value[T any](inst *Instance, name string) (T, error) {
	var zero T
	v, ok := inst.Get(name)
	if !ok {
		return zero, newConfigurationError(CodeUnknownField, inst.ClassName(), []string{name})
	}
	if v == nil {
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		e := newConfigurationError(CodeTypeMismatch, inst.ClassName(), []string{name})
		e.Hint = fmt.Sprintf("holds %T, want %T", v, zero)
		return zero, e
	}
	return t, nil
}

// MustValue is like Value but panics on error.
func MustValue[T any](inst *Instance, name string) T {
	v, err := Value[T](inst, name)
	if err != nil {
		panic(err)
	}
	return v
}
