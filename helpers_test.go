package baseclass_test

import (
	"reflect"

	"github.com/reoring/baseclass"
)

func typeOf[T any]() reflect.Type { return reflect.TypeOf((*T)(nil)).Elem() }

// ann declares name without a value.
func ann(name string, typ reflect.Type) baseclass.Attr {
	return baseclass.Attr{Name: name, Type: typ}
}

// val declares name with a bare default or a *Field.
func val(name string, typ reflect.Type, v any) baseclass.Attr {
	return baseclass.Attr{Name: name, Type: typ, Value: baseclass.Some(v)}
}

func fieldNames(c *baseclass.Class) []string {
	out := make([]string, 0, c.NumFields())
	for _, f := range c.Fields() {
		out = append(out, f.Name())
	}
	return out
}

func get(inst *baseclass.Instance, name string) any {
	v, _ := inst.Get(name)
	return v
}
