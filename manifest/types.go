package manifest

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

var builtinTypes = map[string]reflect.Type{
	"string":   reflect.TypeOf(""),
	"bool":     reflect.TypeOf(false),
	"int":      reflect.TypeOf(0),
	"int8":     reflect.TypeOf(int8(0)),
	"int16":    reflect.TypeOf(int16(0)),
	"int32":    reflect.TypeOf(int32(0)),
	"int64":    reflect.TypeOf(int64(0)),
	"uint":     reflect.TypeOf(uint(0)),
	"uint8":    reflect.TypeOf(uint8(0)),
	"uint16":   reflect.TypeOf(uint16(0)),
	"uint32":   reflect.TypeOf(uint32(0)),
	"uint64":   reflect.TypeOf(uint64(0)),
	"float32":  reflect.TypeOf(float32(0)),
	"float64":  reflect.TypeOf(float64(0)),
	"bytes":    reflect.TypeOf([]byte(nil)),
	"time":     reflect.TypeOf(time.Time{}),
	"duration": reflect.TypeOf(time.Duration(0)),
	"any":      reflect.TypeOf((*any)(nil)).Elem(),
}

// resolveType maps a manifest type name to a reflect.Type. The empty name
// is an untyped declaration (nil). Composites are written []T and
// map[string]T.
func (l *Loader) resolveType(name string) (reflect.Type, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return nil, nil
	case strings.HasPrefix(name, "[]"):
		elem, err := l.resolveType(name[2:])
		if err != nil {
			return nil, err
		}
		if elem == nil {
			return nil, fmt.Errorf("manifest: missing element type in %q", name)
		}
		return reflect.SliceOf(elem), nil
	case strings.HasPrefix(name, "map[string]"):
		elem, err := l.resolveType(name[len("map[string]"):])
		if err != nil {
			return nil, err
		}
		if elem == nil {
			return nil, fmt.Errorf("manifest: missing value type in %q", name)
		}
		return reflect.MapOf(reflect.TypeOf(""), elem), nil
	}
	if t, ok := l.types[name]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("manifest: unknown type %q", name)
}
