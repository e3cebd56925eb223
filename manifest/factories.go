package manifest

import (
	"fmt"
	"io"
	"math/rand"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/reoring/baseclass"
)

// FactoryFunc builds a default factory for a field of type typ (nil when the
// field is untyped). arg is the text after the colon in "name:arg".
type FactoryFunc func(typ reflect.Type, arg string) (*baseclass.DefaultFactory, error)

var builtinFactories = map[string]FactoryFunc{
	"uuid":  uuidFactory,
	"ulid":  ulidFactory,
	"now":   nowFactory,
	"empty": emptyFactory,
	"copy":  copyFactory,
}

func uuidFactory(reflect.Type, string) (*baseclass.DefaultFactory, error) {
	return baseclass.Factory(func() any { return uuid.NewString() }), nil
}

// ulids are monotonic within one millisecond across every ulid field
var ulidSource = struct {
	sync.Mutex
	entropy io.Reader
}{entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)}

func newULID() string {
	ulidSource.Lock()
	defer ulidSource.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulidSource.entropy).String()
}

func ulidFactory(reflect.Type, string) (*baseclass.DefaultFactory, error) {
	return baseclass.Factory(func() any { return newULID() }), nil
}

func nowFactory(reflect.Type, string) (*baseclass.DefaultFactory, error) {
	return baseclass.Factory(func() any { return time.Now().UTC() }), nil
}

// emptyFactory yields a fresh empty slice or map per instance, or the zero
// value of any other type.
func emptyFactory(typ reflect.Type, _ string) (*baseclass.DefaultFactory, error) {
	if typ == nil {
		return nil, fmt.Errorf("manifest: factory \"empty\" needs a typed field")
	}
	return baseclass.Factory(func() any {
		switch typ.Kind() {
		case reflect.Slice:
			return reflect.MakeSlice(typ, 0, 0).Interface()
		case reflect.Map:
			return reflect.MakeMap(typ).Interface()
		}
		return reflect.Zero(typ).Interface()
	}), nil
}

// copyFactory yields the value supplied for another argument of the same
// call, or nil when it was not supplied.
func copyFactory(_ reflect.Type, arg string) (*baseclass.DefaultFactory, error) {
	if arg == "" {
		return nil, fmt.Errorf("manifest: factory \"copy\" needs a field, as in copy:name")
	}
	return baseclass.FactoryKw(func(kw baseclass.Kwargs) any { return kw[arg] }), nil
}

func (l *Loader) factory(spec string, typ reflect.Type) (*baseclass.DefaultFactory, error) {
	name, arg, _ := strings.Cut(spec, ":")
	fn, ok := l.factories[name]
	if !ok {
		return nil, fmt.Errorf("manifest: unknown factory %q", name)
	}
	return fn(typ, arg)
}
