// Package engine implements the value-level behaviors shared by every
// instance: structural equality, lexicographic ordering, hashing and the
// two textual forms. It knows nothing about classes; instances plug in
// through the small interfaces below.
package engine

import (
	"errors"
	"reflect"
	"time"
)

var (
	ErrNotSupported = errors.New("baseclass: operation not supported")
	ErrUnhashable   = errors.New("baseclass: unhashable value")
	ErrUnorderable  = errors.New("baseclass: values are not orderable")
)

// Equaler is implemented by values with their own equality. Returning
// ErrNotSupported defers to the other operand, then to identity.
type Equaler interface {
	Equal(other any) (bool, error)
}

// Comparer is implemented by values with their own ordering.
type Comparer interface {
	Compare(other any) (int, error)
}

// Hasher is implemented by values with their own hash.
type Hasher interface {
	Hash() (uint64, error)
}

// DebugReprer renders a value in debug form.
type DebugReprer interface {
	DebugRepr() string
}

// DisplayStringer renders a value in display form.
type DisplayStringer interface {
	DisplayStr() string
}

// Kind classifies a value for the comparison and hashing rules.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindComplex
	KindString
	KindTime
	KindSequence // slice or array
	KindMap
	KindStruct
	KindReference // pointer, chan, unsafe pointer
	KindFunc
)

var timeType = reflect.TypeOf(time.Time{})

// KindOf classifies rv. Interfaces are unwrapped.
func KindOf(rv reflect.Value) Kind {
	for rv.IsValid() && rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return KindNil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return KindNil
	}
	if rv.Type() == timeType {
		return KindTime
	}
	switch rv.Kind() {
	case reflect.Bool:
		return KindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return KindInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return KindUint
	case reflect.Float32, reflect.Float64:
		return KindFloat
	case reflect.Complex64, reflect.Complex128:
		return KindComplex
	case reflect.String:
		return KindString
	case reflect.Slice, reflect.Array:
		return KindSequence
	case reflect.Map:
		return KindMap
	case reflect.Struct:
		return KindStruct
	case reflect.Func:
		return KindFunc
	default:
		return KindReference
	}
}

func isNumeric(k Kind) bool { return k == KindInt || k == KindUint || k == KindFloat }

// isNilValue reports nil interfaces and nil pointers/maps/slices/funcs/chans.
func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func unwrap(rv reflect.Value) reflect.Value {
	for rv.IsValid() && rv.Kind() == reflect.Interface && !rv.IsNil() {
		rv = rv.Elem()
	}
	return rv
}

func elemAny(rv reflect.Value) any {
	if !rv.IsValid() {
		return nil
	}
	if rv.CanInterface() {
		return rv.Interface()
	}
	return nil
}
