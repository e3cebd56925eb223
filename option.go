package baseclass

import "fmt"

// Option is an explicitly tagged optional value. The zero Option is unset,
// which is distinct from Some(nil).
type Option[T any] struct {
	v  T
	ok bool
}

// Some wraps v into a set Option.
func Some[T any](v T) Option[T] { return Option[T]{v: v, ok: true} }

// Unset returns an unset Option.
func Unset[T any]() Option[T] { return Option[T]{} }

// Get returns the wrapped value and whether it is set.
func (o Option[T]) Get() (T, bool) { return o.v, o.ok }

// IsSet reports whether the Option holds a value.
func (o Option[T]) IsSet() bool { return o.ok }

// Or returns the wrapped value, or def when unset.
func (o Option[T]) Or(def T) T {
	if o.ok {
		return o.v
	}
	return def
}

func (o Option[T]) String() string {
	if !o.ok {
		return "unset"
	}
	return fmt.Sprintf("%v", o.v)
}
