package baseclass

import (
	"github.com/reoring/baseclass/internal/engine"
)

var (
	_ engine.Equaler  = (*Instance)(nil)
	_ engine.Comparer = (*Instance)(nil)
	_ engine.Hasher   = (*Instance)(nil)
)

func (i *Instance) compareTuple() []any { return i.selected((*Field).InCompare) }

func (i *Instance) hashTuple() []any { return i.selected((*Field).InHash) }

// sameClass returns other as an *Instance of exactly i's class.
func (i *Instance) sameClass(other any) (*Instance, bool) {
	o, ok := other.(*Instance)
	if !ok || o == nil || o.class != i.class {
		return nil, false
	}
	return o, true
}

// Equal compares the compare-participating fields in schema order. Against
// anything but an instance of the exact same class it returns
// ErrNotSupported, so callers can fall back to the other operand.
func (i *Instance) Equal(other any) (bool, error) {
	o, ok := i.sameClass(other)
	if !ok {
		return false, ErrNotSupported
	}
	return engine.EqualSeq(i.compareTuple(), o.compareTuple()), nil
}

// Compare orders two instances of the same class lexicographically over
// their compare-participating fields.
func (i *Instance) Compare(other any) (int, error) {
	o, ok := i.sameClass(other)
	if !ok {
		return 0, ErrNotSupported
	}
	return engine.CompareSeq(i.compareTuple(), o.compareTuple())
}

// Less reports i < other.
func (i *Instance) Less(other any) (bool, error) {
	c, err := i.Compare(other)
	return c < 0, err
}

// LessEqual reports i <= other.
func (i *Instance) LessEqual(other any) (bool, error) {
	c, err := i.Compare(other)
	return err == nil && c <= 0, err
}

// Greater reports i > other.
func (i *Instance) Greater(other any) (bool, error) {
	c, err := i.Compare(other)
	return c > 0, err
}

// GreaterEqual reports i >= other.
func (i *Instance) GreaterEqual(other any) (bool, error) {
	c, err := i.Compare(other)
	return err == nil && c >= 0, err
}

// Hash is only defined for immutable classes; mutable ones return
// ErrNotSupported.
func (i *Instance) Hash() (uint64, error) {
	if !i.class.immutable {
		return 0, ErrNotSupported
	}
	return engine.HashSeq(i.hashTuple())
}

// Equal reports a == b with reflected fallback: a.Equal(b), then b.Equal(a),
// then identity for instances, structural equality otherwise.
func Equal(a, b any) bool { return engine.Equal(a, b) }

// Compare orders a against b with the same rules as instance ordering.
func Compare(a, b any) (int, error) { return engine.Compare(a, b) }
