package engine

import (
	"errors"
	"fmt"
	"reflect"
	"time"
)

// Compare orders a against b: -1, 0 or 1. Equal values compare 0 first;
// otherwise Comparers are consulted (reflected when the left side declines),
// then numbers, strings, bools, times and sequences. Anything else is
// ErrUnorderable.
func Compare(a, b any) (int, error) {
	if Equal(a, b) {
		return 0, nil
	}
	if ca, ok := a.(Comparer); ok {
		c, err := ca.Compare(b)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, ErrNotSupported) {
			return 0, err
		}
	}
	if cb, ok := b.(Comparer); ok {
		c, err := cb.Compare(a)
		if err == nil {
			return -c, nil
		}
		if !errors.Is(err, ErrNotSupported) {
			return 0, err
		}
	}
	va, vb := unwrap(reflect.ValueOf(a)), unwrap(reflect.ValueOf(b))
	ka, kb := KindOf(va), KindOf(vb)
	if isNumeric(ka) && isNumeric(kb) {
		c, ok := compareNumbers(va, vb)
		if !ok {
			return 0, unorderable(a, b)
		}
		return c, nil
	}
	if ka != kb {
		return 0, unorderable(a, b)
	}
	switch ka {
	case KindString:
		return cmpOrdered(va.String(), vb.String()), nil
	case KindBool:
		x, y := 0, 0
		if va.Bool() {
			x = 1
		}
		if vb.Bool() {
			y = 1
		}
		return cmpOrdered(x, y), nil
	case KindTime:
		ta, aok := elemAny(va).(time.Time)
		tb, bok := elemAny(vb).(time.Time)
		if aok && bok {
			return ta.Compare(tb), nil
		}
	case KindSequence:
		return CompareSeq(seqOf(va), seqOf(vb))
	}
	return 0, unorderable(a, b)
}

// CompareSeq orders two tuples lexicographically: the first unequal pair
// decides, then length.
func CompareSeq(a, b []any) (int, error) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if Equal(a[i], b[i]) {
			continue
		}
		return Compare(a[i], b[i])
	}
	return cmpOrdered(len(a), len(b)), nil
}

func seqOf(rv reflect.Value) []any {
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = elemAny(rv.Index(i))
	}
	return out
}

func unorderable(a, b any) error {
	return fmt.Errorf("%w: %T and %T", ErrUnorderable, a, b)
}
