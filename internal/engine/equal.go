package engine

import (
	"math"
	"reflect"
	"time"
)

// Equal reports structural equality. Numbers compare by value across Go
// numeric types, sequences and maps element-wise (so nested Equalers are
// honored), everything else with == when comparable and DeepEqual when not.
func Equal(a, b any) bool {
	if a == nil || b == nil {
		return isNilValue(a) && isNilValue(b)
	}
	if eq, ok := delegatedEqual(a, b); ok {
		return eq
	}
	return equalValues(reflect.ValueOf(a), reflect.ValueOf(b))
}

// EqualSeq compares two tuples element by element.
func EqualSeq(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// delegatedEqual tries a.Equal(b), then the reflected b.Equal(a), then
// identity. ok is false when neither operand is an Equaler.
func delegatedEqual(a, b any) (eq bool, ok bool) {
	ea, aok := a.(Equaler)
	eb, bok := b.(Equaler)
	if !aok && !bok {
		return false, false
	}
	if aok {
		if r, err := ea.Equal(b); err == nil {
			return r, true
		}
	}
	if bok {
		if r, err := eb.Equal(a); err == nil {
			return r, true
		}
	}
	return identical(a, b), true
}

func identical(a, b any) bool {
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Type() != rb.Type() || !ra.Comparable() {
		return false
	}
	return ra.Equal(rb)
}

func equalValues(va, vb reflect.Value) bool {
	va, vb = unwrap(va), unwrap(vb)
	ka, kb := KindOf(va), KindOf(vb)
	if isNumeric(ka) && isNumeric(kb) {
		c, ok := compareNumbers(va, vb)
		return ok && c == 0
	}
	if ka == KindNil || kb == KindNil {
		return ka == kb
	}
	if ka != kb {
		return false
	}
	switch ka {
	case KindSequence:
		if va.Len() != vb.Len() {
			return false
		}
		for i := 0; i < va.Len(); i++ {
			if !Equal(elemAny(va.Index(i)), elemAny(vb.Index(i))) {
				return false
			}
		}
		return true
	case KindMap:
		if va.Len() != vb.Len() {
			return false
		}
		keyType := vb.Type().Key()
		iter := va.MapRange()
		for iter.Next() {
			k := iter.Key()
			if !k.Type().AssignableTo(keyType) {
				return false
			}
			w := vb.MapIndex(k)
			if !w.IsValid() || !Equal(elemAny(iter.Value()), elemAny(w)) {
				return false
			}
		}
		return true
	case KindTime:
		ta, aok := elemAny(va).(time.Time)
		tb, bok := elemAny(vb).(time.Time)
		return aok && bok && ta.Equal(tb)
	}
	if va.Type() != vb.Type() {
		return false
	}
	if va.Comparable() {
		return va.Equal(vb)
	}
	return reflect.DeepEqual(elemAny(va), elemAny(vb))
}

// compareNumbers orders two numeric values exactly. ok is false when either
// side is NaN.
func compareNumbers(a, b reflect.Value) (c int, ok bool) {
	a, b = unwrap(a), unwrap(b)
	ka, kb := KindOf(a), KindOf(b)
	switch {
	case ka == KindInt && kb == KindInt:
		return cmpOrdered(a.Int(), b.Int()), true
	case ka == KindUint && kb == KindUint:
		return cmpOrdered(a.Uint(), b.Uint()), true
	case ka == KindInt && kb == KindUint:
		x := a.Int()
		if x < 0 {
			return -1, true
		}
		return cmpOrdered(uint64(x), b.Uint()), true
	case ka == KindFloat && kb == KindFloat:
		fa, fb := a.Float(), b.Float()
		if math.IsNaN(fa) || math.IsNaN(fb) {
			return 0, false
		}
		return cmpOrdered(fa, fb), true
	case ka == KindInt:
		return compareIntFloat(a.Int(), b.Float())
	case ka == KindUint:
		return compareUintFloat(a.Uint(), b.Float())
	}
	c, ok = compareNumbers(b, a)
	return -c, ok
}

const (
	twoTo63 = float64(1 << 63)
	twoTo64 = float64(1 << 64)
)

func compareIntFloat(x int64, f float64) (int, bool) {
	switch {
	case math.IsNaN(f):
		return 0, false
	case f >= twoTo63:
		return -1, true
	case f < -twoTo63:
		return 1, true
	}
	t := math.Trunc(f)
	if c := cmpOrdered(x, int64(t)); c != 0 {
		return c, true
	}
	return fractionSide(f, t), true
}

func compareUintFloat(u uint64, f float64) (int, bool) {
	switch {
	case math.IsNaN(f):
		return 0, false
	case f < 0:
		return 1, true
	case f >= twoTo64:
		return -1, true
	}
	t := math.Trunc(f)
	if c := cmpOrdered(u, uint64(t)); c != 0 {
		return c, true
	}
	return fractionSide(f, t), true
}

// fractionSide orders an integer equal to trunc(f) against f itself.
func fractionSide(f, t float64) int {
	switch {
	case f > t:
		return -1
	case f < t:
		return 1
	}
	return 0
}

func cmpOrdered[T int | int64 | uint64 | float64 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
