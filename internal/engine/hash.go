package engine

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"reflect"
	"time"

	"github.com/cespare/xxhash/v2"
)

// value tags keep e.g. "1" and 1 from colliding
const (
	tagNil byte = iota + 1
	tagBool
	tagNumber
	tagFloat
	tagComplex
	tagString
	tagTime
	tagSeq
	tagStruct
	tagRef
	tagHasher
)

// HashSeq hashes a tuple with xxhash. Values equal under Equal hash equal;
// slices, maps and funcs are ErrUnhashable.
func HashSeq(values []any) (uint64, error) {
	d := xxhash.New()
	writeTag(d, tagSeq, uint64(len(values)))
	for _, v := range values {
		if err := hashAny(d, v); err != nil {
			return 0, err
		}
	}
	return d.Sum64(), nil
}

func hashAny(d *xxhash.Digest, v any) error {
	if v == nil {
		writeTag(d, tagNil, 0)
		return nil
	}
	if h, ok := v.(Hasher); ok {
		sum, err := h.Hash()
		if err != nil {
			if errors.Is(err, ErrNotSupported) {
				return fmt.Errorf("%w: %T", ErrUnhashable, v)
			}
			return err
		}
		writeTag(d, tagHasher, sum)
		return nil
	}
	if t, ok := v.(time.Time); ok {
		writeTag(d, tagTime, uint64(t.UnixNano()))
		return nil
	}
	return hashValue(d, reflect.ValueOf(v))
}

func hashValue(d *xxhash.Digest, rv reflect.Value) error {
	switch KindOf(rv) {
	case KindNil:
		writeTag(d, tagNil, 0)
		return nil
	case KindTime:
		if t, ok := elemAny(unwrap(rv)).(time.Time); ok {
			writeTag(d, tagTime, uint64(t.UnixNano()))
			return nil
		}
	}
	rv = unwrap(rv)
	if rv.CanInterface() {
		if _, ok := rv.Interface().(Hasher); ok {
			return hashAny(d, rv.Interface())
		}
	}
	switch KindOf(rv) {
	case KindBool:
		var b uint64
		if rv.Bool() {
			b = 1
		}
		writeTag(d, tagBool, b)
	case KindInt:
		writeTag(d, tagNumber, uint64(rv.Int()))
	case KindUint:
		writeTag(d, tagNumber, rv.Uint())
	case KindFloat:
		f := rv.Float()
		// integral floats hash like the equal integer
		switch {
		case f != math.Trunc(f):
			writeTag(d, tagFloat, math.Float64bits(f))
		case f >= -twoTo63 && f < twoTo63:
			writeTag(d, tagNumber, uint64(int64(f)))
		case f >= twoTo63 && f < twoTo64:
			writeTag(d, tagNumber, uint64(f))
		default:
			writeTag(d, tagFloat, math.Float64bits(f))
		}
	case KindComplex:
		c := rv.Complex()
		writeTag(d, tagComplex, math.Float64bits(real(c)))
		writeTag(d, tagComplex, math.Float64bits(imag(c)))
	case KindString:
		s := rv.String()
		writeTag(d, tagString, uint64(len(s)))
		_, _ = d.WriteString(s)
	case KindSequence:
		if rv.Kind() == reflect.Slice {
			return fmt.Errorf("%w: %s", ErrUnhashable, rv.Type())
		}
		writeTag(d, tagSeq, uint64(rv.Len()))
		for i := 0; i < rv.Len(); i++ {
			if err := hashValue(d, rv.Index(i)); err != nil {
				return err
			}
		}
	case KindStruct:
		name := rv.Type().String()
		writeTag(d, tagStruct, uint64(len(name)))
		_, _ = d.WriteString(name)
		for i := 0; i < rv.NumField(); i++ {
			if err := hashValue(d, rv.Field(i)); err != nil {
				return err
			}
		}
	case KindReference:
		if rv.IsNil() {
			writeTag(d, tagNil, 0)
			return nil
		}
		writeTag(d, tagRef, uint64(rv.Pointer()))
	default:
		return fmt.Errorf("%w: %s", ErrUnhashable, rv.Type())
	}
	return nil
}

func writeTag(d *xxhash.Digest, tag byte, payload uint64) {
	var buf [9]byte
	buf[0] = tag
	binary.LittleEndian.PutUint64(buf[1:], payload)
	_, _ = d.Write(buf[:])
}
