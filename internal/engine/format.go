package engine

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Debug renders v in debug form: strings quoted, containers recursing in
// debug form, map keys sorted.
func Debug(v any) string {
	switch t := v.(type) {
	case nil:
		return "nil"
	case DebugReprer:
		return t.DebugRepr()
	case string:
		return strconv.Quote(t)
	case fmt.GoStringer:
		return t.GoString()
	case error:
		return "error(" + strconv.Quote(t.Error()) + ")"
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return "nil"
		}
		return renderSeq(rv, Debug)
	case reflect.Map:
		if rv.IsNil() {
			return "nil"
		}
		return renderMap(rv, Debug)
	case reflect.String:
		return strconv.Quote(rv.String())
	}
	return fmt.Sprintf("%#v", v)
}

// Display renders v in display form. Elements of slices, arrays, sets
// (map[K]struct{}) and maps are rendered in display form too, map keys in
// debug form.
func Display(v any) string {
	switch t := v.(type) {
	case nil:
		return "nil"
	case DisplayStringer:
		return t.DisplayStr()
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	case error:
		return t.Error()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return renderSeq(rv, Display)
	case reflect.Map:
		return renderMap(rv, Display)
	}
	return fmt.Sprint(v)
}

func renderSeq(rv reflect.Value, elem func(any) string) string {
	b := &strings.Builder{}
	b.WriteByte('[')
	for i := 0; i < rv.Len(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(elem(elemAny(rv.Index(i))))
	}
	b.WriteByte(']')
	return b.String()
}

type renderedEntry struct {
	key   string
	value string
}

func renderMap(rv reflect.Value, elem func(any) string) string {
	set := isSetType(rv.Type())
	entries := make([]renderedEntry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		e := renderedEntry{key: Debug(elemAny(iter.Key()))}
		if set {
			e.value = elem(elemAny(iter.Key()))
		} else {
			e.value = elem(elemAny(iter.Value()))
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })
	b := &strings.Builder{}
	b.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			b.WriteString(", ")
		}
		if set {
			b.WriteString(e.value)
			continue
		}
		b.WriteString(e.key)
		b.WriteString(": ")
		b.WriteString(e.value)
	}
	b.WriteByte('}')
	return b.String()
}

// isSetType reports maps whose values carry no information: map[K]struct{}.
func isSetType(t reflect.Type) bool {
	et := t.Elem()
	return et.Kind() == reflect.Struct && et.NumField() == 0
}
