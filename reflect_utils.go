package baseclass

import (
	"reflect"
	"strings"
)

// ResolveStructKey resolves the field name a struct field maps to in dsl
// binding and dsl.FromStruct.
// Priority: baseclass:"name=..." > json tag name > field name; "-" disables the field.
func ResolveStructKey(sf reflect.StructField) string {
	if bt := sf.Tag.Get("baseclass"); bt != "" {
		if bt == "-" {
			return "-"
		}
		for _, p := range strings.Split(bt, ",") {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			if i == 0 {
				return sf.Name
			}
			return jt[:i]
		}
		return jt
	}
	return sf.Name
}

// StructTagOptions returns the bare options of a baseclass struct tag, such
// as "norepr" or "internal"; name= entries are skipped.
func StructTagOptions(sf reflect.StructField) map[string]bool {
	out := map[string]bool{}
	bt := sf.Tag.Get("baseclass")
	if bt == "" || bt == "-" {
		return out
	}
	for _, p := range strings.Split(bt, ",") {
		p = strings.TrimSpace(p)
		if p == "" || strings.HasPrefix(p, "name=") {
			continue
		}
		out[p] = true
	}
	return out
}
