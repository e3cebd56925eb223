package dsl

import (
	"reflect"

	"github.com/reoring/baseclass"
)

// FromStruct starts a class builder whose fields mirror the exported fields
// of struct T, in declaration order, named by baseclass.ResolveStructKey and
// typed by the struct field type. Every field starts required; chain
// Field(name, nil).Default(...) to add defaults. Recognized baseclass tag
// options: norepr, nostr, nohash, nocompare, internal.
//
//	type Point struct {
//	    X int `baseclass:"name=x"`
//	    Y int `baseclass:"name=y,nostr"`
//	}
//	cls := dsl.FromStruct[Point]().Field("y", nil).Default(0).MustBuild()
func FromStruct[T any](bases ...baseclass.Base) *classBuilder {
	rt := Type[T]()
	if rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	b := Class(rt.Name(), bases...)
	if rt.Kind() != reflect.Struct {
		e := baseclass.NewConfigurationError(baseclass.CodeInvalidDeclaration, rt.String())
		e.Hint = "FromStruct[T] requires struct T"
		b.fail(e)
		return b
	}
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := baseclass.ResolveStructKey(sf)
		if name == "-" || name == "" {
			continue
		}
		step := b.Field(name, sf.Type)
		opts := baseclass.StructTagOptions(sf)
		if opts["internal"] {
			step.Internal()
			continue
		}
		var fo []baseclass.FieldOption
		if opts["norepr"] {
			fo = append(fo, baseclass.WithRepr(false))
		}
		if opts["nostr"] {
			fo = append(fo, baseclass.WithStr(false))
		}
		if opts["nohash"] {
			fo = append(fo, baseclass.WithHash(false))
		}
		if opts["nocompare"] {
			fo = append(fo, baseclass.WithCompare(false))
		}
		if len(fo) > 0 {
			step.With(fo...)
		}
	}
	return b
}
