// Package dsl provides fluent builders over baseclass.Synthesize.
//
// Overview
//   - Builder API: declare a class with Class(name, bases...).Field(name, typ) and a value step
//     (Default/DefaultFactory/DefaultFactoryKw/Spec/With/Internal), then Build()/MustBuild().
//   - Mixins: Mixin(name) declares a raw base contributing only its own attributes and hooks.
//   - Struct mirroring: FromStruct[T]() seeds the field list from struct T and its tags.
//   - Typed binding: Bind[T](class) copies instances into struct T (Decode) and back (Encode).
//
// File layout (roles)
//   - class_builder.go: classBuilder/fieldStep and Build/MustBuild.
//   - mixin_builder.go: mixinBuilder.
//   - from_struct.go: FromStruct[T].
//   - bind.go: Binding[T], Bind/MustBind/New.
//
// Example (quickstart)
//
//	package main
//
//	import (
//	    "github.com/reoring/baseclass"
//	    "github.com/reoring/baseclass/dsl"
//	)
//
//	func main() {
//	    base := dsl.Class("Base").
//	        Field("x", dsl.Type[int]()).
//	        Field("y", dsl.Type[int]()).Default(2).
//	        MustBuild()
//	    sub := dsl.Class("Sub", base).
//	        Field("x", nil).Default(10).
//	        Field("z", dsl.Type[int]()).DefaultFactoryKw(func(kw baseclass.Kwargs) any { return kw["y"] }).
//	        MustBuild()
//	    v := sub.MustNew(baseclass.Kwargs{"y": 5})
//	    _ = v.DebugRepr() // Sub(x=10, y=5, z=5)
//	}
//
// Example (frozen subclass and internal state)
//
//	frozen := dsl.Class("Frozen", base).
//	    Field("cache", dsl.Type[map[string]int]()).Internal(
//	        baseclass.WithDefaultFactory(baseclass.Factory(func() any { return map[string]int{} }))).
//	    Frozen().
//	    MustBuild()
//
// Example (binding)
//
//	type Point struct {
//	    X int `baseclass:"name=x"`
//	    Y int `json:"y"`
//	}
//	pt := dsl.FromStruct[Point]().Field("y", nil).Default(0).MustBuild()
//	b := dsl.MustBind[Point](pt)
//	inst, _ := b.Encode(Point{X: 1, Y: 2})
//	p, _ := b.Decode(inst)
//	_ = p // Point{X: 1, Y: 2}
package dsl
