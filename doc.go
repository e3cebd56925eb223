// Package baseclass synthesizes classes from field declarations: an
// ordered field list, a keyword-only constructor with defaults and default
// factories, debug and display renderings, equality, ordering and hashing
// over selected fields, and optional immutability.
//
// A class is declared once with Synthesize (or the dsl builders) and then
// constructs any number of instances:
//
//	point := baseclass.MustSynthesize(baseclass.ClassDecl{
//	    Name: "Point",
//	    Attrs: []baseclass.Attr{
//	        {Name: "x", Type: reflect.TypeOf(0)},
//	        {Name: "y", Type: reflect.TypeOf(0), Value: baseclass.Some[any](0)},
//	    },
//	})
//	p, err := point.New(baseclass.Kwargs{"x": 1})
//	// p.DebugRepr() == "Point(x=1, y=0)"
//
// Bases merge in declaration order: names keep the position of their first
// declaration while later declarations replace the policy. A bare default
// over an inherited *Field keeps that Field's flags. Immutability comes
// from the class itself or the first base defining it.
//
// Design policy:
//   - Keep only public APIs in the root package; value semantics live under internal/engine.
//   - Place builders under dsl/, the YAML manifest under manifest/, and the CLI under cmd/baseclass.
//   - Misuse is reported as *ConfigurationError with a stable Code.
package baseclass
