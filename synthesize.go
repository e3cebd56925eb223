package baseclass

import (
	"fmt"
	"reflect"
)

// Attr is one locally declared attribute: a name, its declared type and an
// optional value. The value is either a bare default or a *Field carrying a
// full policy; an unset value only (re)annotates the name.
type Attr struct {
	Name  string
	Type  reflect.Type
	Value Option[any]
}

// ClassDecl is the explicit declaration of a class: what a class body with
// annotations would hold.
type ClassDecl struct {
	Name string
	// Bases in declaration order. Empty means BaseClass.
	Bases []Base
	Attrs []Attr
	// Immutable overrides the inherited flag when set.
	Immutable Option[bool]
	PreInit   PreInitFunc
	PostInit  PostInitFunc
}

// Synthesize builds a Class from decl. It runs once per class: bases are
// merged in order (a *Class contributes its fully merged declarations, a
// *Mixin only its own), local attributes are overlaid keeping inherited
// positions, immutability is taken from the first base defining it unless
// decl sets it, and one Field is built per name.
func Synthesize(decl ClassDecl) (*Class, error) {
	if decl.Name == "" {
		return nil, invalidDeclaration("", "class name is empty")
	}
	bases := decl.Bases
	if len(bases) == 0 {
		bases = []Base{BaseClass}
	}

	all := newDeclared()
	var immutable Option[bool]
	var preInit PreInitFunc
	var postInit PostInitFunc
	nonRoot := 0
	chain := true
	for i, b := range bases {
		if b == nil {
			return nil, invalidDeclaration(decl.Name, "base %d is nil", i)
		}
		for _, prev := range bases[:i] {
			if prev == b {
				return nil, invalidDeclaration(decl.Name, "duplicate base %s", b.BaseName())
			}
		}
		contrib := b.contribution()
		all.update(contrib)
		if !immutable.IsSet() {
			immutable = contrib.immutable
		}
		if preInit == nil {
			preInit = contrib.preInit
		}
		if postInit == nil {
			postInit = contrib.postInit
		}
		switch bt := b.(type) {
		case *Class:
			if !bt.root {
				nonRoot++
				chain = chain && bt.chain
			}
		default:
			chain = false
		}
	}
	if nonRoot > 1 {
		chain = false
	}

	if err := applyAttrs(all, decl.Name, decl.Attrs); err != nil {
		return nil, err
	}
	if decl.Immutable.IsSet() {
		immutable = decl.Immutable
	}
	if decl.PreInit != nil {
		preInit = decl.PreInit
	}
	if decl.PostInit != nil {
		postInit = decl.PostInit
	}

	c := &Class{
		name:      decl.Name,
		bases:     append([]Base(nil), bases...),
		immutable: immutable.Or(false),
		all:       all,
		preInit:   preInit,
		postInit:  postInit,
		chain:     chain,
	}
	c.fields, c.index = buildFields(all)
	c.signature = buildSignature(c)
	return c, nil
}

// MustSynthesize is like Synthesize but panics on error.
func MustSynthesize(decl ClassDecl) *Class {
	c, err := Synthesize(decl)
	if err != nil {
		panic(err)
	}
	return c
}

// applyAttrs overlays local attributes onto d.
func applyAttrs(d *declared, class string, attrs []Attr) error {
	seen := make(map[string]struct{}, len(attrs))
	for _, a := range attrs {
		if a.Name == "" {
			return invalidDeclaration(class, "attribute name is empty")
		}
		if _, dup := seen[a.Name]; dup {
			return invalidDeclaration(class, "attribute %q declared twice", a.Name)
		}
		seen[a.Name] = struct{}{}
		d.annotate(a.Name, a.Type)
		if v, ok := a.Value.Get(); ok {
			if f, isField := v.(*Field); isField && f == nil {
				return invalidDeclaration(class, "attribute %q has a nil *Field", a.Name)
			}
			d.assign(a.Name, v)
		}
	}
	return nil
}

// buildFields turns merged declarations into one fresh Field per name.
func buildFields(d *declared) ([]*Field, map[string]int) {
	fields := make([]*Field, 0, len(d.names))
	index := make(map[string]int, len(d.names))
	for _, name := range d.names {
		var f *Field
		switch v, ok := d.values[name]; {
		case !ok:
			f = &Field{metadata: emptyMetadata}
		default:
			if pf, isField := v.(*Field); isField {
				f = pf.clone()
			} else {
				f = &Field{def: Some(v), metadata: emptyMetadata}
			}
		}
		f.name = name
		f.typ = d.types[name]
		index[name] = len(fields)
		fields = append(fields, f)
	}
	return fields, index
}

func invalidDeclaration(class, format string, args ...any) *ConfigurationError {
	e := newConfigurationError(CodeInvalidDeclaration, class, nil)
	e.Hint = fmt.Sprintf(format, args...)
	return e
}
