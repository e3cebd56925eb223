package baseclass

import (
	"reflect"
)

// PreInitFunc runs once per construction before defaulting. It may read and
// rewrite the keyword map.
type PreInitFunc func(kw Kwargs) error

// PostInitFunc runs once per construction after every field is set.
// Assignments made through inst.Set are allowed even on immutable classes.
type PostInitFunc func(inst *Instance) error

// Base is a class usable in a base list: a synthesized *Class or a raw
// *Mixin.
type Base interface {
	BaseName() string
	// contribution returns what this base adds to a merge.
	contribution() *declared
}

// declared is an ordered annotation map plus a default map: the merge
// currency of the synthesizer. A value is either a bare default or a *Field.
type declared struct {
	names  []string
	types  map[string]reflect.Type
	values map[string]any

	immutable Option[bool]
	preInit   PreInitFunc
	postInit  PostInitFunc
}

func newDeclared() *declared {
	return &declared{types: map[string]reflect.Type{}, values: map[string]any{}}
}

// annotate records name with typ, keeping the position of an existing name.
// A nil typ keeps the previously recorded type.
func (d *declared) annotate(name string, typ reflect.Type) {
	prev, seen := d.types[name]
	if !seen {
		d.names = append(d.names, name)
	}
	if typ == nil && seen {
		typ = prev
	}
	d.types[name] = typ
}

// assign overlays a declared value. A bare value over an inherited *Field
// keeps that Field's flags and only swaps the default.
func (d *declared) assign(name string, v any) {
	if _, isField := v.(*Field); !isField {
		if prev, ok := d.values[name].(*Field); ok {
			v = prev.Override(v)
		}
	}
	d.values[name] = v
}

// update merges other into d with dict-update semantics: names already
// present keep their position, values present in other win.
func (d *declared) update(other *declared) {
	for _, n := range other.names {
		d.annotate(n, other.types[n])
		if v, ok := other.values[n]; ok {
			d.assign(n, v)
		}
	}
}

// Class is a synthesized class: the ordered field list plus the resolved
// immutability flag. A Class is immutable and safe for concurrent use.
type Class struct {
	name      string
	bases     []Base
	fields    []*Field
	index     map[string]int
	immutable bool

	all      *declared
	preInit  PreInitFunc
	postInit PostInitFunc

	// chain is true when positional construction is allowed: no more than
	// one non-root base anywhere in the ancestry and no mixins.
	chain bool
	root  bool

	signature Signature
}

var _ Base = (*Class)(nil)

// BaseName implements Base.
func (c *Class) BaseName() string { return c.name }

func (c *Class) contribution() *declared {
	return &declared{
		names:     c.all.names,
		types:     c.all.types,
		values:    c.all.values,
		immutable: Some(c.immutable),
		preInit:   c.preInit,
		postInit:  c.postInit,
	}
}

// Name returns the class name.
func (c *Class) Name() string { return c.name }

// Bases returns a copy of the direct bases.
func (c *Class) Bases() []Base { return append([]Base(nil), c.bases...) }

// Fields returns the ordered fields. The slice is a copy; the *Field values
// are shared and must not be modified.
func (c *Class) Fields() []*Field { return append([]*Field(nil), c.fields...) }

// NumFields returns the number of fields.
func (c *Class) NumFields() int { return len(c.fields) }

// Field looks a field up by name.
func (c *Class) Field(name string) (*Field, bool) {
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.fields[i], true
}

// Immutable reports whether instances reject assignment after construction.
func (c *Class) Immutable() bool { return c.immutable }

// Signature returns the synthesized keyword-only call signature.
func (c *Class) Signature() Signature { return c.signature }

// PreInitHook returns the resolved PreInit hook (local or inherited), so a
// subclass hook can chain to it explicitly.
func (c *Class) PreInitHook() PreInitFunc { return c.preInit }

// PostInitHook returns the resolved PostInit hook.
func (c *Class) PostInitHook() PostInitFunc { return c.postInit }

// Extends reports whether b is c or one of its ancestors.
func (c *Class) Extends(b Base) bool {
	if b == nil {
		return false
	}
	if bc, ok := b.(*Class); ok && bc == c {
		return true
	}
	for _, base := range c.bases {
		if base == b {
			return true
		}
		if bc, ok := base.(*Class); ok && bc.Extends(b) {
			return true
		}
	}
	return false
}

func (c *Class) String() string { return "<class " + c.name + ">" }

// Mixin is a raw, non-synthesized base. It contributes only its own
// declarations (and hooks) to a class that lists it.
type Mixin struct {
	name string
	own  *declared
}

var _ Base = (*Mixin)(nil)

// MixinDecl declares a Mixin.
type MixinDecl struct {
	Name     string
	Attrs    []Attr
	PreInit  PreInitFunc
	PostInit PostInitFunc
}

// NewMixin validates decl and returns a Mixin.
func NewMixin(decl MixinDecl) (*Mixin, error) {
	if decl.Name == "" {
		return nil, invalidDeclaration("", "mixin name is empty")
	}
	own := newDeclared()
	if err := applyAttrs(own, decl.Name, decl.Attrs); err != nil {
		return nil, err
	}
	own.preInit = decl.PreInit
	own.postInit = decl.PostInit
	return &Mixin{name: decl.Name, own: own}, nil
}

// BaseName implements Base.
func (m *Mixin) BaseName() string { return m.name }

func (m *Mixin) contribution() *declared { return m.own }

// Names returns the declared attribute names in order.
func (m *Mixin) Names() []string { return append([]string(nil), m.own.names...) }

func (m *Mixin) String() string { return "<mixin " + m.name + ">" }

// BaseClass is the mutable root every class without explicit bases extends.
var BaseClass = &Class{
	name:      "BaseClass",
	index:     map[string]int{},
	all:       newDeclared(),
	chain:     true,
	root:      true,
	signature: Signature{Class: "BaseClass"},
}

// FrozenBaseClass is the immutable root.
var FrozenBaseClass = mustSynthesizeRoot("FrozenBaseClass")

func mustSynthesizeRoot(name string) *Class {
	c, err := Synthesize(ClassDecl{Name: name, Bases: []Base{BaseClass}, Immutable: Some(true)})
	if err != nil {
		panic(err)
	}
	c.root = true
	return c
}
