package manifest

import (
	"fmt"
	"os"
	"reflect"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/reoring/baseclass"
)

// Loader turns manifests into classes. The zero Loader is not usable; use
// NewLoader.
type Loader struct {
	types     map[string]reflect.Type
	factories map[string]FactoryFunc
}

// NewLoader returns a Loader knowing the builtin type names and the
// factories uuid, ulid, now, empty and copy:<field>.
func NewLoader() *Loader {
	l := &Loader{
		types:     make(map[string]reflect.Type, len(builtinTypes)),
		factories: make(map[string]FactoryFunc, len(builtinFactories)),
	}
	for k, v := range builtinTypes {
		l.types[k] = v
	}
	for k, v := range builtinFactories {
		l.factories[k] = v
	}
	return l
}

// RegisterType makes typ available under name.
func (l *Loader) RegisterType(name string, typ reflect.Type) { l.types[name] = typ }

// RegisterFactory makes fn available under name.
func (l *Loader) RegisterFactory(name string, fn FactoryFunc) { l.factories[name] = fn }

// Parse decodes data strictly and synthesizes every declared mixin and
// class.
func (l *Loader) Parse(data []byte) (*Registry, error) {
	var doc Document
	if err := decodeStrict(data, &doc); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	return l.Build(doc)
}

// LoadFile reads and parses the manifest at path.
func (l *Loader) LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return l.Parse(data)
}

// Build synthesizes the declarations of doc. Bases may refer to classes
// declared anywhere in the document; cycles are rejected.
func (l *Loader) Build(doc Document) (*Registry, error) {
	r := newRegistry()
	for _, ms := range doc.Mixins {
		if err := r.reserve(ms.Name); err != nil {
			return nil, err
		}
		attrs, err := l.attrs(ms.Name, ms.Fields)
		if err != nil {
			return nil, err
		}
		m, err := baseclass.NewMixin(baseclass.MixinDecl{Name: ms.Name, Attrs: attrs})
		if err != nil {
			return nil, err
		}
		r.mixins[ms.Name] = m
	}
	specs := make(map[string]ClassSpec, len(doc.Classes))
	for _, cs := range doc.Classes {
		if err := r.reserve(cs.Name); err != nil {
			return nil, err
		}
		specs[cs.Name] = cs
	}
	b := &builder{l: l, r: r, specs: specs, visiting: map[string]bool{}}
	for _, cs := range doc.Classes {
		if _, err := b.class(cs.Name); err != nil {
			return nil, err
		}
		r.order = append(r.order, cs.Name)
	}
	return r, nil
}

type builder struct {
	l        *Loader
	r        *Registry
	specs    map[string]ClassSpec
	visiting map[string]bool
}

func (b *builder) class(name string) (*baseclass.Class, error) {
	if c, ok := b.r.classes[name]; ok {
		return c, nil
	}
	cs := b.specs[name]
	if b.visiting[name] {
		e := baseclass.NewConfigurationError(baseclass.CodeInvalidDeclaration, name)
		e.Hint = "inheritance cycle"
		return nil, e
	}
	b.visiting[name] = true
	defer delete(b.visiting, name)

	bases := make([]baseclass.Base, 0, len(cs.Bases))
	for _, bn := range cs.Bases {
		base, err := b.base(name, bn)
		if err != nil {
			return nil, err
		}
		bases = append(bases, base)
	}
	attrs, err := b.l.attrs(name, cs.Fields)
	if err != nil {
		return nil, err
	}
	decl := baseclass.ClassDecl{Name: name, Bases: bases, Attrs: attrs}
	if cs.Frozen != nil {
		decl.Immutable = baseclass.Some(*cs.Frozen)
	}
	c, err := baseclass.Synthesize(decl)
	if err != nil {
		return nil, err
	}
	b.r.classes[name] = c
	return c, nil
}

func (b *builder) base(class, name string) (baseclass.Base, error) {
	switch name {
	case baseclass.BaseClass.Name():
		return baseclass.BaseClass, nil
	case baseclass.FrozenBaseClass.Name():
		return baseclass.FrozenBaseClass, nil
	}
	if m, ok := b.r.mixins[name]; ok {
		return m, nil
	}
	if _, ok := b.specs[name]; ok {
		return b.class(name)
	}
	e := baseclass.NewConfigurationError(baseclass.CodeInvalidDeclaration, class)
	e.Hint = fmt.Sprintf("unknown base %q", name)
	return nil, e
}

func (l *Loader) attrs(owner string, specs []FieldSpec) ([]baseclass.Attr, error) {
	attrs := make([]baseclass.Attr, 0, len(specs))
	for _, fs := range specs {
		a, err := l.attr(owner, fs)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, a)
	}
	return attrs, nil
}

func (l *Loader) attr(owner string, fs FieldSpec) (baseclass.Attr, error) {
	a := baseclass.Attr{Name: fs.Name}
	typ, err := l.resolveType(fs.Type)
	if err != nil {
		return a, fieldError(owner, fs.Name, err)
	}
	a.Type = typ

	var def any
	if fs.HasDefault() {
		def, err = Coerce(&fs.Default, typ)
		if err != nil {
			return a, fieldError(owner, fs.Name, err)
		}
	}
	if !fs.isPolicy() {
		if fs.HasDefault() {
			a.Value = baseclass.Some(def)
		}
		return a, nil
	}

	var opts []baseclass.FieldOption
	if fs.HasDefault() {
		opts = append(opts, baseclass.WithDefault(def))
	}
	if fs.Factory != "" {
		f, err := l.factory(fs.Factory, typ)
		if err != nil {
			return a, fieldError(owner, fs.Name, err)
		}
		opts = append(opts, baseclass.WithDefaultFactory(f))
	}
	if fs.Repr != nil {
		opts = append(opts, baseclass.WithRepr(*fs.Repr))
	}
	if fs.Str != nil {
		opts = append(opts, baseclass.WithStr(*fs.Str))
	}
	if fs.Hash != nil {
		opts = append(opts, baseclass.WithHash(*fs.Hash))
	}
	if fs.Compare != nil {
		opts = append(opts, baseclass.WithCompare(*fs.Compare))
	}
	if len(fs.Metadata) > 0 {
		opts = append(opts, baseclass.WithMetadata(fs.Metadata))
	}
	var fd *baseclass.Field
	if fs.Internal {
		fd, err = baseclass.InternalStateField(opts...)
	} else {
		fd, err = baseclass.NewField(opts...)
	}
	if err != nil {
		return a, fieldError(owner, fs.Name, err)
	}
	a.Value = baseclass.Some[any](fd)
	return a, nil
}

func fieldError(owner, field string, err error) error {
	if ce, ok := baseclass.AsConfigurationError(err); ok {
		cp := *ce
		cp.Class = owner
		cp.Fields = []string{field}
		return &cp
	}
	e := baseclass.NewConfigurationError(baseclass.CodeInvalidDeclaration, owner, field)
	e.Cause = err
	return e
}

// Coerce decodes a YAML node into a value of typ. A nil typ decodes into
// the natural YAML value; an explicit null yields nil.
func Coerce(n *yaml.Node, typ reflect.Type) (any, error) {
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null" {
		return nil, nil
	}
	if typ == nil {
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
	ptr := reflect.New(typ)
	if err := n.Decode(ptr.Interface()); err != nil {
		return nil, fmt.Errorf("line %d: cannot use %s as %s: %w", n.Line, describe(n), typ, err)
	}
	return ptr.Elem().Interface(), nil
}

func describe(n *yaml.Node) string {
	if n.Kind == yaml.ScalarNode {
		return fmt.Sprintf("%q", n.Value)
	}
	return "value"
}

// ParseValue converts command-line text into a value of typ. Text for a
// string field is taken literally; anything else is read as a YAML value.
func ParseValue(text string, typ reflect.Type) (any, error) {
	if typ != nil && typ.Kind() == reflect.String {
		return reflect.ValueOf(text).Convert(typ).Interface(), nil
	}
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	return Coerce(doc.Content[0], typ)
}

var defaultLoader = NewLoader()

// Parse parses data with the default Loader.
func Parse(data []byte) (*Registry, error) { return defaultLoader.Parse(data) }

// LoadFile loads path with the default Loader.
func LoadFile(path string) (*Registry, error) { return defaultLoader.LoadFile(path) }

// Registry holds the classes and mixins of one manifest.
type Registry struct {
	classes map[string]*baseclass.Class
	mixins  map[string]*baseclass.Mixin
	names   map[string]struct{}
	order   []string
}

func newRegistry() *Registry {
	return &Registry{
		classes: map[string]*baseclass.Class{},
		mixins:  map[string]*baseclass.Mixin{},
		names:   map[string]struct{}{},
	}
}

func (r *Registry) reserve(name string) error {
	if name == baseclass.BaseClass.Name() || name == baseclass.FrozenBaseClass.Name() {
		e := baseclass.NewConfigurationError(baseclass.CodeInvalidDeclaration, name)
		e.Hint = "reserved name"
		return e
	}
	if _, dup := r.names[name]; dup {
		e := baseclass.NewConfigurationError(baseclass.CodeInvalidDeclaration, name)
		e.Hint = "declared twice"
		return e
	}
	r.names[name] = struct{}{}
	return nil
}

// Class returns a class by name.
func (r *Registry) Class(name string) (*baseclass.Class, bool) {
	c, ok := r.classes[name]
	return c, ok
}

// Mixin returns a mixin by name.
func (r *Registry) Mixin(name string) (*baseclass.Mixin, bool) {
	m, ok := r.mixins[name]
	return m, ok
}

// Names returns the class names in declaration order.
func (r *Registry) Names() []string { return append([]string(nil), r.order...) }

// Classes returns the classes in declaration order.
func (r *Registry) Classes() []*baseclass.Class {
	out := make([]*baseclass.Class, 0, len(r.order))
	for _, n := range r.order {
		out = append(out, r.classes[n])
	}
	return out
}

// MixinNames returns the mixin names sorted.
func (r *Registry) MixinNames() []string {
	out := make([]string, 0, len(r.mixins))
	for n := range r.mixins {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
