package baseclass

import (
	"reflect"
	"strings"

	"github.com/reoring/baseclass/internal/engine"
)

// Field describes the construction and behavior policy of one declared
// attribute. Name and Type are back-filled by Synthesize; a Field obtained
// from a Class is never mutated afterwards.
//
// The zero Field is a required field that participates in every behavior.
type Field struct {
	name string
	typ  reflect.Type

	def     Option[any]
	factory *DefaultFactory

	// stored inverted so that the zero Field renders in both forms
	noRepr bool
	noStr  bool

	hash    Option[bool]
	compare Option[bool]

	metadata *Metadata
}

// DefaultFactory produces a default value at construction time. It either
// takes no arguments or receives the full keyword map of the call.
type DefaultFactory struct {
	fn   func() any
	kwfn func(kw Kwargs) any
}

// Factory wraps a zero-argument producer.
func Factory(fn func() any) *DefaultFactory {
	if fn == nil {
		return nil
	}
	return &DefaultFactory{fn: fn}
}

// FactoryKw wraps a producer that reads the raw keyword arguments of the
// construction call (after PreInit), not already-resolved field values.
func FactoryKw(fn func(kw Kwargs) any) *DefaultFactory {
	if fn == nil {
		return nil
	}
	return &DefaultFactory{kwfn: fn}
}

// AcceptsKwargs reports whether the factory receives the keyword map.
func (f *DefaultFactory) AcceptsKwargs() bool { return f != nil && f.kwfn != nil }

// Produce invokes the factory. kw is copied before being handed over.
func (f *DefaultFactory) Produce(kw Kwargs) any {
	if f.kwfn != nil {
		return f.kwfn(kw.Clone())
	}
	return f.fn()
}

// FieldOption configures NewField and InternalStateField.
type FieldOption func(*fieldConfig)

type fieldConfig struct {
	def        Option[any]
	factory    *DefaultFactory
	factorySet bool
	repr       bool
	str        bool
	hash       Option[bool]
	compare    Option[bool]
	metadata   map[string]any
}

// WithDefault sets a fixed default value. WithDefault(nil) is a nil default,
// not "no default".
func WithDefault(v any) FieldOption {
	return func(c *fieldConfig) { c.def = Some(v) }
}

// WithDefaultFactory sets a factory invoked when no value is supplied.
func WithDefaultFactory(f *DefaultFactory) FieldOption {
	return func(c *fieldConfig) {
		if f == nil {
			return
		}
		c.factory = f
		c.factorySet = true
	}
}

// WithRepr toggles participation in DebugRepr.
func WithRepr(on bool) FieldOption { return func(c *fieldConfig) { c.repr = on } }

// WithStr toggles participation in DisplayStr.
func WithStr(on bool) FieldOption { return func(c *fieldConfig) { c.str = on } }

// WithHash toggles participation in Hash. Unset follows the compare flag.
func WithHash(on bool) FieldOption { return func(c *fieldConfig) { c.hash = Some(on) } }

// WithCompare toggles participation in equality and ordering.
func WithCompare(on bool) FieldOption { return func(c *fieldConfig) { c.compare = Some(on) } }

// WithMetadata attaches auxiliary data. The map is copied.
func WithMetadata(m map[string]any) FieldOption {
	return func(c *fieldConfig) { c.metadata = m }
}

// NewField builds a Field policy. Setting both a default and a default
// factory is a ConfigurationError.
func NewField(opts ...FieldOption) (*Field, error) {
	c := fieldConfig{repr: true, str: true}
	for _, o := range opts {
		if o != nil {
			o(&c)
		}
	}
	return c.build()
}

// MustField is like NewField but panics on error.
func MustField(opts ...FieldOption) *Field {
	f, err := NewField(opts...)
	if err != nil {
		panic(err)
	}
	return f
}

// InternalStateField builds a Field for bookkeeping state: it never appears
// in DebugRepr, DisplayStr, equality, ordering or Hash, whatever opts say.
func InternalStateField(opts ...FieldOption) (*Field, error) {
	c := fieldConfig{}
	for _, o := range opts {
		if o != nil {
			o(&c)
		}
	}
	c.repr, c.str = false, false
	c.hash, c.compare = Some(false), Some(false)
	return c.build()
}

func (c fieldConfig) build() (*Field, error) {
	if c.def.IsSet() && c.factorySet {
		return nil, newConfigurationError(CodeDefaultConflict, "", nil)
	}
	return &Field{
		def:      c.def,
		factory:  c.factory,
		noRepr:   !c.repr,
		noStr:    !c.str,
		hash:     c.hash,
		compare:  c.compare,
		metadata: NewMetadata(c.metadata),
	}, nil
}

// Name returns the field name assigned by the synthesizer.
func (f *Field) Name() string { return f.name }

// Type returns the declared type; nil when the declaration was untyped.
func (f *Field) Type() reflect.Type { return f.typ }

// Default returns the fixed default.
func (f *Field) Default() Option[any] { return f.def }

// DefaultFactory returns the default factory, or nil.
func (f *Field) DefaultFactory() *DefaultFactory { return f.factory }

// Required reports whether construction must supply a value.
func (f *Field) Required() bool { return !f.def.IsSet() && f.factory == nil }

// Repr reports participation in DebugRepr.
func (f *Field) Repr() bool { return !f.noRepr }

// Str reports participation in DisplayStr.
func (f *Field) Str() bool { return !f.noStr }

// Hash returns the raw tri-state hash flag.
func (f *Field) Hash() Option[bool] { return f.hash }

// Compare returns the raw tri-state compare flag.
func (f *Field) Compare() Option[bool] { return f.compare }

// InCompare resolves the compare flag: unset means true.
func (f *Field) InCompare() bool { return f.compare.Or(true) }

// InHash resolves the hash flag: unset follows InCompare.
func (f *Field) InHash() bool { return f.hash.Or(f.InCompare()) }

// Metadata returns the read-only metadata.
func (f *Field) Metadata() *Metadata {
	if f.metadata == nil {
		return emptyMetadata
	}
	return f.metadata
}

// Override returns a copy of the policy with its default replaced by v and
// any factory dropped. Behavior flags and metadata are kept.
func (f *Field) Override(v any) *Field {
	cp := f.clone()
	cp.name, cp.typ = "", nil
	cp.def = Some(v)
	cp.factory = nil
	return cp
}

func (f *Field) clone() *Field {
	cp := *f
	if cp.metadata == nil {
		cp.metadata = emptyMetadata
	}
	return &cp
}

func (f *Field) String() string {
	b := &strings.Builder{}
	b.WriteString("Field(name=")
	b.WriteString(engine.Debug(f.name))
	b.WriteString(", type=")
	if f.typ == nil {
		b.WriteString("nil")
	} else {
		b.WriteString(f.typ.String())
	}
	b.WriteString(", default=")
	if v, ok := f.def.Get(); ok {
		b.WriteString(engine.Debug(v))
	} else {
		b.WriteString("unset")
	}
	b.WriteString(", default_factory=")
	switch {
	case f.factory == nil:
		b.WriteString("unset")
	case f.factory.AcceptsKwargs():
		b.WriteString("func(kw)")
	default:
		b.WriteString("func()")
	}
	b.WriteString(", repr=")
	b.WriteString(engine.Debug(f.Repr()))
	b.WriteString(", str=")
	b.WriteString(engine.Debug(f.Str()))
	b.WriteString(", hash=")
	b.WriteString(f.hash.String())
	b.WriteString(", compare=")
	b.WriteString(f.compare.String())
	b.WriteString(", metadata=")
	b.WriteString(f.Metadata().String())
	b.WriteByte(')')
	return b.String()
}
