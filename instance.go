package baseclass

import (
	"fmt"
	"sort"
)

// Kwargs is a keyword-argument map.
type Kwargs map[string]any

// Clone returns a shallow copy.
func (kw Kwargs) Clone() Kwargs {
	out := make(Kwargs, len(kw))
	for k, v := range kw {
		out[k] = v
	}
	return out
}

// Keys returns the keys in ascending order.
func (kw Kwargs) Keys() []string {
	keys := make([]string, 0, len(kw))
	for k := range kw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Item is one (name, value) pair of an instance, in schema order.
type Item struct {
	Name  string
	Value any
}

// Instance holds exactly one value per field of its class.
type Instance struct {
	class    *Class
	values   []any
	presence []Presence
	// true until PostInit returns; assignments bypass immutability meanwhile
	initializing bool
}

// New constructs an instance from keyword arguments.
func (c *Class) New(kw Kwargs) (*Instance, error) { return c.construct(nil, kw) }

// MustNew is like New but panics on error.
func (c *Class) MustNew(kw Kwargs) *Instance {
	inst, err := c.New(kw)
	if err != nil {
		panic(err)
	}
	return inst
}

// NewPositional constructs an instance from positional arguments, mapped
// onto fields in schema order without skipping, plus keyword arguments.
// Positional arguments require a single-chain hierarchy.
func (c *Class) NewPositional(args []any, kw Kwargs) (*Instance, error) {
	return c.construct(args, kw)
}

func (c *Class) construct(args []any, kw Kwargs) (*Instance, error) {
	in := make(Kwargs, len(args)+len(kw))
	var positional map[string]struct{}
	if len(args) > 0 {
		if !c.chain {
			return nil, newConfigurationError(CodePositionalWithInheritance, c.name, nil)
		}
		if len(args) > len(c.fields) {
			e := newConfigurationError(CodeTooManyPositional, c.name, nil)
			e.Hint = fmt.Sprintf("takes %d, got %d", len(c.fields), len(args))
			return nil, e
		}
		positional = make(map[string]struct{}, len(args))
		for i, a := range args {
			name := c.fields[i].name
			if _, dup := kw[name]; dup {
				return nil, newConfigurationError(CodePositionalKeywordConflict, c.name, []string{name})
			}
			in[name] = a
			positional[name] = struct{}{}
		}
	}
	for k, v := range kw {
		in[k] = v
	}

	if c.preInit != nil {
		if err := c.preInit(in); err != nil {
			return nil, fmt.Errorf("baseclass: %s pre-init: %w", c.name, err)
		}
	}

	inst := &Instance{
		class:        c,
		values:       make([]any, len(c.fields)),
		presence:     make([]Presence, len(c.fields)),
		initializing: true,
	}
	for i, f := range c.fields {
		if v, ok := in[f.name]; ok {
			inst.values[i] = v
			inst.presence[i] = PresenceSupplied
			if _, pos := positional[f.name]; pos {
				inst.presence[i] |= PresencePositional
			}
			continue
		}
		if f.factory != nil {
			inst.values[i] = f.factory.Produce(in)
			inst.presence[i] = PresenceFactoryApplied
			continue
		}
		if v, ok := f.def.Get(); ok {
			inst.values[i] = v
			inst.presence[i] = PresenceDefaultApplied
			continue
		}
		return nil, newConfigurationError(CodeMissingRequired, c.name, []string{f.name})
	}

	var unexpected []string
	for k := range in {
		if _, known := c.index[k]; !known {
			unexpected = append(unexpected, k)
		}
	}
	if len(unexpected) > 0 {
		sort.Strings(unexpected)
		return nil, newConfigurationError(CodeUnexpectedArguments, c.name, unexpected)
	}

	defer func() { inst.initializing = false }()
	if c.postInit != nil {
		if err := c.postInit(inst); err != nil {
			return nil, fmt.Errorf("baseclass: %s post-init: %w", c.name, err)
		}
	}
	return inst, nil
}

// Class returns the instance's class.
func (i *Instance) Class() *Class { return i.class }

// ClassName returns the name of the instance's class.
func (i *Instance) ClassName() string { return i.class.name }

// Get returns the value of a field.
func (i *Instance) Get(name string) (any, bool) {
	idx, ok := i.class.index[name]
	if !ok {
		return nil, false
	}
	return i.values[idx], true
}

// Set assigns a field. Instances of an immutable class reject every
// assignment after construction with an *ImmutabilityError.
func (i *Instance) Set(name string, v any) error {
	if i.class.immutable && !i.initializing {
		return &ImmutabilityError{Class: i.class.name, Field: name}
	}
	idx, ok := i.class.index[name]
	if !ok {
		return newConfigurationError(CodeUnknownField, i.class.name, []string{name})
	}
	i.values[idx] = v
	i.presence[idx] |= PresenceAssigned
	return nil
}

// Presence returns how a field obtained its current value.
func (i *Instance) Presence(name string) (Presence, bool) {
	idx, ok := i.class.index[name]
	if !ok {
		return 0, false
	}
	return i.presence[idx], true
}

// Values returns the field values in schema order.
func (i *Instance) Values() []any { return append([]any(nil), i.values...) }

// Items returns (name, value) pairs in schema order.
func (i *Instance) Items() []Item {
	out := make([]Item, len(i.values))
	for idx, f := range i.class.fields {
		out[idx] = Item{Name: f.name, Value: i.values[idx]}
	}
	return out
}

// Mapping returns the field values keyed by name.
func (i *Instance) Mapping() Kwargs {
	out := make(Kwargs, len(i.values))
	for idx, f := range i.class.fields {
		out[f.name] = i.values[idx]
	}
	return out
}

// selected returns the values of the fields for which keep is true.
func (i *Instance) selected(keep func(*Field) bool) []any {
	out := make([]any, 0, len(i.values))
	for idx, f := range i.class.fields {
		if keep(f) {
			out = append(out, i.values[idx])
		}
	}
	return out
}
