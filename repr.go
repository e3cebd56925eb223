package baseclass

import (
	"strings"

	"github.com/davecgh/go-spew/spew"

	"github.com/reoring/baseclass/internal/engine"
)

var (
	_ engine.DebugReprer     = (*Instance)(nil)
	_ engine.DisplayStringer = (*Instance)(nil)
)

// DebugRepr renders Name(field=value, ...) over repr-participating fields,
// each value in debug form.
func (i *Instance) DebugRepr() string {
	return i.render((*Field).Repr, engine.Debug)
}

// DisplayStr renders Name(field=value, ...) over str-participating fields,
// each value in display form. A field holding another instance is elided to
// Name(...).
func (i *Instance) DisplayStr() string {
	return i.render((*Field).Str, displayField)
}

func displayField(v any) string {
	if inst, ok := v.(*Instance); ok && inst != nil {
		return inst.class.name + "(...)"
	}
	return engine.Display(v)
}

func (i *Instance) render(keep func(*Field) bool, form func(any) string) string {
	b := &strings.Builder{}
	b.WriteString(i.class.name)
	b.WriteByte('(')
	first := true
	for idx, f := range i.class.fields {
		if !keep(f) {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(f.name)
		b.WriteByte('=')
		b.WriteString(form(i.values[idx]))
	}
	b.WriteByte(')')
	return b.String()
}

// String implements fmt.Stringer with DisplayStr.
func (i *Instance) String() string { return i.DisplayStr() }

// GoString implements fmt.GoStringer with DebugRepr, so %#v prints the debug
// form.
func (i *Instance) GoString() string { return i.DebugRepr() }

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Dump returns a deep, multi-line dump of every field (participation flags
// are ignored). Nested instances are dumped field by field.
func (i *Instance) Dump() string {
	b := &strings.Builder{}
	i.dumpTo(b, "")
	return b.String()
}

func (i *Instance) dumpTo(b *strings.Builder, indent string) {
	b.WriteString(i.class.name)
	b.WriteString(" {\n")
	for idx, f := range i.class.fields {
		b.WriteString(indent)
		b.WriteString(dumpConfig.Indent)
		b.WriteString(f.name)
		b.WriteString(": ")
		if inst, ok := i.values[idx].(*Instance); ok && inst != nil {
			inst.dumpTo(b, indent+dumpConfig.Indent)
			continue
		}
		b.WriteString(dumpConfig.Sdump(i.values[idx]))
	}
	b.WriteString(indent)
	b.WriteString("}\n")
}

// DebugString renders any value in the debug form used by DebugRepr.
func DebugString(v any) string { return engine.Debug(v) }

// DisplayString renders any value in the display form used by DisplayStr.
func DisplayString(v any) string { return engine.Display(v) }
