package manifest

import "gopkg.in/yaml.v3"

// Document is the top-level YAML layout of a manifest.
//
//	mixins:
//	  - name: Timestamps
//	    fields:
//	      - {name: created, type: time, factory: now}
//	classes:
//	  - name: User
//	    bases: [Timestamps]
//	    frozen: true
//	    fields:
//	      - {name: id, type: string, factory: uuid}
//	      - {name: email, type: string}
//	      - {name: tags, type: "[]string", factory: empty, hash: false}
type Document struct {
	Mixins  []MixinSpec `yaml:"mixins"`
	Classes []ClassSpec `yaml:"classes"`
}

// MixinSpec declares a raw mixin base.
type MixinSpec struct {
	Name   string      `yaml:"name"`
	Fields []FieldSpec `yaml:"fields"`
}

// ClassSpec declares a class. Bases name mixins, classes of the same
// manifest, BaseClass or FrozenBaseClass.
type ClassSpec struct {
	Name   string      `yaml:"name"`
	Bases  []string    `yaml:"bases"`
	Frozen *bool       `yaml:"frozen"`
	Fields []FieldSpec `yaml:"fields"`
}

// FieldSpec declares one attribute. A spec carrying only a default (and a
// type) is a bare value; any factory, flag, metadata or internal marker
// turns it into a Field policy.
type FieldSpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	// Default is kept as a node so an explicit null differs from absence.
	Default  yaml.Node      `yaml:"default"`
	Factory  string         `yaml:"factory"`
	Internal bool           `yaml:"internal"`
	Repr     *bool          `yaml:"repr"`
	Str      *bool          `yaml:"str"`
	Hash     *bool          `yaml:"hash"`
	Compare  *bool          `yaml:"compare"`
	Metadata map[string]any `yaml:"metadata"`
}

// HasDefault reports whether the default key was present.
func (f FieldSpec) HasDefault() bool { return f.Default.Kind != 0 }

func (f FieldSpec) isPolicy() bool {
	return f.Factory != "" || f.Internal || f.Repr != nil || f.Str != nil ||
		f.Hash != nil || f.Compare != nil || len(f.Metadata) > 0
}
