package baseclass

import (
	"reflect"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/reoring/baseclass/internal/engine"
)

// ParameterKind is the calling convention of a synthesized parameter. Every
// synthesized parameter is keyword-only; positional construction is a
// separate, restricted path.
type ParameterKind int

const (
	KeywordOnly ParameterKind = iota
)

func (k ParameterKind) String() string { return "keyword_only" }

// Parameter is one entry of a synthesized call signature.
type Parameter struct {
	Name    string
	Type    reflect.Type
	Kind    ParameterKind
	Default Option[any]
	// Factory marks a parameter defaulted by a factory.
	Factory bool
}

// Required reports whether the parameter has neither default nor factory.
func (p Parameter) Required() bool { return !p.Default.IsSet() && !p.Factory }

// Signature is the documentation-only call signature of a class. It has no
// effect on construction.
type Signature struct {
	Class  string
	Params []Parameter
}

func buildSignature(c *Class) Signature {
	params := make([]Parameter, 0, len(c.fields))
	for _, f := range c.fields {
		params = append(params, Parameter{
			Name:    f.name,
			Type:    f.typ,
			Kind:    KeywordOnly,
			Default: f.def,
			Factory: f.factory != nil,
		})
	}
	return Signature{Class: c.name, Params: params}
}

// String renders Class(*, x int, y int = 1, z []string = <factory>).
func (s Signature) String() string {
	b := &strings.Builder{}
	b.WriteString(s.Class)
	b.WriteByte('(')
	if len(s.Params) > 0 {
		b.WriteString("*")
	}
	for _, p := range s.Params {
		b.WriteString(", ")
		b.WriteString(p.Name)
		if p.Type != nil {
			b.WriteByte(' ')
			b.WriteString(p.Type.String())
		}
		if v, ok := p.Default.Get(); ok {
			b.WriteString(" = ")
			b.WriteString(engine.Debug(v))
		} else if p.Factory {
			b.WriteString(" = <factory>")
		}
	}
	b.WriteByte(')')
	return b.String()
}

type parameterJSON struct {
	Name     string          `json:"name"`
	Type     string          `json:"type,omitempty"`
	Kind     string          `json:"kind"`
	Required bool            `json:"required"`
	Default  json.RawMessage `json:"default,omitempty"`
	Factory  bool            `json:"factory,omitempty"`
}

type signatureJSON struct {
	Class      string          `json:"class"`
	Parameters []parameterJSON `json:"parameters"`
}

// MarshalJSON encodes the signature for help tooling. Defaults that do not
// encode as JSON are emitted as their debug form.
func (s Signature) MarshalJSON() ([]byte, error) {
	out := signatureJSON{Class: s.Class, Parameters: make([]parameterJSON, 0, len(s.Params))}
	for _, p := range s.Params {
		pj := parameterJSON{Name: p.Name, Kind: p.Kind.String(), Required: p.Required(), Factory: p.Factory}
		if p.Type != nil {
			pj.Type = p.Type.String()
		}
		if v, ok := p.Default.Get(); ok {
			raw, err := json.Marshal(v)
			if err != nil {
				raw, err = json.Marshal(engine.Debug(v))
				if err != nil {
					return nil, err
				}
			}
			pj.Default = raw
		}
		out.Parameters = append(out.Parameters, pj)
	}
	return json.Marshal(out)
}
