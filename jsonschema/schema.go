package jsonschema

import (
	"reflect"
	"time"
)

// Schema is a minimal JSON Schema representation used for export.
type Schema struct {
	Schema      string `json:"$schema,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	// Core
	Type     string `json:"type,omitempty"`
	Format   string `json:"format,omitempty"`
	Default  any    `json:"default,omitempty"`
	ReadOnly bool   `json:"readOnly,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items    *Schema `json:"items,omitempty"`
	MinItems *int    `json:"minItems,omitempty"`
	MaxItems *int    `json:"maxItems,omitempty"`

	// Union
	OneOf []*Schema `json:"oneOf,omitempty"`
}

// Draft is the dialect URI stamped on exported root schemas.
const Draft = "https://json-schema.org/draft/2020-12/schema"

var timeType = reflect.TypeOf(time.Time{})

// ForType maps a Go type to the closest JSON Schema type. A nil type, an
// interface or a func yields an empty (accept-anything) schema.
func ForType(t reflect.Type) *Schema {
	if t == nil {
		return &Schema{}
	}
	if t == timeType {
		return &Schema{Type: "string", Format: "date-time"}
	}
	switch t.Kind() {
	case reflect.Pointer:
		return ForType(t.Elem())
	case reflect.Bool:
		return &Schema{Type: "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return &Schema{Type: "integer"}
	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}
	case reflect.String:
		return &Schema{Type: "string"}
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return &Schema{Type: "string", Format: "byte"}
		}
		return &Schema{Type: "array", Items: ForType(t.Elem())}
	case reflect.Map:
		if t.Elem() == reflect.TypeOf(struct{}{}) {
			return &Schema{Type: "array", Items: ForType(t.Key())}
		}
		return &Schema{Type: "object", AdditionalProperties: ForType(t.Elem())}
	case reflect.Struct:
		return &Schema{Type: "object"}
	}
	return &Schema{}
}
