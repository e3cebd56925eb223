package baseclass

import (
	json "github.com/goccy/go-json"

	js "github.com/reoring/baseclass/jsonschema"
)

// JSONSchema exports the constructor contract of c as an object schema:
// one property per field in schema order, required fields listed, fixed
// defaults included when they encode as JSON, unknown keys rejected.
// Immutable classes mark every property readOnly.
func (c *Class) JSONSchema() (*js.Schema, error) {
	root := &js.Schema{
		Schema:               js.Draft,
		Title:                c.name,
		Type:                 "object",
		Properties:           make(map[string]*js.Schema, len(c.fields)),
		AdditionalProperties: false,
	}
	for _, f := range c.fields {
		p := js.ForType(f.typ)
		if v, ok := f.def.Get(); ok && v != nil {
			if _, err := json.Marshal(v); err == nil {
				p.Default = v
			}
		}
		if d, ok := f.Metadata().Get("description"); ok {
			if s, isStr := d.(string); isStr {
				p.Description = s
			}
		}
		p.ReadOnly = c.immutable
		root.Properties[f.name] = p
		if f.Required() {
			root.Required = append(root.Required, f.name)
		}
	}
	return root, nil
}
