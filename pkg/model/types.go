package model

import (
	"encoding/json"

	"github.com/bvqbao/Kiln/pkg/schema"
)

// Property is one field in the editable, ordered form of a schema. Unlike
// schema.Property it carries its own required flag instead of relying on a
// shared required list.
type Property struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Type        schema.PropertyType `json:"type"`
	Required    bool                `json:"required"`
}

// Model is the ordered-list representation of a schema. Element order is the
// user-visible field order in the editor; duplicate or colliding titles are
// permitted here and only resolved when exporting back to a Schema.
type Model struct {
	Properties []Property `json:"properties"`
}

// MarshalJSON always emits properties as an array, never null.
func (m Model) MarshalJSON() ([]byte, error) {
	properties := m.Properties
	if properties == nil {
		properties = []Property{}
	}
	return json.Marshal(struct {
		Properties []Property `json:"properties"`
	}{Properties: properties})
}

// Empty returns the canonical zero-field starting model for a new editing
// session. Callers receive a fresh value each time.
func Empty() Model {
	return Model{Properties: []Property{}}
}

// EmptySchema returns the schema corresponding to the empty model:
// {"type":"object","properties":{},"required":[]}.
func EmptySchema() schema.Schema {
	return ToSchema(Empty())
}
