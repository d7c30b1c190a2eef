package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// TypeTagObject is the only value allowed for a root schema's type field.
const TypeTagObject = "object"

// PropertyType enumerates the field kinds the schema editor supports.
type PropertyType string

const (
	TypeNumber  PropertyType = "number"
	TypeString  PropertyType = "string"
	TypeInteger PropertyType = "integer"
	TypeBoolean PropertyType = "boolean"
)

// Valid reports whether the value is a member of the supported enumeration.
func (t PropertyType) Valid() bool {
	switch t {
	case TypeNumber, TypeString, TypeInteger, TypeBoolean:
		return true
	default:
		return false
	}
}

// Property is a single named field definition. The title duplicates the
// human-readable name the property's mapping key was derived from.
type Property struct {
	Title       string       `json:"title"`
	Type        PropertyType `json:"type"`
	Description string       `json:"description"`
}

// Schema is the object-shaped representation of a field set: a name-keyed
// property mapping plus the list of required field names. Required entries
// hold raw display titles, so lookups into Properties must normalize them
// first (see model.TitleToName).
//
// Property order is not part of the mapping itself; it is captured from the
// source document on unmarshal (or from Entry order in New) and replayed on
// marshal so a schema survives an edit round-trip with its field order intact.
type Schema struct {
	Type       string
	Properties map[string]Property
	Required   []string

	order []string
}

// Entry pairs a property name with its definition for ordered construction.
type Entry struct {
	Name     string
	Property Property
}

// New builds a Schema from ordered entries. When two entries share a name the
// later one wins while the name keeps its first position, matching mapping
// assignment semantics.
func New(entries []Entry, required []string) Schema {
	s := Schema{
		Type:       TypeTagObject,
		Properties: make(map[string]Property, len(entries)),
		Required:   make([]string, 0, len(required)),
	}
	for _, entry := range entries {
		if _, exists := s.Properties[entry.Name]; !exists {
			s.order = append(s.order, entry.Name)
		}
		s.Properties[entry.Name] = entry.Property
	}
	s.Required = append(s.Required, required...)
	return s
}

// PropertyOrder returns property names in document order. Names without a
// recorded position sort to the end so the result is deterministic even for
// schemas assembled by hand.
func (s Schema) PropertyOrder() []string {
	seen := make(map[string]struct{}, len(s.order))
	names := make([]string, 0, len(s.Properties))
	for _, name := range s.order {
		if _, ok := s.Properties[name]; !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	rest := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

// MarshalJSON emits the wire shape
// {"type":"object","properties":{...},"required":[...]} with properties keyed
// in document order and required always present as an array.
func (s Schema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"type":`)
	typeTag := s.Type
	if typeTag == "" {
		typeTag = TypeTagObject
	}
	if err := writeJSON(&buf, typeTag); err != nil {
		return nil, err
	}
	buf.WriteString(`,"properties":{`)
	for i, name := range s.PropertyOrder() {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSON(&buf, name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSON(&buf, s.Properties[name]); err != nil {
			return nil, err
		}
	}
	buf.WriteString(`},"required":`)
	required := s.Required
	if required == nil {
		required = []string{}
	}
	if err := writeJSON(&buf, required); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(payload)
	return nil
}

// UnmarshalJSON decodes the wire shape and records the key order of the
// properties object so later iteration matches the source document.
func (s *Schema) UnmarshalJSON(raw []byte) error {
	var payload struct {
		Type       string              `json:"type"`
		Properties map[string]Property `json:"properties"`
		Required   []string            `json:"required"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("schema: decode: %w", err)
	}

	s.Type = payload.Type
	s.Properties = payload.Properties
	if s.Properties == nil {
		s.Properties = map[string]Property{}
	}
	s.Required = payload.Required
	if s.Required == nil {
		s.Required = []string{}
	}
	s.order = propertyKeyOrder(raw)
	return nil
}

var supportedRootKeys = map[string]struct{}{
	"type":       {},
	"properties": {},
	"required":   {},
}

// Parse strictly decodes a schema document. Unlike plain unmarshaling it
// rejects unknown root keywords, a non-"object" type tag, and property types
// outside the supported enumeration. Dangling required entries are accepted.
func Parse(raw []byte) (Schema, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return Schema{}, errors.New("schema: document is empty")
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return Schema{}, fmt.Errorf("schema: document must be a JSON object: %w", err)
	}
	keys := make([]string, 0, len(probe))
	for key := range probe {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if _, ok := supportedRootKeys[key]; !ok {
			return Schema{}, fmt.Errorf("schema: unsupported keyword %q", key)
		}
	}

	var out Schema
	if err := out.UnmarshalJSON(trimmed); err != nil {
		return Schema{}, err
	}
	if _, explicit := probe["type"]; explicit && out.Type != TypeTagObject {
		return Schema{}, fmt.Errorf("schema: unsupported type %q", out.Type)
	}
	out.Type = TypeTagObject

	for _, name := range out.PropertyOrder() {
		prop := out.Properties[name]
		if !prop.Type.Valid() {
			return Schema{}, fmt.Errorf("schema: property %q has unsupported type %q", name, prop.Type)
		}
	}
	return out, nil
}
