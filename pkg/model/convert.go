package model

import (
	"strings"

	"github.com/bvqbao/Kiln/pkg/schema"
)

// FromSchema flattens a schema's property mapping into the ordered model
// representation. Each output property takes its title from the mapping KEY
// (the key is authoritative for round-tripping identity, not the stored
// title attribute), copies type and description verbatim, and derives its
// required flag from membership in the schema's required list.
//
// Total over any well-formed schema. A required entry that names no property
// is silently ignored.
func FromSchema(s schema.Schema) Model {
	required := make(map[string]struct{}, len(s.Required))
	for _, name := range s.Required {
		required[name] = struct{}{}
	}

	names := s.PropertyOrder()
	properties := make([]Property, 0, len(names))
	for _, name := range names {
		src := s.Properties[name]
		_, isRequired := required[name]
		properties = append(properties, Property{
			Title:       name,
			Description: src.Description,
			Type:        src.Type,
			Required:    isRequired,
		})
	}
	return Model{Properties: properties}
}

// ToSchema exports the ordered model as an object schema. Mapping keys are
// derived from titles via TitleToName while the stored title attribute keeps
// the original, un-normalized text. When two properties normalize to the same
// key the later one wins (mapping assignment semantics).
//
// The required list carries raw titles in sequence order, not derived keys.
// Consumers looking a required entry up in the property mapping must therefore
// re-normalize it themselves. Awkward, but it is the persisted wire behavior
// and changing it would break every document already written.
func ToSchema(m Model) schema.Schema {
	entries := make([]schema.Entry, 0, len(m.Properties))
	required := make([]string, 0, len(m.Properties))
	for _, prop := range m.Properties {
		entries = append(entries, schema.Entry{
			Name: TitleToName(prop.Title),
			Property: schema.Property{
				Title:       prop.Title,
				Type:        prop.Type,
				Description: prop.Description,
			},
		})
		if prop.Required {
			required = append(required, prop.Title)
		}
	}
	return schema.New(entries, required)
}

// TitleToName derives a machine-safe mapping key from a display title: trim
// surrounding whitespace, lowercase, turn spaces into underscores, then drop
// everything that is not a lowercase ASCII letter, digit, underscore, or
// period. Deterministic and locale-free; distinct titles may collide.
func TitleToName(title string) string {
	name := strings.ToLower(strings.TrimSpace(title))
	name = strings.ReplaceAll(name, " ", "_")
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '_' || r == '.':
			return r
		default:
			return -1
		}
	}, name)
}
