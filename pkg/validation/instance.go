// Package validation layers optional instance checking on top of the pure
// schema/model conversions. It never alters their contracts: dangling
// required entries and title collisions stay silent at conversion time and
// only surface here when a caller explicitly asks for validation.
package validation

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/bvqbao/Kiln/pkg/model"
	"github.com/bvqbao/Kiln/pkg/schema"
)

// Issue describes a single validation failure with optional field location.
type Issue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Result captures the outcome of validating one instance payload.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// ValidateInstance checks a JSON payload against a schema. The schema's
// required list stores raw display titles, so each entry is re-normalized via
// model.TitleToName before lookup; entries that still match no property are
// dropped rather than reported, mirroring the conversion layer's
// silent-omission policy.
func ValidateInstance(ctx context.Context, s schema.Schema, raw []byte) Result {
	if err := ctx.Err(); err != nil {
		return Result{Issues: []Issue{{Message: err.Error()}}}
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return Result{Issues: []Issue{{Message: "instance is not valid JSON: " + err.Error()}}}
	}

	err := openapiSchema(s).VisitJSON(value, openapi3.MultiErrors())
	if err == nil {
		return Result{Valid: true}
	}
	return Result{Issues: issuesFromError(err)}
}

// openapiSchema lowers a Schema into kin-openapi's validator representation.
func openapiSchema(s schema.Schema) *openapi3.Schema {
	out := openapi3.NewObjectSchema()
	out.Properties = make(openapi3.Schemas, len(s.Properties))
	for _, name := range s.PropertyOrder() {
		prop := s.Properties[name]
		out.Properties[name] = openapi3.NewSchemaRef("", &openapi3.Schema{
			Type:        &openapi3.Types{string(prop.Type)},
			Title:       prop.Title,
			Description: prop.Description,
		})
	}
	for _, title := range s.Required {
		key := model.TitleToName(title)
		if _, ok := s.Properties[key]; ok {
			out.Required = append(out.Required, key)
		}
	}
	return out
}

func issuesFromError(err error) []Issue {
	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		issues := make([]Issue, 0, len(multi))
		for _, entry := range multi {
			issues = append(issues, issueFromError(entry))
		}
		return issues
	}
	return []Issue{issueFromError(err)}
}

func issueFromError(err error) Issue {
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		return Issue{
			Field:   strings.Join(schemaErr.JSONPointer(), "."),
			Message: strings.TrimSpace(schemaErr.Reason),
		}
	}
	return Issue{Message: strings.TrimSpace(err.Error())}
}
