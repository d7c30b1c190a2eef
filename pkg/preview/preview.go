// Package preview renders a static HTML preview of an ordered schema model so
// users can see the form their schema produces without a studio session.
package preview

import (
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"

	"github.com/bvqbao/Kiln/pkg/model"
	"github.com/bvqbao/Kiln/pkg/schema"
)

const formTemplateName = "templates/form.tmpl"

// Option configures a Renderer before construction.
type Option func(*config)

type config struct {
	templateFS fs.FS
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// Renderer turns ordered models into HTML form previews.
type Renderer struct {
	engine *engine
}

// New constructs a Renderer, defaulting to the embedded template bundle.
func New(options ...Option) *Renderer {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return &Renderer{engine: newEngine(cfg.templateFS)}
}

// Render produces an HTML form preview for the model. Field names are the
// normalized schema keys, so the preview matches what an exported schema
// would accept. Descriptions are free text and pass through a strict
// sanitizer before display.
func (r *Renderer) Render(m model.Model) ([]byte, error) {
	fields := make([]map[string]any, 0, len(m.Properties))
	for _, prop := range m.Properties {
		entry := map[string]any{
			"name":        model.TitleToName(prop.Title),
			"label":       strings.TrimSpace(prop.Title),
			"description": sanitizeDescription(prop.Description),
			"required":    prop.Required,
		}
		switch prop.Type {
		case schema.TypeString:
			entry["input_type"] = "text"
		case schema.TypeNumber:
			entry["input_type"] = "number"
			entry["step"] = "any"
		case schema.TypeInteger:
			entry["input_type"] = "number"
			entry["step"] = "1"
		case schema.TypeBoolean:
			entry["checkbox"] = true
		default:
			return nil, fmt.Errorf("preview: unsupported field type %q", prop.Type)
		}
		fields = append(fields, entry)
	}

	out, err := r.engine.render(formTemplateName, pongo2.Context{"fields": fields})
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

var (
	defaultRendererOnce sync.Once
	defaultRenderer     *Renderer
)

// Render renders the model through a shared Renderer backed by the embedded
// template bundle.
func Render(m model.Model) ([]byte, error) {
	defaultRendererOnce.Do(func() {
		defaultRenderer = New()
	})
	return defaultRenderer.Render(m)
}

var (
	descriptionPolicyOnce sync.Once
	descriptionPolicy     *bluemonday.Policy
)

// sanitizeDescription strips any markup from a description so untrusted
// schema documents cannot inject HTML into the preview.
func sanitizeDescription(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	descriptionPolicyOnce.Do(func() {
		descriptionPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(descriptionPolicy.Sanitize(trimmed))
}
