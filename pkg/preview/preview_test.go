package preview_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/bvqbao/Kiln/pkg/model"
	"github.com/bvqbao/Kiln/pkg/preview"
	"github.com/bvqbao/Kiln/pkg/schema"
)

func TestRender_FieldMarkup(t *testing.T) {
	m := model.Model{Properties: []model.Property{
		{Title: "Full Name", Type: schema.TypeString, Required: true},
		{Title: "Age", Type: schema.TypeInteger},
		{Title: "Score", Type: schema.TypeNumber},
		{Title: "Active", Type: schema.TypeBoolean},
	}}

	out, err := preview.Render(m)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		`name="full_name"`,
		`type="text"`,
		`required`,
		`name="age"`,
		`step="1"`,
		`name="score"`,
		`step="any"`,
		`name="active"`,
		`type="checkbox"`,
		`<label for="full_name">Full Name <span class="kiln-required">*</span></label>`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q:\n%s", want, html)
		}
	}
}

func TestRender_SanitizesDescriptions(t *testing.T) {
	m := model.Model{Properties: []model.Property{
		{
			Title:       "Note",
			Type:        schema.TypeString,
			Description: `plain <script>alert("x")</script> text`,
		},
	}}

	out, err := preview.Render(m)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	if strings.Contains(html, "<script>") {
		t.Fatalf("script tag survived sanitization:\n%s", html)
	}
	if !strings.Contains(html, "plain") || !strings.Contains(html, "text") {
		t.Fatalf("expected plain text to survive:\n%s", html)
	}
}

func TestRender_EmptyModel(t *testing.T) {
	out, err := preview.Render(model.Empty())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), "<form") {
		t.Fatalf("expected form wrapper, got:\n%s", out)
	}
	if strings.Contains(string(out), "kiln-field") {
		t.Fatalf("expected no fields, got:\n%s", out)
	}
}

func TestNew_CustomTemplates(t *testing.T) {
	files := fstest.MapFS{
		"templates/form.tmpl": &fstest.MapFile{
			Data: []byte(`fields:{% for field in fields %} {{ field.name }}{% endfor %}`),
		},
	}

	r := preview.New(preview.WithTemplatesFS(files))
	out, err := r.Render(model.Model{Properties: []model.Property{
		{Title: "Full Name", Type: schema.TypeString},
		{Title: "Age", Type: schema.TypeInteger},
	}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := string(out); got != "fields: full_name age" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestNew_MissingTemplate(t *testing.T) {
	r := preview.New(preview.WithTemplatesFS(fstest.MapFS{}))
	if _, err := r.Render(model.Empty()); err == nil {
		t.Fatalf("expected error for missing template")
	}
}

func TestRender_UnsupportedType(t *testing.T) {
	m := model.Model{Properties: []model.Property{{Title: "X", Type: "array"}}}
	if _, err := preview.Render(m); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
}
