package schema_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bvqbao/Kiln/pkg/schema"
)

func TestParse_Success(t *testing.T) {
	raw := []byte(`{
  "type": "object",
  "properties": {
    "title": {"title": "Title", "type": "string", "description": "headline"},
    "count": {"title": "Count", "type": "integer", "description": ""}
  },
  "required": ["Title"]
}`)

	s, err := schema.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if s.Type != schema.TypeTagObject {
		t.Fatalf("expected object type tag, got %q", s.Type)
	}
	if diff := cmp.Diff([]string{"title", "count"}, s.PropertyOrder()); diff != "" {
		t.Fatalf("property order mismatch (-want +got):\n%s", diff)
	}
	want := schema.Property{Title: "Title", Type: schema.TypeString, Description: "headline"}
	if diff := cmp.Diff(want, s.Properties["title"]); diff != "" {
		t.Fatalf("property mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Title"}, s.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Failures(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{name: "empty payload", raw: ``},
		{name: "not an object", raw: `[]`},
		{name: "unsupported keyword", raw: `{"type":"object","properties":{},"required":[],"$defs":{}}`},
		{name: "non object type", raw: `{"type":"array","properties":{},"required":[]}`},
		{name: "empty type tag", raw: `{"type":"","properties":{},"required":[]}`},
		{name: "unsupported property type", raw: `{"type":"object","properties":{"a":{"title":"a","type":"array","description":""}},"required":[]}`},
		{name: "required not strings", raw: `{"type":"object","properties":{},"required":[1]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := schema.Parse([]byte(tc.raw)); err == nil {
				t.Fatalf("expected error for %s", tc.name)
			}
		})
	}
}

func TestParse_MissingSectionsDefaultEmpty(t *testing.T) {
	s, err := schema.Parse([]byte(`{"type":"object"}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s.Properties == nil || len(s.Properties) != 0 {
		t.Fatalf("expected empty property map, got %#v", s.Properties)
	}
	if s.Required == nil || len(s.Required) != 0 {
		t.Fatalf("expected empty required list, got %#v", s.Required)
	}
}

func TestParse_DanglingRequiredAccepted(t *testing.T) {
	s, err := schema.Parse([]byte(`{"type":"object","properties":{},"required":["ghost"]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if diff := cmp.Diff([]string{"ghost"}, s.Required); diff != "" {
		t.Fatalf("dangling entry should survive parse (-want +got):\n%s", diff)
	}
}

func TestMarshal_PreservesDocumentOrder(t *testing.T) {
	raw := []byte(`{"type":"object","properties":{"zebra":{"title":"Z","type":"string","description":""},"apple":{"title":"A","type":"integer","description":""},"mango":{"title":"M","type":"boolean","description":""}},"required":["Z"]}`)

	s, err := schema.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	payload, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(payload) != string(raw) {
		t.Fatalf("marshal changed the document:\n got %s\nwant %s", payload, raw)
	}
}

func TestNew_CollisionKeepsFirstPosition(t *testing.T) {
	s := schema.New([]schema.Entry{
		{Name: "a", Property: schema.Property{Title: "first", Type: schema.TypeString}},
		{Name: "b", Property: schema.Property{Title: "middle", Type: schema.TypeString}},
		{Name: "a", Property: schema.Property{Title: "second", Type: schema.TypeNumber}},
	}, nil)

	if diff := cmp.Diff([]string{"a", "b"}, s.PropertyOrder()); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if s.Properties["a"].Title != "second" {
		t.Fatalf("expected later entry to win, got %q", s.Properties["a"].Title)
	}
}

func TestPropertyOrder_FallsBackToSortedKeys(t *testing.T) {
	s := schema.Schema{
		Type: schema.TypeTagObject,
		Properties: map[string]schema.Property{
			"c": {Type: schema.TypeString},
			"a": {Type: schema.TypeString},
			"b": {Type: schema.TypeString},
		},
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, s.PropertyOrder()); diff != "" {
		t.Fatalf("fallback order mismatch (-want +got):\n%s", diff)
	}
}

func TestDocument_RoundTrip(t *testing.T) {
	raw := []byte(`{"type":"object","properties":{},"required":[]}`)
	doc := schema.MustNewDocument(schema.SourceFromFS("task_schema.json"), raw)

	if doc.Location() != "task_schema.json" {
		t.Fatalf("unexpected location %q", doc.Location())
	}
	s, err := doc.Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(s.Properties) != 0 {
		t.Fatalf("expected empty schema, got %v", s.PropertyOrder())
	}
}

func TestNewDocument_Validation(t *testing.T) {
	if _, err := schema.NewDocument(nil, []byte(`{}`)); err == nil {
		t.Fatalf("expected error for nil source")
	}
	if _, err := schema.NewDocument(schema.SourceFromFile("x.json"), nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}
