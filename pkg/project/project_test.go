package project_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bvqbao/Kiln/pkg/model"
	"github.com/bvqbao/Kiln/pkg/project"
	"github.com/bvqbao/Kiln/pkg/schema"
)

func TestProjectValidate(t *testing.T) {
	cases := []struct {
		name    string
		project project.Project
		wantErr bool
	}{
		{name: "valid", project: project.Project{Name: "Joke Generator", Description: "demo"}},
		{name: "empty name", project: project.Project{}, wantErr: true},
		{name: "unsafe characters", project: project.Project{Name: "bad/name"}, wantErr: true},
		{name: "too long", project: project.Project{Name: string(make([]byte, 121))}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.project.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestRegistry_CreateImportList(t *testing.T) {
	base := t.TempDir()
	registry := project.OpenRegistry(filepath.Join(base, "config.yaml"))

	p := project.Project{Name: "Test Project", Description: "first"}
	path, err := registry.Create(filepath.Join(base, "projects"), p)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Creating the same project again must fail.
	if _, err := registry.Create(filepath.Join(base, "projects"), p); !errors.Is(err, project.ErrProjectExists) {
		t.Fatalf("expected ErrProjectExists, got %v", err)
	}

	// Importing the same path is idempotent.
	imported, err := registry.Import(path)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if diff := cmp.Diff(p, imported); diff != "" {
		t.Fatalf("import mismatch (-want +got):\n%s", diff)
	}

	paths, err := registry.Paths()
	if err != nil {
		t.Fatalf("paths: %v", err)
	}
	if len(paths) != 1 || paths[0] != path {
		t.Fatalf("expected single registered path %q, got %v", path, paths)
	}

	projects, err := registry.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if diff := cmp.Diff([]project.Project{p}, projects); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_ImportMissingPath(t *testing.T) {
	registry := project.OpenRegistry(filepath.Join(t.TempDir(), "config.yaml"))
	if _, err := registry.Import(filepath.Join(t.TempDir(), "nope", "project.json")); !errors.Is(err, project.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestRegistry_ListSkipsBrokenEntries(t *testing.T) {
	base := t.TempDir()
	registry := project.OpenRegistry(filepath.Join(base, "config.yaml"))

	good := project.Project{Name: "Good"}
	if _, err := registry.Create(filepath.Join(base, "projects"), good); err != nil {
		t.Fatalf("create: %v", err)
	}
	gone := project.Project{Name: "Gone"}
	gonePath, err := registry.Create(filepath.Join(base, "projects"), gone)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := os.Remove(gonePath); err != nil {
		t.Fatalf("remove: %v", err)
	}

	projects, err := registry.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if diff := cmp.Diff([]project.Project{good}, projects); diff != "" {
		t.Fatalf("broken entry should be skipped (-want +got):\n%s", diff)
	}
}

func TestTask_SchemaRoundTrip(t *testing.T) {
	// Titles are already normalized-safe so the conversion round-trips.
	m := model.Model{Properties: []model.Property{
		{Title: "joke", Type: schema.TypeString, Required: true},
		{Title: "rating", Type: schema.TypeInteger},
	}}
	payload, err := json.Marshal(model.ToSchema(m))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	task := project.Task{
		Name:         "Tell a joke",
		Instruction:  "Respond with a joke",
		Priority:     project.PriorityP2,
		OutputSchema: string(payload),
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	out, err := task.Output()
	if err != nil {
		t.Fatalf("output schema: %v", err)
	}
	if out == nil {
		t.Fatalf("expected structured output schema")
	}
	if diff := cmp.Diff(m, model.FromSchema(*out)); diff != "" {
		t.Fatalf("task schema round trip (-want +got):\n%s", diff)
	}

	// Unstructured input.
	in, err := task.Input()
	if err != nil || in != nil {
		t.Fatalf("expected nil input schema, got %v, %v", in, err)
	}
}

func TestTask_InvalidSchemaRejected(t *testing.T) {
	task := project.Task{
		Name:         "Broken",
		Instruction:  "x",
		Priority:     project.PriorityP2,
		OutputSchema: `{"type":"array"}`,
	}
	if err := task.Validate(); err == nil {
		t.Fatalf("expected invalid schema to fail validation")
	}
}
