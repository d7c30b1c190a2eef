package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/bvqbao/Kiln/internal/loader"
	"github.com/bvqbao/Kiln/pkg/editor"
	"github.com/bvqbao/Kiln/pkg/model"
	"github.com/bvqbao/Kiln/pkg/preview"
	"github.com/bvqbao/Kiln/pkg/project"
	"github.com/bvqbao/Kiln/pkg/schema"
	"github.com/bvqbao/Kiln/pkg/validation"
)

func main() {
	mode := flag.String("mode", "import", "one of: import, export, validate, edit, preview, project-create, project-import, project-list")
	source := flag.String("source", "", "schema or model document path or URL")
	instance := flag.String("instance", "", "instance payload path (validate mode)")
	output := flag.String("output", "", "output file (stdout if empty)")
	name := flag.String("name", "", "project name (project-create mode)")
	description := flag.String("description", "", "project description (project-create mode)")
	registryPath := flag.String("registry", "", "registry config path (default ~/.kiln/config.yaml)")
	flag.Parse()

	ctx := context.Background()
	registry := project.OpenRegistry(*registryPath)

	var out []byte
	var err error
	switch *mode {
	case "import":
		out, err = runImport(ctx, *source)
	case "export":
		out, err = runExport(*source)
	case "validate":
		out, err = runValidate(ctx, *source, *instance)
	case "edit":
		out, err = runEdit(ctx, *source)
	case "preview":
		out, err = runPreview(*source)
	case "project-create":
		out, err = runProjectCreate(registry, *name, *description)
	case "project-import":
		out, err = runProjectImport(registry, *source)
	case "project-list":
		out, err = runProjectList(registry)
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatalf("%s: %v", *mode, err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			log.Fatalf("write output: %v", err)
		}
		fmt.Printf("written to %s\n", *output)
		return
	}
	fmt.Println(string(out))
}

// runImport converts a schema document into the ordered model representation.
func runImport(ctx context.Context, source string) ([]byte, error) {
	s, err := loadSchema(ctx, source)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(model.FromSchema(s), "", "  ")
}

// runExport converts a model document back into the schema wire shape.
func runExport(source string) ([]byte, error) {
	m, err := loadModel(source)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(model.ToSchema(m), "", "  ")
}

func runValidate(ctx context.Context, source, instance string) ([]byte, error) {
	if instance == "" {
		return nil, fmt.Errorf("-instance is required")
	}
	s, err := loadSchema(ctx, source)
	if err != nil {
		return nil, err
	}
	payload, err := os.ReadFile(instance)
	if err != nil {
		return nil, err
	}
	result := validation.ValidateInstance(ctx, s, payload)
	return json.MarshalIndent(result, "", "  ")
}

func runEdit(ctx context.Context, source string) ([]byte, error) {
	start := model.Empty()
	if source != "" {
		m, err := loadModel(source)
		if err != nil {
			return nil, err
		}
		start = m
	}
	edited, err := editor.Run(ctx, nil, start)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(edited, "", "  ")
}

func runPreview(source string) ([]byte, error) {
	m, err := loadModel(source)
	if err != nil {
		return nil, err
	}
	return preview.Render(m)
}

func runProjectCreate(registry *project.Registry, name, description string) ([]byte, error) {
	p := project.Project{Name: name, Description: description}
	path, err := registry.Create(project.DefaultDir(), p)
	if err != nil {
		return nil, err
	}
	return []byte(path), nil
}

func runProjectImport(registry *project.Registry, source string) ([]byte, error) {
	p, err := registry.Import(source)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(p, "", "  ")
}

func runProjectList(registry *project.Registry) ([]byte, error) {
	projects, err := registry.List()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(projects, "", "  ")
}

func loadSchema(ctx context.Context, source string) (schema.Schema, error) {
	src := parseSource(source)
	if src == nil {
		return schema.Schema{}, fmt.Errorf("-source is required")
	}
	l := loader.New(schema.LoaderOptions{AllowHTTPFallback: true})
	doc, err := l.Load(ctx, src)
	if err != nil {
		return schema.Schema{}, err
	}
	return doc.Parse()
}

func loadModel(source string) (model.Model, error) {
	if source == "" {
		return model.Model{}, fmt.Errorf("-source is required")
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return model.Model{}, err
	}
	var m model.Model
	if err := json.Unmarshal(data, &m); err != nil {
		return model.Model{}, fmt.Errorf("decode model: %w", err)
	}
	return m, nil
}

func parseSource(raw string) schema.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return schema.SourceFromURL(path)
	}
	return schema.SourceFromFile(path)
}
