// Package project persists Kiln projects and their tasks. A project lives in
// its own directory as a project.json file; the set of known projects is
// tracked in a YAML config so the studio can list and re-open them.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/bvqbao/Kiln/pkg/schema"
)

// Names double as file names, so they are restricted to a filename-safe
// alphabet. They are informational only.
var nameRegex = regexp.MustCompile(`^[A-Za-z0-9 _-]+$`)

const maxNameLength = 120

// Priority ranks tasks from p0 (highest) to p3.
type Priority int

const (
	PriorityP0 Priority = iota
	PriorityP1
	PriorityP2
	PriorityP3
)

// Valid reports whether the priority is within the defined range.
func (p Priority) Valid() bool {
	return p >= PriorityP0 && p <= PriorityP3
}

// Project groups tasks under a name and description.
type Project struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// FileName is the well-known name of a project document inside its directory.
const FileName = "project.json"

// Validate checks the name against the filename-safe contract.
func (p Project) Validate() error {
	return validateName(p.Name)
}

func validateName(name string) error {
	if name == "" {
		return errors.New("project: name is required")
	}
	if len(name) > maxNameLength {
		return fmt.Errorf("project: name exceeds %d characters", maxNameLength)
	}
	if !nameRegex.MatchString(name) {
		return fmt.Errorf("project: name %q contains characters that are not filename safe", name)
	}
	return nil
}

// Save writes the project document to the given file path.
func (p Project) Save(path string) error {
	if err := p.Validate(); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("project: marshal: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("project: write %s: %w", path, err)
	}
	return nil
}

// Load reads and validates a project document from disk.
func Load(path string) (Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Project{}, fmt.Errorf("project: read %s: %w", path, err)
	}
	var out Project
	if err := json.Unmarshal(data, &out); err != nil {
		return Project{}, fmt.Errorf("project: decode %s: %w", path, err)
	}
	if err := out.Validate(); err != nil {
		return Project{}, err
	}
	return out, nil
}

// Task describes a unit of work whose structured input and output are
// constrained by schema documents in the editor wire shape.
type Task struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Instruction string   `json:"instruction"`
	Priority    Priority `json:"priority"`

	// InputSchema and OutputSchema hold raw schema documents; empty means
	// unstructured plaintext.
	InputSchema  string `json:"input_json_schema,omitempty"`
	OutputSchema string `json:"output_json_schema,omitempty"`
}

// Validate checks task naming and schema payloads.
func (t Task) Validate() error {
	if err := validateName(t.Name); err != nil {
		return fmt.Errorf("task: %w", err)
	}
	if t.Instruction == "" {
		return errors.New("task: instruction is required")
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("task: invalid priority %d", t.Priority)
	}
	if _, err := t.Input(); err != nil {
		return fmt.Errorf("task: input schema: %w", err)
	}
	if _, err := t.Output(); err != nil {
		return fmt.Errorf("task: output schema: %w", err)
	}
	return nil
}

// Input decodes the task's input schema. A nil result means the task takes
// unstructured input.
func (t Task) Input() (*schema.Schema, error) {
	return parseOptionalSchema(t.InputSchema)
}

// Output decodes the task's output schema. A nil result means the task
// produces unstructured output.
func (t Task) Output() (*schema.Schema, error) {
	return parseOptionalSchema(t.OutputSchema)
}

func parseOptionalSchema(raw string) (*schema.Schema, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := schema.Parse([]byte(raw))
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// DefaultDir is where new projects are created unless overridden.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "Kiln Projects"
	}
	return filepath.Join(home, "Kiln Projects")
}
