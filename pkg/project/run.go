package project

import (
	"context"
	"fmt"
	"strings"

	"github.com/bvqbao/Kiln/pkg/schema"
	"github.com/bvqbao/Kiln/pkg/validation"
)

// DataSourceType identifies who produced a piece of run data.
type DataSourceType string

const (
	SourceHuman     DataSourceType = "human"
	SourceSynthetic DataSourceType = "synthetic"
)

// Valid reports whether the source is one of the defined kinds.
func (s DataSourceType) Valid() bool {
	return s == SourceHuman || s == SourceSynthetic
}

// TaskOutput records what a run produced and who produced it. Output is JSON
// for tasks with an output schema, plaintext otherwise.
type TaskOutput struct {
	Output           string            `json:"output"`
	Source           DataSourceType    `json:"source"`
	SourceProperties map[string]string `json:"source_properties,omitempty"`
}

// TaskRun captures one execution of a task: the input it received and the
// output it produced. Input is JSON for tasks with an input schema,
// plaintext otherwise.
type TaskRun struct {
	Input            string            `json:"input"`
	Source           DataSourceType    `json:"source"`
	SourceProperties map[string]string `json:"source_properties,omitempty"`
	Output           TaskOutput        `json:"output"`
}

// Validate checks the run against the task it executed. Structured input and
// output must conform to the task's schemas; tasks without a schema accept
// any plaintext payload.
func (r TaskRun) Validate(ctx context.Context, task Task) error {
	if !r.Source.Valid() {
		return fmt.Errorf("task run: invalid source %q", r.Source)
	}
	in, err := task.Input()
	if err != nil {
		return fmt.Errorf("task run: input schema: %w", err)
	}
	if err := validatePayload(ctx, "input", in, r.Input); err != nil {
		return err
	}
	return r.Output.Validate(ctx, task)
}

// Validate checks the output against the task's output schema.
func (o TaskOutput) Validate(ctx context.Context, task Task) error {
	if !o.Source.Valid() {
		return fmt.Errorf("task output: invalid source %q", o.Source)
	}
	out, err := task.Output()
	if err != nil {
		return fmt.Errorf("task run: output schema: %w", err)
	}
	return validatePayload(ctx, "output", out, o.Output)
}

func validatePayload(ctx context.Context, kind string, s *schema.Schema, payload string) error {
	if s == nil {
		return nil
	}
	result := validation.ValidateInstance(ctx, *s, []byte(payload))
	if result.Valid {
		return nil
	}
	return fmt.Errorf("task run: %s does not match the task's %s schema: %s",
		kind, kind, describeIssues(result.Issues))
}

func describeIssues(issues []validation.Issue) string {
	parts := make([]string, 0, len(issues))
	for _, issue := range issues {
		if issue.Field != "" {
			parts = append(parts, issue.Field+": "+issue.Message)
			continue
		}
		parts = append(parts, issue.Message)
	}
	return strings.Join(parts, "; ")
}
