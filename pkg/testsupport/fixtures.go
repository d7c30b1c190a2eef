// Package testsupport holds helpers shared across package tests: fixture
// loading, golden-file management, and diffing.
package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bvqbao/Kiln/pkg/model"
	"github.com/bvqbao/Kiln/pkg/schema"
)

// MustLoadSchema reads a fixture through the strict schema parser.
func MustLoadSchema(t *testing.T, path string) schema.Schema {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read schema fixture: %v", err)
	}
	s, err := schema.Parse(data)
	if err != nil {
		t.Fatalf("parse schema fixture %s: %v", path, err)
	}
	return s
}

// MustLoadModel reads a JSON fixture into a Model.
func MustLoadModel(t *testing.T, path string) model.Model {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read model fixture: %v", err)
	}
	var out model.Model
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal model fixture %s: %v", path, err)
	}
	return out
}

// WriteGolden updates a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}
