package model_test

import (
	"path/filepath"
	"testing"

	"github.com/bvqbao/Kiln/pkg/model"
	"github.com/bvqbao/Kiln/pkg/testsupport"
)

func TestFromSchema_JokeGolden(t *testing.T) {
	s := testsupport.MustLoadSchema(t, filepath.Join("testdata", "joke_schema.json"))

	got := model.FromSchema(s)

	goldenPath := filepath.Join("testdata", "joke_model.golden.json")
	testsupport.WriteGolden(t, goldenPath, got)
	want := testsupport.MustLoadModel(t, goldenPath)

	if diff := testsupport.CompareGolden(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
