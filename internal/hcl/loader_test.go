package hcl_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/pipecut/internal/hcl"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_SingleFile(t *testing.T) {
	const src = `
pipeline "ingest" {
  output  = "sink"
  workers = 4
}

stage "source" "src" {}

stage "round_robin_dispatch" "dispatch" {
  inputs = ["src"]
}

stage "map" "sink" {
  inputs = ["dispatch"]
  arguments {
    batch_size = 32
    strict     = true
  }
}
`
	path := writeFile(t, t.TempDir(), "main.hcl", src)

	model, err := hcl.NewLoader().Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "ingest", model.Name)
	assert.Equal(t, "sink", model.Output)
	assert.Equal(t, 4, model.Workers)
	require.Len(t, model.Stages, 3)

	assert.Equal(t, "source", model.Stages[0].Kind)
	assert.Equal(t, "src", model.Stages[0].Name)
	assert.Empty(t, model.Stages[0].Inputs)

	sink := model.Stages[2]
	assert.Equal(t, []string{"dispatch"}, sink.Inputs)
	require.Contains(t, sink.Arguments, "batch_size")
	assert.True(t, sink.Arguments["batch_size"].RawEquals(cty.NumberIntVal(32)))
	assert.True(t, sink.Arguments["strict"].RawEquals(cty.True))
}

func TestLoad_OptionalSettings(t *testing.T) {
	const src = `
pipeline "p" {}

stage "source" "only" {}
`
	path := writeFile(t, t.TempDir(), "main.hcl", src)

	model, err := hcl.NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Empty(t, model.Output)
	assert.Zero(t, model.Workers)
	assert.Nil(t, model.Stages[0].Arguments)
}

func TestLoad_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pipeline.hcl", `
pipeline "split" {
  output = "sink"
}
`)
	writeFile(t, dir, "stages.hcl", `
stage "source" "src" {}

stage "map" "sink" {
  inputs = ["src"]
}
`)

	model, err := hcl.NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "split", model.Name)
	assert.Len(t, model.Stages, 2)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing path", func(t *testing.T) {
		_, err := hcl.NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "dne.hcl"))
		assert.ErrorContains(t, err, "failed to read pipeline path")
	})

	t.Run("empty directory", func(t *testing.T) {
		_, err := hcl.NewLoader().Load(context.Background(), t.TempDir())
		assert.ErrorContains(t, err, "no .hcl files found")
	})

	t.Run("syntax error", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "bad.hcl", `stage "map" "m" {`)
		_, err := hcl.NewLoader().Load(context.Background(), path)
		assert.ErrorContains(t, err, "failed to parse")
	})

	t.Run("no pipeline block", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "main.hcl", `stage "source" "s" {}`)
		_, err := hcl.NewLoader().Load(context.Background(), path)
		assert.ErrorContains(t, err, "expected exactly one pipeline block, found 0")
	})

	t.Run("two pipeline blocks", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "main.hcl", `
pipeline "a" {}
pipeline "b" {}

stage "source" "s" {}
`)
		_, err := hcl.NewLoader().Load(context.Background(), path)
		assert.ErrorContains(t, err, "expected exactly one pipeline block, found 2")
	})

	t.Run("non-numeric workers", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "main.hcl", `
pipeline "p" {
  workers = "four"
}

stage "source" "s" {}
`)
		_, err := hcl.NewLoader().Load(context.Background(), path)
		assert.ErrorContains(t, err, "must be a number")
	})

	t.Run("negative workers", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "main.hcl", `
pipeline "p" {
  workers = -2
}

stage "source" "s" {}
`)
		_, err := hcl.NewLoader().Load(context.Background(), path)
		assert.ErrorContains(t, err, "must not be negative")
	})
}
