package config

import (
	"context"

	"github.com/zclconf/go-cty/cty"
)

// Model is the fully translated description of one pipeline: its declared
// stages and the metadata needed to turn them into a live stage graph.
type Model struct {
	// Name is the pipeline's declared name.
	Name string

	// Output names the sink stage. Empty means "infer": the single stage
	// no other stage consumes.
	Output string

	// Workers is the requested replica count. Zero means unspecified.
	Workers int

	// Stages lists every declared stage in declaration order.
	Stages []*StageConfig
}

// StageConfig describes a single declared stage before it is materialized.
type StageConfig struct {
	// Kind is the stage type. Opaque to the analysis except for the two
	// marker kinds defined in the stage package.
	Kind string

	// Name uniquely identifies the stage within the pipeline.
	Name string

	// Inputs names the stages this stage consumes, in declaration order.
	Inputs []string

	// Arguments holds the stage's statically evaluated argument attributes.
	// The analysis carries them opaquely.
	Arguments map[string]cty.Value
}

// Loader is the interface for a format-specific pipeline loader.
type Loader interface {
	// Load reads a pipeline description from a file or directory and
	// translates it into the format-agnostic model.
	Load(ctx context.Context, path string) (*Model, error)
}
