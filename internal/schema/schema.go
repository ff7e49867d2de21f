// Package schema defines the HCL block structures of pipeline files. These
// structs carry gohcl tags only; translation into the format-agnostic config
// model happens in the hcl package.
package schema

import "github.com/hashicorp/hcl/v2"

// StageArgs represents the free-form 'arguments' block within a stage.
type StageArgs struct {
	Body hcl.Body `hcl:",remain"`
}

// Stage represents a `stage "<kind>" "<name>"` block.
type Stage struct {
	Kind      string     `hcl:"kind,label"`
	Name      string     `hcl:"stage_name,label"`
	Inputs    []string   `hcl:"inputs,optional"`
	Arguments *StageArgs `hcl:"arguments,block"`
}

// Pipeline represents the `pipeline "<name>"` block holding pipeline-wide
// settings. Workers stays an expression so the loader can evaluate it
// statically and reject non-numeric values with a useful message.
type Pipeline struct {
	Name    string         `hcl:"name,label"`
	Output  string         `hcl:"output,optional"`
	Workers hcl.Expression `hcl:"workers,optional"`
}

// PipelineConfig is the top-level structure of a pipeline file.
type PipelineConfig struct {
	Pipelines []*Pipeline `hcl:"pipeline,block"`
	Stages    []*Stage    `hcl:"stage,block"`
	Body      hcl.Body    `hcl:",remain"`
}
