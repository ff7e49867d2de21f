package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/pipecut/internal/config"
	"github.com/vk/pipecut/internal/ctxlog"
	"github.com/vk/pipecut/internal/fsutil"
	"github.com/vk/pipecut/internal/schema"
)

// Loader reads HCL pipeline descriptions. It implements config.Loader.
type Loader struct{}

// NewLoader returns a ready-to-use HCL loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the file or directory at path and translates it into the
// format-agnostic pipeline model. Directories are loaded as the merged
// content of every .hcl file beneath them; exactly one pipeline block must
// be present across all files.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := l.collectFiles(path)
	if err != nil {
		return nil, err
	}

	parser := hclparse.NewParser()
	var pipelines []*schema.Pipeline
	var stages []*schema.Stage
	for _, fp := range files {
		file, diags := parser.ParseHCLFile(fp)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse %s: %s", fp, diags.Error())
		}

		var pc schema.PipelineConfig
		if diags := gohcl.DecodeBody(file.Body, nil, &pc); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode %s: %s", fp, diags.Error())
		}
		pipelines = append(pipelines, pc.Pipelines...)
		stages = append(stages, pc.Stages...)
		logger.Debug("pipeline file decoded", "path", fp, "stages_found", len(pc.Stages))
	}

	if len(pipelines) != 1 {
		return nil, fmt.Errorf("expected exactly one pipeline block, found %d", len(pipelines))
	}

	model, err := l.translate(pipelines[0], stages)
	if err != nil {
		return nil, err
	}
	logger.Debug("pipeline description loaded", "pipeline", model.Name, "stages", len(model.Stages))
	return model, nil
}

// collectFiles resolves path to the list of HCL files to decode.
func (l *Loader) collectFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pipeline path: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	files, err := fsutil.FindByExt(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", path, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files found under %s", path)
	}
	return files, nil
}
