package app

import (
	"context"
	"fmt"

	"github.com/vk/pipecut/internal/ctxlog"
	"github.com/vk/pipecut/internal/planner"
	"github.com/vk/pipecut/internal/stage"
)

// Run loads the pipeline description, computes the topology plan, and writes
// its summary to the application's output.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("loading pipeline description", "path", cfg.PipelinePath)

	model, err := a.loader.Load(ctx, cfg.PipelinePath)
	if err != nil {
		return fmt.Errorf("failed to load pipeline: %w", err)
	}
	if cfg.Workers > 0 {
		model.Workers = cfg.Workers
	}

	pipe, err := stage.FromConfig(model)
	if err != nil {
		return fmt.Errorf("failed to materialize pipeline: %w", err)
	}
	a.logger.Debug("pipeline materialized",
		"pipeline", pipe.Name,
		"stages", len(pipe.Stages),
		"sink", pipe.Sink.String(),
	)

	plan, err := planner.Build(ctx, pipe)
	if err != nil {
		return fmt.Errorf("failed to plan topology: %w", err)
	}

	fmt.Fprint(a.outW, plan.Summary())
	return nil
}
