package planner

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/pipecut/internal/ctxlog"
	"github.com/vk/pipecut/internal/graph"
	"github.com/vk/pipecut/internal/partition"
	"github.com/vk/pipecut/internal/stage"
)

// Plan describes how one pipeline is laid out across processes.
type Plan struct {
	// Pipeline is the analyzed pipeline's name.
	Pipeline string

	// Workers is the number of replicas the replicable branches run in.
	Workers int

	// CutPoint is the stage at which replication stops, or nil when the
	// pipeline is fully replicable.
	CutPoint *stage.Stage

	// Dispatch lists the stages pinned to the single dispatching process:
	// the cut point and its whole predecessor closure. Empty when CutPoint
	// is nil.
	Dispatch []*stage.Stage

	// Branches are the roots of the maximal replicable sub-graphs, each
	// instantiated once per worker.
	Branches []*stage.Stage
}

// FullyReplicable reports whether the whole pipeline can be duplicated per
// worker with no dedicated dispatching process.
func (p *Plan) FullyReplicable() bool {
	return p.CutPoint == nil
}

// Build analyzes the pipeline and produces its topology plan. When a cut
// point exists, its sub-graph is swapped for a queue placeholder before the
// replicable branches are extracted, mirroring the substitution the runtime
// performs when it moves the non-replicable region into its own process.
// The splice is undone before returning, so the caller's pipeline is left
// exactly as it was.
func Build(ctx context.Context, pipe *stage.Pipeline) (*Plan, error) {
	logger := ctxlog.FromContext(ctx)

	g := graph.Traverse(pipe.Sink)
	logger.Debug("pipeline graph traversed", "pipeline", pipe.Name, "stages", len(g.Flatten()))

	cut, err := partition.FindCutPoint(g)
	if err != nil {
		return nil, fmt.Errorf("failed to find cut point: %w", err)
	}

	plan := &Plan{Pipeline: pipe.Name, Workers: pipe.Workers, CutPoint: cut}
	if cut != nil {
		plan.Dispatch = graph.Traverse(cut).Flatten()
		ph := stage.New(stage.KindQueuePlaceholder, cut.Name+".queue")
		g, err = graph.Replace(g, cut, ph)
		if err != nil {
			return nil, fmt.Errorf("failed to splice queue placeholder: %w", err)
		}
		logger.Debug("cut point excised", "cut", cut.String(), "pinned_stages", len(plan.Dispatch))

		branches, branchErr := partition.FindReplicableBranches(g)
		// Undo the splice before anything else so the live stages are
		// restored even on the error path.
		if _, err := graph.Replace(g, ph, cut); err != nil {
			return nil, fmt.Errorf("failed to restore pipeline wiring: %w", err)
		}
		if branchErr != nil {
			return nil, fmt.Errorf("failed to extract replicable branches: %w", branchErr)
		}
		plan.Branches = branches
	} else {
		branches, err := partition.FindReplicableBranches(g)
		if err != nil {
			return nil, fmt.Errorf("failed to extract replicable branches: %w", err)
		}
		plan.Branches = branches
	}

	logger.Info("topology plan computed",
		"pipeline", pipe.Name,
		"workers", plan.Workers,
		"replicable_branches", len(plan.Branches),
		"fully_replicable", plan.FullyReplicable(),
	)
	return plan, nil
}

// Summary renders the plan as human-readable text.
func (p *Plan) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "pipeline %q: %d worker(s)\n", p.Pipeline, p.Workers)
	if p.CutPoint == nil {
		sb.WriteString("fully replicable: no dispatching process required\n")
	} else {
		fmt.Fprintf(&sb, "cut point: %s (%d stage(s) pinned to the dispatching process)\n", p.CutPoint, len(p.Dispatch))
	}
	fmt.Fprintf(&sb, "replicable branches (%d):\n", len(p.Branches))
	for _, b := range p.Branches {
		fmt.Fprintf(&sb, "  - %s\n", b)
	}
	return sb.String()
}
