package graph

import (
	"errors"
	"fmt"

	"github.com/vk/pipecut/internal/stage"
)

// ErrStageNotFound reports a surgery target that is not reachable in the graph.
var ErrStageNotFound = errors.New("stage not present in graph")

// Replace splices replacement over target: every consumer of target is
// rewired to replacement instead, and if target is the root, replacement
// becomes the new root. The replacement's own inputs are left untouched, so
// a replacement that wraps target keeps its upstream reference. Stages are
// mutated in place and the graph is re-traversed from the (possibly new)
// root.
func Replace(g Graph, target, replacement *stage.Stage) (Graph, error) {
	root, _, err := g.Root()
	if err != nil {
		return nil, err
	}

	stages := g.Flatten()
	if !contains(stages, target) {
		return nil, fmt.Errorf("%w: cannot replace %s", ErrStageNotFound, target)
	}

	for _, s := range stages {
		if s == replacement {
			continue
		}
		for i, in := range s.Inputs {
			if in == target {
				s.Inputs[i] = replacement
			}
		}
	}

	if root == target {
		root = replacement
	}
	return Traverse(root), nil
}

// Remove drops target from the graph, reconnecting each of its consumers to
// target's own inputs in its place. Removing the root is only possible when
// the root has exactly one input, which then becomes the new root.
func Remove(g Graph, target *stage.Stage) (Graph, error) {
	root, _, err := g.Root()
	if err != nil {
		return nil, err
	}

	stages := g.Flatten()
	if !contains(stages, target) {
		return nil, fmt.Errorf("%w: cannot remove %s", ErrStageNotFound, target)
	}

	if root == target {
		ins := target.UniqueInputs()
		if len(ins) != 1 {
			return nil, fmt.Errorf("cannot remove sink stage %s: it has %d inputs", target, len(ins))
		}
		root = ins[0]
	}

	for _, s := range stages {
		if s == target {
			continue
		}
		var rewired []*stage.Stage
		for _, in := range s.Inputs {
			if in == target {
				rewired = append(rewired, target.Inputs...)
			} else {
				rewired = append(rewired, in)
			}
		}
		s.Inputs = rewired
	}

	return Traverse(root), nil
}

func contains(stages []*stage.Stage, target *stage.Stage) bool {
	for _, s := range stages {
		if s == target {
			return true
		}
	}
	return false
}
