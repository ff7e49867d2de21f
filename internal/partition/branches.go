package partition

import (
	"fmt"

	"github.com/vk/pipecut/internal/graph"
	"github.com/vk/pipecut/internal/stage"
)

// FindReplicableBranches returns the roots of the maximal sub-graphs that
// contain no queue placeholder, in the order the boundary between
// replicable and non-replicable regions is discovered. Each returned stage,
// with its full predecessor closure, can be instantiated once per worker.
// The result is empty when nothing is replicable and exactly the root when
// the whole pipeline is.
func FindReplicableBranches(g graph.Graph) ([]*stage.Stage, error) {
	root, preds, err := g.Root()
	if err != nil {
		return nil, err
	}
	p := &branchPass{
		memo:   make(map[*stage.Stage]bool),
		listed: make(map[*stage.Stage]struct{}),
	}
	ok, err := p.visit(root, preds, 0)
	if err != nil {
		return nil, err
	}
	if ok {
		// No boundary anywhere: the whole pipeline is one replicable branch.
		p.emit(root)
	}
	return p.roots, nil
}

// branchPass owns the memo table for one FindReplicableBranches invocation.
// A memo entry records whether the stage's full predecessor closure is free
// of queue placeholders.
type branchPass struct {
	memo   map[*stage.Stage]bool
	roots  []*stage.Stage
	listed map[*stage.Stage]struct{}
}

func (p *branchPass) visit(s *stage.Stage, preds graph.Graph, depth int) (bool, error) {
	if r, ok := p.memo[s]; ok {
		return r, nil
	}
	if depth > MaxDepth {
		return false, fmt.Errorf("%w: stage chain deeper than %d at %s", ErrDepthExceeded, MaxDepth, s)
	}

	if s.IsPlaceholder() {
		// Placeholders stand in for an excised non-replicable region; they
		// are never branch roots themselves.
		p.memo[s] = false
		return false, nil
	}

	// Optimistic entry, downgraded below. Doubles as the cycle guard: a
	// cyclic path back to s reads it instead of recursing.
	p.memo[s] = true
	for _, in := range s.UniqueInputs() {
		ok, err := p.visit(in, preds[in], depth+1)
		if err != nil {
			return false, err
		}
		if !ok {
			p.memo[s] = false
			// No early break: every predecessor must end up memoized so
			// the boundary scan below sees all of them.
		}
	}

	if !p.memo[s] {
		// s is the first non-replicable stage on this path, so each of its
		// clean direct predecessors roots a maximal replicable branch.
		for _, in := range s.UniqueInputs() {
			if p.memo[in] {
				p.emit(in)
			}
		}
	}
	return p.memo[s], nil
}

// emit appends a branch root at most once, however many non-replicable
// consumers it feeds.
func (p *branchPass) emit(s *stage.Stage) {
	if _, ok := p.listed[s]; ok {
		return
	}
	p.listed[s] = struct{}{}
	p.roots = append(p.roots, s)
}
