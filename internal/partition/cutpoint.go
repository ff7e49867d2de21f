package partition

import (
	"fmt"

	"github.com/vk/pipecut/internal/graph"
	"github.com/vk/pipecut/internal/stage"
)

// FindCutPoint returns the lowest common ancestor of every non-replicable
// stage in the graph, or nil when the pipeline contains no round-robin
// dispatch stage and is therefore fully replicable. The returned stage is
// where replication must stop: everything upstream of it runs once in the
// dispatching process.
func FindCutPoint(g graph.Graph) (*stage.Stage, error) {
	root, preds, err := g.Root()
	if err != nil {
		return nil, err
	}
	p := &lcaPass{
		nonReplicable: NonReplicableSet(g),
		memo:          make(map[*stage.Stage]*stage.Stage),
	}
	return p.reduce(root, preds, 0)
}

// lcaPass owns the memo table for one FindCutPoint invocation. A memo entry
// of nil means "no non-replicable stage in this closure"; absence means the
// stage has not been reduced yet.
type lcaPass struct {
	nonReplicable map[*stage.Stage]struct{}
	memo          map[*stage.Stage]*stage.Stage

	// reductions counts stages actually reduced rather than answered from
	// the memo. On any graph it ends equal to the number of reachable
	// stages, shared or cyclic references included.
	reductions int
}

func (p *lcaPass) reduce(s *stage.Stage, preds graph.Graph, depth int) (*stage.Stage, error) {
	if r, ok := p.memo[s]; ok {
		return r, nil
	}
	if depth > MaxDepth {
		return nil, fmt.Errorf("%w: stage chain deeper than %d at %s", ErrDepthExceeded, MaxDepth, s)
	}
	p.reductions++

	if _, ok := p.nonReplicable[s]; ok {
		p.memo[s] = s
		return s, nil
	}

	// Provisional "no result" entry. A cyclic path arriving back at s
	// observes it and terminates instead of recursing forever.
	p.memo[s] = nil

	var hits []*stage.Stage
	for _, in := range s.UniqueInputs() {
		r, err := p.reduce(in, preds[in], depth+1)
		if err != nil {
			return nil, err
		}
		if r != nil {
			hits = append(hits, r)
		}
	}

	if len(hits) > 0 {
		res := hits[0]
		for _, h := range hits[1:] {
			if h != res {
				// Distinct non-replicable chains converge at s, making s
				// their lowest common ancestor.
				res = s
				break
			}
		}
		p.memo[s] = res
	}
	return p.memo[s], nil
}
