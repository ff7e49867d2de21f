package stage

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// Kind is the type label of a stage. The set is open: user pipelines may
// declare any kind, and only the two marker kinds below are interpreted.
type Kind string

const (
	// KindRoundRobinDispatch is the non-replicable marker kind. A stage of
	// this kind must execute in a single process; all of its transitive
	// predecessors are non-replicable with it.
	KindRoundRobinDispatch Kind = "round_robin_dispatch"

	// KindQueuePlaceholder stands in for a non-replicable sub-graph that has
	// been cut out of the pipeline. It poisons replicability of everything
	// downstream of it and is itself never a replicable branch root.
	KindQueuePlaceholder Kind = "queue_placeholder"
)

// Stage is one vertex of the pipeline graph. Stages are shared by reference:
// the same *Stage may be an input of several consumers (diamond sharing),
// and input references may form cycles.
type Stage struct {
	// Kind is the stage's type label.
	Kind Kind

	// Name identifies the stage within its pipeline.
	Name string

	// Inputs are the stage's direct predecessors, in declaration order.
	// Entries are live references; rewiring them rewires the graph.
	Inputs []*Stage

	// Args carries the stage's configuration attributes. Opaque here.
	Args map[string]cty.Value
}

// New returns a stage of the given kind and name consuming the listed inputs.
func New(kind Kind, name string, inputs ...*Stage) *Stage {
	return &Stage{Kind: kind, Name: name, Inputs: inputs}
}

// IsDispatcher reports whether the stage is a round-robin dispatch marker.
func (s *Stage) IsDispatcher() bool {
	return s.Kind == KindRoundRobinDispatch
}

// IsPlaceholder reports whether the stage is a queue placeholder.
func (s *Stage) IsPlaceholder() bool {
	return s.Kind == KindQueuePlaceholder
}

// String renders the stage as "kind:name" for logs and error messages.
func (s *Stage) String() string {
	return fmt.Sprintf("%s:%s", s.Kind, s.Name)
}

// UniqueInputs returns the stage's direct predecessors with duplicate
// references removed, preserving first-occurrence order. A stage listing the
// same input twice still has only one predecessor edge for analysis purposes.
func (s *Stage) UniqueInputs() []*Stage {
	if len(s.Inputs) < 2 {
		return s.Inputs
	}
	seen := make(map[*Stage]struct{}, len(s.Inputs))
	out := make([]*Stage, 0, len(s.Inputs))
	for _, in := range s.Inputs {
		if _, ok := seen[in]; ok {
			continue
		}
		seen[in] = struct{}{}
		out = append(out, in)
	}
	return out
}
