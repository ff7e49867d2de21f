package partition

import (
	"errors"

	"github.com/vk/pipecut/internal/graph"
	"github.com/vk/pipecut/internal/stage"
)

// MaxDepth bounds the post-order recursion of both analyses. Pipelines with
// dependency chains deeper than this fail with ErrDepthExceeded instead of
// exhausting the stack.
const MaxDepth = 1 << 15

// ErrDepthExceeded reports a dependency chain deeper than MaxDepth.
var ErrDepthExceeded = errors.New("analysis recursion depth exceeded")

// NonReplicableSet returns every stage that must execute in the single
// dispatching process: for each round-robin dispatch stage, its entire
// predecessor closure, the dispatcher itself included. The set is derived
// fresh from the given snapshot on every call.
func NonReplicableSet(g graph.Graph) map[*stage.Stage]struct{} {
	set := make(map[*stage.Stage]struct{})
	for _, s := range g.Flatten() {
		if _, done := set[s]; done {
			// Already inside another dispatcher's closure; recomputing the
			// closure from here would only rediscover the same stages.
			continue
		}
		if !s.IsDispatcher() {
			continue
		}
		for _, pred := range graph.Traverse(s).Flatten() {
			set[pred] = struct{}{}
		}
	}
	return set
}
