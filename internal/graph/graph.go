package graph

import (
	"errors"
	"fmt"

	"github.com/vk/pipecut/internal/stage"
)

// ErrMalformedGraph reports a graph that violates the single-root shape
// every analysis entry point requires.
var ErrMalformedGraph = errors.New("malformed pipeline graph")

// Graph maps each stage to its predecessor graph. Keys are live stage
// pointers; identity, not structure, decides whether two entries are the
// same stage.
type Graph map[*stage.Stage]Graph

// Traverse builds the rooted graph of everything sink depends on by
// following live input references. The sub-graph of a stage reached through
// several paths is built once and shared, and a stage reachable from itself
// terminates through the cache entry written before descent.
func Traverse(sink *stage.Stage) Graph {
	cache := make(map[*stage.Stage]Graph)

	var preds func(s *stage.Stage) Graph
	preds = func(s *stage.Stage) Graph {
		if g, ok := cache[s]; ok {
			return g
		}
		g := make(Graph, len(s.Inputs))
		// Cached before descent so cyclic references resolve to this map.
		cache[s] = g
		for _, in := range s.UniqueInputs() {
			g[in] = preds(in)
		}
		return g
	}

	return Graph{sink: preds(sink)}
}

// Root returns the graph's single root stage and that stage's predecessor
// graph. Graphs with zero or several roots fail with ErrMalformedGraph.
func (g Graph) Root() (*stage.Stage, Graph, error) {
	if len(g) != 1 {
		return nil, nil, fmt.Errorf("%w: expected exactly one sink stage, found %d", ErrMalformedGraph, len(g))
	}
	for s, preds := range g {
		return s, preds, nil
	}
	panic("unreachable")
}

// Flatten returns every stage reachable in the graph, each exactly once no
// matter how many references lead to it. Order follows input declaration
// order from each root, but callers must not rely on any ordering.
func (g Graph) Flatten() []*stage.Stage {
	seen := make(map[*stage.Stage]struct{})
	var out []*stage.Stage

	var walk func(s *stage.Stage, preds Graph)
	walk = func(s *stage.Stage, preds Graph) {
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
		for _, in := range s.UniqueInputs() {
			walk(in, preds[in])
		}
	}

	for s, preds := range g {
		walk(s, preds)
	}
	return out
}

// Find returns every reachable stage of the given kind.
func Find(g Graph, kind stage.Kind) []*stage.Stage {
	var out []*stage.Stage
	for _, s := range g.Flatten() {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}
