package testutil

import (
	"github.com/vk/pipecut/internal/graph"
	"github.com/vk/pipecut/internal/stage"
)

// Fixture is the canonical test topology, combining an independent
// single-stage branch, a forked branch zipped back together (diamond
// sharing), and a circular-referenced pair, all merged at one sink:
//
//	single_br ----------------------------.
//	                ch1                     \
//	              /     \                    \
//	multi_br --->         -> fork_zip ------> end
//	              \     /                    /
//	                ch2                     /
//	  cir_src <-> cir_map -----------------'
type Fixture struct {
	SingleBr *stage.Stage
	MultiBr  *stage.Stage
	Ch1      *stage.Stage
	Ch2      *stage.Stage
	ForkZip  *stage.Stage
	CirSrc   *stage.Stage
	CirMap   *stage.Stage
	End      *stage.Stage
}

// NewFixture builds a fresh copy of the canonical topology. Every call
// returns distinct stage objects, so tests may mutate freely.
func NewFixture() *Fixture {
	f := &Fixture{}
	f.SingleBr = stage.New("source", "single_br")

	f.MultiBr = stage.New("source", "multi_br")
	f.Ch1 = stage.New("fork", "ch1", f.MultiBr)
	f.Ch2 = stage.New("fork", "ch2", f.MultiBr)
	f.ForkZip = stage.New("zip", "fork_zip", f.Ch1, f.Ch2)

	f.CirSrc = stage.New("source", "cir_src")
	f.CirMap = stage.New("map", "cir_map", f.CirSrc)
	// Force the reference cycle between the circular pair.
	f.CirSrc.Inputs = append(f.CirSrc.Inputs, f.CirMap)

	f.End = stage.New("zip", "end", f.SingleBr, f.ForkZip, f.CirMap)
	return f
}

// Graph traverses the fixture from its sink.
func (f *Fixture) Graph() graph.Graph {
	return graph.Traverse(f.End)
}

// Chain builds a linear pipeline of n stages and returns its sink.
func Chain(n int) *stage.Stage {
	s := stage.New("source", "chain_0")
	for i := 1; i < n; i++ {
		s = stage.New("map", "chain", s)
	}
	return s
}

// InsertDispatcher splices a round-robin dispatch stage between target and
// its consumers, making target's closure non-replicable. It returns the
// rewritten graph and the dispatcher.
func InsertDispatcher(g graph.Graph, target *stage.Stage) (graph.Graph, *stage.Stage, error) {
	d := stage.New(stage.KindRoundRobinDispatch, target.Name+".dispatch", target)
	ng, err := graph.Replace(g, target, d)
	return ng, d, err
}

// SwapForPlaceholder replaces target with a fresh queue placeholder,
// detaching target's upstream sub-graph entirely.
func SwapForPlaceholder(g graph.Graph, target *stage.Stage) (graph.Graph, *stage.Stage, error) {
	ph := stage.New(stage.KindQueuePlaceholder, target.Name+".queue")
	ng, err := graph.Replace(g, target, ph)
	return ng, ph, err
}
