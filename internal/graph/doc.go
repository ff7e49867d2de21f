// Package graph builds and manipulates the rooted predecessor graph of a
// pipeline. A Graph maps each stage to the graph of its own predecessors,
// keyed by stage identity (pointer), so shared sub-graphs appear once and
// reference cycles are representable. The top-level Graph of a pipeline has
// exactly one entry: the sink stage.
//
// All traversals here track visited identities and are therefore safe on
// graphs with diamond sharing and reference cycles.
package graph
