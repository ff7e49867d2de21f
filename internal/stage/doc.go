// Package stage models the vertices of a data-processing pipeline. A Stage
// is identified by its pointer: two stages with identical fields are still
// distinct units unless they are literally the same object. All graph
// traversal and analysis in this module relies on that identity, never on
// structural equality.
//
// Two stage kinds carry meaning for the replication analysis:
//
//   - KindRoundRobinDispatch marks a stage that must run exactly once and
//     fan work out to replicated workers. Everything upstream of it is
//     dragged into the non-replicable region.
//   - KindQueuePlaceholder stands in for an already-excised non-replicable
//     region when extracting replicable branches.
//
// Every other kind is opaque to the analysis.
package stage
