// Package partition decides how a pipeline graph splits across a single
// dispatching process and a pool of replicated workers.
//
// Stages of kind round_robin_dispatch must execute exactly once; everything
// upstream of them is dragged into that single process with them. The
// package answers two independent questions over a rooted graph:
//
//   - FindCutPoint: the lowest common ancestor of every non-replicable
//     stage, i.e. the single stage at which replication must stop. Nil when
//     the pipeline contains no dispatcher.
//   - FindReplicableBranches: the roots of the maximal sub-graphs free of
//     queue placeholders, each safe to instantiate once per worker.
//
// Both are memoized post-order folds. The memo entry for a stage is written
// before descending into its predecessors; that single rule is what bounds
// work on diamond-shared sub-graphs and terminates reference cycles. The
// two folds attach different meanings to their memo values and never share
// tables.
package partition
