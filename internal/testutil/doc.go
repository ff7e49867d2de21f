// Package testutil provides the shared pipeline fixtures the graph,
// partition, and planner tests are built on.
package testutil
