// Package planner turns the partition analysis into a concrete process
// topology plan: which stages are pinned to the single dispatching process
// and which sub-graphs each worker replica instantiates. It only describes
// the topology; spawning processes and moving data between them belongs to
// the runtime, not here.
package planner
