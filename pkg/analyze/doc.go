// Package analyze implements the dependency-structure algorithms over a
// built graph: Kahn topological ordering with partial results, iterative
// Tarjan strongly-connected-component detection, weighted critical-path
// computation, and study-curriculum generation.
//
// Edge direction follows the dependency convention throughout: an edge
// u → v means "v depends on u", so u must be ordered, studied, and costed
// before v. Self-loops are ignored everywhere in this package — a document
// cannot be its own prerequisite.
//
// Cycle presence is a reported condition, not an error, for every operation
// except [CriticalPath], which has no meaningful answer on a cyclic graph
// and fails with a [CycleError]. [Curriculum] degrades gracefully instead:
// its visited set breaks cyclic prerequisites at the first repeat, which is
// a robustness heuristic, not a correctness guarantee — the resulting order
// is best-effort whenever the input contains cycles.
package analyze
