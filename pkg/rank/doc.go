// Package rank implements the iterative importance solvers: PageRank (with
// personalized teleportation), HITS authority/hub scoring, and the composite
// influence score.
//
// Both solvers work in double-buffered sweeps: each sweep writes a fresh
// vector computed entirely from the previous iteration's vector, never
// read-modify-write in place. That makes the per-node updates of one sweep
// independent, which is the only sanctioned parallelism boundary (see
// Options.Workers); sweeps themselves always run strictly in sequence.
//
// Non-convergence is never an error. When the iteration budget runs out
// before the tolerance is met, the result carries Converged=false together
// with the best-effort vector, the iteration count, and the final L1 delta.
//
// Results are deterministic: identical graph and options produce bit-identical
// vectors, regardless of worker count, because all state lives in dense
// slices indexed by node and no map iteration order is ever observable.
package rank
