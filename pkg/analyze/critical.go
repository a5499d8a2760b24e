package analyze

import (
	"fmt"

	"github.com/jmorales/docrank/pkg/graph"
)

// PathResult holds one critical-path computation. Dist carries the longest
// accumulated weight ending at each node, useful for per-node effort
// estimates beyond the single heaviest path.
type PathResult struct {
	// Path is the maximum-weight dependency chain, prerequisites first.
	Path []int

	// Total is the accumulated weight along Path.
	Total float64

	// Dist maps each node index to the heaviest accumulated weight of any
	// dependency chain ending at that node.
	Dist []float64
}

// CriticalPath computes the maximum-weight path through the dependency
// relation of g. The weights slice supplies per-node cost (for study
// planning, estimated time); pass nil to use the weights recorded on the
// graph's nodes (default 1.0 each).
//
// The dependency relation must be acyclic: cycle presence fails with a
// [*CycleError] carrying the offending components. Each node's distance is
//
//	dist(v) = weight(v) + max(0, max over prerequisites u of dist(u))
//
// evaluated in topological order, with a predecessor pointer kept for path
// reconstruction. Ties on the heaviest endpoint resolve to the lowest node
// index, keeping the result deterministic.
func CriticalPath(g *graph.Graph, weights []float64) (PathResult, error) {
	n := g.NodeCount()
	if weights == nil {
		weights = g.Weights()
	}
	if len(weights) != n {
		return PathResult{}, fmt.Errorf("weights length %d, want %d: %w", len(weights), n, graph.ErrNodeNotFound)
	}

	if cycles := Cycles(g); len(cycles) > 0 {
		return PathResult{}, &CycleError{Cycles: cycles}
	}

	order, _ := TopologicalOrder(g)

	dist := make([]float64, n)
	prev := make([]int, n)
	for i := range prev {
		prev[i] = -1
	}

	for _, v := range order {
		best := 0.0
		bestPrev := -1
		for _, e := range g.InEdges(v) {
			if e.From == v {
				continue
			}
			if d := dist[e.From]; d > best {
				best = d
				bestPrev = e.From
			}
		}
		dist[v] = weights[v] + best
		prev[v] = bestPrev
	}

	if n == 0 {
		return PathResult{Dist: dist}, nil
	}

	end := 0
	for v := 1; v < n; v++ {
		if dist[v] > dist[end] {
			end = v
		}
	}

	var path []int
	for v := end; v != -1; v = prev[v] {
		path = append(path, v)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return PathResult{Path: path, Total: dist[end], Dist: dist}, nil
}
