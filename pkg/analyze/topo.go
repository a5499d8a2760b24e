package analyze

import "github.com/jmorales/docrank/pkg/graph"

// Report bundles the outputs of one dependency analysis over a fixed graph.
type Report struct {
	// Order is the topological order by node index, possibly partial when
	// cycles exist. Prerequisites always precede their dependents.
	Order []int

	// Excluded lists every node that could not be placed in Order: cycle
	// members and any node downstream of a cycle. Ascending index order.
	Excluded []int

	// Cycles lists the strongly connected components of size >= 2, the
	// authoritative cycle report. A singleton component is never a cycle,
	// even with a self-loop.
	Cycles [][]int
}

// Dependencies runs the topological sort and cycle detection in one pass
// and bundles the results. Cycle presence yields a partial order, never an
// error.
func Dependencies(g *graph.Graph) Report {
	order, excluded := TopologicalOrder(g)
	return Report{Order: order, Excluded: excluded, Cycles: Cycles(g)}
}

// TopologicalOrder computes a dependency-respecting order using Kahn's
// algorithm. Nodes whose in-degree never reaches zero — cycle members and
// everything blocked behind them — are returned in excluded instead of the
// order. Self-loops and duplicate edges are handled: a self-loop never
// blocks its node, and each duplicate edge is counted symmetrically when
// building and draining in-degrees.
//
// The result is deterministic: ready nodes are seeded in ascending index
// order and the queue is drained FIFO.
func TopologicalOrder(g *graph.Graph) (order, excluded []int) {
	n := g.NodeCount()
	inDegree := make([]int, n)
	for v := 0; v < n; v++ {
		for _, e := range g.InEdges(v) {
			if e.From != v {
				inDegree[v]++
			}
		}
	}

	queue := make([]int, 0, n)
	for v := 0; v < n; v++ {
		if inDegree[v] == 0 {
			queue = append(queue, v)
		}
	}

	order = make([]int, 0, n)
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		order = append(order, u)

		for _, e := range g.OutEdges(u) {
			if e.To == u {
				continue
			}
			inDegree[e.To]--
			if inDegree[e.To] == 0 {
				queue = append(queue, e.To)
			}
		}
	}

	if len(order) < n {
		placed := make([]bool, n)
		for _, v := range order {
			placed[v] = true
		}
		for v := 0; v < n; v++ {
			if !placed[v] {
				excluded = append(excluded, v)
			}
		}
	}
	return order, excluded
}
