package analyze

import (
	"fmt"

	"github.com/jmorales/docrank/pkg/graph"
)

// Step is one entry of a study curriculum: a node and its prerequisite
// depth relative to the target (the target itself is depth 0).
type Step struct {
	Node  int
	Depth int
}

// Curriculum derives the ordered prerequisite closure for studying target:
// every transitive prerequisite exactly once, each strictly before the
// nodes that depend on it, ending with the target itself.
//
// The traversal is an explicit-stack depth-first walk with a visited set,
// so it terminates even when the prerequisite relation contains cycles:
// a cyclic prerequisite is silently broken at the first repeat. That is a
// robustness choice, not a correctness guarantee — no strict total order
// exists for cyclic input, and the emitted order is then best-effort.
//
// maxDepth, when positive, bounds how far the prerequisite chain is
// followed; prerequisites deeper than maxDepth are omitted. Returns
// graph.ErrNodeNotFound for an out-of-range target.
func Curriculum(g *graph.Graph, target int, maxDepth int) ([]Step, error) {
	if target < 0 || target >= g.NodeCount() {
		return nil, fmt.Errorf("%w: index %d", graph.ErrNodeNotFound, target)
	}

	visited := make([]bool, g.NodeCount())
	visited[target] = true

	// Post-order on an explicit stack: a node is emitted only after all
	// of its unvisited prerequisites have been emitted.
	type frame struct {
		node  int
		depth int
		next  int
	}

	var steps []Step
	stack := []frame{{node: target}}
	for len(stack) > 0 {
		f := &stack[len(stack)-1]
		in := g.InEdges(f.node)

		descended := false
		if maxDepth <= 0 || f.depth < maxDepth {
			for f.next < len(in) {
				e := in[f.next]
				f.next++
				u := e.From
				if u == f.node || visited[u] {
					continue
				}
				visited[u] = true
				stack = append(stack, frame{node: u, depth: f.depth + 1})
				descended = true
				break
			}
		}
		if descended {
			continue
		}

		steps = append(steps, Step{Node: f.node, Depth: f.depth})
		stack = stack[:len(stack)-1]
	}

	return steps, nil
}
