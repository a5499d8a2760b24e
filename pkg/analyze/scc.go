package analyze

import (
	"sort"

	"github.com/jmorales/docrank/pkg/graph"
)

// StronglyConnected returns every strongly connected component of g using
// Tarjan's single-pass algorithm. The DFS runs on an explicit frame stack
// rather than recursion, so component detection does not hit stack depth
// limits on large graphs. Self-loop edges are skipped.
//
// Components are returned with members sorted ascending and the component
// list sorted by smallest member, so the output is deterministic.
func StronglyConnected(g *graph.Graph) [][]int {
	n := g.NodeCount()

	const unvisited = -1
	index := make([]int, n)
	lowlink := make([]int, n)
	onStack := make([]bool, n)
	for i := range index {
		index[i] = unvisited
	}

	var (
		counter int
		stack   []int
		sccs    [][]int
	)

	// frame mirrors one recursive call: node v, plus the position of the
	// next out-edge to examine when the frame resumes.
	type frame struct {
		v    int
		next int
	}

	for root := 0; root < n; root++ {
		if index[root] != unvisited {
			continue
		}

		frames := []frame{{v: root}}
		index[root] = counter
		lowlink[root] = counter
		counter++
		stack = append(stack, root)
		onStack[root] = true

		for len(frames) > 0 {
			f := &frames[len(frames)-1]
			v := f.v
			out := g.OutEdges(v)

			advanced := false
			for f.next < len(out) {
				e := out[f.next]
				f.next++
				w := e.To
				if w == v {
					continue
				}
				if index[w] == unvisited {
					index[w] = counter
					lowlink[w] = counter
					counter++
					stack = append(stack, w)
					onStack[w] = true
					frames = append(frames, frame{v: w})
					advanced = true
					break
				}
				if onStack[w] && index[w] < lowlink[v] {
					lowlink[v] = index[w]
				}
			}
			if advanced {
				continue
			}

			// v is complete: pop its component if it is a root.
			if lowlink[v] == index[v] {
				var scc []int
				for {
					w := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[w] = false
					scc = append(scc, w)
					if w == v {
						break
					}
				}
				sort.Ints(scc)
				sccs = append(sccs, scc)
			}

			frames = frames[:len(frames)-1]
			if len(frames) > 0 {
				parent := frames[len(frames)-1].v
				if lowlink[v] < lowlink[parent] {
					lowlink[parent] = lowlink[v]
				}
			}
		}
	}

	sort.Slice(sccs, func(i, j int) bool { return sccs[i][0] < sccs[j][0] })
	return sccs
}

// Cycles returns the strongly connected components of size >= 2. A
// singleton component is acyclic by definition here, even when the node
// carries a self-loop.
func Cycles(g *graph.Graph) [][]int {
	var cycles [][]int
	for _, scc := range StronglyConnected(g) {
		if len(scc) >= 2 {
			cycles = append(cycles, scc)
		}
	}
	return cycles
}
