package rank

import (
	"math"

	"github.com/jmorales/docrank/pkg/graph"
)

// HitsOptions configures a HITS run.
type HitsOptions struct {
	// MaxIterations is the hard iteration cap. Defaults to 100.
	MaxIterations int

	// Epsilon enables early stop when positive, measured as the L1 distance
	// between successive normalized authority vectors. Zero runs the full
	// fixed iteration count, matching the classic formulation.
	Epsilon float64

	// Workers splits each phase of a sweep across goroutines; <= 1 is
	// sequential. Output is identical regardless of worker count.
	Workers int
}

// DefaultHitsOptions returns the classic configuration: 100 fixed
// iterations, no early stop.
func DefaultHitsOptions() HitsOptions {
	return HitsOptions{MaxIterations: 100}
}

// HitsResult carries the mutually-reinforcing authority and hub vectors,
// both normalized to unit L2 norm, plus the termination status.
type HitsResult struct {
	Authority []float64
	Hub       []float64
	Status
}

// Hits computes authority and hub scores for g.
//
// Each iteration first recomputes every authority score from the previous
// iteration's hub vector, then recomputes every hub score from the
// authority values of the same sweep (not the prior iteration's), and
// finally normalizes both vectors to unit L2 norm so repeated summation
// cannot blow up numerically. Both vectors start at 1.0 per node.
// Self-loop edges are ignored, consistent with PageRank.
func Hits(g *graph.Graph, opts HitsOptions) HitsResult {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultHitsOptions().MaxIterations
	}
	n := g.NodeCount()
	if n == 0 {
		return HitsResult{Authority: []float64{}, Hub: []float64{}, Status: Status{Converged: true}}
	}

	auth := make([]float64, n)
	hub := make([]float64, n)
	for i := 0; i < n; i++ {
		auth[i] = 1
		hub[i] = 1
	}
	nextAuth := make([]float64, n)
	nextHub := make([]float64, n)
	prevAuth := make([]float64, n)

	monitor := NewMonitor(Budget{MaxIterations: opts.MaxIterations, Epsilon: opts.Epsilon})
	for {
		copy(prevAuth, auth)

		// Authority phase reads the previous iteration's hub vector.
		sweep(n, opts.Workers, func(lo, hi int) {
			for v := lo; v < hi; v++ {
				var sum float64
				for _, e := range g.InEdges(v) {
					if e.From != v {
						sum += hub[e.From]
					}
				}
				nextAuth[v] = sum
			}
		})

		// Hub phase reads the authority values computed in this sweep.
		sweep(n, opts.Workers, func(lo, hi int) {
			for v := lo; v < hi; v++ {
				var sum float64
				for _, e := range g.OutEdges(v) {
					if e.To != v {
						sum += nextAuth[e.To]
					}
				}
				nextHub[v] = sum
			}
		})

		normalize(nextAuth)
		normalize(nextHub)

		auth, nextAuth = nextAuth, auth
		hub, nextHub = nextHub, hub

		if monitor.Observe(l1Delta(auth, prevAuth)) {
			break
		}
	}

	return HitsResult{Authority: auth, Hub: hub, Status: monitor.Status()}
}

// normalize scales v to unit L2 norm in place. A zero vector (possible when
// the graph has no edges) is reset to uniform mass so the next sweep still
// has something to propagate.
func normalize(v []float64) {
	var sq float64
	for _, x := range v {
		sq += x * x
	}
	if sq == 0 {
		for i := range v {
			v[i] = 1 / math.Sqrt(float64(len(v)))
		}
		return
	}
	norm := math.Sqrt(sq)
	for i := range v {
		v[i] /= norm
	}
}
