package rank

import (
	"errors"
	"fmt"

	"github.com/jmorales/docrank/pkg/graph"
)

var (
	// ErrInvalidDamping is returned when the damping factor is outside [0, 1).
	ErrInvalidDamping = errors.New("damping factor must be in [0, 1)")

	// ErrInvalidPersonalization is returned when a personalization vector has
	// the wrong length or a negative entry.
	ErrInvalidPersonalization = errors.New("invalid personalization vector")
)

// Options configures a PageRank run.
type Options struct {
	// Damping is the probability of following an outgoing edge instead of
	// teleporting. Must be in [0, 1); 0 degenerates to teleportation only.
	Damping float64

	// Epsilon enables tolerance-based early stop on the L1 distance between
	// successive vectors when positive. Zero means fixed iteration count.
	Epsilon float64

	// MaxIterations is the hard iteration cap.
	MaxIterations int

	// Personalization replaces the uniform (1-d)/N teleportation term with
	// (1-d)·p(v) when non-nil. Entries must be non-negative and the vector
	// must have one entry per node. The engine does not normalize it;
	// callers supply a probability distribution (or accept scaled output).
	Personalization []float64

	// RedistributeDangling spreads the rank mass of nodes with no outgoing
	// edges uniformly across all nodes each sweep, as in textbook PageRank.
	// The default (false) keeps the historical behavior where dangling mass
	// is simply lost.
	RedistributeDangling bool

	// Workers splits each sweep across this many goroutines. Values <= 1
	// run sequentially. Output is identical regardless of worker count.
	Workers int
}

// DefaultOptions returns the standard configuration: damping 0.85,
// epsilon 1e-6, at most 100 iterations, sequential sweeps.
func DefaultOptions() Options {
	return Options{
		Damping:       0.85,
		Epsilon:       1e-6,
		MaxIterations: 100,
	}
}

// Result is one computed rank vector together with its termination status.
// Scores is indexed by node index and never mutated after the solver
// returns.
type Result struct {
	Scores []float64
	Status
}

// ByKey converts the score vector to an external-key mapping for the
// reporting layer. Raw indices never cross the package boundary outward.
func (r Result) ByKey(g *graph.Graph) map[string]float64 {
	out := make(map[string]float64, len(r.Scores))
	for i, s := range r.Scores {
		out[g.Key(i)] = s
	}
	return out
}

// PageRank computes the stationary importance distribution of g.
//
// The update rule per node v is
//
//	PR(v) = (1-d)/N + d · Σ_{u ∈ in(v)} PR(u) / outDegree(u)
//
// with the teleportation term replaced by (1-d)·p(v) when a personalization
// vector is set. Self-loop edges are fully neutral: they neither contribute
// mass nor count toward the out-degree divisor. Initialization is uniform
// 1/N.
func PageRank(g *graph.Graph, opts Options) (Result, error) {
	if opts.Damping < 0 || opts.Damping >= 1 {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidDamping, opts.Damping)
	}
	n := g.NodeCount()
	if opts.Personalization != nil {
		if len(opts.Personalization) != n {
			return Result{}, fmt.Errorf("%w: length %d, want %d", ErrInvalidPersonalization, len(opts.Personalization), n)
		}
		for i, p := range opts.Personalization {
			if p < 0 {
				return Result{}, fmt.Errorf("%w: negative entry at %d", ErrInvalidPersonalization, i)
			}
		}
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultOptions().MaxIterations
	}
	if n == 0 {
		return Result{Scores: []float64{}, Status: Status{Converged: true}}, nil
	}

	nf := float64(n)
	d := opts.Damping

	// Effective out-degree excludes self-loops once, up front.
	outDeg := make([]float64, n)
	for i := 0; i < n; i++ {
		for _, e := range g.OutEdges(i) {
			if e.To != i {
				outDeg[i]++
			}
		}
	}

	// Teleportation term per node, fixed for the whole run.
	teleport := make([]float64, n)
	if opts.Personalization != nil {
		for i := range teleport {
			teleport[i] = (1 - d) * opts.Personalization[i]
		}
	} else {
		for i := range teleport {
			teleport[i] = (1 - d) / nf
		}
	}

	curr := make([]float64, n)
	next := make([]float64, n)
	for i := range curr {
		curr[i] = 1 / nf
	}

	monitor := NewMonitor(Budget{MaxIterations: opts.MaxIterations, Epsilon: opts.Epsilon})
	for {
		var danglingShare float64
		if opts.RedistributeDangling {
			var danglingSum float64
			for i := 0; i < n; i++ {
				if outDeg[i] == 0 {
					danglingSum += curr[i]
				}
			}
			danglingShare = d * danglingSum / nf
		}

		sweep(n, opts.Workers, func(lo, hi int) {
			for v := lo; v < hi; v++ {
				var sum float64
				for _, e := range g.InEdges(v) {
					if e.From == v {
						continue
					}
					if deg := outDeg[e.From]; deg > 0 {
						sum += curr[e.From] / deg
					}
				}
				next[v] = teleport[v] + d*sum + danglingShare
			}
		})

		delta := l1Delta(next, curr)
		curr, next = next, curr
		if monitor.Observe(delta) {
			break
		}
	}

	return Result{Scores: curr, Status: monitor.Status()}, nil
}

// Personalized is a convenience wrapper for single-seed "similar to X"
// queries: the teleportation distribution is a one-hot vector on seed.
func Personalized(g *graph.Graph, seed int, opts Options) (Result, error) {
	if seed < 0 || seed >= g.NodeCount() {
		return Result{}, fmt.Errorf("%w: index %d", graph.ErrNodeNotFound, seed)
	}
	p := make([]float64, g.NodeCount())
	p[seed] = 1
	opts.Personalization = p
	return PageRank(g, opts)
}
