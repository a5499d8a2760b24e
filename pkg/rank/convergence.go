package rank

import "math"

// Budget bounds an iterative solver run. MaxIterations is a hard cap;
// Epsilon, when positive, enables tolerance-based early stop on the L1
// distance between successive vectors.
type Budget struct {
	MaxIterations int
	Epsilon       float64
}

// Status reports how an iterative solver terminated. Converged is false when
// the iteration budget was exhausted before the tolerance was met (or when
// no tolerance was configured and the delta never mattered).
type Status struct {
	Converged  bool
	Iterations int
	FinalDelta float64
}

// Monitor is the shared iteration controller for the PageRank and HITS
// solvers. One Monitor tracks one run; it is not reusable across runs.
type Monitor struct {
	budget Budget
	status Status
}

// NewMonitor creates a monitor for one solver run.
func NewMonitor(b Budget) *Monitor {
	return &Monitor{budget: b}
}

// Observe records one completed sweep and its L1 delta. It returns true when
// the solver should stop: either the delta fell below the configured epsilon
// (the run converged) or the iteration budget is spent.
func (m *Monitor) Observe(delta float64) bool {
	m.status.Iterations++
	m.status.FinalDelta = delta
	if m.budget.Epsilon > 0 && delta < m.budget.Epsilon {
		m.status.Converged = true
		return true
	}
	return m.status.Iterations >= m.budget.MaxIterations
}

// Status returns the termination report for the run so far.
func (m *Monitor) Status() Status { return m.status }

// l1Delta returns the L1 distance between two equal-length vectors.
func l1Delta(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	return sum
}
