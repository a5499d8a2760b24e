package analyze

import (
	"errors"
	"fmt"
)

// ErrCyclicDependency is returned by operations that require an acyclic
// dependency relation. Use errors.Is against this sentinel; the concrete
// error is a [*CycleError] carrying the offending cycles.
var ErrCyclicDependency = errors.New("cyclic dependency")

// CycleError reports the strongly connected components (size >= 2) that
// prevent a DAG-only operation from running.
type CycleError struct {
	// Cycles holds one node-index sequence per offending component.
	Cycles [][]int
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%v: %d cycle(s)", ErrCyclicDependency, len(e.Cycles))
}

// Unwrap lets errors.Is(err, ErrCyclicDependency) match.
func (e *CycleError) Unwrap() error { return ErrCyclicDependency }
