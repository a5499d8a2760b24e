package rank

import (
	"fmt"
	"math"

	"github.com/jmorales/docrank/pkg/graph"
)

// Influence composes a PageRank vector with structural degree statistics
// into a single score per node:
//
//	influence(v) = PR(v) × (1 + ln(1 + inDegree(v))) × (1 + ln(1 + outDegree(v)))
//
// A well-ranked node that is also densely wired in both directions scores
// highest. This is a pure function of the rank vector and the graph's
// degree queries; scores must have one entry per node.
func Influence(g *graph.Graph, scores []float64) []float64 {
	out := make([]float64, len(scores))
	for v := range scores {
		out[v] = influence(scores[v], g.InDegree(v), g.OutDegree(v))
	}
	return out
}

// InfluenceOf returns the influence score of a single node, with
// graph.ErrNodeNotFound for an out-of-range index.
func InfluenceOf(g *graph.Graph, scores []float64, v int) (float64, error) {
	if v < 0 || v >= len(scores) {
		return 0, fmt.Errorf("%w: index %d", graph.ErrNodeNotFound, v)
	}
	return influence(scores[v], g.InDegree(v), g.OutDegree(v)), nil
}

func influence(pr float64, inDeg, outDeg int) float64 {
	return pr * (1 + math.Log(1+float64(inDeg))) * (1 + math.Log(1+float64(outDeg)))
}
