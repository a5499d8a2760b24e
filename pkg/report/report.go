package report

import (
	"sort"

	"github.com/jmorales/docrank/pkg/analyze"
	"github.com/jmorales/docrank/pkg/graph"
	"github.com/jmorales/docrank/pkg/rank"
)

// RankEntry is one scored document.
type RankEntry struct {
	Key       string  `json:"key" bson:"key"`
	Score     float64 `json:"score" bson:"score"`
	Influence float64 `json:"influence,omitempty" bson:"influence,omitempty"`
	InDegree  int     `json:"in_degree" bson:"in_degree"`
	OutDegree int     `json:"out_degree" bson:"out_degree"`
}

// RankReport is the serializable outcome of one ranking run. Entries are
// sorted by descending score with the key as tiebreaker, so output is
// deterministic.
type RankReport struct {
	Entries    []RankEntry `json:"entries" bson:"entries"`
	Converged  bool        `json:"converged" bson:"converged"`
	Iterations int         `json:"iterations" bson:"iterations"`
	FinalDelta float64     `json:"final_delta" bson:"final_delta"`
}

// NewRankReport converts a rank vector to its keyed wire form, attaching
// influence scores and degree statistics per document.
func NewRankReport(g *graph.Graph, res rank.Result) RankReport {
	influence := rank.Influence(g, res.Scores)

	entries := make([]RankEntry, len(res.Scores))
	for i, s := range res.Scores {
		entries[i] = RankEntry{
			Key:       g.Key(i),
			Score:     s,
			Influence: influence[i],
			InDegree:  g.InDegree(i),
			OutDegree: g.OutDegree(i),
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Key < entries[j].Key
	})

	return RankReport{
		Entries:    entries,
		Converged:  res.Converged,
		Iterations: res.Iterations,
		FinalDelta: res.FinalDelta,
	}
}

// HitsEntry is one document's authority and hub score.
type HitsEntry struct {
	Key       string  `json:"key" bson:"key"`
	Authority float64 `json:"authority" bson:"authority"`
	Hub       float64 `json:"hub" bson:"hub"`
}

// HitsReport is the serializable outcome of one HITS run, sorted by
// descending authority with the key as tiebreaker.
type HitsReport struct {
	Entries    []HitsEntry `json:"entries" bson:"entries"`
	Converged  bool        `json:"converged" bson:"converged"`
	Iterations int         `json:"iterations" bson:"iterations"`
}

// NewHitsReport converts a HITS result to its keyed wire form.
func NewHitsReport(g *graph.Graph, res rank.HitsResult) HitsReport {
	entries := make([]HitsEntry, len(res.Authority))
	for i := range res.Authority {
		entries[i] = HitsEntry{Key: g.Key(i), Authority: res.Authority[i], Hub: res.Hub[i]}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Authority != entries[j].Authority {
			return entries[i].Authority > entries[j].Authority
		}
		return entries[i].Key < entries[j].Key
	})
	return HitsReport{Entries: entries, Converged: res.Converged, Iterations: res.Iterations}
}

// DependencyReport is the keyed form of one dependency analysis: the
// (possibly partial) topological order, the nodes excluded from it, and the
// detected cycles as key sequences.
type DependencyReport struct {
	Order    []string   `json:"order" bson:"order"`
	Excluded []string   `json:"excluded,omitempty" bson:"excluded,omitempty"`
	Cycles   [][]string `json:"cycles,omitempty" bson:"cycles,omitempty"`
}

// NewDependencyReport converts an index-based dependency report to keys.
func NewDependencyReport(g *graph.Graph, rep analyze.Report) DependencyReport {
	out := DependencyReport{
		Order:    g.Keys(rep.Order),
		Excluded: g.Keys(rep.Excluded),
	}
	for _, cycle := range rep.Cycles {
		out.Cycles = append(out.Cycles, g.Keys(cycle))
	}
	return out
}

// PathReport is the keyed critical path: the heaviest prerequisite chain
// and its accumulated weight.
type PathReport struct {
	Path        []string `json:"path" bson:"path"`
	TotalWeight float64  `json:"total_weight" bson:"total_weight"`
}

// NewPathReport converts a critical-path result to keys.
func NewPathReport(g *graph.Graph, res analyze.PathResult) PathReport {
	return PathReport{Path: g.Keys(res.Path), TotalWeight: res.Total}
}

// CurriculumStep is one study-sequence entry with its prerequisite depth.
type CurriculumStep struct {
	Key   string `json:"key" bson:"key"`
	Depth int    `json:"depth" bson:"depth"`
}

// CurriculumReport is the keyed study sequence for one target document.
type CurriculumReport struct {
	Target string           `json:"target" bson:"target"`
	Steps  []CurriculumStep `json:"steps" bson:"steps"`
}

// NewCurriculumReport converts curriculum steps to keys.
func NewCurriculumReport(g *graph.Graph, target int, steps []analyze.Step) CurriculumReport {
	out := CurriculumReport{Target: g.Key(target), Steps: make([]CurriculumStep, len(steps))}
	for i, s := range steps {
		out.Steps[i] = CurriculumStep{Key: g.Key(s.Node), Depth: s.Depth}
	}
	return out
}
