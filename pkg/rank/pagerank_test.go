package rank

import (
	"errors"
	"math"
	"testing"

	"github.com/jmorales/docrank/pkg/graph"
)

func buildGraph(t *testing.T, nodes []string, edges [][2]string) *graph.Graph {
	t.Helper()
	specs := make([]graph.NodeSpec, len(nodes))
	for i, k := range nodes {
		specs[i] = graph.NodeSpec{Key: k}
	}
	edgeSpecs := make([]graph.EdgeSpec, len(edges))
	for i, e := range edges {
		edgeSpecs[i] = graph.EdgeSpec{From: e[0], To: e[1]}
	}
	g, err := graph.Build(specs, edgeSpecs)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return g
}

func TestPageRank_ConservationNoDangling(t *testing.T) {
	// a→b→c→a: every node has out-degree 1, so no mass is lost and the
	// total stays 1 after every sweep.
	g := buildGraph(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}})

	for _, iters := range []int{1, 2, 5, 50} {
		opts := DefaultOptions()
		opts.Epsilon = 0
		opts.MaxIterations = iters

		res, err := PageRank(g, opts)
		if err != nil {
			t.Fatalf("PageRank() error = %v", err)
		}
		var sum float64
		for _, s := range res.Scores {
			sum += s
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("after %d iterations sum = %v, want 1", iters, sum)
		}
	}
}

func TestPageRank_SourceNodeAfterOneSweep(t *testing.T) {
	// "a" has no in-edges, so after one sweep from uniform initialization
	// its score is exactly the teleportation term (1-d)/N.
	g := buildGraph(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}})

	opts := DefaultOptions()
	opts.Epsilon = 0
	opts.MaxIterations = 1

	res, err := PageRank(g, opts)
	if err != nil {
		t.Fatalf("PageRank() error = %v", err)
	}
	a, _ := g.Index("a")
	want := (1 - opts.Damping) / 3
	if res.Scores[a] != want {
		t.Errorf("PR(a) = %v, want exactly %v", res.Scores[a], want)
	}
}

func TestPageRank_PersonalizedOneHotDampingZero(t *testing.T) {
	// With damping 0 the link structure is irrelevant; the result is the
	// teleportation distribution itself.
	g := buildGraph(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}})
	b, _ := g.Index("b")

	res, err := Personalized(g, b, Options{Damping: 0, MaxIterations: 10, Epsilon: 1e-12})
	if err != nil {
		t.Fatalf("Personalized() error = %v", err)
	}
	for i, s := range res.Scores {
		want := 0.0
		if i == b {
			want = 1.0
		}
		if s != want {
			t.Errorf("PR(%s) = %v, want exactly %v", g.Key(i), s, want)
		}
	}
}

func TestPageRank_DanglingMassLostByDefault(t *testing.T) {
	// b is dangling; by default its mass drains out of the system.
	g := buildGraph(t, []string{"a", "b"}, [][2]string{{"a", "b"}})

	opts := DefaultOptions()
	opts.Epsilon = 0
	opts.MaxIterations = 20

	res, err := PageRank(g, opts)
	if err != nil {
		t.Fatalf("PageRank() error = %v", err)
	}
	var sum float64
	for _, s := range res.Scores {
		sum += s
	}
	if sum >= 1 {
		t.Errorf("sum = %v, want < 1 (dangling mass is lost by default)", sum)
	}

	opts.RedistributeDangling = true
	res, err = PageRank(g, opts)
	if err != nil {
		t.Fatalf("PageRank() error = %v", err)
	}
	sum = 0
	for _, s := range res.Scores {
		sum += s
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("sum with redistribution = %v, want 1", sum)
	}
}

func TestPageRank_SelfLoopNeutral(t *testing.T) {
	plain := buildGraph(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}})
	looped := buildGraph(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "b"}, {"b", "c"}, {"c", "a"}})

	opts := DefaultOptions()
	r1, err := PageRank(plain, opts)
	if err != nil {
		t.Fatalf("PageRank(plain) error = %v", err)
	}
	r2, err := PageRank(looped, opts)
	if err != nil {
		t.Fatalf("PageRank(looped) error = %v", err)
	}
	for i := range r1.Scores {
		if r1.Scores[i] != r2.Scores[i] {
			t.Errorf("PR(%s) differs with self-loop: %v vs %v", plain.Key(i), r1.Scores[i], r2.Scores[i])
		}
	}
}

func TestPageRank_Deterministic(t *testing.T) {
	g := buildGraph(t, []string{"a", "b", "c", "d"},
		[][2]string{{"a", "b"}, {"a", "c"}, {"b", "d"}, {"c", "d"}, {"d", "a"}})

	opts := DefaultOptions()
	r1, err := PageRank(g, opts)
	if err != nil {
		t.Fatalf("PageRank() error = %v", err)
	}
	r2, err := PageRank(g, opts)
	if err != nil {
		t.Fatalf("PageRank() error = %v", err)
	}
	for i := range r1.Scores {
		if r1.Scores[i] != r2.Scores[i] {
			t.Fatalf("re-run differs at %d: %v vs %v", i, r1.Scores[i], r2.Scores[i])
		}
	}

	opts.Workers = 4
	r3, err := PageRank(g, opts)
	if err != nil {
		t.Fatalf("PageRank(workers=4) error = %v", err)
	}
	for i := range r1.Scores {
		if r1.Scores[i] != r3.Scores[i] {
			t.Fatalf("parallel sweep differs at %d: %v vs %v", i, r1.Scores[i], r3.Scores[i])
		}
	}
}

func TestPageRank_NonConvergenceReported(t *testing.T) {
	g := buildGraph(t, []string{"a", "b", "c"}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "a"}})

	opts := DefaultOptions()
	opts.Epsilon = 1e-15
	opts.MaxIterations = 2

	res, err := PageRank(g, opts)
	if err != nil {
		t.Fatalf("PageRank() error = %v (non-convergence must not be an error)", err)
	}
	if res.Converged {
		t.Error("Converged = true, want false with a 2-iteration budget")
	}
	if res.Iterations != 2 {
		t.Errorf("Iterations = %d, want 2", res.Iterations)
	}
	if res.FinalDelta <= 0 {
		t.Errorf("FinalDelta = %v, want > 0", res.FinalDelta)
	}
}

func TestPageRank_Validation(t *testing.T) {
	g := buildGraph(t, []string{"a", "b"}, [][2]string{{"a", "b"}})

	if _, err := PageRank(g, Options{Damping: 1.0, MaxIterations: 5}); !errors.Is(err, ErrInvalidDamping) {
		t.Errorf("damping 1.0: error = %v, want ErrInvalidDamping", err)
	}
	if _, err := PageRank(g, Options{Damping: -0.1, MaxIterations: 5}); !errors.Is(err, ErrInvalidDamping) {
		t.Errorf("damping -0.1: error = %v, want ErrInvalidDamping", err)
	}
	if _, err := PageRank(g, Options{Damping: 0.85, MaxIterations: 5, Personalization: []float64{1}}); !errors.Is(err, ErrInvalidPersonalization) {
		t.Errorf("short personalization: error = %v, want ErrInvalidPersonalization", err)
	}
	if _, err := PageRank(g, Options{Damping: 0.85, MaxIterations: 5, Personalization: []float64{1, -1}}); !errors.Is(err, ErrInvalidPersonalization) {
		t.Errorf("negative personalization: error = %v, want ErrInvalidPersonalization", err)
	}
	if _, err := Personalized(g, 99, DefaultOptions()); !errors.Is(err, graph.ErrNodeNotFound) {
		t.Errorf("out-of-range seed: error = %v, want ErrNodeNotFound", err)
	}
}

func TestPageRank_EmptyGraph(t *testing.T) {
	g := buildGraph(t, nil, nil)
	res, err := PageRank(g, DefaultOptions())
	if err != nil {
		t.Fatalf("PageRank() error = %v", err)
	}
	if len(res.Scores) != 0 || !res.Converged {
		t.Errorf("empty graph: scores=%v converged=%v", res.Scores, res.Converged)
	}
}

func TestResult_ByKey(t *testing.T) {
	g := buildGraph(t, []string{"a", "b"}, [][2]string{{"a", "b"}})
	res, err := PageRank(g, DefaultOptions())
	if err != nil {
		t.Fatalf("PageRank() error = %v", err)
	}
	byKey := res.ByKey(g)
	if len(byKey) != 2 {
		t.Fatalf("ByKey() has %d entries, want 2", len(byKey))
	}
	a, _ := g.Index("a")
	if byKey["a"] != res.Scores[a] {
		t.Errorf("ByKey()[a] = %v, want %v", byKey["a"], res.Scores[a])
	}
}
