package analyze

import (
	"errors"
	"testing"

	"github.com/jmorales/docrank/pkg/graph"
)

func TestCurriculum_LinearChain(t *testing.T) {
	// Z depends on Y, Y depends on X (edges X→Y, Y→Z). X also lists
	// itself as a self-loop prerequisite, which must be ignored.
	g := buildGraph(t, []string{"X", "Y", "Z"},
		[][2]string{{"X", "Y"}, {"Y", "Z"}, {"X", "X"}})
	z, _ := g.Index("Z")

	steps, err := Curriculum(g, z, 0)
	if err != nil {
		t.Fatalf("Curriculum() error = %v", err)
	}

	wantKeys := []string{"X", "Y", "Z"}
	wantDepths := []int{2, 1, 0}
	if len(steps) != 3 {
		t.Fatalf("steps = %v, want 3 entries", steps)
	}
	for i, s := range steps {
		if g.Key(s.Node) != wantKeys[i] {
			t.Errorf("step %d = %s, want %s", i, g.Key(s.Node), wantKeys[i])
		}
		if s.Depth != wantDepths[i] {
			t.Errorf("step %d depth = %d, want %d", i, s.Depth, wantDepths[i])
		}
	}
}

func TestCurriculum_SharedPrerequisiteOnce(t *testing.T) {
	// Diamond: D needs B and C, both need A. A appears exactly once and
	// before both B and C.
	g := buildGraph(t, []string{"A", "B", "C", "D"},
		[][2]string{{"A", "B"}, {"A", "C"}, {"B", "D"}, {"C", "D"}})
	d, _ := g.Index("D")

	steps, err := Curriculum(g, d, 0)
	if err != nil {
		t.Fatalf("Curriculum() error = %v", err)
	}
	if len(steps) != 4 {
		t.Fatalf("steps = %v, want each node exactly once", steps)
	}

	pos := map[string]int{}
	for i, s := range steps {
		key := g.Key(s.Node)
		if _, dup := pos[key]; dup {
			t.Fatalf("%s emitted twice", key)
		}
		pos[key] = i
	}
	if pos["A"] >= pos["B"] || pos["A"] >= pos["C"] {
		t.Errorf("A must precede B and C: %v", pos)
	}
	if pos["B"] >= pos["D"] || pos["C"] >= pos["D"] {
		t.Errorf("B and C must precede D: %v", pos)
	}
}

func TestCurriculum_CycleTruncated(t *testing.T) {
	// a and b require each other; the walk must terminate and emit each
	// node once, best effort.
	g := buildGraph(t, []string{"a", "b", "c"},
		[][2]string{{"a", "b"}, {"b", "a"}, {"b", "c"}})
	c, _ := g.Index("c")

	steps, err := Curriculum(g, c, 0)
	if err != nil {
		t.Fatalf("Curriculum() error = %v (cycles must degrade, not fail)", err)
	}
	if len(steps) != 3 {
		t.Errorf("steps = %v, want 3 unique entries", steps)
	}
	if g.Key(steps[len(steps)-1].Node) != "c" {
		t.Errorf("target must come last, got %v", steps)
	}
}

func TestCurriculum_MaxDepth(t *testing.T) {
	g := buildGraph(t, []string{"w", "x", "y", "z"},
		[][2]string{{"w", "x"}, {"x", "y"}, {"y", "z"}})
	z, _ := g.Index("z")

	steps, err := Curriculum(g, z, 2)
	if err != nil {
		t.Fatalf("Curriculum() error = %v", err)
	}
	// Depth 2 keeps x and y but omits w.
	if len(steps) != 3 {
		t.Fatalf("steps = %v, want 3 entries at maxDepth 2", steps)
	}
	for _, s := range steps {
		if g.Key(s.Node) == "w" {
			t.Errorf("w is beyond maxDepth and must be omitted")
		}
	}
}

func TestCurriculum_TargetNotFound(t *testing.T) {
	g := buildGraph(t, []string{"a"}, nil)
	if _, err := Curriculum(g, 5, 0); !errors.Is(err, graph.ErrNodeNotFound) {
		t.Errorf("error = %v, want ErrNodeNotFound", err)
	}
}

func TestCurriculum_NoPrerequisites(t *testing.T) {
	g := buildGraph(t, []string{"solo"}, nil)
	steps, err := Curriculum(g, 0, 0)
	if err != nil {
		t.Fatalf("Curriculum() error = %v", err)
	}
	if len(steps) != 1 || steps[0].Depth != 0 {
		t.Errorf("steps = %v, want just the target at depth 0", steps)
	}
}
