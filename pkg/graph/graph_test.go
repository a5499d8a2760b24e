package graph

import (
	"errors"
	"testing"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name    string
		nodes   []NodeSpec
		edges   []EdgeSpec
		wantErr error
	}{
		{
			name:  "Simple",
			nodes: []NodeSpec{{Key: "a.md"}, {Key: "b.md"}},
			edges: []EdgeSpec{{From: "a.md", To: "b.md"}},
		},
		{
			name:  "Empty",
			nodes: nil,
			edges: nil,
		},
		{
			name:    "DuplicateKey",
			nodes:   []NodeSpec{{Key: "a.md"}, {Key: "a.md"}},
			wantErr: ErrDuplicateNode,
		},
		{
			name:    "EmptyKey",
			nodes:   []NodeSpec{{Key: ""}},
			wantErr: ErrInvalidNodeKey,
		},
		{
			name:    "UnknownSource",
			nodes:   []NodeSpec{{Key: "a.md"}},
			edges:   []EdgeSpec{{From: "missing.md", To: "a.md"}},
			wantErr: ErrUnknownEndpoint,
		},
		{
			name:    "UnknownTarget",
			nodes:   []NodeSpec{{Key: "a.md"}},
			edges:   []EdgeSpec{{From: "a.md", To: "missing.md"}},
			wantErr: ErrUnknownEndpoint,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Build(tt.nodes, tt.edges)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Build() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if g.NodeCount() != len(tt.nodes) {
				t.Errorf("NodeCount() = %d, want %d", g.NodeCount(), len(tt.nodes))
			}
			if g.EdgeCount() != len(tt.edges) {
				t.Errorf("EdgeCount() = %d, want %d", g.EdgeCount(), len(tt.edges))
			}
		})
	}
}

func TestBuild_DuplicateEdgesPreserved(t *testing.T) {
	g, err := Build(
		[]NodeSpec{{Key: "a"}, {Key: "b"}},
		[]EdgeSpec{{From: "a", To: "b"}, {From: "a", To: "b"}},
	)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2 (duplicates must not be merged)", g.EdgeCount())
	}
	if g.OutDegree(0) != 2 {
		t.Errorf("OutDegree(a) = %d, want 2", g.OutDegree(0))
	}
	if g.InDegree(1) != 2 {
		t.Errorf("InDegree(b) = %d, want 2", g.InDegree(1))
	}
}

func TestGraph_Adjacency(t *testing.T) {
	g, err := Build(
		[]NodeSpec{{Key: "a"}, {Key: "b"}, {Key: "c"}},
		[]EdgeSpec{
			{From: "a", To: "b", Label: "first"},
			{From: "a", To: "c"},
			{From: "b", To: "c"},
		},
	)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	a, _ := g.Index("a")
	c, _ := g.Index("c")

	out := g.OutEdges(a)
	if len(out) != 2 {
		t.Fatalf("OutEdges(a) = %d edges, want 2", len(out))
	}
	if out[0].Label != "first" {
		t.Errorf("OutEdges(a)[0].Label = %q, want %q", out[0].Label, "first")
	}

	in := g.InEdges(c)
	if len(in) != 2 {
		t.Fatalf("InEdges(c) = %d edges, want 2", len(in))
	}
	if g.Key(in[0].From) != "a" || g.Key(in[1].From) != "b" {
		t.Errorf("InEdges(c) sources = %s, %s; want a, b", g.Key(in[0].From), g.Key(in[1].From))
	}
}

func TestGraph_Lookup(t *testing.T) {
	g, err := Build([]NodeSpec{{Key: "a", Weight: 2.5}}, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	n, err := g.Lookup(0)
	if err != nil {
		t.Fatalf("Lookup(0) error = %v", err)
	}
	if n.Weight != 2.5 {
		t.Errorf("Weight = %v, want 2.5", n.Weight)
	}

	if _, err := g.Lookup(1); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("Lookup(1) error = %v, want ErrNodeNotFound", err)
	}
	if _, err := g.Lookup(-1); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("Lookup(-1) error = %v, want ErrNodeNotFound", err)
	}
	if _, err := g.IndexOf("missing"); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("IndexOf(missing) error = %v, want ErrNodeNotFound", err)
	}
}

func TestGraph_DefaultWeight(t *testing.T) {
	g, err := Build([]NodeSpec{{Key: "a"}, {Key: "b", Weight: 3}}, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	w := g.Weights()
	if w[0] != 1.0 {
		t.Errorf("default weight = %v, want 1.0", w[0])
	}
	if w[1] != 3.0 {
		t.Errorf("explicit weight = %v, want 3.0", w[1])
	}
}

func TestGraph_SelfLoopAllowed(t *testing.T) {
	g, err := Build(
		[]NodeSpec{{Key: "a"}},
		[]EdgeSpec{{From: "a", To: "a"}},
	)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if g.OutDegree(0) != 1 || g.InDegree(0) != 1 {
		t.Errorf("self-loop degrees = out %d in %d, want 1/1", g.OutDegree(0), g.InDegree(0))
	}
}
