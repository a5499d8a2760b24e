package graph

import "fmt"

// NodeSpec describes one document before graph construction.
// Key is the external identity (typically the document path); Weight is the
// study cost used by critical-path analysis (values <= 0 default to 1.0).
type NodeSpec struct {
	Key    string
	Attrs  map[string]string
	Weight float64
}

// EdgeSpec describes one directed cross-reference by external keys.
// Label typically holds the anchor text of the originating link. Weight is
// optional and non-negative. Duplicate edges between the same pair are
// permitted and preserved; a repeated link strengthens the relation.
type EdgeSpec struct {
	From   string
	To     string
	Label  string
	Weight float64
}

// Node is a built graph vertex. Index is the dense identity all algorithms
// operate on; Key is the external identity used at the reporting boundary.
// Nodes are immutable after Build.
type Node struct {
	Index  int
	Key    string
	Attrs  map[string]string
	Weight float64
}

// Edge is a built directed edge between two node indices.
type Edge struct {
	From   int
	To     int
	Label  string
	Weight float64
}

// Graph is an immutable adjacency representation of a document graph.
// Forward and reverse adjacency lists are built once at construction, so
// every query is O(degree). There is no mutation API: a new document set
// means building a new Graph.
type Graph struct {
	nodes []Node
	edges []Edge
	out   [][]Edge
	in    [][]Edge
	index map[string]int
}

// Build resolves external keys to dense indices and constructs the graph.
// It returns ErrInvalidNodeKey for an empty key, ErrDuplicateNode for a
// repeated key, and ErrUnknownEndpoint when an edge references a key with
// no corresponding node. Any of these rejects the whole build.
func Build(nodes []NodeSpec, edges []EdgeSpec) (*Graph, error) {
	g := &Graph{
		nodes: make([]Node, len(nodes)),
		edges: make([]Edge, 0, len(edges)),
		out:   make([][]Edge, len(nodes)),
		in:    make([][]Edge, len(nodes)),
		index: make(map[string]int, len(nodes)),
	}

	for i, spec := range nodes {
		if spec.Key == "" {
			return nil, fmt.Errorf("node %d: %w", i, ErrInvalidNodeKey)
		}
		if _, exists := g.index[spec.Key]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateNode, spec.Key)
		}
		weight := spec.Weight
		if weight <= 0 {
			weight = 1.0
		}
		g.nodes[i] = Node{Index: i, Key: spec.Key, Attrs: spec.Attrs, Weight: weight}
		g.index[spec.Key] = i
	}

	for _, spec := range edges {
		from, ok := g.index[spec.From]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownEndpoint, spec.From)
		}
		to, ok := g.index[spec.To]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownEndpoint, spec.To)
		}
		e := Edge{From: from, To: to, Label: spec.Label, Weight: spec.Weight}
		g.edges = append(g.edges, e)
		g.out[from] = append(g.out[from], e)
		g.in[to] = append(g.in[to], e)
	}

	return g, nil
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges, counting duplicates.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Node returns the node at index i. Panics if i is out of range; use
// [Graph.Lookup] for checked access.
func (g *Graph) Node(i int) Node { return g.nodes[i] }

// Lookup returns the node at index i, or ErrNodeNotFound when i is outside
// [0, NodeCount).
func (g *Graph) Lookup(i int) (Node, error) {
	if i < 0 || i >= len(g.nodes) {
		return Node{}, fmt.Errorf("%w: index %d", ErrNodeNotFound, i)
	}
	return g.nodes[i], nil
}

// Index resolves an external key to its dense index.
func (g *Graph) Index(key string) (int, bool) {
	i, ok := g.index[key]
	return i, ok
}

// IndexOf resolves an external key, returning ErrNodeNotFound when the key
// was never registered.
func (g *Graph) IndexOf(key string) (int, error) {
	i, ok := g.index[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNodeNotFound, key)
	}
	return i, nil
}

// Key returns the external key of node i.
func (g *Graph) Key(i int) string { return g.nodes[i].Key }

// Keys returns the external keys for a slice of indices, in order.
func (g *Graph) Keys(indices []int) []string {
	keys := make([]string, len(indices))
	for i, idx := range indices {
		keys[i] = g.nodes[idx].Key
	}
	return keys
}

// OutEdges returns the outgoing edges of node i in insertion order.
// The returned slice is a read-only view; callers must not modify it.
func (g *Graph) OutEdges(i int) []Edge { return g.out[i] }

// InEdges returns the incoming edges of node i in insertion order.
// The returned slice is a read-only view; callers must not modify it.
func (g *Graph) InEdges(i int) []Edge { return g.in[i] }

// OutDegree returns the number of outgoing edges of node i, including
// self-loops and duplicates.
func (g *Graph) OutDegree(i int) int { return len(g.out[i]) }

// InDegree returns the number of incoming edges of node i, including
// self-loops and duplicates.
func (g *Graph) InDegree(i int) int { return len(g.in[i]) }

// Edges returns all edges in insertion order. The returned slice is a
// read-only view; callers must not modify it.
func (g *Graph) Edges() []Edge { return g.edges }

// Weights returns the per-node study weights as a dense slice.
func (g *Graph) Weights() []float64 {
	w := make([]float64, len(g.nodes))
	for i, n := range g.nodes {
		w[i] = n.Weight
	}
	return w
}
