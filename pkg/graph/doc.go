// Package graph provides the immutable adjacency model shared by every
// docrank analysis.
//
// A [Graph] is built once from keyed node and edge specs and is read-only
// afterwards. External keys (document paths) are resolved to dense integer
// indices at build time; all algorithms in pkg/rank and pkg/analyze operate
// purely on indices, and only the reporting layer converts back to keys.
//
// # Building
//
//	g, err := graph.Build(
//	    []graph.NodeSpec{{Key: "intro.md"}, {Key: "sets.md"}},
//	    []graph.EdgeSpec{{From: "intro.md", To: "sets.md", Label: "set theory"}},
//	)
//
// Build fails with [ErrDuplicateNode] on a repeated key and
// [ErrUnknownEndpoint] when an edge references a key with no node. Duplicate
// edges are preserved (repeated links strengthen a relation) and self-loops
// are allowed; the individual algorithms decide how to treat them.
//
// # Concurrency
//
// A built Graph is safe for concurrent readers. There is no mutation API.
package graph
