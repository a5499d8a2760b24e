package graph

import "errors"

var (
	// ErrInvalidNodeKey is returned by [Build] when a node spec carries an
	// empty external key. All documents must have non-empty keys.
	ErrInvalidNodeKey = errors.New("node key must not be empty")

	// ErrDuplicateNode is returned by [Build] when two node specs share the
	// same external key. Keys must be unique; the whole build is rejected.
	ErrDuplicateNode = errors.New("duplicate node key")

	// ErrUnknownEndpoint is returned by [Build] when an edge references a
	// key (or index) for which no node was supplied. The whole build is
	// rejected rather than silently dropping the edge.
	ErrUnknownEndpoint = errors.New("unknown edge endpoint")

	// ErrNodeNotFound is returned by query-time lookups for an unregistered
	// external key or an index outside [0, NodeCount).
	ErrNodeNotFound = errors.New("node not found")
)
