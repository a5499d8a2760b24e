// Package report converts index-based analysis results back to document
// keys and renders them as JSON-serializable structs, Markdown tables, and
// Graphviz diagrams.
//
// The engine packages work exclusively on dense integer indices; this
// package is the boundary where keys reappear. All report types carry json
// and bson tags so they can be served over HTTP and persisted unchanged.
package report
