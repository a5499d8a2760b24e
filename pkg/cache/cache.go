// Package cache provides pluggable result caching for the analysis
// pipeline. Scanned graphs and rendered artifacts are keyed by content
// hash, so an unchanged notes directory never recomputes.
//
// Three backends are available: [FileCache] for CLI usage, [RedisCache]
// for the HTTP server, and [NullCache] to disable caching entirely.
package cache

import (
	"context"
	"time"
)

// Cache is the storage backend for pipeline results.
//
// Get returns (nil, false, nil) on a miss; errors are reserved for backend
// failures. A ttl of zero on Set means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer generates cache keys for the pipeline's cacheable stages.
type Keyer interface {
	// GraphKey identifies a scanned note graph by the hash of its source
	// directory contents.
	GraphKey(scanHash string) string

	// RankKey identifies a rank vector by graph hash and solver options.
	RankKey(graphHash string, opts RankKeyOpts) string

	// ArtifactKey identifies a rendered artifact by graph hash and format.
	ArtifactKey(graphHash, format string) string
}

// RankKeyOpts are the solver options that change rank output and therefore
// participate in the cache key.
type RankKeyOpts struct {
	Damping              float64 `json:"damping"`
	Epsilon              float64 `json:"epsilon"`
	MaxIterations        int     `json:"max_iterations"`
	Seed                 string  `json:"seed,omitempty"`
	RedistributeDangling bool    `json:"redistribute_dangling,omitempty"`
}

// DefaultKeyer generates unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// GraphKey generates a key for a scanned note graph.
func (k *DefaultKeyer) GraphKey(scanHash string) string {
	return hashKey("graph", scanHash)
}

// RankKey generates a key for a rank vector.
func (k *DefaultKeyer) RankKey(graphHash string, opts RankKeyOpts) string {
	return hashKey("rank", graphHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(graphHash, format string) string {
	return hashKey("artifact", graphHash, format)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
