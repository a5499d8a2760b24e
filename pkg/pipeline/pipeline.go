// Package pipeline provides the core analysis pipeline shared by the CLI
// and the HTTP API.
//
// This package implements the complete scan → build → solve → render flow
// so every entry point behaves identically.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Scan: Read the notes directory and extract the reference graph
//  2. Build: Construct the dense index graph
//  3. Solve: Run PageRank (and optionally HITS) plus dependency analysis
//  4. Render: Generate output in the requested formats
//
// Rank vectors and rendered artifacts are cached by graph content hash, so
// repeated runs over an unchanged notes directory skip the solvers.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, nil, logger)
//	opts := pipeline.Options{
//	    Dir:     "./notes",
//	    Formats: []string{"json", "svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	apperrors "github.com/jmorales/docrank/pkg/errors"
	"github.com/jmorales/docrank/pkg/rank"
	"github.com/jmorales/docrank/pkg/report"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Cache TTLs per stage. Rank vectors are keyed by graph content hash, so
// stale entries can only waste space, never serve wrong data.
const (
	TTLRank     = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Format constants for output formats.
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatDOT      = "dot"
	FormatSVG      = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON:     true,
	FormatMarkdown: true,
	FormatDOT:      true,
	FormatSVG:      true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Scan options
	Dir string `json:"dir"`

	// Solver options
	Damping              float64 `json:"damping,omitempty"`
	Epsilon              float64 `json:"epsilon,omitempty"`
	MaxIterations        int     `json:"max_iterations,omitempty"`
	RedistributeDangling bool    `json:"redistribute_dangling,omitempty"`
	Workers              int     `json:"workers,omitempty"`

	// Seed personalizes PageRank toward one document key.
	Seed string `json:"seed,omitempty"`

	// Hits additionally computes authority and hub scores.
	Hits bool `json:"hits,omitempty"`

	// Target requests a curriculum and critical path for one document.
	Target   string `json:"target,omitempty"`
	MaxDepth int    `json:"max_depth,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`

	// Refresh bypasses the cache and recomputes everything.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Dir == "" {
		return apperrors.New(apperrors.ErrCodeInvalidPath, "notes directory is required")
	}

	defaults := rank.DefaultOptions()
	if o.Damping == 0 {
		o.Damping = defaults.Damping
	}
	if err := apperrors.ValidateDamping(o.Damping); err != nil {
		return err
	}
	if o.Epsilon == 0 {
		o.Epsilon = defaults.Epsilon
	}
	if o.MaxIterations == 0 {
		o.MaxIterations = defaults.MaxIterations
	}
	if o.Seed != "" {
		if err := apperrors.ValidateDocumentKey(o.Seed); err != nil {
			return err
		}
	}
	if o.Target != "" {
		if err := apperrors.ValidateDocumentKey(o.Target); err != nil {
			return err
		}
	}

	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	for _, f := range o.Formats {
		if err := apperrors.ValidateFormat(f); err != nil {
			return err
		}
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// rankOptions converts pipeline options to solver options.
func (o *Options) rankOptions() rank.Options {
	return rank.Options{
		Damping:              o.Damping,
		Epsilon:              o.Epsilon,
		MaxIterations:        o.MaxIterations,
		RedistributeDangling: o.RedistributeDangling,
		Workers:              o.Workers,
	}
}

// =============================================================================
// Result - Pipeline Output
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this execution.
	RunID string

	// GraphHash is the content hash of the scanned graph.
	GraphHash string

	// Rank holds the PageRank scores with influence and degrees attached.
	Rank report.RankReport

	// Hits holds authority and hub scores when requested.
	Hits *report.HitsReport

	// Deps holds the topological order and detected cycles.
	Deps report.DependencyReport

	// Path and Curriculum are present when a target was requested and the
	// graph permits them.
	Path       *report.PathReport
	Curriculum *report.CurriculumReport

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	Unresolved int
	ScanTime   time.Duration
	SolveTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	RankHit   bool // Whether the rank vector came from cache
	RenderHit bool // Whether all artifacts came from cache
}
