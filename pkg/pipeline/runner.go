package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/jmorales/docrank/pkg/analyze"
	"github.com/jmorales/docrank/pkg/cache"
	apperrors "github.com/jmorales/docrank/pkg/errors"
	"github.com/jmorales/docrank/pkg/graph"
	"github.com/jmorales/docrank/pkg/observability"
	"github.com/jmorales/docrank/pkg/rank"
	"github.com/jmorales/docrank/pkg/report"
	"github.com/jmorales/docrank/pkg/source"
	"github.com/jmorales/docrank/pkg/store"
)

// Runner encapsulates pipeline execution with caching and optional run
// persistence.
//
// The Runner is stateless except for its collaborators. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Store  store.Store
	Logger *log.Logger
}

// NewRunner creates a runner.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
// If st is nil, runs are not persisted.
func NewRunner(c cache.Cache, keyer cache.Keyer, st store.Store, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Store: st, Logger: logger}
}

// Execute runs the complete scan → build → solve → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}
	started := time.Now()

	// Stage 1+2: Scan and build
	scanStart := time.Now()
	observability.Engine().OnScanStart(ctx, opts.Dir)
	g, scan, err := r.buildGraph(opts)
	result.Stats.ScanTime = time.Since(scanStart)
	if err != nil {
		observability.Engine().OnScanComplete(ctx, opts.Dir, 0, 0, result.Stats.ScanTime, err)
		return nil, fmt.Errorf("scan: %w", err)
	}
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	result.Stats.Unresolved = scan.Unresolved
	result.GraphHash = hashScan(scan)
	observability.Engine().OnScanComplete(ctx, opts.Dir, g.NodeCount(), g.EdgeCount(), result.Stats.ScanTime, nil)

	opts.Logger.Info("scanned notes",
		"dir", opts.Dir,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
		"unresolved", scan.Unresolved,
		"duration", result.Stats.ScanTime)

	// Stage 3: Solve
	solveStart := time.Now()
	if err := r.solve(ctx, g, opts, result); err != nil {
		return nil, err
	}
	result.Stats.SolveTime = time.Since(solveStart)

	opts.Logger.Info("solved graph",
		"converged", result.Rank.Converged,
		"iterations", result.Rank.Iterations,
		"cycles", len(result.Deps.Cycles),
		"cache_hit", result.CacheInfo.RankHit,
		"duration", result.Stats.SolveTime)

	// Stage 4: Render
	renderStart := time.Now()
	observability.Engine().OnRenderStart(ctx, opts.Formats)
	renderHit, err := r.render(ctx, g, opts, result)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Engine().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.CacheInfo.RenderHit = renderHit

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cache_hit", renderHit,
		"duration", result.Stats.RenderTime)

	r.persist(ctx, opts, result, started)
	return result, nil
}

// buildGraph scans the notes directory and constructs the index graph.
func (r *Runner) buildGraph(opts Options) (*graph.Graph, *source.Result, error) {
	scan, err := source.Scan(opts.Dir)
	if err != nil {
		return nil, nil, err
	}
	g, err := graph.Build(scan.Nodes, scan.Edges)
	if err != nil {
		return nil, nil, err
	}
	return g, scan, nil
}

// solve computes rank scores (cached), optional HITS, dependency analysis,
// and the per-target reports.
func (r *Runner) solve(ctx context.Context, g *graph.Graph, opts Options, result *Result) error {
	rankKey := r.Keyer.RankKey(result.GraphHash, cache.RankKeyOpts{
		Damping:              opts.Damping,
		Epsilon:              opts.Epsilon,
		MaxIterations:        opts.MaxIterations,
		Seed:                 opts.Seed,
		RedistributeDangling: opts.RedistributeDangling,
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, rankKey); err == nil && hit {
			var cached report.RankReport
			if err := json.Unmarshal(data, &cached); err == nil && len(cached.Entries) == g.NodeCount() {
				observability.Cache().OnCacheHit(ctx, "rank")
				result.Rank = cached
				result.CacheInfo.RankHit = true
			}
		}
	}

	if !result.CacheInfo.RankHit {
		observability.Cache().OnCacheMiss(ctx, "rank")
		observability.Engine().OnSolveStart(ctx, "pagerank", g.NodeCount())
		solveStart := time.Now()

		var (
			res rank.Result
			err error
		)
		if opts.Seed != "" {
			seed, lookupErr := g.IndexOf(opts.Seed)
			if lookupErr != nil {
				return apperrors.Wrap(apperrors.ErrCodeDocumentNotFound, lookupErr, "seed %q", opts.Seed)
			}
			res, err = rank.Personalized(g, seed, opts.rankOptions())
		} else {
			res, err = rank.PageRank(g, opts.rankOptions())
		}
		observability.Engine().OnSolveComplete(ctx, "pagerank", res.Iterations, time.Since(solveStart), err)
		if err != nil {
			return fmt.Errorf("pagerank: %w", err)
		}

		result.Rank = report.NewRankReport(g, res)
		if data, err := json.Marshal(result.Rank); err == nil {
			if err := r.Cache.Set(ctx, rankKey, data, TTLRank); err == nil {
				observability.Cache().OnCacheSet(ctx, "rank", len(data))
			}
		}
	}

	if opts.Hits {
		observability.Engine().OnSolveStart(ctx, "hits", g.NodeCount())
		hitsStart := time.Now()
		res := rank.Hits(g, rank.HitsOptions{Workers: opts.Workers})
		observability.Engine().OnSolveComplete(ctx, "hits", res.Iterations, time.Since(hitsStart), nil)
		hits := report.NewHitsReport(g, res)
		result.Hits = &hits
	}

	result.Deps = report.NewDependencyReport(g, analyze.Dependencies(g))

	if opts.Target != "" {
		if err := r.solveTarget(g, opts, result); err != nil {
			return err
		}
	}
	return nil
}

// solveTarget computes the curriculum and, when the graph is acyclic, the
// critical path for the requested document.
func (r *Runner) solveTarget(g *graph.Graph, opts Options, result *Result) error {
	target, err := g.IndexOf(opts.Target)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeDocumentNotFound, err, "target %q", opts.Target)
	}

	steps, err := analyze.Curriculum(g, target, opts.MaxDepth)
	if err != nil {
		return fmt.Errorf("curriculum for %q: %w", opts.Target, err)
	}
	curriculum := report.NewCurriculumReport(g, target, steps)
	result.Curriculum = &curriculum

	// The critical path is undefined on cyclic graphs; the curriculum
	// above still degrades gracefully, so a cycle is not fatal here.
	if path, err := analyze.CriticalPath(g, nil); err == nil {
		rep := report.NewPathReport(g, path)
		result.Path = &rep
	} else {
		opts.Logger.Warn("critical path unavailable", "err", err)
	}
	return nil
}

// render produces the requested artifacts, serving them from cache when
// every format is present.
func (r *Runner) render(ctx context.Context, g *graph.Graph, opts Options, result *Result) (bool, error) {
	// Only format-independent inputs feed the artifact key, so the seed
	// and solver options must be part of the hash.
	artifactHash := cache.Hash([]byte(result.GraphHash + ":" + renderFingerprint(opts)))

	if !opts.Refresh {
		cached := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(artifactHash, format)
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				cached = nil
				break
			}
			cached[format] = data
		}
		if cached != nil {
			observability.Cache().OnCacheHit(ctx, "artifact")
			result.Artifacts = cached
			return true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	artifacts, err := renderArtifacts(g, opts, result)
	if err != nil {
		return false, err
	}
	result.Artifacts = artifacts

	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(artifactHash, format)
		if err := r.Cache.Set(ctx, key, data, TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return false, nil
}

// persist saves the run record when a store is configured. Persistence
// failures are logged, never fatal.
func (r *Runner) persist(ctx context.Context, opts Options, result *Result, started time.Time) {
	if r.Store == nil {
		return
	}
	rec := store.RunRecord{
		RunID:     result.RunID,
		GraphHash: result.GraphHash,
		Nodes:     result.Stats.NodeCount,
		Edges:     result.Stats.EdgeCount,
		StartedAt: started.UTC(),
		Duration:  time.Since(started).Seconds(),
		Rank:      &result.Rank,
		Hits:      result.Hits,
		Deps:      &result.Deps,
	}
	if err := r.Store.Save(ctx, rec); err != nil {
		opts.Logger.Warn("failed to persist run", "run_id", result.RunID, "err", err)
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// hashScan fingerprints the scanned graph content. Node order is already
// deterministic, so the JSON encoding is stable.
func hashScan(scan *source.Result) string {
	data, _ := json.Marshal(scan)
	return cache.Hash(data)
}

// renderFingerprint captures every option that changes rendered output.
func renderFingerprint(opts Options) string {
	data, _ := json.Marshal(struct {
		Damping              float64 `json:"damping"`
		Epsilon              float64 `json:"epsilon"`
		MaxIterations        int     `json:"max_iterations"`
		RedistributeDangling bool    `json:"redistribute_dangling"`
		Seed                 string  `json:"seed"`
		Hits                 bool    `json:"hits"`
		Target               string  `json:"target"`
		MaxDepth             int     `json:"max_depth"`
	}{
		opts.Damping, opts.Epsilon, opts.MaxIterations,
		opts.RedistributeDangling, opts.Seed, opts.Hits,
		opts.Target, opts.MaxDepth,
	})
	return string(data)
}
