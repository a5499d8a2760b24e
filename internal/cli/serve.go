package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/jmorales/docrank/pkg/cache"
	apperrors "github.com/jmorales/docrank/pkg/errors"
	"github.com/jmorales/docrank/pkg/pipeline"
	"github.com/jmorales/docrank/pkg/store"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		mongoURI string
		mongoDB  string
	)

	cmd := &cobra.Command{
		Use:   "serve [notes-dir]",
		Short: "Serve the analysis as an HTTP API",
		Long: `Serve the analysis as an HTTP API.

Every endpoint re-runs the pipeline against the notes directory, so edits
are picked up immediately; the content-hash cache keeps unchanged runs
cheap. With --redis the cache is shared between instances, and with
--mongo every run is recorded for later inspection.

Endpoints:
  GET /healthz                    liveness probe
  GET /api/rank                   PageRank scores (?seed=KEY&hits=1&refresh=1)
  GET /api/deps                   prerequisite order and cycles
  GET /api/curriculum/{key}       study sequence (?max_depth=N)
  GET /api/graph.svg              rendered reference graph
  GET /api/runs                   recent recorded runs (?limit=N)
  GET /api/runs/{id}              one recorded run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args[0], addr, redisURL, mongoURI, mongoDB)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", "", "redis URL for a shared cache (default local file cache)")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "mongodb URI for run history (default in-memory)")
	cmd.Flags().StringVar(&mongoDB, "mongo-db", appName, "mongodb database name")

	return cmd
}

// runServe wires the cache and store backends and blocks serving HTTP
// until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, dir, addr, redisURL, mongoURI, mongoDB string) error {
	cch, err := c.serveCache(ctx, redisURL)
	if err != nil {
		return err
	}

	var st store.Store
	if mongoURI != "" {
		mongo, err := store.NewMongoStore(ctx, mongoURI, mongoDB)
		if err != nil {
			return fmt.Errorf("connect store: %w", err)
		}
		st = mongo
		c.Logger.Info("run history in mongodb", "db", mongoDB)
	} else {
		st = store.NewMemoryStore()
	}
	defer st.Close(context.Background())

	runner := pipeline.NewRunner(cch, nil, st, c.Logger)
	defer runner.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           c.routes(runner, st, dir),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr, "dir", dir)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// serveCache selects the server cache backend.
func (c *CLI) serveCache(ctx context.Context, redisURL string) (cache.Cache, error) {
	if redisURL == "" {
		return newCache(false)
	}
	rc, err := cache.NewRedisCache(ctx, redisURL)
	if err != nil {
		return nil, fmt.Errorf("connect cache: %w", err)
	}
	c.Logger.Info("using redis cache")
	return rc, nil
}

// routes builds the chi router.
func (c *CLI) routes(runner *pipeline.Runner, st store.Store, dir string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/rank", c.handleRank(runner, dir))
		r.Get("/deps", c.handleDeps(runner, dir))
		r.Get("/curriculum/{key}", c.handleCurriculum(runner, dir))
		r.Get("/graph.svg", c.handleGraphSVG(runner, dir))
		r.Get("/runs", c.handleRuns(st))
		r.Get("/runs/{id}", c.handleRun(st))
	})

	return r
}

func (c *CLI) handleRank(runner *pipeline.Runner, dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		opts := pipeline.Options{
			Dir:     dir,
			Seed:    q.Get("seed"),
			Hits:    q.Get("hits") == "1",
			Refresh: q.Get("refresh") == "1",
			Logger:  c.Logger,
		}
		result, err := runner.Execute(req.Context(), opts)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"run_id":     result.RunID,
			"graph_hash": result.GraphHash,
			"rank":       result.Rank,
			"hits":       result.Hits,
		})
	}
}

func (c *CLI) handleDeps(runner *pipeline.Runner, dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		result, err := runner.Execute(req.Context(), pipeline.Options{Dir: dir, Logger: c.Logger})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result.Deps)
	}
}

func (c *CLI) handleCurriculum(runner *pipeline.Runner, dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		maxDepth, _ := strconv.Atoi(req.URL.Query().Get("max_depth"))
		opts := pipeline.Options{
			Dir:      dir,
			Target:   chi.URLParam(req, "key"),
			MaxDepth: maxDepth,
			Logger:   c.Logger,
		}
		result, err := runner.Execute(req.Context(), opts)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"curriculum": result.Curriculum,
			"path":       result.Path,
		})
	}
}

func (c *CLI) handleGraphSVG(runner *pipeline.Runner, dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		opts := pipeline.Options{
			Dir:     dir,
			Formats: []string{pipeline.FormatSVG},
			Logger:  c.Logger,
		}
		result, err := runner.Execute(req.Context(), opts)
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(result.Artifacts[pipeline.FormatSVG])
	}
}

func (c *CLI) handleRuns(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
		if limit <= 0 || limit > 100 {
			limit = 20
		}
		recs, err := st.List(req.Context(), limit)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, recs)
	}
}

func (c *CLI) handleRun(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		rec, err := st.Get(req.Context(), chi.URLParam(req, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

// writeJSON writes a JSON response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps application error codes to HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case apperrors.Is(err, apperrors.ErrCodeDocumentNotFound),
		errors.Is(err, store.ErrRunNotFound):
		status = http.StatusNotFound
	case apperrors.Is(err, apperrors.ErrCodeInvalidInput),
		apperrors.Is(err, apperrors.ErrCodeInvalidDamping),
		apperrors.Is(err, apperrors.ErrCodeInvalidFormat),
		apperrors.Is(err, apperrors.ErrCodeInvalidPath):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{
		"error": apperrors.UserMessage(err),
		"code":  string(apperrors.GetCode(err)),
	})
}
