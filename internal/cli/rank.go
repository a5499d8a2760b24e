package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmorales/docrank/pkg/pipeline"
)

// rankCommand creates the rank command.
func (c *CLI) rankCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		top        int
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "rank [notes-dir]",
		Short: "Score documents by reference structure",
		Long: `Score documents by reference structure.

The rank command scans a directory of Markdown notes, builds the reference
graph from wikilinks and inline links, and scores every document with
PageRank. Influence scores combine the rank with each document's degree.

Use --seed to personalize the ranking toward one document's neighborhood,
and --hits to additionally compute authority and hub scores.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Dir = args[0]
			opts.Formats = parseFormats(formatsStr)
			return c.runRank(cmd.Context(), opts, output, noCache, top)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), markdown, dot, svg (comma-separated)")

	// Solver flags
	cmd.Flags().Float64VarP(&opts.Damping, "damping", "d", 0, "damping factor in [0, 1) (default 0.85)")
	cmd.Flags().Float64VarP(&opts.Epsilon, "epsilon", "e", 0, "convergence tolerance (default 1e-6)")
	cmd.Flags().IntVarP(&opts.MaxIterations, "iterations", "n", 0, "iteration budget (default 100)")
	cmd.Flags().StringVar(&opts.Seed, "seed", "", "personalize toward this document key")
	cmd.Flags().BoolVar(&opts.RedistributeDangling, "redistribute-dangling", false, "spread dangling mass uniformly instead of losing it")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "parallel sweep workers (default sequential)")
	cmd.Flags().BoolVar(&opts.Hits, "hits", false, "also compute authority and hub scores")

	// Display flags
	cmd.Flags().IntVar(&top, "top", 10, "number of documents to print")

	return cmd
}

// runRank executes the pipeline and prints the leading documents.
func (c *CLI) runRank(ctx context.Context, opts pipeline.Options, output string, noCache bool, top int) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Ranking documents...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Ranking failed")
		return err
	}
	spinner.Stop()

	printSuccess("Ranked %d documents", result.Stats.NodeCount)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.RankHit)
	if result.Stats.Unresolved > 0 {
		printWarning("%d links point to unknown documents", result.Stats.Unresolved)
	}
	if !result.Rank.Converged {
		printWarning("did not converge within %d iterations (delta %.2e)",
			result.Rank.Iterations, result.Rank.FinalDelta)
	}

	printTopEntries(result, top)

	if output != "" || len(opts.Formats) > 1 || opts.Formats[0] != pipeline.FormatJSON {
		return writeArtifacts(result, opts.Formats, output)
	}
	return nil
}

// printTopEntries prints the highest ranked documents.
func printTopEntries(result *pipeline.Result, top int) {
	entries := result.Rank.Entries
	if top > 0 && top < len(entries) {
		entries = entries[:top]
	}
	for i, e := range entries {
		fmt.Printf("  %s %s %s\n",
			StyleDim.Render(fmt.Sprintf("%3d.", i+1)),
			StyleValue.Render(e.Key),
			StyleNumber.Render(fmt.Sprintf("%.4f", e.Score)))
	}
}
