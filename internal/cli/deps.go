package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmorales/docrank/pkg/pipeline"
)

// depsCommand creates the deps command.
func (c *CLI) depsCommand() *cobra.Command {
	var noCache bool
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "deps [notes-dir]",
		Short: "Print the prerequisite order and dependency cycles",
		Long: `Print the prerequisite order and dependency cycles.

Documents are listed in an order where every reference target comes before
the documents that cite it. When the reference graph contains cycles, the
acyclic part is still ordered and the cycle members are reported
separately.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Dir = args[0]
			return c.runDeps(cmd.Context(), opts, noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")

	return cmd
}

// runDeps executes the pipeline and prints the dependency report.
func (c *CLI) runDeps(ctx context.Context, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Analyzed %d documents", result.Stats.NodeCount))

	for i, key := range result.Deps.Order {
		fmt.Printf("  %s %s\n",
			StyleDim.Render(fmt.Sprintf("%3d.", i+1)),
			StyleValue.Render(key))
	}

	if len(result.Deps.Cycles) > 0 {
		printWarning("%d dependency cycles block a complete order", len(result.Deps.Cycles))
		for _, cycle := range result.Deps.Cycles {
			printDetail("%s", strings.Join(cycle, " ↔ "))
		}
	}
	if len(result.Deps.Excluded) > 0 {
		printDetail("unordered: %s", strings.Join(result.Deps.Excluded, ", "))
	}
	return nil
}
