package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmorales/docrank/pkg/pipeline"
)

// curriculumCommand creates the curriculum command.
func (c *CLI) curriculumCommand() *cobra.Command {
	var noCache bool
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "curriculum [notes-dir] [target]",
		Short: "Print the study sequence for one document",
		Long: `Print the study sequence for one document.

The curriculum lists every transitive prerequisite of the target document
in study order, deepest prerequisites first and the target last. Use
--max-depth to bound how far back the prerequisite chain is followed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Dir = args[0]
			opts.Target = args[1]
			return c.runCurriculum(cmd.Context(), opts, noCache)
		},
	}

	cmd.Flags().IntVar(&opts.MaxDepth, "max-depth", 0, "prerequisite depth bound (0 = unbounded)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")

	return cmd
}

// runCurriculum executes the pipeline and prints the study sequence.
func (c *CLI) runCurriculum(ctx context.Context, opts pipeline.Options, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	if result.Curriculum == nil {
		return fmt.Errorf("no curriculum produced for %q", opts.Target)
	}

	steps := result.Curriculum.Steps
	printSuccess("Curriculum for %s: %d steps", opts.Target, len(steps))

	maxDepth := 0
	for _, s := range steps {
		if s.Depth > maxDepth {
			maxDepth = s.Depth
		}
	}
	for _, s := range steps {
		indent := strings.Repeat("  ", maxDepth-s.Depth)
		fmt.Printf("  %s%s %s\n", indent, StyleDim.Render("•"), StyleValue.Render(s.Key))
	}
	return nil
}
