package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmorales/docrank/pkg/analyze"
	"github.com/jmorales/docrank/pkg/graph"
	"github.com/jmorales/docrank/pkg/source"
)

// pathCommand creates the path command.
func (c *CLI) pathCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path [notes-dir]",
		Short: "Print the heaviest prerequisite chain",
		Long: `Print the heaviest prerequisite chain.

Each document carries a difficulty weight from its front matter (default 1).
The critical path is the chain of prerequisites with the largest total
weight, which bounds how quickly the collection can be worked through.

The reference graph must be acyclic; break any reported cycles first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPath(cmd.Context(), args[0])
		},
	}
	return cmd
}

// runPath scans the notes and prints the critical path. The solvers are
// cheap enough here that the pipeline cache is not involved.
func (c *CLI) runPath(ctx context.Context, dir string) error {
	scan, err := source.Scan(dir)
	if err != nil {
		return err
	}
	g, err := graph.Build(scan.Nodes, scan.Edges)
	if err != nil {
		return err
	}

	res, err := analyze.CriticalPath(g, nil)
	if err != nil {
		return fmt.Errorf("critical path: %w", err)
	}
	if len(res.Path) == 0 {
		printInfo("No documents found")
		return nil
	}

	keys := g.Keys(res.Path)
	printSuccess("Critical path: %d documents, total weight %.2f", len(keys), res.Total)
	fmt.Println("  " + StyleValue.Render(strings.Join(keys, " "+iconArrow+" ")))
	return nil
}
