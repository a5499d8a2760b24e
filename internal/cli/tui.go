package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jmorales/docrank/pkg/pipeline"
	"github.com/jmorales/docrank/pkg/report"
)

// tuiCommand creates the interactive ranking browser.
func (c *CLI) tuiCommand() *cobra.Command {
	var noCache bool
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "tui [notes-dir]",
		Short: "Browse rankings interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Dir = args[0]
			return c.runTUI(cmd.Context(), opts, noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Hits, "hits", false, "also compute authority and hub scores")

	return cmd
}

// runTUI executes the pipeline and hands the results to the browser.
func (c *CLI) runTUI(ctx context.Context, opts pipeline.Options, noCache bool) error {
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
	if len(result.Rank.Entries) == 0 {
		printInfo("No documents found")
		return nil
	}

	model := newRankBrowser(result.Rank, result.Deps)
	_, err = tea.NewProgram(model, tea.WithContext(ctx)).Run()
	return err
}

// rankBrowser is the bubbletea model for scrolling through ranked
// documents.
type rankBrowser struct {
	entries []report.RankEntry
	deps    report.DependencyReport
	cursor  int
	offset  int
	height  int
}

func newRankBrowser(rank report.RankReport, deps report.DependencyReport) rankBrowser {
	return rankBrowser{entries: rank.Entries, deps: deps, height: 15}
}

func (m rankBrowser) Init() tea.Cmd {
	return nil
}

func (m rankBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 8
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m rankBrowser) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Document Ranking"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.entries) {
		end = len(m.entries)
	}

	for i := m.offset; i < end; i++ {
		e := m.entries[i]
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%3d. %-40s %.4f", cursor, i+1, e.Key, e.Score)
		if i == m.cursor {
			line = StyleTitle.Render(line)
		} else {
			line = StyleValue.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	sel := m.entries[m.cursor]
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("influence %.4f · in %d · out %d · cycles %d",
		sel.Influence, sel.InDegree, sel.OutDegree, len(m.deps.Cycles))))
	b.WriteString("\n")

	return b.String()
}
