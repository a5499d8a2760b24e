package report

import (
	"fmt"
	"strings"
)

// Markdown renders a rank report as a Markdown table.
func (r RankReport) Markdown() string {
	var b strings.Builder
	b.WriteString("# Document Ranking\n\n")
	if r.Converged {
		fmt.Fprintf(&b, "Converged after %d iterations (delta %.2e).\n\n", r.Iterations, r.FinalDelta)
	} else {
		fmt.Fprintf(&b, "Did not converge within %d iterations (delta %.2e).\n\n", r.Iterations, r.FinalDelta)
	}
	b.WriteString("| Rank | Document | Score | Influence | In | Out |\n")
	b.WriteString("|-----:|----------|------:|----------:|---:|----:|\n")
	for i, e := range r.Entries {
		fmt.Fprintf(&b, "| %d | %s | %.6f | %.6f | %d | %d |\n",
			i+1, e.Key, e.Score, e.Influence, e.InDegree, e.OutDegree)
	}
	return b.String()
}

// Markdown renders a HITS report as a Markdown table.
func (r HitsReport) Markdown() string {
	var b strings.Builder
	b.WriteString("# Authority and Hub Scores\n\n")
	b.WriteString("| Rank | Document | Authority | Hub |\n")
	b.WriteString("|-----:|----------|----------:|----:|\n")
	for i, e := range r.Entries {
		fmt.Fprintf(&b, "| %d | %s | %.6f | %.6f |\n", i+1, e.Key, e.Authority, e.Hub)
	}
	return b.String()
}

// Markdown renders a dependency report: the study order followed by any
// cycles that blocked parts of it.
func (r DependencyReport) Markdown() string {
	var b strings.Builder
	b.WriteString("# Dependency Order\n\n")
	for i, key := range r.Order {
		fmt.Fprintf(&b, "%d. %s\n", i+1, key)
	}
	if len(r.Cycles) > 0 {
		b.WriteString("\n## Cycles\n\n")
		for _, cycle := range r.Cycles {
			fmt.Fprintf(&b, "- %s\n", strings.Join(cycle, " ↔ "))
		}
	}
	if len(r.Excluded) > 0 {
		b.WriteString("\n## Unordered\n\n")
		fmt.Fprintf(&b, "%s\n", strings.Join(r.Excluded, ", "))
	}
	return b.String()
}

// Markdown renders the critical path as an arrow chain with its total.
func (r PathReport) Markdown() string {
	var b strings.Builder
	b.WriteString("# Critical Path\n\n")
	fmt.Fprintf(&b, "%s\n\nTotal weight: %.2f\n", strings.Join(r.Path, " → "), r.TotalWeight)
	return b.String()
}

// Markdown renders a curriculum as an indented checklist, one level of
// indentation per prerequisite depth below the maximum.
func (r CurriculumReport) Markdown() string {
	maxDepth := 0
	for _, s := range r.Steps {
		if s.Depth > maxDepth {
			maxDepth = s.Depth
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Curriculum for %s\n\n", r.Target)
	for _, s := range r.Steps {
		indent := strings.Repeat("  ", maxDepth-s.Depth)
		fmt.Fprintf(&b, "%s- [ ] %s\n", indent, s.Key)
	}
	return b.String()
}
