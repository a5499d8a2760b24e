package report

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/jmorales/docrank/pkg/graph"
)

// DotOptions configures DOT generation.
type DotOptions struct {
	// Scores shades each node by its rank score when non-nil. Must be
	// indexed by node index.
	Scores []float64

	// Highlight marks the given node indices with a bold outline, used for
	// critical-path members.
	Highlight []int
}

// ToDOT converts the document graph to Graphviz DOT format. The resulting
// string can be rendered with [RenderSVG].
func ToDOT(g *graph.Graph, opts DotOptions) string {
	highlight := make(map[int]bool, len(opts.Highlight))
	for _, v := range opts.Highlight {
		highlight[v] = true
	}

	var maxScore float64
	for _, s := range opts.Scores {
		if s > maxScore {
			maxScore = s
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for i := 0; i < g.NodeCount(); i++ {
		attrs := fmt.Sprintf("label=%q", g.Key(i))
		if opts.Scores != nil && maxScore > 0 {
			attrs += fmt.Sprintf(", fillcolor=\"0.58 %.2f 1.0\"", 0.6*opts.Scores[i]/maxScore)
		}
		if highlight[i] {
			attrs += ", penwidth=3"
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", g.Key(i), attrs)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", g.Key(e.From), g.Key(e.To))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root SVG tag so the viewBox starts at the
// origin. Graphviz emits negative offsets that break some viewers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
