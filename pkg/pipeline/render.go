package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jmorales/docrank/pkg/graph"
	"github.com/jmorales/docrank/pkg/report"
)

// jsonPayload is the combined JSON artifact.
type jsonPayload struct {
	RunID      string                   `json:"run_id"`
	GraphHash  string                   `json:"graph_hash"`
	Nodes      int                      `json:"nodes"`
	Edges      int                      `json:"edges"`
	Unresolved int                      `json:"unresolved_links,omitempty"`
	Rank       report.RankReport        `json:"rank"`
	Hits       *report.HitsReport       `json:"hits,omitempty"`
	Deps       report.DependencyReport  `json:"deps"`
	Path       *report.PathReport       `json:"path,omitempty"`
	Curriculum *report.CurriculumReport `json:"curriculum,omitempty"`
}

// renderArtifacts produces one artifact per requested format.
func renderArtifacts(g *graph.Graph, opts Options, result *Result) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	var dot string
	for _, format := range opts.Formats {
		switch format {
		case FormatJSON:
			data, err := json.MarshalIndent(jsonPayload{
				RunID:      result.RunID,
				GraphHash:  result.GraphHash,
				Nodes:      result.Stats.NodeCount,
				Edges:      result.Stats.EdgeCount,
				Unresolved: result.Stats.Unresolved,
				Rank:       result.Rank,
				Hits:       result.Hits,
				Deps:       result.Deps,
				Path:       result.Path,
				Curriculum: result.Curriculum,
			}, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("marshal json artifact: %w", err)
			}
			artifacts[format] = data

		case FormatMarkdown:
			artifacts[format] = []byte(renderMarkdown(result))

		case FormatDOT:
			if dot == "" {
				dot = buildDOT(g, result)
			}
			artifacts[format] = []byte(dot)

		case FormatSVG:
			if dot == "" {
				dot = buildDOT(g, result)
			}
			svg, err := report.RenderSVG(dot)
			if err != nil {
				return nil, fmt.Errorf("render svg: %w", err)
			}
			artifacts[format] = svg

		default:
			return nil, fmt.Errorf("unsupported format %q", format)
		}
	}
	return artifacts, nil
}

// renderMarkdown concatenates the section renderers into one document.
func renderMarkdown(result *Result) string {
	sections := []string{result.Rank.Markdown()}
	if result.Hits != nil {
		sections = append(sections, result.Hits.Markdown())
	}
	sections = append(sections, result.Deps.Markdown())
	if result.Path != nil {
		sections = append(sections, result.Path.Markdown())
	}
	if result.Curriculum != nil {
		sections = append(sections, result.Curriculum.Markdown())
	}
	return strings.Join(sections, "\n")
}

// buildDOT shades nodes by score and outlines the critical path.
func buildDOT(g *graph.Graph, result *Result) string {
	scores := make([]float64, g.NodeCount())
	for _, e := range result.Rank.Entries {
		if i, ok := g.Index(e.Key); ok {
			scores[i] = e.Score
		}
	}

	var highlight []int
	if result.Path != nil {
		for _, key := range result.Path.Path {
			if i, ok := g.Index(key); ok {
				highlight = append(highlight, i)
			}
		}
	}

	return report.ToDOT(g, report.DotOptions{Scores: scores, Highlight: highlight})
}
