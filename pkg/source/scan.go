package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jmorales/docrank/pkg/graph"
)

// Result is the scan outcome: node and edge specs ready for graph.Build,
// plus counters describing what the scan saw.
type Result struct {
	Nodes []graph.NodeSpec
	Edges []graph.EdgeSpec

	// Unresolved counts links whose target matched no scanned note.
	Unresolved int
}

// Scan walks root for Markdown notes and extracts the reference graph.
// Node order follows the sorted relative paths, so repeated scans of an
// unchanged directory produce identical specs.
func Scan(root string) (*Result, error) {
	if info, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("notes directory: %w", err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("notes directory: %s is not a directory", root)
	}

	var paths []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && p != root {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(p), ".md") {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan notes: %w", err)
	}
	sort.Strings(paths)

	keys := make([]string, len(paths))
	for i, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil, fmt.Errorf("scan notes: %w", err)
		}
		keys[i] = strings.TrimSuffix(filepath.ToSlash(rel), filepath.Ext(rel))
	}

	res := &Result{Nodes: make([]graph.NodeSpec, len(paths))}
	links := newResolver(keys)

	for i, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read note %s: %w", keys[i], err)
		}
		fm, body, err := parseFrontMatter(data)
		if err != nil {
			return nil, fmt.Errorf("note %s: %w", keys[i], err)
		}

		attrs := map[string]string{}
		if fm.Title != "" {
			attrs["title"] = fm.Title
		}
		if len(fm.Tags) > 0 {
			attrs["tags"] = strings.Join(fm.Tags, ",")
		}
		res.Nodes[i] = graph.NodeSpec{Key: keys[i], Attrs: attrs, Weight: fm.Difficulty}

		for _, target := range extractLinks(body) {
			to, ok := links.resolve(keys[i], target)
			if !ok {
				res.Unresolved++
				continue
			}
			if to == keys[i] {
				continue
			}
			res.Edges = append(res.Edges, graph.EdgeSpec{From: keys[i], To: to})
		}
	}

	return res, nil
}
