package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmorales/docrank/pkg/pipeline"
)

// formatExtensions maps output formats to file extensions.
var formatExtensions = map[string]string{
	pipeline.FormatJSON:     ".json",
	pipeline.FormatMarkdown: ".md",
	pipeline.FormatDOT:      ".dot",
	pipeline.FormatSVG:      ".svg",
}

// writeArtifacts writes rendered artifacts to disk. With a single format
// the output path is used verbatim; with multiple formats it becomes the
// base path and each artifact gets its own extension. An empty output
// prints the single artifact to stdout instead.
func writeArtifacts(result *pipeline.Result, formats []string, output string) error {
	if output == "" {
		if len(formats) == 1 {
			_, err := os.Stdout.Write(result.Artifacts[formats[0]])
			return err
		}
		return fmt.Errorf("--output is required with multiple formats")
	}

	for _, format := range formats {
		path := output
		if len(formats) > 1 {
			path = strings.TrimSuffix(output, filepath.Ext(output)) + formatExtensions[format]
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}
