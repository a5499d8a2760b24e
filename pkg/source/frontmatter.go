package source

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"
)

// FrontMatter is the optional TOML header of a note.
type FrontMatter struct {
	Title      string   `toml:"title"`
	Difficulty float64  `toml:"difficulty"`
	Tags       []string `toml:"tags"`
}

var fence = []byte("+++")

// splitFrontMatter separates a note into its front matter block and body.
// Notes without a leading +++ fence have no front matter and are returned
// unchanged.
func splitFrontMatter(data []byte) (header, body []byte) {
	if !bytes.HasPrefix(data, fence) {
		return nil, data
	}
	rest := data[len(fence):]
	end := bytes.Index(rest, fence)
	if end < 0 {
		return nil, data
	}
	return rest[:end], rest[end+len(fence):]
}

// parseFrontMatter decodes the TOML header of a note. Notes without a
// header yield a zero FrontMatter and the full body.
func parseFrontMatter(data []byte) (FrontMatter, []byte, error) {
	header, body := splitFrontMatter(data)
	var fm FrontMatter
	if header == nil {
		return fm, body, nil
	}
	if err := toml.Unmarshal(header, &fm); err != nil {
		return fm, nil, fmt.Errorf("decode front matter: %w", err)
	}
	return fm, body, nil
}
