// Package source builds graph input from a directory of Markdown notes.
//
// Every *.md file below the root becomes a node keyed by its relative path
// without the extension. References between notes come from two link forms:
//
//   - wikilinks: [[other-note]] or [[other-note|display text]]
//   - inline links: [text](other-note.md), resolved relative to the file
//
// A link from note A to note B produces the directed edge A → B. Links that
// resolve to no known note are dropped and counted, never invented as
// phantom nodes.
//
// An optional TOML front matter block fenced by +++ lines supplies the note
// title and its difficulty, which becomes the node weight used in
// critical-path analysis.
package source
