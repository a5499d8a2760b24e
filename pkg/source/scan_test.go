package source

import (
	"os"
	"path/filepath"
	"testing"
)

func writeNote(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScan_WikilinksAndFrontMatter(t *testing.T) {
	root := t.TempDir()
	writeNote(t, root, "algebra.md", "+++\ntitle = \"Algebra\"\ndifficulty = 2.5\n+++\nBasics.")
	writeNote(t, root, "calculus.md", "Needs [[algebra]] first, see also [[algebra|the basics]].")

	res, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if len(res.Nodes) != 2 {
		t.Fatalf("Nodes = %v, want 2", res.Nodes)
	}
	// Sorted by path: algebra before calculus.
	if res.Nodes[0].Key != "algebra" || res.Nodes[0].Weight != 2.5 {
		t.Errorf("node 0 = %+v, want algebra with weight 2.5", res.Nodes[0])
	}
	if res.Nodes[0].Attrs["title"] != "Algebra" {
		t.Errorf("title attr = %q, want Algebra", res.Nodes[0].Attrs["title"])
	}

	if len(res.Edges) != 2 {
		t.Fatalf("Edges = %v, want both wikilink forms", res.Edges)
	}
	for _, e := range res.Edges {
		if e.From != "calculus" || e.To != "algebra" {
			t.Errorf("edge = %+v, want calculus -> algebra", e)
		}
	}
}

func TestScan_InlineLinksRelative(t *testing.T) {
	root := t.TempDir()
	writeNote(t, root, "topics/linear.md", "See [intro](../intro.md) and [sets](sets.md).")
	writeNote(t, root, "topics/sets.md", "Sets.")
	writeNote(t, root, "intro.md", "Intro.")

	res, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	got := map[string]bool{}
	for _, e := range res.Edges {
		got[e.From+"->"+e.To] = true
	}
	for _, want := range []string{"topics/linear->intro", "topics/linear->topics/sets"} {
		if !got[want] {
			t.Errorf("missing edge %s in %v", want, res.Edges)
		}
	}
	if res.Unresolved != 0 {
		t.Errorf("Unresolved = %d, want 0", res.Unresolved)
	}
}

func TestScan_UnresolvedLinksDropped(t *testing.T) {
	root := t.TempDir()
	writeNote(t, root, "a.md", "[[missing]] and [gone](nowhere.md) and https://example.com plain.")

	res, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(res.Edges) != 0 {
		t.Errorf("Edges = %v, want none", res.Edges)
	}
	if res.Unresolved != 2 {
		t.Errorf("Unresolved = %d, want 2", res.Unresolved)
	}
	if len(res.Nodes) != 1 {
		t.Errorf("Nodes = %v, phantom nodes must not be created", res.Nodes)
	}
}

func TestScan_ExternalURLsIgnored(t *testing.T) {
	root := t.TempDir()
	writeNote(t, root, "a.md", "[site](https://example.com/page.md) [anchor](#top)")

	res, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(res.Edges) != 0 || res.Unresolved != 0 {
		t.Errorf("edges = %v unresolved = %d, want none", res.Edges, res.Unresolved)
	}
}

func TestScan_SelfReferenceSkipped(t *testing.T) {
	root := t.TempDir()
	writeNote(t, root, "a.md", "me: [[a]]")

	res, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(res.Edges) != 0 {
		t.Errorf("Edges = %v, self references must be dropped", res.Edges)
	}
}

func TestScan_BareNameAmbiguity(t *testing.T) {
	root := t.TempDir()
	writeNote(t, root, "x/note.md", "one")
	writeNote(t, root, "y/note.md", "two")
	writeNote(t, root, "index.md", "[[note]]")

	res, err := Scan(root)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	// Two notes share the bare name: the link cannot be resolved.
	if len(res.Edges) != 0 || res.Unresolved != 1 {
		t.Errorf("edges = %v unresolved = %d, want ambiguous link dropped", res.Edges, res.Unresolved)
	}
}

func TestScan_BadFrontMatterFails(t *testing.T) {
	root := t.TempDir()
	writeNote(t, root, "a.md", "+++\ntitle = unterminated\n+++\nbody")

	if _, err := Scan(root); err == nil {
		t.Fatal("Scan() = nil error, want front matter failure")
	}
}

func TestScan_MissingDirectory(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("Scan() = nil error, want stat failure")
	}
}
