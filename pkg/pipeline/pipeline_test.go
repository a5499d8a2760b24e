package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmorales/docrank/pkg/cache"
	apperrors "github.com/jmorales/docrank/pkg/errors"
	"github.com/jmorales/docrank/pkg/store"
)

// notesDir writes a small linked notes collection:
// calculus -> algebra, calculus -> sets, algebra -> sets.
func notesDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"sets.md":     "+++\ntitle = \"Sets\"\ndifficulty = 1.0\n+++\nFoundations.",
		"algebra.md":  "+++\ndifficulty = 2.0\n+++\nNeeds [[sets]].",
		"calculus.md": "Needs [[algebra]] and [[sets]].",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"missing dir", Options{}},
		{"bad damping", Options{Dir: "x", Damping: 1.5}},
		{"bad format", Options{Dir: "x", Formats: []string{"pdf"}}},
		{"traversal seed", Options{Dir: "x", Seed: "../etc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); err == nil {
				t.Error("ValidateAndSetDefaults() = nil, want error")
			}
		})
	}

	opts := Options{Dir: "x"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("defaults rejected: %v", err)
	}
	if opts.Damping != 0.85 || opts.MaxIterations != 100 {
		t.Errorf("defaults = %+v, want damping 0.85 and 100 iterations", opts)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
		t.Errorf("Formats = %v, want default json", opts.Formats)
	}
}

func TestExecute_EndToEnd(t *testing.T) {
	runner := NewRunner(nil, nil, nil, nil)
	res, err := runner.Execute(context.Background(), Options{
		Dir:     notesDir(t),
		Formats: []string{FormatJSON, FormatMarkdown, FormatDOT},
		Hits:    true,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if res.RunID == "" {
		t.Error("RunID must be set")
	}
	if res.Stats.NodeCount != 3 || res.Stats.EdgeCount != 3 {
		t.Errorf("stats = %+v, want 3 nodes 3 edges", res.Stats)
	}
	if len(res.Rank.Entries) != 3 {
		t.Fatalf("Rank.Entries = %v, want 3", res.Rank.Entries)
	}
	// sets receives links from both other notes and must rank first.
	if res.Rank.Entries[0].Key != "sets" {
		t.Errorf("top ranked = %s, want sets", res.Rank.Entries[0].Key)
	}
	if res.Hits == nil || len(res.Hits.Entries) != 3 {
		t.Errorf("Hits = %+v, want 3 entries", res.Hits)
	}
	if len(res.Deps.Cycles) != 0 || len(res.Deps.Order) != 3 {
		t.Errorf("Deps = %+v, want full acyclic order", res.Deps)
	}

	for _, format := range []string{FormatJSON, FormatMarkdown, FormatDOT} {
		if len(res.Artifacts[format]) == 0 {
			t.Errorf("artifact %s missing", format)
		}
	}
	if !strings.Contains(string(res.Artifacts[FormatDOT]), `"calculus" -> "algebra"`) {
		t.Errorf("dot artifact missing edge:\n%s", res.Artifacts[FormatDOT])
	}
}

func TestExecute_CacheRoundTrip(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil, nil)
	defer runner.Close()

	dir := notesDir(t)
	opts := Options{Dir: dir, Formats: []string{FormatJSON}}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("first Execute() error = %v", err)
	}
	if first.CacheInfo.RankHit || first.CacheInfo.RenderHit {
		t.Errorf("first run must miss: %+v", first.CacheInfo)
	}

	second, err := runner.Execute(context.Background(), Options{Dir: dir, Formats: []string{FormatJSON}})
	if err != nil {
		t.Fatalf("second Execute() error = %v", err)
	}
	if !second.CacheInfo.RankHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run must hit: %+v", second.CacheInfo)
	}
	if second.GraphHash != first.GraphHash {
		t.Error("unchanged notes must hash identically")
	}

	refreshed, err := runner.Execute(context.Background(), Options{
		Dir: dir, Formats: []string{FormatJSON}, Refresh: true,
	})
	if err != nil {
		t.Fatalf("refresh Execute() error = %v", err)
	}
	if refreshed.CacheInfo.RankHit {
		t.Error("refresh must bypass the cache")
	}
}

func TestExecute_TargetReports(t *testing.T) {
	runner := NewRunner(nil, nil, nil, nil)
	res, err := runner.Execute(context.Background(), Options{
		Dir:    notesDir(t),
		Target: "calculus",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if res.Curriculum == nil {
		t.Fatal("Curriculum missing")
	}
	steps := res.Curriculum.Steps
	if len(steps) != 3 || steps[len(steps)-1].Key != "calculus" {
		t.Errorf("Curriculum = %+v, want calculus last of 3", steps)
	}
	if res.Path == nil {
		t.Fatal("Path missing on acyclic graph")
	}
	// Weights 1 + 2 + 1 (default) along sets -> algebra -> calculus.
	if res.Path.TotalWeight != 4 {
		t.Errorf("TotalWeight = %v, want 4", res.Path.TotalWeight)
	}
}

func TestExecute_UnknownSeedAndTarget(t *testing.T) {
	runner := NewRunner(nil, nil, nil, nil)

	_, err := runner.Execute(context.Background(), Options{Dir: notesDir(t), Seed: "ghost"})
	if !apperrors.Is(err, apperrors.ErrCodeDocumentNotFound) {
		t.Errorf("seed error = %v, want DOCUMENT_NOT_FOUND", err)
	}

	_, err = runner.Execute(context.Background(), Options{Dir: notesDir(t), Target: "ghost"})
	if !apperrors.Is(err, apperrors.ErrCodeDocumentNotFound) {
		t.Errorf("target error = %v, want DOCUMENT_NOT_FOUND", err)
	}
}

func TestExecute_PersistsRun(t *testing.T) {
	st := store.NewMemoryStore()
	runner := NewRunner(nil, nil, st, nil)

	res, err := runner.Execute(context.Background(), Options{Dir: notesDir(t)})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	rec, err := st.Get(context.Background(), res.RunID)
	if err != nil {
		t.Fatalf("Get(%s) error = %v", res.RunID, err)
	}
	if rec.Nodes != 3 || rec.Rank == nil || len(rec.Rank.Entries) != 3 {
		t.Errorf("record = %+v, want full rank report", rec)
	}
}
