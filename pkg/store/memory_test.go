package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStore_SaveGetList(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for i, id := range []string{"run-1", "run-2", "run-3"} {
		rec := RunRecord{
			RunID:     id,
			GraphHash: "h",
			Nodes:     i + 1,
			StartedAt: time.Date(2026, 1, 1, 0, i, 0, 0, time.UTC),
		}
		if err := s.Save(ctx, rec); err != nil {
			t.Fatalf("Save(%s) error = %v", id, err)
		}
	}

	got, err := s.Get(ctx, "run-2")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Nodes != 2 {
		t.Errorf("Nodes = %d, want 2", got.Nodes)
	}

	if _, err := s.Get(ctx, "nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Get(nope) error = %v, want ErrRunNotFound", err)
	}

	recent, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(recent) != 2 || recent[0].RunID != "run-3" || recent[1].RunID != "run-2" {
		t.Errorf("List() = %v, want newest two first", recent)
	}

	all, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List(0) error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("List(0) = %d records, want all 3", len(all))
	}
}
