// Package store persists completed analysis runs so ranking history can be
// inspected after the fact. The HTTP server records every run; the CLI
// stays store-free.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/jmorales/docrank/pkg/report"
)

// ErrRunNotFound is returned when no record exists for a run ID.
var ErrRunNotFound = errors.New("run not found")

// RunRecord is one persisted analysis run.
type RunRecord struct {
	RunID     string    `json:"run_id" bson:"run_id"`
	GraphHash string    `json:"graph_hash" bson:"graph_hash"`
	Nodes     int       `json:"nodes" bson:"nodes"`
	Edges     int       `json:"edges" bson:"edges"`
	StartedAt time.Time `json:"started_at" bson:"started_at"`
	Duration  float64   `json:"duration_seconds" bson:"duration_seconds"`

	Rank *report.RankReport       `json:"rank,omitempty" bson:"rank,omitempty"`
	Hits *report.HitsReport       `json:"hits,omitempty" bson:"hits,omitempty"`
	Deps *report.DependencyReport `json:"deps,omitempty" bson:"deps,omitempty"`
}

// Store persists run records.
type Store interface {
	// Save inserts a record. Run IDs are unique per run, never reused.
	Save(ctx context.Context, rec RunRecord) error

	// Get returns the record for a run ID, or ErrRunNotFound.
	Get(ctx context.Context, runID string) (RunRecord, error)

	// List returns the most recent records, newest first, at most limit.
	List(ctx context.Context, limit int) ([]RunRecord, error)

	Close(ctx context.Context) error
}
