// Package store persists event records. All writes are upserts on the
// (title, start date) natural key so repeated runs converge instead of
// accumulating duplicate rows.
package store

import (
	"context"
	"time"

	"github.com/silverhaven/eventscout/internal/model"
)

// EventStore is the pipeline's only view of the persistent store
type EventStore interface {
	// Upsert writes the batch, merging on the natural key, and returns
	// the number of rows inserted or modified.
	Upsert(ctx context.Context, events []model.EventRecord) (int, error)

	// ListUpcoming returns future-dated events ordered by start date,
	// bounded by limit. Used by the directory's page rendering.
	ListUpcoming(ctx context.Context, now time.Time, limit int64) ([]model.EventRecord, error)
}
