package snapshot

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("snapshot not found")

type Repository interface {
	// Insert appends one snapshot row and returns its id. There is no
	// update operation: snapshots are immutable.
	Insert(ctx context.Context, marketID int64, userID string, p Payload) (int64, error)

	// Latest returns ErrNotFound when the market has no snapshots.
	Latest(ctx context.Context, marketID int64) (*Snapshot, error)

	InsertKPI(ctx context.Context, entry KPIEntry) error
	KPIHistory(ctx context.Context, marketID int64) ([]KPIEntry, error)

	// LatestDates maps market id to most recent snapshot time for the
	// dashboard listing.
	LatestDates(ctx context.Context, marketIDs []int64) (map[int64]time.Time, error)
}
