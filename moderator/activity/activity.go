package activity

import (
	"context"
	"time"
)

// One row of a ranked activity report.
type UserCount struct {
	Identity string
	Count    int
}

// ActivityStore tracks per-user activity timestamps and answers ranked
// "most active within window" queries.
//
// Record is append-only and called once for every accepted (non-escalated)
// event. Rank is a pure query: counts are taken over [now-window, now],
// ordered by descending count with ties broken by first-appearance order, and
// truncated to topN. Queries may run concurrently with writes; an
// approximate read is acceptable.
type ActivityStore interface {
	Record(ctx context.Context, identity string, ts time.Time) error
	Rank(ctx context.Context, window time.Duration, topN int) ([]UserCount, error)
}
