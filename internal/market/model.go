package market

import "time"

// Market is a monitored (term, location, business type) query owned by a user.
// Never mutated after creation; deletion cascades to its snapshots.
type Market struct {
	ID           int64     `json:"id"`
	UserID       string    `json:"user_id"`
	Term         string    `json:"term"`
	Location     string    `json:"location"`
	BusinessType string    `json:"business_type"`
	CreatedAt    time.Time `json:"created_at"`
}

// Overview is the dashboard listing row: the market plus the date of its
// most recent snapshot, if any.
type Overview struct {
	Market
	LastAnalyzedAt *time.Time `json:"last_analyzed_at,omitempty"`
}
