package loader

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Stats accumulates counters across the pipeline stages of one load run
type Stats struct {
	RunID     string
	StartedAt time.Time

	rowsRead               atomic.Int64
	inserted               atomic.Int64
	skippedMissingCustomer atomic.Int64
	skippedCancelled       atomic.Int64
	skippedMalformed       atomic.Int64
}

// NewStats creates counters for a new run with a fresh run ID
func NewStats() *Stats {
	return &Stats{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
}

// Snapshot is an immutable view of the counters, suitable for logging
// and JSON export
type Snapshot struct {
	RunID                  string        `json:"run_id"`
	RowsRead               int64         `json:"rows_read"`
	Inserted               int64         `json:"inserted"`
	SkippedMissingCustomer int64         `json:"skipped_missing_customer"`
	SkippedCancelled       int64         `json:"skipped_cancelled"`
	SkippedMalformed       int64         `json:"skipped_malformed"`
	Duration               time.Duration `json:"duration_ns"`
}

// Snapshot captures the current counter values
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		RunID:                  s.RunID,
		RowsRead:               s.rowsRead.Load(),
		Inserted:               s.inserted.Load(),
		SkippedMissingCustomer: s.skippedMissingCustomer.Load(),
		SkippedCancelled:       s.skippedCancelled.Load(),
		SkippedMalformed:       s.skippedMalformed.Load(),
		Duration:               time.Since(s.StartedAt),
	}
}
