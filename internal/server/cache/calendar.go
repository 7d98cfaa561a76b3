// Package cache holds the per-month intake calendar cache. All days of one
// member's month live in a single entry sharing one TTL, so a partial month
// can be read field by field and completed day by day.
package cache

import (
	"context"
	"time"

	"github.com/kcaldiary/kcaldiary/internal/datex"
	"github.com/kcaldiary/kcaldiary/internal/server/models"
)

type Calendar interface {
	// GetMonth returns the cached subset of days for the month, possibly
	// empty, and refreshes the entry's TTL. Undecodable fields are skipped,
	// not fatal.
	GetMonth(ctx context.Context, memberID string, month datex.YearMonth) (map[time.Time]models.IntakeSummary, error)

	// PutDay upserts one day's summary and refreshes the entry's TTL.
	// Writing the same value twice is a no-op in effect.
	PutDay(ctx context.Context, memberID string, month datex.YearMonth, day time.Time, summary models.IntakeSummary) error
}
