// Package timeline answers effective-as-of lookups over a member's
// profile snapshot history.
package timeline

import (
	"sort"
	"time"

	"github.com/kcaldiary/kcaldiary/internal/datex"
	"github.com/kcaldiary/kcaldiary/internal/server/models"
)

// Timeline is an ordered, deduplicated view of profile snapshots keyed by
// effective date. It is built fresh for one reconciliation pass and never
// persisted.
type Timeline struct {
	days  []time.Time
	snaps []*models.ProfileSnapshot
}

// New builds a timeline from snapshots in any order. When two snapshots
// share an effective date, the one later in the input stands.
func New(snaps []*models.ProfileSnapshot) *Timeline {
	byDay := make(map[time.Time]*models.ProfileSnapshot, len(snaps))
	for _, s := range snaps {
		byDay[datex.Day(s.EffectiveDate)] = s
	}

	days := make([]time.Time, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	ordered := make([]*models.ProfileSnapshot, len(days))
	for i, d := range days {
		ordered[i] = byDay[d]
	}

	return &Timeline{days: days, snaps: ordered}
}

// EffectiveAt returns the snapshot in force on the given day: the one with
// the greatest effective date at or before it. The second return is false
// when the day predates every snapshot.
func (t *Timeline) EffectiveAt(day time.Time) (*models.ProfileSnapshot, bool) {
	d := datex.Day(day)
	i := sort.Search(len(t.days), func(i int) bool { return t.days[i].After(d) })
	if i == 0 {
		return nil, false
	}
	return t.snaps[i-1], true
}

// Len reports the number of distinct effective dates.
func (t *Timeline) Len() int {
	return len(t.days)
}
