package datex

import (
	"fmt"
	"time"
)

const yearMonthLayout = "2006-01"

// YearMonth identifies one calendar month.
type YearMonth struct {
	Year  int
	Month time.Month
}

// YearMonthOf returns the month containing t.
func YearMonthOf(t time.Time) YearMonth {
	t = t.UTC()
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// ParseYearMonth parses a YYYY-MM string.
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse(yearMonthLayout, s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("parse year-month %q: %w", s, err)
	}
	return YearMonth{Year: t.Year(), Month: t.Month()}, nil
}

// String renders the month as YYYY-MM.
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// First returns the first day of the month.
func (ym YearMonth) First() time.Time {
	return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Last returns the last day of the month.
func (ym YearMonth) Last() time.Time {
	// day 0 of the next month normalizes to the final day of this one
	return time.Date(ym.Year, ym.Month+1, 0, 0, 0, 0, 0, time.UTC)
}

// Days enumerates every date of the month in ascending order.
func (ym YearMonth) Days() []time.Time {
	days := make([]time.Time, 0, 31)
	for d := ym.First(); !d.After(ym.Last()); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
