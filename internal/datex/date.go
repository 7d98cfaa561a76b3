// Package datex provides date-only helpers shared by the service layers.
//
// The persistence and cache layers deal in calendar dates, not instants.
// Every date in the codebase is represented as a time.Time at midnight UTC,
// produced exclusively by the helpers here so that values compare equal and
// are usable as map keys.
package datex

import (
	"fmt"
	"time"
)

const dayLayout = "2006-01-02"

// Day truncates t to its calendar date at midnight UTC.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a YYYY-MM-DD string into a midnight-UTC date.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day %q: %w", s, err)
	}
	return t, nil
}

// FormatDay renders a date as YYYY-MM-DD.
func FormatDay(t time.Time) string {
	return t.Format(dayLayout)
}

// AgeYears returns the number of whole years between birth and at.
func AgeYears(birth, at time.Time) int {
	birth, at = Day(birth), Day(at)
	years := at.Year() - birth.Year()
	if at.Month() < birth.Month() || (at.Month() == birth.Month() && at.Day() < birth.Day()) {
		years--
	}
	return years
}
