package utils

import (
	"time"

	"github.com/yukikurage/supertask-api/internal/constants"
)

// Due dates are calendar dates. They are stored as midnight UTC so that date
// comparisons behave the same on every database driver.

// Today returns the calendar date of now in loc, as midnight UTC.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc != nil {
		now = now.In(loc)
	}
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a date value.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(constants.DateLayout, value)
}

// NormalizeDate drops the time of day, keeping the calendar date t carries.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a date as YYYY-MM-DD, or nil when unset.
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(constants.DateLayout)
	return &s
}
