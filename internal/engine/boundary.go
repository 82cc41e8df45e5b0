package engine

import (
	"fmt"
	"time"
)

// DateKeyFormat is the ISO calendar-date layout used app-wide as the
// chronicle dedup key. Do not mix with locale formats; two renderings of
// the same day would defeat the uniqueness constraint.
const DateKeyFormat = "2006-01-02"

// DefaultGraceWindow is how long after midnight a seal still belongs to the
// previous day. A user closing their day at 01:00 means last night, not a
// premature start of today.
const DefaultGraceWindow = 2*time.Hour + 30*time.Minute

// LogicalDate maps an instant to the calendar date a reconciliation
// pertains to: "yesterday" inside the grace window, "today" otherwise.
func LogicalDate(now time.Time, grace time.Duration) string {
	sinceMidnight := time.Duration(now.Hour())*time.Hour +
		time.Duration(now.Minute())*time.Minute +
		time.Duration(now.Second())*time.Second
	if sinceMidnight < grace {
		return now.AddDate(0, 0, -1).Format(DateKeyFormat)
	}
	return now.Format(DateKeyFormat)
}

// EndOfDay returns the last instant of now's calendar day, in now's location.
func EndOfDay(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
}

// DayBounds returns the [start, end) wall-clock range for a date-key.
func DayBounds(dateKey string, loc *time.Location) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation(DateKeyFormat, dateKey, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse date key %q: %w", dateKey, err)
	}
	return day, day.AddDate(0, 0, 1), nil
}
