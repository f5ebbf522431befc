package utils

import (
	"fmt"
	"math"
	"time"

	"github.com/su2708/studyplan/internal/constants"
)

// ParseCompactDate parses a YYYYMMDD date at midnight in loc
func ParseCompactDate(date string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(constants.CompactDateFormat, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYYMMDD): %w", date, err)
	}
	return t, nil
}

// FormatCompactDate renders a YYYYMMDD date as YYYY-MM-DD. Unparseable input is returned as is.
func FormatCompactDate(date string) string {
	t, err := time.Parse(constants.CompactDateFormat, date)
	if err != nil {
		return date
	}
	return t.Format(constants.DateFormat)
}

// TodayCompact returns the date of now as YYYYMMDD
func TodayCompact(now time.Time) string {
	return now.Format(constants.CompactDateFormat)
}

// DaysRemaining returns the whole days from since until the test date, rounded up.
// Past dates give zero or a negative count.
func DaysRemaining(testDate string, since time.Time) (int, error) {
	target, err := ParseCompactDate(testDate, since.Location())
	if err != nil {
		return 0, err
	}
	return int(math.Ceil(target.Sub(since).Hours() / 24)), nil
}
