package engine

import (
	"fmt"
	"time"
)

// DateLayout is the canonical calendar-day form used everywhere a date is
// stored or compared. Time-of-day is always discarded.
const DateLayout = "2006-01-02"

func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

func ParseDateKey(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func prevDay(t time.Time) time.Time {
	return t.AddDate(0, 0, -1)
}
