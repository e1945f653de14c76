package engine

import (
	"time"

	"habitquest/internal/storage"
)

// IsActiveOnDate reports whether a habit is schedulable on the given
// calendar day. Days strictly before the habit's creation day never count,
// and weekday habits are inactive on weekends. Dates are compared as
// calendar-day strings, never as timestamps.
func IsActiveOnDate(h *storage.Habit, date time.Time) bool {
	if DateKey(date) < DateKey(h.CreatedAt) {
		return false
	}
	if Schedule(h.Schedule) == ScheduleDaily {
		return true
	}
	return !IsWeekend(date)
}

func FilterActiveForDate(habits []storage.Habit, date time.Time) []storage.Habit {
	var out []storage.Habit
	for i := range habits {
		if IsActiveOnDate(&habits[i], date) {
			out = append(out, habits[i])
		}
	}
	return out
}
