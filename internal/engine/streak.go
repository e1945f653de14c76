package engine

import (
	"time"

	"habitquest/internal/storage"
)

// MaxStreakLookback bounds the backward walk. Callers only ever need recent
// streak depth, so scanning further over sparse history is wasted work.
const MaxStreakLookback = 365

// ComputeStreak counts consecutive "done" active days ending at (and
// including) the reference date. Inactive days (weekends for weekday habits)
// are skipped without breaking the streak. The walk stops at the habit's
// creation day, at the first miss, or after MaxStreakLookback iterations.
//
// A reference day with no checkin yet breaks the walk immediately, so the
// streak reflects prior days only; it does not penalize "not yet done
// today".
func ComputeStreak(h *storage.Habit, checkins []storage.Checkin, reference time.Time) int {
	byDate := make(map[string]CheckinStatus, len(checkins))
	for _, c := range checkins {
		byDate[c.Date] = CheckinStatus(c.Status)
	}

	createdKey := DateKey(h.CreatedAt)
	streak := 0
	day := reference

	for i := 0; i < MaxStreakLookback; i++ {
		key := DateKey(day)
		if key < createdKey {
			break
		}
		if !IsActiveOnDate(h, day) {
			day = prevDay(day)
			continue
		}
		if byDate[key] != StatusDone {
			break
		}
		streak++
		day = prevDay(day)
	}

	return streak
}

// NeverMissTwice reports whether the "never miss twice" grace warning should
// show: yesterday was an active day that went skipped or unmarked, and today
// is not done yet. A weekend yesterday (for weekday habits) or a yesterday
// before the habit existed never warns.
func NeverMissTwice(h *storage.Habit, todayCheckin, yesterdayCheckin *storage.Checkin, today time.Time) bool {
	if todayCheckin != nil && CheckinStatus(todayCheckin.Status) == StatusDone {
		return false
	}

	yesterday := prevDay(today)
	if DateKey(yesterday) < DateKey(h.CreatedAt) {
		return false
	}
	if Schedule(h.Schedule) == ScheduleWeekdays && IsWeekend(yesterday) {
		return false
	}

	return yesterdayCheckin == nil || CheckinStatus(yesterdayCheckin.Status) == StatusSkipped
}
