package engine

import (
	"testing"
	"time"

	"habitquest/internal/storage"
)

func day(t *testing.T, key string) time.Time {
	t.Helper()
	d, err := ParseDateKey(key)
	if err != nil {
		t.Fatalf("ParseDateKey(%q): %v", key, err)
	}
	return d
}

func mkHabit(t *testing.T, created string, schedule Schedule) *storage.Habit {
	t.Helper()
	return &storage.Habit{
		ID:        1,
		Title:     "Read",
		Schedule:  string(schedule),
		CreatedAt: day(t, created),
	}
}

func doneOn(dates ...string) []storage.Checkin {
	out := make([]storage.Checkin, 0, len(dates))
	for _, d := range dates {
		out = append(out, storage.Checkin{HabitID: 1, Date: d, Status: string(StatusDone)})
	}
	return out
}

func TestStreakCountsConsecutiveDays(t *testing.T) {
	h := mkHabit(t, "2026-03-02", ScheduleDaily)
	checkins := doneOn("2026-03-02", "2026-03-03", "2026-03-04")

	if got := ComputeStreak(h, checkins, day(t, "2026-03-04")); got != 3 {
		t.Fatalf("streak=%d, want 3", got)
	}
}

func TestStreakBreaksOnMiss(t *testing.T) {
	h := mkHabit(t, "2026-03-02", ScheduleDaily)
	checkins := doneOn("2026-03-02", "2026-03-04")

	if got := ComputeStreak(h, checkins, day(t, "2026-03-04")); got != 1 {
		t.Fatalf("streak=%d, want 1", got)
	}
}

func TestStreakBreaksOnSkip(t *testing.T) {
	h := mkHabit(t, "2026-03-02", ScheduleDaily)
	checkins := doneOn("2026-03-02", "2026-03-03")
	checkins = append(checkins, storage.Checkin{HabitID: 1, Date: "2026-03-04", Status: string(StatusSkipped)})

	if got := ComputeStreak(h, checkins, day(t, "2026-03-04")); got != 0 {
		t.Fatalf("streak=%d, want 0 (skip on reference day)", got)
	}
}

func TestStreakUnmarkedReferenceDay(t *testing.T) {
	h := mkHabit(t, "2026-03-02", ScheduleDaily)
	checkins := doneOn("2026-03-02", "2026-03-03")

	if got := ComputeStreak(h, checkins, day(t, "2026-03-04")); got != 0 {
		t.Fatalf("streak=%d, want 0 (reference day not yet done)", got)
	}
}

func TestWeekdayStreakSkipsWeekend(t *testing.T) {
	// Fri 2026-03-06 done, weekend unmarked, Mon 2026-03-09 done.
	h := mkHabit(t, "2026-03-02", ScheduleWeekdays)
	checkins := doneOn("2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05", "2026-03-06", "2026-03-09")

	if got := ComputeStreak(h, checkins, day(t, "2026-03-09")); got != 6 {
		t.Fatalf("streak=%d, want 6 (weekend must not break)", got)
	}
}

func TestDailyStreakBreaksOverWeekend(t *testing.T) {
	h := mkHabit(t, "2026-03-02", ScheduleDaily)
	checkins := doneOn("2026-03-06", "2026-03-09")

	if got := ComputeStreak(h, checkins, day(t, "2026-03-09")); got != 1 {
		t.Fatalf("streak=%d, want 1 (daily habit needs weekend marks)", got)
	}
}

func TestStreakStopsAtCreationDay(t *testing.T) {
	h := mkHabit(t, "2026-03-09", ScheduleDaily)
	// Marks before creation never count, even if rows exist.
	checkins := doneOn("2026-03-06", "2026-03-07", "2026-03-08", "2026-03-09")

	if got := ComputeStreak(h, checkins, day(t, "2026-03-09")); got != 1 {
		t.Fatalf("streak=%d, want 1 (bounded by creation day)", got)
	}
}

func TestStreakLookbackCap(t *testing.T) {
	h := mkHabit(t, "2020-01-01", ScheduleDaily)
	ref := day(t, "2026-03-02")

	var checkins []storage.Checkin
	for i := 0; i < MaxStreakLookback+40; i++ {
		checkins = append(checkins, storage.Checkin{
			HabitID: 1,
			Date:    DateKey(ref.AddDate(0, 0, -i)),
			Status:  string(StatusDone),
		})
	}

	if got := ComputeStreak(h, checkins, ref); got != MaxStreakLookback {
		t.Fatalf("streak=%d, want %d", got, MaxStreakLookback)
	}
}

func TestNeverMissTwice(t *testing.T) {
	h := mkHabit(t, "2026-03-02", ScheduleDaily)
	today := day(t, "2026-03-04")
	skipped := &storage.Checkin{HabitID: 1, Date: "2026-03-03", Status: string(StatusSkipped)}
	done := &storage.Checkin{HabitID: 1, Date: "2026-03-03", Status: string(StatusDone)}

	if !NeverMissTwice(h, nil, nil, today) {
		t.Fatalf("want warning when yesterday unmarked and today open")
	}
	if !NeverMissTwice(h, nil, skipped, today) {
		t.Fatalf("want warning when yesterday skipped")
	}
	if NeverMissTwice(h, nil, done, today) {
		t.Fatalf("no warning when yesterday done")
	}

	todayDone := &storage.Checkin{HabitID: 1, Date: "2026-03-04", Status: string(StatusDone)}
	if NeverMissTwice(h, todayDone, nil, today) {
		t.Fatalf("no warning once today is done")
	}
}

func TestNeverMissTwiceIgnoresWeekendYesterday(t *testing.T) {
	h := mkHabit(t, "2026-03-02", ScheduleWeekdays)
	// Monday: yesterday was Sunday, not a scheduled day.
	if NeverMissTwice(h, nil, nil, day(t, "2026-03-09")) {
		t.Fatalf("no warning when yesterday was a weekend for a weekday habit")
	}
}

func TestNeverMissTwiceIgnoresPreCreationYesterday(t *testing.T) {
	h := mkHabit(t, "2026-03-04", ScheduleDaily)
	if NeverMissTwice(h, nil, nil, day(t, "2026-03-04")) {
		t.Fatalf("no warning on the habit's first day")
	}
}

func TestIsActiveOnDate(t *testing.T) {
	weekday := mkHabit(t, "2026-03-02", ScheduleWeekdays)
	if IsActiveOnDate(weekday, day(t, "2026-03-07")) {
		t.Fatalf("weekday habit must be inactive on Saturday")
	}
	if !IsActiveOnDate(weekday, day(t, "2026-03-06")) {
		t.Fatalf("weekday habit must be active on Friday")
	}
	if IsActiveOnDate(weekday, day(t, "2026-03-01")) {
		t.Fatalf("habit must be inactive before creation")
	}

	daily := mkHabit(t, "2026-03-02", ScheduleDaily)
	if !IsActiveOnDate(daily, day(t, "2026-03-07")) {
		t.Fatalf("daily habit must be active on Saturday")
	}
}
