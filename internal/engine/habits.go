package engine

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"habitquest/internal/storage"
)

// CreateHabitInput captures the four-law fields. Title, identity and the
// two-minute step are required; the rest are optional color.
type CreateHabitInput struct {
	Title            string
	Identity         string
	ObviousCue       string
	AttractiveBundle string
	EasyStep         string
	SatisfyingReward string
	Schedule         string
	Category         string
}

func (s *Service) CreateHabit(ctx context.Context, in CreateHabitInput) (*storage.Habit, error) {
	title := strings.TrimSpace(in.Title)
	identity := strings.TrimSpace(in.Identity)
	easyStep := strings.TrimSpace(in.EasyStep)
	if title == "" {
		return nil, fmt.Errorf("habit title is required")
	}
	if identity == "" {
		return nil, fmt.Errorf("habit identity is required")
	}
	if easyStep == "" {
		return nil, fmt.Errorf("habit two-minute step is required")
	}

	schedule := Schedule(strings.TrimSpace(in.Schedule))
	if schedule == "" {
		schedule = ScheduleDaily
	}
	if !schedule.IsValid() {
		return nil, fmt.Errorf("invalid schedule: %q", in.Schedule)
	}

	id, err := s.habits.Insert(ctx, storage.HabitInsert{
		Title:            title,
		Identity:         identity,
		ObviousCue:       optStr(in.ObviousCue),
		AttractiveBundle: optStr(in.AttractiveBundle),
		EasyStep:         easyStep,
		SatisfyingReward: optStr(in.SatisfyingReward),
		Schedule:         string(schedule),
		Category:         optStr(in.Category),
		CreatedAt:        s.now(),
	})
	if err != nil {
		return nil, err
	}
	return s.habits.Get(ctx, id)
}

// UpdateHabitInput holds partial edits; nil fields are left alone.
type UpdateHabitInput struct {
	Title            *string
	Identity         *string
	ObviousCue       *string
	AttractiveBundle *string
	EasyStep         *string
	SatisfyingReward *string
	Schedule         *string
	Category         *string
}

func (s *Service) UpdateHabit(ctx context.Context, id int64, in UpdateHabitInput) (*storage.Habit, error) {
	h, err := s.habits.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, NotFoundError{Kind: "habit", ID: strconv.FormatInt(id, 10)}
	}

	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		if t == "" {
			return nil, fmt.Errorf("habit title cannot be empty")
		}
		h.Title = t
	}
	if in.Identity != nil {
		v := strings.TrimSpace(*in.Identity)
		if v == "" {
			return nil, fmt.Errorf("habit identity cannot be empty")
		}
		h.Identity = v
	}
	if in.EasyStep != nil {
		v := strings.TrimSpace(*in.EasyStep)
		if v == "" {
			return nil, fmt.Errorf("habit two-minute step cannot be empty")
		}
		h.EasyStep = v
	}
	if in.ObviousCue != nil {
		h.ObviousCue = optStr(*in.ObviousCue)
	}
	if in.AttractiveBundle != nil {
		h.AttractiveBundle = optStr(*in.AttractiveBundle)
	}
	if in.SatisfyingReward != nil {
		h.SatisfyingReward = optStr(*in.SatisfyingReward)
	}
	if in.Schedule != nil {
		sched, err := ParseSchedule(*in.Schedule)
		if err != nil {
			return nil, err
		}
		h.Schedule = string(sched)
	}
	if in.Category != nil {
		h.Category = optStr(*in.Category)
	}

	if err := s.habits.Update(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// DeleteHabit removes the habit and its checkins together. Ledger rows stay;
// the audit trail outlives its subjects.
func (s *Service) DeleteHabit(ctx context.Context, id int64) error {
	h, err := s.habits.Get(ctx, id)
	if err != nil {
		return err
	}
	if h == nil {
		return NotFoundError{Kind: "habit", ID: strconv.FormatInt(id, 10)}
	}
	return storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.checkins.DeleteByHabitIn(ctx, tx, id); err != nil {
			return err
		}
		return s.habits.DeleteIn(ctx, tx, id)
	})
}

func (s *Service) ListHabits(ctx context.Context) ([]storage.Habit, error) {
	return s.habits.ListAll(ctx)
}

func (s *Service) GetHabit(ctx context.Context, id int64) (*storage.Habit, error) {
	h, err := s.habits.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, NotFoundError{Kind: "habit", ID: strconv.FormatInt(id, 10)}
	}
	return h, nil
}

// BoardEntry is one row of the today view.
type BoardEntry struct {
	Habit   storage.Habit
	Today   *storage.Checkin
	Streak  int
	Warning bool // never-miss-twice: yesterday slipped, today still open
}

// TodayBoard lists the habits scheduled for the given day with their current
// streaks and grace warnings.
func (s *Service) TodayBoard(ctx context.Context, today time.Time) ([]BoardEntry, error) {
	all, err := s.habits.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	active := FilterActiveForDate(all, today)

	entries := make([]BoardEntry, 0, len(active))
	for i := range active {
		h := active[i]

		todayMark, err := s.checkins.Get(ctx, h.ID, DateKey(today))
		if err != nil {
			return nil, err
		}
		yesterdayMark, err := s.checkins.Get(ctx, h.ID, DateKey(today.AddDate(0, 0, -1)))
		if err != nil {
			return nil, err
		}

		since := DateKey(today.AddDate(0, 0, -MaxStreakLookback))
		history, err := s.checkins.ListByHabitSince(ctx, h.ID, since)
		if err != nil {
			return nil, err
		}

		entries = append(entries, BoardEntry{
			Habit:   h,
			Today:   todayMark,
			Streak:  ComputeStreak(&h, history, today),
			Warning: NeverMissTwice(&h, todayMark, yesterdayMark, today),
		})
	}
	return entries, nil
}

// HabitHistory returns a habit's checkins over the trailing n days, newest
// first.
func (s *Service) HabitHistory(ctx context.Context, id int64, today time.Time, days int) ([]storage.Checkin, error) {
	h, err := s.habits.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, NotFoundError{Kind: "habit", ID: strconv.FormatInt(id, 10)}
	}
	since := DateKey(today.AddDate(0, 0, -(days - 1)))
	return s.checkins.ListByHabitSince(ctx, id, since)
}

func optStr(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
