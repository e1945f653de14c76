package engine

import (
	"context"
	"time"

	"habitquest/internal/storage"
)

// ProfileStatus is the status-card view: the stored profile plus everything
// derived from it.
type ProfileStatus struct {
	Profile         *storage.Profile
	Rank            Rank
	ProgressPercent int
	XPIntoLevel     int
	XPNeeded        int
	WeeklyRate      float64
	BestStreak      int
	EquippedCount   int
	Effects         EquippedEffects
}

// Status assembles the profile card. The rank is recomputed from the level
// and the trailing week's completion rate and persisted when it moved.
func (s *Service) Status(ctx context.Context, today time.Time) (*ProfileStatus, error) {
	p, err := s.getProfile(ctx)
	if err != nil {
		return nil, err
	}

	weeklyRate, err := s.completionRate(ctx, today.AddDate(0, 0, -6), today)
	if err != nil {
		return nil, err
	}

	rank := CalculateRank(p.Level, weeklyRate)
	if string(rank) != p.Rank {
		p.Rank = string(rank)
		if err := s.profiles.Update(ctx, p); err != nil {
			return nil, err
		}
	}

	best, err := s.bestStreak(ctx, today)
	if err != nil {
		return nil, err
	}

	equipped, err := s.items.ListEquipped(ctx)
	if err != nil {
		return nil, err
	}

	return &ProfileStatus{
		Profile:         p,
		Rank:            rank,
		ProgressPercent: XPProgressPercent(p.XP, p.Level),
		XPIntoLevel:     p.XP - TotalXPForLevel(p.Level),
		XPNeeded:        XPRequiredForLevel(p.Level),
		WeeklyRate:      weeklyRate,
		BestStreak:      best,
		EquippedCount:   len(equipped),
		Effects:         AggregateEffects(equipped),
	}, nil
}

// PlayerStats is the stats-page view over the trailing month.
type PlayerStats struct {
	Derived         DerivedStats
	CompletedLast30 int
	ScheduledLast30 int
	ThisWeekRate    float64
	LastWeekRate    float64
	AvgStreak       float64
	MaxStreak       int
}

func (s *Service) Stats(ctx context.Context, today time.Time) (*PlayerStats, error) {
	habits, err := s.habits.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	from := today.AddDate(0, 0, -29)
	scheduled := 0
	for d := from; !d.After(today); d = d.AddDate(0, 0, 1) {
		scheduled += len(FilterActiveForDate(habits, d))
	}

	marks, err := s.checkins.ListRange(ctx, DateKey(from), DateKey(today))
	if err != nil {
		return nil, err
	}
	completed := 0
	for _, c := range marks {
		if CheckinStatus(c.Status) == StatusDone {
			completed++
		}
	}

	totalDone, fastDone, err := s.checkins.CountDone(ctx)
	if err != nil {
		return nil, err
	}

	var (
		streakSum int
		maxStreak int
	)
	for i := range habits {
		since := DateKey(today.AddDate(0, 0, -MaxStreakLookback))
		history, err := s.checkins.ListByHabitSince(ctx, habits[i].ID, since)
		if err != nil {
			return nil, err
		}
		st := ComputeStreak(&habits[i], history, today)
		streakSum += st
		if st > maxStreak {
			maxStreak = st
		}
	}
	avgStreak := 0.0
	if len(habits) > 0 {
		avgStreak = float64(streakSum) / float64(len(habits))
	}

	thisWeek, err := s.completionRate(ctx, today.AddDate(0, 0, -6), today)
	if err != nil {
		return nil, err
	}
	lastWeek, err := s.completionRate(ctx, today.AddDate(0, 0, -13), today.AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}

	return &PlayerStats{
		Derived: CalculatePlayerStats(StatsInput{
			CompletedLast30:  completed,
			ScheduledLast30:  scheduled,
			FastCompletions:  fastDone,
			TotalCompletions: totalDone,
			AvgStreak:        avgStreak,
			MaxStreak:        maxStreak,
			ThisWeekRate:     thisWeek,
			LastWeekRate:     lastWeek,
		}),
		CompletedLast30: completed,
		ScheduledLast30: scheduled,
		ThisWeekRate:    thisWeek,
		LastWeekRate:    lastWeek,
		AvgStreak:       avgStreak,
		MaxStreak:       maxStreak,
	}, nil
}

// AchievementReport pairs the badge list with its earned tally.
type AchievementReport struct {
	Achievements []Achievement
	Earned       int
	Total        int
}

func (s *Service) Achievements(ctx context.Context, today time.Time) (*AchievementReport, error) {
	p, err := s.getProfile(ctx)
	if err != nil {
		return nil, err
	}
	habits, err := s.habits.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	totalDone, _, err := s.checkins.CountDone(ctx)
	if err != nil {
		return nil, err
	}
	best, err := s.bestStreak(ctx, today)
	if err != nil {
		return nil, err
	}
	owned, err := s.items.ListOwned(ctx)
	if err != nil {
		return nil, err
	}
	cleared, err := s.summaries.CountCleared(ctx)
	if err != nil {
		return nil, err
	}

	checker := NewAchievementChecker(p, habits, totalDone, best, len(owned), cleared)
	return &AchievementReport{
		Achievements: checker.GetAchievements(),
		Earned:       checker.CountEarned(),
		Total:        checker.CountTotal(),
	}, nil
}

// completionRate measures done checkins plus completed quests against the
// scheduled habit slots plus assigned quests over [from, to]. Habit and
// quest consistency count the same toward rank.
func (s *Service) completionRate(ctx context.Context, from, to time.Time) (float64, error) {
	habits, err := s.habits.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	scheduled := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		scheduled += len(FilterActiveForDate(habits, d))
	}

	marks, err := s.checkins.ListRange(ctx, DateKey(from), DateKey(to))
	if err != nil {
		return 0, err
	}
	done := 0
	for _, c := range marks {
		if CheckinStatus(c.Status) == StatusDone {
			done++
		}
	}

	batches, err := s.quests.ListDailyRange(ctx, DateKey(from), DateKey(to))
	if err != nil {
		return 0, err
	}
	questDone := 0
	for _, q := range batches {
		if q.Completed {
			questDone++
		}
	}

	return CompletionRate(done+questDone, scheduled+len(batches)), nil
}

func (s *Service) bestStreak(ctx context.Context, today time.Time) (int, error) {
	habits, err := s.habits.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	best := 0
	since := DateKey(today.AddDate(0, 0, -MaxStreakLookback))
	for i := range habits {
		history, err := s.checkins.ListByHabitSince(ctx, habits[i].ID, since)
		if err != nil {
			return 0, err
		}
		if st := ComputeStreak(&habits[i], history, today); st > best {
			best = st
		}
	}
	return best, nil
}
