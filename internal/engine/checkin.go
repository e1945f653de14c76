package engine

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"habitquest/internal/storage"
)

// CheckInResult is everything the caller needs to narrate a completion:
// the award, the streak it was based on, and whatever dropped.
type CheckInResult struct {
	Habit        *storage.Habit
	Status       CheckinStatus
	Streak       int
	Rewards      RewardCalculation
	XPAwarded    int
	GoldAwarded  int
	DailyCleared bool
	LevelBefore  int
	LevelAfter   int
	Drop         *LootItem
	Profile      *storage.Profile
}

// CheckIn marks a habit done or skipped for a calendar day. Marking the same
// day twice overwrites the previous mark but awards again; use ClearCheckin
// to undo. Skips record without reward.
func (s *Service) CheckIn(ctx context.Context, habitID int64, date time.Time, status CheckinStatus, fast bool) (*CheckInResult, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid checkin status: %q", status)
	}

	habit, err := s.habits.Get(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit == nil {
		return nil, NotFoundError{Kind: "habit", ID: strconv.FormatInt(habitID, 10)}
	}
	if !IsActiveOnDate(habit, date) {
		return nil, fmt.Errorf("habit %q is not scheduled on %s", habit.Title, DateKey(date))
	}

	key := DateKey(date)
	if err := s.checkins.Upsert(ctx, habitID, key, string(status), fast); err != nil {
		return nil, err
	}

	res := &CheckInResult{Habit: habit, Status: status}

	if status == StatusSkipped {
		if err := s.refreshSummary(ctx, date); err != nil {
			return nil, err
		}
		return res, nil
	}

	since := DateKey(date.AddDate(0, 0, -MaxStreakLookback))
	history, err := s.checkins.ListByHabitSince(ctx, habitID, since)
	if err != nil {
		return nil, err
	}
	res.Streak = ComputeStreak(habit, history, date)

	cleared, completed, scheduled, err := s.dayProgress(ctx, date)
	if err != nil {
		return nil, err
	}
	prior, err := s.summaries.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	// The full-day bonus pays out once per date even if checkins are
	// cleared and redone, so the stored cleared flag is sticky.
	priorCleared := prior != nil && prior.Cleared
	grantClear := cleared && !priorCleared
	res.DailyCleared = cleared

	res.Rewards = CalculateRewards(RewardOptions{
		Streak:         res.Streak,
		FastCompletion: fast,
		DailyCleared:   grantClear,
	})

	eff, err := s.equippedEffects(ctx)
	if err != nil {
		return nil, err
	}
	category := ""
	if habit.Category != nil {
		category = *habit.Category
	}
	res.XPAwarded = ApplyXPEffects(res.Rewards.XP, eff, category)
	res.GoldAwarded = ApplyGoldEffects(res.Rewards.Gold, eff)

	before, err := s.getProfile(ctx)
	if err != nil {
		return nil, err
	}
	res.LevelBefore = before.Level

	profile, err := s.applyDelta(ctx, res.XPAwarded, res.GoldAwarded, &habitID, nil, key, ReasonCheckin)
	if err != nil {
		return nil, err
	}
	res.LevelAfter = profile.Level
	res.Profile = profile

	if err := s.summaries.Upsert(ctx, storage.DailySummary{
		Date:           key,
		CompletedCount: completed,
		ScheduledCount: scheduled,
		Cleared:        cleared || priorCleared,
	}); err != nil {
		return nil, err
	}

	drop, err := s.rollLoot(ctx)
	if err != nil {
		return nil, err
	}
	res.Drop = drop

	return res, nil
}

// ClearCheckin removes the mark for (habit, day) and recomputes that day's
// summary. Rewards already granted stay granted; the ledger is append-only.
func (s *Service) ClearCheckin(ctx context.Context, habitID int64, date time.Time) error {
	habit, err := s.habits.Get(ctx, habitID)
	if err != nil {
		return err
	}
	if habit == nil {
		return NotFoundError{Kind: "habit", ID: strconv.FormatInt(habitID, 10)}
	}
	if err := s.checkins.Delete(ctx, habitID, DateKey(date)); err != nil {
		return err
	}
	return s.refreshSummary(ctx, date)
}

// DungeonResult reports a focus-session award.
type DungeonResult struct {
	Habit       *storage.Habit
	Streak      int
	Rewards     RewardCalculation
	XPAwarded   int
	GoldAwarded int
	LevelUp     bool
	Profile     *storage.Profile
}

// DungeonRun awards a focus session on a habit. It does not write a checkin;
// a run is extra credit on top of the normal daily mark.
func (s *Service) DungeonRun(ctx context.Context, habitID int64, date time.Time) (*DungeonResult, error) {
	habit, err := s.habits.Get(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit == nil {
		return nil, NotFoundError{Kind: "habit", ID: strconv.FormatInt(habitID, 10)}
	}

	since := DateKey(date.AddDate(0, 0, -MaxStreakLookback))
	history, err := s.checkins.ListByHabitSince(ctx, habitID, since)
	if err != nil {
		return nil, err
	}
	streak := ComputeStreak(habit, history, date)

	rewards := CalculateRewards(RewardOptions{Streak: streak, DungeonRun: true})

	eff, err := s.equippedEffects(ctx)
	if err != nil {
		return nil, err
	}
	category := ""
	if habit.Category != nil {
		category = *habit.Category
	}
	xp := ApplyXPEffects(rewards.XP, eff, category)
	gold := ApplyGoldEffects(rewards.Gold, eff)

	before, err := s.getProfile(ctx)
	if err != nil {
		return nil, err
	}
	profile, err := s.applyDelta(ctx, xp, gold, &habitID, nil, DateKey(date), ReasonDungeonRun)
	if err != nil {
		return nil, err
	}

	return &DungeonResult{
		Habit:       habit,
		Streak:      streak,
		Rewards:     rewards,
		XPAwarded:   xp,
		GoldAwarded: gold,
		LevelUp:     profile.Level > before.Level,
		Profile:     profile,
	}, nil
}

// dayProgress reports how much of the day's schedule is done: cleared is
// true only when every scheduled habit has a done checkin and at least one
// habit was scheduled.
func (s *Service) dayProgress(ctx context.Context, date time.Time) (cleared bool, completed, scheduled int, err error) {
	all, err := s.habits.ListAll(ctx)
	if err != nil {
		return false, 0, 0, err
	}
	active := FilterActiveForDate(all, date)

	marks, err := s.checkins.ListByDate(ctx, DateKey(date))
	if err != nil {
		return false, 0, 0, err
	}
	done := make(map[int64]bool, len(marks))
	for _, c := range marks {
		if CheckinStatus(c.Status) == StatusDone {
			done[c.HabitID] = true
		}
	}

	for i := range active {
		if done[active[i].ID] {
			completed++
		}
	}
	scheduled = len(active)
	cleared = scheduled > 0 && completed == scheduled
	return cleared, completed, scheduled, nil
}

func (s *Service) refreshSummary(ctx context.Context, date time.Time) error {
	cleared, completed, scheduled, err := s.dayProgress(ctx, date)
	if err != nil {
		return err
	}
	prior, err := s.summaries.Get(ctx, DateKey(date))
	if err != nil {
		return err
	}
	return s.summaries.Upsert(ctx, storage.DailySummary{
		Date:           DateKey(date),
		CompletedCount: completed,
		ScheduledCount: scheduled,
		Cleared:        cleared || (prior != nil && prior.Cleared),
	})
}

// rollLoot runs the drop gate against the catalog minus what's owned and
// persists any unlock.
func (s *Service) rollLoot(ctx context.Context) (*LootItem, error) {
	owned, err := s.items.ListOwned(ctx)
	if err != nil {
		return nil, err
	}
	ownedKeys := make(map[string]bool, len(owned))
	for _, ui := range owned {
		ownedKeys[ui.Item.Type+":"+ui.Item.Name] = true
	}

	drop := RollForLoot(ownedKeys, s.rng)
	if drop == nil {
		return nil, nil
	}

	rec, err := s.items.GetByTypeName(ctx, string(drop.Type), drop.Name)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		// Catalog row missing means seeding drifted; drop silently rather
		// than fail the checkin.
		return nil, nil
	}
	if err := s.items.AddOwned(ctx, rec.ID); err != nil {
		return nil, err
	}
	return drop, nil
}
