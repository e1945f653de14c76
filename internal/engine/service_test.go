package engine

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"habitquest/internal/storage"
)

func newTestService(t *testing.T) (*Service, func()) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	svc := NewService(db).WithRand(rand.New(rand.NewSource(1)))
	cleanup := func() {
		_ = db.Close()
	}
	return svc, cleanup
}

func mustCreateHabit(t *testing.T, svc *Service, title string) *storage.Habit {
	t.Helper()
	h, err := svc.CreateHabit(context.Background(), CreateHabitInput{
		Title:    title,
		Identity: "I am someone who shows up",
		EasyStep: "Do the first two minutes",
	})
	if err != nil {
		t.Fatalf("CreateHabit(%q): %v", title, err)
	}
	return h
}

func TestCreateHabitValidation(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := svc.CreateHabit(ctx, CreateHabitInput{Identity: "x", EasyStep: "y"}); err == nil {
		t.Fatalf("expected error without title")
	}
	if _, err := svc.CreateHabit(ctx, CreateHabitInput{Title: "x", EasyStep: "y"}); err == nil {
		t.Fatalf("expected error without identity")
	}
	if _, err := svc.CreateHabit(ctx, CreateHabitInput{Title: "x", Identity: "y", EasyStep: "z", Schedule: "hourly"}); err == nil {
		t.Fatalf("expected error for invalid schedule")
	}

	h := mustCreateHabit(t, svc, "Read")
	if h.Schedule != string(ScheduleDaily) {
		t.Fatalf("schedule=%q, want daily default", h.Schedule)
	}
}

func TestCheckinAwardsRewards(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	h1 := mustCreateHabit(t, svc, "Read")
	mustCreateHabit(t, svc, "Run")
	day := time.Now()

	res, err := svc.CheckIn(ctx, h1.ID, day, StatusDone, false)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if res.Streak != 1 {
		t.Fatalf("streak=%d, want 1", res.Streak)
	}
	// base 10 + streak 1; no clear since the second habit is still open.
	if res.XPAwarded != 11 || res.GoldAwarded != 5 {
		t.Fatalf("awarded=%d/%d, want 11/5", res.XPAwarded, res.GoldAwarded)
	}
	if res.DailyCleared {
		t.Fatalf("day must not be cleared with a habit open")
	}
	if res.Profile.XP != 11 || res.Profile.Gold != 5 {
		t.Fatalf("profile=%d/%d, want 11/5", res.Profile.XP, res.Profile.Gold)
	}
}

func TestCheckinDailyClearBonus(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	h := mustCreateHabit(t, svc, "Read")
	day := time.Now()

	res, err := svc.CheckIn(ctx, h.ID, day, StatusDone, true)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if !res.DailyCleared {
		t.Fatalf("single habit done must clear the day")
	}
	// base 10 + streak 1 + fast 5 + clear 5; gold 5 + clear 20.
	if res.XPAwarded != 21 || res.GoldAwarded != 25 {
		t.Fatalf("awarded=%d/%d, want 21/25", res.XPAwarded, res.GoldAwarded)
	}
}

func TestDailyClearBonusPaysOncePerDay(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	h := mustCreateHabit(t, svc, "Read")
	day := time.Now()

	first, err := svc.CheckIn(ctx, h.ID, day, StatusDone, false)
	if err != nil {
		t.Fatalf("first CheckIn: %v", err)
	}
	if first.XPAwarded != 16 || first.GoldAwarded != 25 {
		t.Fatalf("first award=%d/%d, want 16/25", first.XPAwarded, first.GoldAwarded)
	}

	if err := svc.ClearCheckin(ctx, h.ID, day); err != nil {
		t.Fatalf("ClearCheckin: %v", err)
	}

	second, err := svc.CheckIn(ctx, h.ID, day, StatusDone, false)
	if err != nil {
		t.Fatalf("second CheckIn: %v", err)
	}
	// Still a full day, but the clear bonus was already spent on this date.
	if !second.DailyCleared {
		t.Fatalf("day should read as cleared")
	}
	if second.XPAwarded != 11 || second.GoldAwarded != 5 {
		t.Fatalf("second award=%d/%d, want 11/5 without clear bonus", second.XPAwarded, second.GoldAwarded)
	}
}

func TestSkipRecordsWithoutReward(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	h := mustCreateHabit(t, svc, "Read")
	day := time.Now()

	res, err := svc.CheckIn(ctx, h.ID, day, StatusSkipped, false)
	if err != nil {
		t.Fatalf("CheckIn skip: %v", err)
	}
	if res.XPAwarded != 0 || res.GoldAwarded != 0 {
		t.Fatalf("skip awarded %d/%d, want 0/0", res.XPAwarded, res.GoldAwarded)
	}

	entries, err := svc.Ledger(ctx, day)
	if err != nil {
		t.Fatalf("Ledger: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("ledger has %d rows after a skip, want 0", len(entries))
	}
}

func TestCheckinUnknownHabit(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()

	_, err := svc.CheckIn(context.Background(), 9999, time.Now(), StatusDone, false)
	if _, ok := err.(NotFoundError); !ok {
		t.Fatalf("err=%v, want NotFoundError", err)
	}
}

func TestStreakGrowsAcrossDays(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	h := mustCreateHabit(t, svc, "Read")
	base := time.Now()

	var last *CheckInResult
	for i := 0; i < 3; i++ {
		var err error
		last, err = svc.CheckIn(ctx, h.ID, base.AddDate(0, 0, i), StatusDone, false)
		if err != nil {
			t.Fatalf("CheckIn day %d: %v", i, err)
		}
	}
	if last.Streak != 3 {
		t.Fatalf("streak=%d, want 3", last.Streak)
	}
}

func TestDungeonRunAward(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	h := mustCreateHabit(t, svc, "Deep work")
	mustCreateHabit(t, svc, "Run")
	day := time.Now()

	if _, err := svc.CheckIn(ctx, h.ID, day, StatusDone, false); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	res, err := svc.DungeonRun(ctx, h.ID, day)
	if err != nil {
		t.Fatalf("DungeonRun: %v", err)
	}
	// base 10 + streak 1, doubled by the dungeon bonus.
	if res.XPAwarded != 22 {
		t.Fatalf("dungeon xp=%d, want 22", res.XPAwarded)
	}
}

func TestDailyQuestsGenerateOncePerDay(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	day := time.Now()

	first, err := svc.DailyQuests(ctx, day)
	if err != nil {
		t.Fatalf("DailyQuests: %v", err)
	}
	if !first.Generated {
		t.Fatalf("first call must generate")
	}
	if len(first.Quests) != QuestsPerDay {
		t.Fatalf("batch size=%d, want %d", len(first.Quests), QuestsPerDay)
	}
	if first.Evaluation != nil {
		t.Fatalf("no yesterday batch, evaluation must be nil")
	}

	second, err := svc.DailyQuests(ctx, day)
	if err != nil {
		t.Fatalf("DailyQuests again: %v", err)
	}
	if second.Generated {
		t.Fatalf("second call must reuse the stored batch")
	}
	if len(second.Quests) != QuestsPerDay {
		t.Fatalf("reloaded batch size=%d, want %d", len(second.Quests), QuestsPerDay)
	}
}

func TestCompleteQuestPaysOnce(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	day := time.Now()

	batch, err := svc.DailyQuests(ctx, day)
	if err != nil {
		t.Fatalf("DailyQuests: %v", err)
	}
	q := batch.Quests[0]

	res, err := svc.CompleteQuest(ctx, q.ID)
	if err != nil {
		t.Fatalf("CompleteQuest: %v", err)
	}
	if res.XPAwarded != q.Quest.XPReward || res.GoldAwarded != q.Quest.GoldReward {
		t.Fatalf("awarded=%d/%d, want %d/%d", res.XPAwarded, res.GoldAwarded, q.Quest.XPReward, q.Quest.GoldReward)
	}
	if res.Profile.XP != q.Quest.XPReward {
		t.Fatalf("profile xp=%d, want %d", res.Profile.XP, q.Quest.XPReward)
	}

	if _, err := svc.CompleteQuest(ctx, q.ID); err == nil {
		t.Fatalf("expected error completing the same quest twice")
	}
}

func TestRefreshQuestsOncePerDay(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()
	day := time.Now()

	if _, err := svc.DailyQuests(ctx, day); err != nil {
		t.Fatalf("DailyQuests: %v", err)
	}

	first, err := svc.RefreshQuests(ctx, day)
	if err != nil {
		t.Fatalf("RefreshQuests: %v", err)
	}
	if first.AlreadyRefreshed {
		t.Fatalf("first refresh must be allowed")
	}
	if len(first.Quests) != QuestsPerDay {
		t.Fatalf("rerolled batch size=%d, want %d", len(first.Quests), QuestsPerDay)
	}

	second, err := svc.RefreshQuests(ctx, day)
	if err != nil {
		t.Fatalf("RefreshQuests again: %v", err)
	}
	if !second.AlreadyRefreshed {
		t.Fatalf("second refresh must be rejected")
	}
}

func TestMissedQuestPenaltyAppliesOnNextGeneration(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	d1 := time.Now()
	d2 := d1.AddDate(0, 0, 1)

	batch, err := svc.DailyQuests(ctx, d1)
	if err != nil {
		t.Fatalf("DailyQuests d1: %v", err)
	}
	earned := 0
	for _, q := range batch.Quests[:2] {
		res, err := svc.CompleteQuest(ctx, q.ID)
		if err != nil {
			t.Fatalf("CompleteQuest: %v", err)
		}
		earned += res.XPAwarded
	}

	next, err := svc.DailyQuests(ctx, d2)
	if err != nil {
		t.Fatalf("DailyQuests d2: %v", err)
	}
	ev := next.Evaluation
	if ev == nil {
		t.Fatalf("expected an evaluation of yesterday")
	}
	if ev.MissedQuests != 3 || ev.XPPenalty != 15 || ev.GoldPenalty != 9 {
		t.Fatalf("evaluation=%+v, want 3 missed, -15 XP, -9 gold", ev)
	}
	if ev.Message == "" {
		t.Fatalf("expected an admonishment message")
	}

	p, err := svc.Status(ctx, d2)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if want := earned - 15; p.Profile.XP != want {
		t.Fatalf("profile xp=%d, want %d", p.Profile.XP, want)
	}
}

func TestPenaltyFloorsAtZero(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	d1 := time.Now()
	d2 := d1.AddDate(0, 0, 1)

	if _, err := svc.DailyQuests(ctx, d1); err != nil {
		t.Fatalf("DailyQuests d1: %v", err)
	}
	next, err := svc.DailyQuests(ctx, d2)
	if err != nil {
		t.Fatalf("DailyQuests d2: %v", err)
	}
	if next.Evaluation == nil || next.Evaluation.MissedQuests != QuestsPerDay {
		t.Fatalf("evaluation=%+v, want all %d missed", next.Evaluation, QuestsPerDay)
	}

	st, err := svc.Status(ctx, d2)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.Profile.XP != 0 || st.Profile.Gold != 0 {
		t.Fatalf("profile=%d/%d, want floored at 0/0", st.Profile.XP, st.Profile.Gold)
	}
}

func TestEquipExclusivePerSlot(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	catalog, err := svc.Catalog(ctx)
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	var themes []storage.Item
	for _, it := range catalog {
		if it.Type == string(LootTheme) {
			themes = append(themes, it)
		}
	}
	if len(themes) < 2 {
		t.Fatalf("catalog has %d themes, want at least 2", len(themes))
	}

	for _, it := range themes[:2] {
		if err := svc.items.AddOwned(ctx, it.ID); err != nil {
			t.Fatalf("AddOwned: %v", err)
		}
	}

	if _, err := svc.Equip(ctx, themes[0].ID); err != nil {
		t.Fatalf("Equip first: %v", err)
	}
	if _, err := svc.Equip(ctx, themes[1].ID); err != nil {
		t.Fatalf("Equip second: %v", err)
	}

	equipped, err := svc.items.ListEquipped(ctx)
	if err != nil {
		t.Fatalf("ListEquipped: %v", err)
	}
	if len(equipped) != 1 {
		t.Fatalf("equipped=%d, want 1 (slot is exclusive)", len(equipped))
	}
	if equipped[0].ItemID != themes[1].ID {
		t.Fatalf("equipped item=%d, want the later equip %d", equipped[0].ItemID, themes[1].ID)
	}
}

func TestEquipRequiresOwnership(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	catalog, err := svc.Catalog(ctx)
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	if _, err := svc.Equip(ctx, catalog[0].ID); err == nil {
		t.Fatalf("expected error equipping an unowned item")
	}
}

func TestEquippedEffectsBoostCheckin(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	charm, err := svc.items.GetByTypeName(ctx, string(LootArtifact), "Ember Charm")
	if err != nil || charm == nil {
		t.Fatalf("GetByTypeName: %v (%v)", err, charm)
	}
	if err := svc.items.AddOwned(ctx, charm.ID); err != nil {
		t.Fatalf("AddOwned: %v", err)
	}
	if _, err := svc.Equip(ctx, charm.ID); err != nil {
		t.Fatalf("Equip: %v", err)
	}

	h := mustCreateHabit(t, svc, "Read")
	mustCreateHabit(t, svc, "Run")

	res, err := svc.CheckIn(ctx, h.ID, time.Now(), StatusDone, false)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	// 11 base, +5% from the charm, rounded.
	if res.XPAwarded != 12 {
		t.Fatalf("boosted xp=%d, want 12", res.XPAwarded)
	}
}

func TestLevelColumnRepairedFromXP(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	p, err := svc.profiles.GetOrCreateMain(ctx)
	if err != nil {
		t.Fatalf("GetOrCreateMain: %v", err)
	}
	p.XP = 500
	p.Level = 1
	if err := svc.profiles.Update(ctx, p); err != nil {
		t.Fatalf("Update: %v", err)
	}

	st, err := svc.Status(ctx, time.Now())
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if want := LevelFromXP(500); st.Profile.Level != want {
		t.Fatalf("level=%d, want %d", st.Profile.Level, want)
	}
}

func TestDeleteHabitCascadesCheckins(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	h := mustCreateHabit(t, svc, "Read")
	day := time.Now()
	if _, err := svc.CheckIn(ctx, h.ID, day, StatusDone, false); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}

	if err := svc.DeleteHabit(ctx, h.ID); err != nil {
		t.Fatalf("DeleteHabit: %v", err)
	}

	if _, err := svc.GetHabit(ctx, h.ID); err == nil {
		t.Fatalf("habit still readable after delete")
	}
	marks, err := svc.checkins.ListByDate(ctx, DateKey(day))
	if err != nil {
		t.Fatalf("ListByDate: %v", err)
	}
	if len(marks) != 0 {
		t.Fatalf("checkins remain after habit delete: %d", len(marks))
	}
}

func TestTodayBoardWarnsAfterMiss(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	h := mustCreateHabit(t, svc, "Read")
	d1 := time.Now()
	d2 := d1.AddDate(0, 0, 1)

	if _, err := svc.CheckIn(ctx, h.ID, d1, StatusSkipped, false); err != nil {
		t.Fatalf("CheckIn skip: %v", err)
	}

	entries, err := svc.TodayBoard(ctx, d2)
	if err != nil {
		t.Fatalf("TodayBoard: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("board entries=%d, want 1", len(entries))
	}
	if !entries[0].Warning {
		t.Fatalf("expected never-miss-twice warning after a skipped day")
	}
}

func TestAchievementsEarnFromActivity(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	h := mustCreateHabit(t, svc, "Read")
	day := time.Now()
	if _, err := svc.CheckIn(ctx, h.ID, day, StatusDone, false); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}

	rep, err := svc.Achievements(ctx, day)
	if err != nil {
		t.Fatalf("Achievements: %v", err)
	}
	earned := map[string]bool{}
	for _, a := range rep.Achievements {
		if a.Earned {
			earned[a.ID] = true
		}
	}
	for _, want := range []string{"habit_former", "first_checkin", "first_clear"} {
		if !earned[want] {
			t.Fatalf("achievement %q not earned; earned=%v", want, earned)
		}
	}
}

func TestHabitActiveOnCreationDayAcrossUTCBoundary(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	// 19:00 local, five hours west of UTC: the UTC clock already reads the
	// next calendar day, but the habit must be active on its local creation
	// day.
	west := time.FixedZone("UTC-5", -5*3600)
	evening := time.Date(2026, 3, 2, 19, 0, 0, 0, west)
	svc.WithClock(func() time.Time { return evening })

	h := mustCreateHabit(t, svc, "Read")
	if got := DateKey(h.CreatedAt); got != "2026-03-02" {
		t.Fatalf("creation day=%q, want 2026-03-02", got)
	}

	res, err := svc.CheckIn(ctx, h.ID, evening, StatusDone, false)
	if err != nil {
		t.Fatalf("CheckIn on creation day: %v", err)
	}
	if res.Streak != 1 {
		t.Fatalf("streak=%d, want 1", res.Streak)
	}

	board, err := svc.TodayBoard(ctx, evening)
	if err != nil {
		t.Fatalf("TodayBoard: %v", err)
	}
	if len(board) != 1 {
		t.Fatalf("board entries=%d, want the new habit visible", len(board))
	}

	if _, err := svc.CheckIn(ctx, h.ID, evening.AddDate(0, 0, -1), StatusDone, false); err == nil {
		t.Fatalf("expected error marking the day before creation")
	}
}

func TestMissedQuestPenaltyChargedOnce(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	d1 := time.Now()
	d2 := d1.AddDate(0, 0, 1)

	if _, err := svc.DailyQuests(ctx, d1); err != nil {
		t.Fatalf("DailyQuests d1: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := svc.DailyQuests(ctx, d2); err != nil {
			t.Fatalf("DailyQuests d2 call %d: %v", i, err)
		}
	}

	n, err := svc.ledger.CountByReason(ctx, ReasonMissedQuests)
	if err != nil {
		t.Fatalf("CountByReason: %v", err)
	}
	if n != 1 {
		t.Fatalf("penalty rows=%d, want exactly 1", n)
	}
}

func TestLootCatalogMatchesSeededItems(t *testing.T) {
	svc, cleanup := newTestService(t)
	defer cleanup()
	ctx := context.Background()

	for _, it := range LootCatalog() {
		rec, err := svc.items.GetByTypeName(ctx, string(it.Type), it.Name)
		if err != nil {
			t.Fatalf("GetByTypeName(%s, %s): %v", it.Type, it.Name, err)
		}
		if rec == nil {
			t.Fatalf("catalog item %s %q has no seeded row", it.Type, it.Name)
		}
		if rec.Rarity != string(it.Rarity) {
			t.Fatalf("item %q rarity=%q, want %q", it.Name, rec.Rarity, it.Rarity)
		}
	}
}
