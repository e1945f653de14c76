package engine

import (
	"context"
	"database/sql"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"habitquest/internal/storage"
)

// Service wires the pure progression rules to the sqlite-backed state. All
// reads and mutations from the CLI, TUI and HTTP layers go through it.
type Service struct {
	db        *sql.DB
	profiles  *storage.ProfileRepo
	habits    *storage.HabitRepo
	checkins  *storage.CheckinRepo
	items     *storage.ItemRepo
	quests    *storage.QuestRepo
	ledger    *storage.LedgerRepo
	summaries *storage.SummaryRepo

	rng *rand.Rand
	now func() time.Time
}

func NewService(db *sql.DB) *Service {
	return &Service{
		db:        db,
		profiles:  storage.NewProfileRepo(db),
		habits:    storage.NewHabitRepo(db),
		checkins:  storage.NewCheckinRepo(db),
		items:     storage.NewItemRepo(db),
		quests:    storage.NewQuestRepo(db),
		ledger:    storage.NewLedgerRepo(db),
		summaries: storage.NewSummaryRepo(db),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		now:       time.Now,
	}
}

// WithRand replaces the roll source. Tests pass a seeded one.
func (s *Service) WithRand(r *rand.Rand) *Service {
	s.rng = r
	return s
}

// WithClock replaces the wall clock. Tests pin it.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Today() time.Time {
	return s.now()
}

// Ledger returns the reward audit rows recorded on a date.
func (s *Service) Ledger(ctx context.Context, date time.Time) ([]storage.LedgerEntry, error) {
	return s.ledger.ListByDate(ctx, DateKey(date))
}

// getProfile loads the main profile, repairing the stored level if it ever
// disagrees with the XP total.
func (s *Service) getProfile(ctx context.Context) (*storage.Profile, error) {
	p, err := s.profiles.GetOrCreateMain(ctx)
	if err != nil {
		return nil, err
	}
	if lvl := LevelFromXP(p.XP); lvl != p.Level {
		p.Level = lvl
		if err := s.profiles.Update(ctx, p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// applyDelta adjusts XP and gold (flooring both at zero), recomputes the
// level, and writes the profile together with its ledger row in one
// transaction. Returns the updated profile.
func (s *Service) applyDelta(ctx context.Context, xpDelta, goldDelta int, habitID *int64, questID *string, date, reason string) (*storage.Profile, error) {
	p, err := s.getProfile(ctx)
	if err != nil {
		return nil, err
	}
	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return s.applyDeltaIn(ctx, tx, p, xpDelta, goldDelta, habitID, questID, date, reason)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// applyDeltaIn is applyDelta inside a caller-owned transaction. The profile
// must be loaded before the transaction opens; p is mutated in place.
func (s *Service) applyDeltaIn(ctx context.Context, tx *sql.Tx, p *storage.Profile, xpDelta, goldDelta int, habitID *int64, questID *string, date, reason string) error {
	p.XP += xpDelta
	if p.XP < 0 {
		p.XP = 0
	}
	p.Gold += goldDelta
	if p.Gold < 0 {
		p.Gold = 0
	}
	p.Level = LevelFromXP(p.XP)

	if err := s.profiles.UpdateIn(ctx, tx, p); err != nil {
		return err
	}
	return s.ledger.InsertIn(ctx, tx, storage.LedgerEntry{
		ID:        uuid.NewString(),
		Date:      date,
		HabitID:   habitID,
		QuestID:   questID,
		XPDelta:   xpDelta,
		GoldDelta: goldDelta,
		Reason:    reason,
	})
}

// equippedEffects aggregates the passive bonuses of the currently equipped
// set.
func (s *Service) equippedEffects(ctx context.Context) (EquippedEffects, error) {
	equipped, err := s.items.ListEquipped(ctx)
	if err != nil {
		return EquippedEffects{}, err
	}
	return AggregateEffects(equipped), nil
}
