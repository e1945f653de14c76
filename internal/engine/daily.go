package engine

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"habitquest/internal/storage"
)

// DailyQuestsResult carries today's batch plus, when this call generated the
// batch, the outcome of judging yesterday.
type DailyQuestsResult struct {
	Quests     []storage.DailyQuest
	Evaluation *YesterdayEvaluation
	Generated  bool
}

// DailyQuests returns today's quest batch, generating it on first access.
// Generation first settles yesterday: missed quests cost XP and gold,
// softened by any equipped penalty-reduction items.
func (s *Service) DailyQuests(ctx context.Context, today time.Time) (*DailyQuestsResult, error) {
	date := DateKey(today)

	existing, err := s.quests.ListDaily(ctx, date)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return &DailyQuestsResult{Quests: existing}, nil
	}

	yesterday, err := s.quests.ListDaily(ctx, DateKey(today.AddDate(0, 0, -1)))
	if err != nil {
		return nil, err
	}
	ev := EvaluateYesterday(yesterday, s.rng)

	var p *storage.Profile
	if ev != nil && ev.MissedQuests > 0 {
		eff, err := s.equippedEffects(ctx)
		if err != nil {
			return nil, err
		}
		ev.XPPenalty = ApplySkipPenalty(ev.XPPenalty, eff)
		ev.GoldPenalty = ApplySkipPenalty(ev.GoldPenalty, eff)
		if p, err = s.getProfile(ctx); err != nil {
			return nil, err
		}
	}

	// The penalty and the new batch land together; a partial write would
	// re-run the evaluation on the next call and charge the penalty twice.
	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if p != nil {
			if err := s.applyDeltaIn(ctx, tx, p, -ev.XPPenalty, -ev.GoldPenalty, nil, nil, date, ReasonMissedQuests); err != nil {
				return err
			}
		}
		return s.assignBatch(ctx, tx, date)
	})
	if err != nil {
		return nil, err
	}

	quests, err := s.quests.ListDaily(ctx, date)
	if err != nil {
		return nil, err
	}
	return &DailyQuestsResult{Quests: quests, Evaluation: ev, Generated: true}, nil
}

// QuestResult reports a single quest completion.
type QuestResult struct {
	Quest       *storage.DailyQuest
	XPAwarded   int
	GoldAwarded int
	LevelUp     bool
	Profile     *storage.Profile
}

// CompleteQuest marks a daily assignment done and pays its reward. A second
// completion of the same assignment is an error, not a double award.
func (s *Service) CompleteQuest(ctx context.Context, id string) (*QuestResult, error) {
	dq, err := s.quests.GetDaily(ctx, id)
	if err != nil {
		return nil, err
	}
	if dq == nil {
		return nil, NotFoundError{Kind: "quest", ID: id}
	}
	if dq.Completed {
		return nil, fmt.Errorf("quest %q is already completed", dq.Quest.Title)
	}

	eff, err := s.equippedEffects(ctx)
	if err != nil {
		return nil, err
	}
	xp := ApplyXPEffects(dq.Quest.XPReward, eff, dq.Quest.Category)
	gold := ApplyGoldEffects(dq.Quest.GoldReward, eff)

	p, err := s.getProfile(ctx)
	if err != nil {
		return nil, err
	}
	levelBefore := p.Level

	p.XP += xp
	p.Gold += gold
	p.Level = LevelFromXP(p.XP)

	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.quests.MarkCompletedIn(ctx, tx, id, s.now()); err != nil {
			return err
		}
		if err := s.profiles.UpdateIn(ctx, tx, p); err != nil {
			return err
		}
		return s.ledger.InsertIn(ctx, tx, storage.LedgerEntry{
			ID:        uuid.NewString(),
			Date:      dq.Date,
			QuestID:   &dq.ID,
			XPDelta:   xp,
			GoldDelta: gold,
			Reason:    ReasonRandomQuest,
		})
	})
	if err != nil {
		return nil, err
	}

	dq.Completed = true
	return &QuestResult{
		Quest:       dq,
		XPAwarded:   xp,
		GoldAwarded: gold,
		LevelUp:     p.Level > levelBefore,
		Profile:     p,
	}, nil
}

// RefreshResult reports a reroll attempt.
type RefreshResult struct {
	AlreadyRefreshed bool
	Quests           []storage.DailyQuest
}

// RefreshQuests rerolls today's batch. The reroll is spendable once per day;
// a second attempt returns the current batch untouched.
func (s *Service) RefreshQuests(ctx context.Context, today time.Time) (*RefreshResult, error) {
	date := DateKey(today)

	refreshed, err := s.quests.HasRefreshed(ctx, date)
	if err != nil {
		return nil, err
	}
	if refreshed {
		quests, err := s.quests.ListDaily(ctx, date)
		if err != nil {
			return nil, err
		}
		return &RefreshResult{AlreadyRefreshed: true, Quests: quests}, nil
	}

	err = storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.quests.DeleteDailyIn(ctx, tx, date); err != nil {
			return err
		}
		if err := s.quests.MarkRefreshedIn(ctx, tx, date); err != nil {
			return err
		}
		return s.assignBatch(ctx, tx, date)
	})
	if err != nil {
		return nil, err
	}

	quests, err := s.quests.ListDaily(ctx, date)
	if err != nil {
		return nil, err
	}
	return &RefreshResult{Quests: quests}, nil
}

// assignBatch picks a fresh batch from the active pool and inserts it for
// the date.
func (s *Service) assignBatch(ctx context.Context, q storage.Q, date string) error {
	pool, err := s.quests.ListActivePool(ctx)
	if err != nil {
		return err
	}
	for _, entry := range PickDailyQuests(pool, QuestsPerDay, s.rng) {
		if err := s.quests.InsertDailyIn(ctx, q, uuid.NewString(), entry.ID, date); err != nil {
			return err
		}
	}
	return nil
}
