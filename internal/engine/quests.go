package engine

import (
	"math/rand"

	"habitquest/internal/storage"
)

const (
	// QuestsPerDay is the size of each daily assignment batch.
	QuestsPerDay = 5

	// Per-quest penalties for assignments left incomplete yesterday.
	QuestXPPenalty   = 5
	QuestGoldPenalty = 3
)

// Reasons recorded on reward ledger rows.
const (
	ReasonCheckin      = "habit_checkin"
	ReasonDailyClear   = "daily_clear"
	ReasonDungeonRun   = "dungeon_run"
	ReasonRandomQuest  = "random_quest"
	ReasonMissedQuests = "missed_quests_penalty"
)

// punishmentMessages is the fixed pool of admonishments shown when
// yesterday's quests were missed.
var punishmentMessages = []string{
	"The dungeon does not forgive idleness.",
	"Yesterday's quests rot in the log. The toll has been taken.",
	"A hunter who skips the hunt still pays the blood price.",
	"Unfinished business has a way of collecting interest.",
	"The system deducted your due. Rise earlier, adventurer.",
	"Even an E-Rank shows up. Yesterday, you did not.",
}

// YesterdayEvaluation summarizes the once-per-day penalty pass over the
// previous day's quest batch.
type YesterdayEvaluation struct {
	MissedQuests    int
	CompletedQuests int
	TotalQuests     int
	XPPenalty       int
	GoldPenalty     int
	Message         string
}

// EvaluateYesterday inspects yesterday's batch and computes the penalty.
// Returns nil when no batch existed (first-time users and gaps are not
// punished). With zero misses the evaluation carries no penalty and no
// message.
func EvaluateYesterday(batch []storage.DailyQuest, r *rand.Rand) *YesterdayEvaluation {
	if len(batch) == 0 {
		return nil
	}

	completed := 0
	for _, q := range batch {
		if q.Completed {
			completed++
		}
	}
	missed := len(batch) - completed

	ev := &YesterdayEvaluation{
		MissedQuests:    missed,
		CompletedQuests: completed,
		TotalQuests:     len(batch),
	}
	if missed == 0 {
		return ev
	}

	ev.XPPenalty = missed * QuestXPPenalty
	ev.GoldPenalty = missed * QuestGoldPenalty
	ev.Message = punishmentMessages[r.Intn(len(punishmentMessages))]
	return ev
}

// PickDailyQuests shuffles the active pool and takes up to n entries for
// today's batch.
func PickDailyQuests(pool []storage.QuestPoolEntry, n int, r *rand.Rand) []storage.QuestPoolEntry {
	shuffled := make([]storage.QuestPoolEntry, len(pool))
	copy(shuffled, pool)
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if len(shuffled) > n {
		shuffled = shuffled[:n]
	}
	return shuffled
}
