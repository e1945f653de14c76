package engine

// Reward constants. Deltas are additive on top of the fixed bases; there is
// no randomness anywhere in reward calculation.
const (
	BaseXP           = 10
	BaseGold         = 5
	FastCompletionXP = 5
	DailyClearXP     = 5
	DailyClearGold   = 20

	// StreakXPCap bounds the streak bonus so very long streaks don't run
	// away while consistency is still rewarded.
	StreakXPCap = 10

	LootDropChance = 0.10
)

type RewardOptions struct {
	Streak         int
	FastCompletion bool
	DailyCleared   bool
	DungeonRun     bool
}

type RewardBreakdown struct {
	Base           int
	Streak         int
	FastCompletion int
	DailyClear     int
	Dungeon        int
}

type RewardCalculation struct {
	XP        int
	Gold      int
	Breakdown RewardBreakdown
}

// CalculateRewards computes the XP/gold award for one completion. The
// dungeon bonus re-adds base+streak, doubling that contribution for focus
// sessions; any duration multiplier is applied by the caller on top.
func CalculateRewards(opts RewardOptions) RewardCalculation {
	xp := BaseXP
	gold := BaseGold

	streakBonus := opts.Streak
	if streakBonus > StreakXPCap {
		streakBonus = StreakXPCap
	}
	xp += streakBonus

	fastBonus := 0
	if opts.FastCompletion {
		fastBonus = FastCompletionXP
	}
	xp += fastBonus

	clearXP, clearGold := 0, 0
	if opts.DailyCleared {
		clearXP = DailyClearXP
		clearGold = DailyClearGold
	}
	xp += clearXP
	gold += clearGold

	dungeonBonus := 0
	if opts.DungeonRun {
		dungeonBonus = BaseXP + streakBonus
	}
	xp += dungeonBonus

	return RewardCalculation{
		XP:   xp,
		Gold: gold,
		Breakdown: RewardBreakdown{
			Base:           BaseXP,
			Streak:         streakBonus,
			FastCompletion: fastBonus,
			DailyClear:     clearXP,
			Dungeon:        dungeonBonus,
		},
	}
}
