package engine

import (
	"math"

	"habitquest/internal/storage"
)

const (
	// MaxXPBoostPercent caps the summed global XP boost so stacking items
	// can't trivialize progression.
	MaxXPBoostPercent = 20

	// MaxCategoryBoostPercent caps each per-category bucket.
	MaxCategoryBoostPercent = 15
)

type EquippedEffects struct {
	XPBoostPercent    int
	GoldBoostPercent  int
	CategoryBoosts    map[string]int
	SkipPenaltyReduce int
	StreakBuffer      int
}

// AggregateEffects sums the passive bonuses of the equipped set, then
// applies the global and per-category caps.
func AggregateEffects(equipped []storage.UserItem) EquippedEffects {
	eff := EquippedEffects{CategoryBoosts: map[string]int{}}

	for _, ui := range equipped {
		item := ui.Item
		if item.EffectType == nil || item.EffectValue == nil {
			continue
		}
		v := *item.EffectValue
		switch *item.EffectType {
		case EffectXPBoost:
			eff.XPBoostPercent += v
		case EffectGoldBoost:
			eff.GoldBoostPercent += v
		case EffectCategoryXPBoost:
			if item.EffectCategory != nil {
				eff.CategoryBoosts[*item.EffectCategory] += v
			}
		case EffectSkipPenaltyReduce:
			eff.SkipPenaltyReduce += v
		case EffectStreakBuffer:
			eff.StreakBuffer += v
		}
	}

	if eff.XPBoostPercent > MaxXPBoostPercent {
		eff.XPBoostPercent = MaxXPBoostPercent
	}
	for k, v := range eff.CategoryBoosts {
		if v > MaxCategoryBoostPercent {
			eff.CategoryBoosts[k] = MaxCategoryBoostPercent
		}
	}

	return eff
}

// ApplyXPEffects boosts baseXP by the global percentage plus the matching
// category bucket, re-clamped to the global ceiling, rounded.
func ApplyXPEffects(baseXP int, eff EquippedEffects, category string) int {
	boost := eff.XPBoostPercent
	if category != "" {
		boost += eff.CategoryBoosts[category]
	}
	if boost > MaxXPBoostPercent {
		boost = MaxXPBoostPercent
	}
	return int(math.Round(float64(baseXP) * (1 + float64(boost)/100)))
}

// ApplyGoldEffects boosts base gold by the summed gold percentage, rounded.
func ApplyGoldEffects(baseGold int, eff EquippedEffects) int {
	return int(math.Round(float64(baseGold) * (1 + float64(eff.GoldBoostPercent)/100)))
}

// ApplySkipPenalty shrinks a penalty by the aggregated reduction
// percentage, rounded.
func ApplySkipPenalty(basePenalty int, eff EquippedEffects) int {
	return int(math.Round(float64(basePenalty) * (1 - float64(eff.SkipPenaltyReduce)/100)))
}
