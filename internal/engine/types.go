package engine

import (
	"fmt"
	"strings"
)

type Schedule string

const (
	ScheduleDaily    Schedule = "daily"
	ScheduleWeekdays Schedule = "weekdays"
)

func (s Schedule) IsValid() bool {
	switch s {
	case ScheduleDaily, ScheduleWeekdays:
		return true
	default:
		return false
	}
}

func ParseSchedule(input string) (Schedule, error) {
	s := Schedule(strings.TrimSpace(strings.ToLower(input)))
	if !s.IsValid() {
		return "", fmt.Errorf("invalid schedule: %q", input)
	}
	return s, nil
}

type CheckinStatus string

const (
	StatusDone    CheckinStatus = "done"
	StatusSkipped CheckinStatus = "skipped"
)

func (s CheckinStatus) IsValid() bool {
	switch s {
	case StatusDone, StatusSkipped:
		return true
	default:
		return false
	}
}

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

func (r Rarity) IsValid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	default:
		return false
	}
}

type LootType string

const (
	LootTitle    LootType = "title"
	LootBadge    LootType = "badge"
	LootTheme    LootType = "theme"
	LootArtifact LootType = "artifact"
)

// Item effect kinds. Values are percentages except EffectStreakBuffer,
// which is a day count.
const (
	EffectXPBoost           = "xp_boost"
	EffectGoldBoost         = "gold_boost"
	EffectCategoryXPBoost   = "category_xp_boost"
	EffectSkipPenaltyReduce = "skip_penalty_reduce"
	EffectStreakBuffer      = "streak_buffer"
)
