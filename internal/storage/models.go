package storage

import "time"

type Profile struct {
	Key       string
	XP        int
	Gold      int
	Level     int
	Rank      string
	CreatedAt time.Time
}

type Habit struct {
	ID                int64
	Title             string
	Identity          string
	ObviousCue        *string
	AttractiveBundle  *string
	EasyStep          string
	SatisfyingReward  *string
	Schedule          string
	Category          *string
	CreatedAt         time.Time
}

type Checkin struct {
	ID        int64
	HabitID   int64
	Date      string
	Status    string
	Fast      bool
	CreatedAt time.Time
}

type Item struct {
	ID             int64
	Type           string
	Name           string
	Rarity         string
	EffectType     *string
	EffectValue    *int
	EffectCategory *string
}

// UserItem is an owned catalog item; Item is always populated from the join.
type UserItem struct {
	ID         int64
	ItemID     int64
	Equipped   bool
	UnlockedAt time.Time
	Item       Item
}

type QuestPoolEntry struct {
	ID          int64
	Title       string
	Description *string
	Category    string
	XPReward    int
	GoldReward  int
	IsActive    bool
}

// DailyQuest is one pool quest assigned for a specific date. Quest is
// populated from the join at the storage boundary rather than trusted at
// call sites.
type DailyQuest struct {
	ID          string
	QuestID     int64
	Date        string
	Completed   bool
	CompletedAt *time.Time
	Quest       *QuestPoolEntry
}

type LedgerEntry struct {
	ID        string
	Date      string
	HabitID   *int64
	QuestID   *string
	XPDelta   int
	GoldDelta int
	Reason    string
	CreatedAt time.Time
}

type DailySummary struct {
	Date           string
	CompletedCount int
	ScheduledCount int
	Cleared        bool
}
