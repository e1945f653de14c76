package engine

import "habitquest/internal/storage"

// Achievement is a badge the player can earn; Earned is computed, never
// stored.
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Earned      bool
}

// AchievementChecker derives earned status from a snapshot of profile and
// history.
type AchievementChecker struct {
	profile     *storage.Profile
	habits      []storage.Habit
	completions int
	bestStreak  int
	ownedItems  int
	clearedDays int
}

func NewAchievementChecker(profile *storage.Profile, habits []storage.Habit, completions, bestStreak, ownedItems, clearedDays int) *AchievementChecker {
	return &AchievementChecker{
		profile:     profile,
		habits:      habits,
		completions: completions,
		bestStreak:  bestStreak,
		ownedItems:  ownedItems,
		clearedDays: clearedDays,
	}
}

func (c *AchievementChecker) GetAchievements() []Achievement {
	return []Achievement{
		c.levelAchievement("awakened", "Awakened", "Reach level 2", "🌱", 2),
		c.levelAchievement("adventurer", "Adventurer", "Reach level 5", "🗡️", 5),
		c.levelAchievement("veteran", "Veteran", "Reach level 10", "⭐", 10),
		c.levelAchievement("elite", "Elite Hunter", "Reach level 20", "🌟", 20),
		c.levelAchievement("monarch", "Monarch", "Reach level 50", "👑", 50),

		c.countAchievement("first_checkin", "First Step", "Complete 1 habit check-in", "✓", c.completions, 1),
		c.countAchievement("committed", "Committed", "Complete 50 check-ins", "📋", c.completions, 50),
		c.countAchievement("relentless", "Relentless", "Complete 250 check-ins", "🏅", c.completions, 250),

		c.countAchievement("week_streak", "One Week Strong", "Hold a 7-day streak", "🔥", c.bestStreak, 7),
		c.countAchievement("month_streak", "Iron Month", "Hold a 30-day streak", "💎", c.bestStreak, 30),

		c.countAchievement("collector", "Collector", "Own 5 items", "🎒", c.ownedItems, 5),
		c.countAchievement("hoarder", "Hoarder", "Own 15 items", "📦", c.ownedItems, 15),

		c.countAchievement("first_clear", "Clean Sweep", "Clear a full day", "🏆", c.clearedDays, 1),
		c.countAchievement("clear_streak", "Spotless", "Clear 10 full days", "✨", c.clearedDays, 10),

		c.habitAchievement("habit_former", "Habit Former", "Create a habit", "🔁"),
	}
}

func (c *AchievementChecker) CountEarned() int {
	count := 0
	for _, a := range c.GetAchievements() {
		if a.Earned {
			count++
		}
	}
	return count
}

func (c *AchievementChecker) CountTotal() int {
	return len(c.GetAchievements())
}

func (c *AchievementChecker) levelAchievement(id, name, desc, icon string, level int) Achievement {
	earned := LevelFromXP(c.profile.XP) >= level
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: earned}
}

func (c *AchievementChecker) countAchievement(id, name, desc, icon string, have, want int) Achievement {
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: have >= want}
}

func (c *AchievementChecker) habitAchievement(id, name, desc, icon string) Achievement {
	return Achievement{ID: id, Name: name, Description: desc, Icon: icon, Earned: len(c.habits) > 0}
}
