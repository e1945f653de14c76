package engine

const (
	levelBaseRequirement = 50
	levelPerIncrement    = 25
)

// XPRequiredForLevel returns the XP needed to finish the given level. The
// cost grows linearly so early levels are fast and later ones slow the
// grind.
func XPRequiredForLevel(level int) int {
	return levelBaseRequirement + level*levelPerIncrement
}

// TotalXPForLevel returns the cumulative XP spent reaching the start of the
// given level.
func TotalXPForLevel(level int) int {
	total := 0
	for l := 1; l < level; l++ {
		total += XPRequiredForLevel(l)
	}
	return total
}

// LevelFromXP converts an absolute XP total to a level, starting at 1.
// Inverse of TotalXPForLevel plus the in-progress remainder.
func LevelFromXP(totalXP int) int {
	level := 1
	remaining := totalXP
	for remaining >= XPRequiredForLevel(level) {
		remaining -= XPRequiredForLevel(level)
		level++
	}
	return level
}

// XPProgressPercent returns rounded percent progress through the current
// level, clamped to [0, 100].
func XPProgressPercent(totalXP, currentLevel int) int {
	into := totalXP - TotalXPForLevel(currentLevel)
	needed := XPRequiredForLevel(currentLevel)
	pct := (into*100 + needed/2) / needed
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
