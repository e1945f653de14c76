package engine

import "math"

// DerivedStats are the profile-card percentages derived from completion
// history.
type DerivedStats struct {
	Strength     int // consistency: completion rate over the last 30 days
	Agility      int // share of completions marked as fast 2-minute starts
	Endurance    int // streak stability: average streak vs best streak
	Intelligence int // improvement: week-over-week rate delta centered at 50
}

type StatsInput struct {
	CompletedLast30  int
	ScheduledLast30  int
	FastCompletions  int
	TotalCompletions int
	AvgStreak        float64
	MaxStreak        int
	ThisWeekRate     float64
	LastWeekRate     float64
}

func CalculatePlayerStats(in StatsInput) DerivedStats {
	var s DerivedStats

	if in.ScheduledLast30 > 0 {
		s.Strength = roundPct(float64(in.CompletedLast30) / float64(in.ScheduledLast30) * 100)
	}
	if in.TotalCompletions > 0 {
		s.Agility = roundPct(float64(in.FastCompletions) / float64(in.TotalCompletions) * 100)
	}
	if in.MaxStreak > 0 {
		s.Endurance = clampPct(roundPct(in.AvgStreak / float64(in.MaxStreak) * 100))
	}
	s.Intelligence = clampPct(int(math.Round(in.ThisWeekRate - in.LastWeekRate + 50)))

	return s
}

// CompletionRate returns completed/scheduled as a percentage; zero
// scheduled days rate as 0 rather than dividing.
func CompletionRate(completed, scheduled int) float64 {
	if scheduled <= 0 {
		return 0
	}
	return float64(completed) / float64(scheduled) * 100
}

func roundPct(v float64) int {
	return int(math.Round(v))
}

func clampPct(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
