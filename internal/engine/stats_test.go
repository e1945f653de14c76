package engine

import "testing"

func TestCalculatePlayerStats(t *testing.T) {
	s := CalculatePlayerStats(StatsInput{
		CompletedLast30:  24,
		ScheduledLast30:  30,
		FastCompletions:  6,
		TotalCompletions: 24,
		AvgStreak:        4,
		MaxStreak:        8,
		ThisWeekRate:     80,
		LastWeekRate:     60,
	})
	if s.Strength != 80 {
		t.Fatalf("strength=%d, want 80", s.Strength)
	}
	if s.Agility != 25 {
		t.Fatalf("agility=%d, want 25", s.Agility)
	}
	if s.Endurance != 50 {
		t.Fatalf("endurance=%d, want 50", s.Endurance)
	}
	if s.Intelligence != 70 {
		t.Fatalf("intelligence=%d, want 70", s.Intelligence)
	}
}

func TestCalculatePlayerStatsEmptyHistory(t *testing.T) {
	s := CalculatePlayerStats(StatsInput{})
	if s.Strength != 0 || s.Agility != 0 || s.Endurance != 0 {
		t.Fatalf("stats=%+v, want zeros without history", s)
	}
	// No trend data centers intelligence at 50.
	if s.Intelligence != 50 {
		t.Fatalf("intelligence=%d, want 50", s.Intelligence)
	}
}

func TestCompletionRate(t *testing.T) {
	if got := CompletionRate(3, 4); got != 75 {
		t.Fatalf("rate=%f, want 75", got)
	}
	if got := CompletionRate(0, 0); got != 0 {
		t.Fatalf("rate=%f, want 0 when nothing scheduled", got)
	}
}
