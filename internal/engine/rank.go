package engine

type Rank string

const (
	RankE  Rank = "E"
	RankD  Rank = "D"
	RankC  Rank = "C"
	RankB  Rank = "B"
	RankA  Rank = "A"
	RankS  Rank = "S"
	RankSS Rank = "SS"
)

type rankThreshold struct {
	rank     Rank
	minLevel int
	minRate  float64
}

// rankThresholds is evaluated strictly top-down so a profile that clears
// several tiers always classifies as the highest one.
var rankThresholds = []rankThreshold{
	{RankSS, 50, 90},
	{RankS, 35, 85},
	{RankA, 20, 80},
	{RankB, 10, 70},
	{RankC, 5, 60},
	{RankD, 3, 50},
	{RankE, 1, 0},
}

// CalculateRank maps (level, trailing weekly completion rate in percent) to
// a tier label. Both thresholds must be met; there is no partial credit.
func CalculateRank(level int, weeklyRate float64) Rank {
	for _, t := range rankThresholds {
		if level >= t.minLevel && weeklyRate >= t.minRate {
			return t.rank
		}
	}
	return RankE
}

func (r Rank) Label() string {
	return string(r) + "-Rank"
}
