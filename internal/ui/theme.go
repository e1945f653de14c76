package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Habitquest theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconHabit    = "🔁"
	IconDone     = "✅"
	IconSkip     = "⏭️"
	IconStreak   = "🔥"
	IconSparkle  = "✨"
	IconTrophy   = "🏆"
	IconBolt     = "⚡"
	IconGold     = "🪙"
	IconQuest    = "🗺️"
	IconDungeon  = "⚔️"
	IconChest    = "📦"
	IconWarn     = "⚠️"
	IconError    = "🧨"
	IconInfo     = "ℹ️"
	IconLevelUp  = "🆙"
	IconArtifact = "🔮"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
	cEpic    = lipgloss.Color("129") // purple
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Epic  = lipgloss.NewStyle().Bold(true).Foreground(cEpic)
	Dim   = lipgloss.NewStyle().Foreground(cMuted)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

func StatusText(status string) string {
	s := strings.ToLower(strings.TrimSpace(status))
	switch s {
	case "done":
		return Good.Render("done")
	case "skipped":
		return Warn.Render("skipped")
	default:
		return Muted.Render("pending")
	}
}

// RankText colors the tier label: low tiers muted, high tiers loud.
func RankText(rank string) string {
	switch strings.ToUpper(strings.TrimSpace(rank)) {
	case "SS":
		return Gold.Render("SS-Rank")
	case "S":
		return Epic.Render("S-Rank")
	case "A":
		return Good.Render("A-Rank")
	case "B":
		return H2.Render("B-Rank")
	case "C":
		return Warn.Render("C-Rank")
	case "D":
		return Muted.Render("D-Rank")
	default:
		return Muted.Render("E-Rank")
	}
}

func RarityText(rarity string) string {
	switch strings.ToLower(strings.TrimSpace(rarity)) {
	case "legendary":
		return Gold.Render("legendary")
	case "epic":
		return Epic.Render("epic")
	case "rare":
		return H2.Render("rare")
	default:
		return Muted.Render("common")
	}
}

func StreakText(streak int) string {
	if streak <= 0 {
		return Muted.Render("0")
	}
	return Warn.Render(fmt.Sprintf("%s %d", IconStreak, streak))
}
