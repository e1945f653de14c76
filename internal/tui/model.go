package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"habitquest/internal/engine"
	"habitquest/internal/storage"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	status  *engine.ProfileStatus
	entries []engine.BoardEntry
	quests  []storage.DailyQuest

	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	status  *engine.ProfileStatus
	entries []engine.BoardEntry
	quests  []storage.DailyQuest
	err     error
}

type checkedMsg struct {
	res *engine.CheckInResult
	err error
}

type questDoneMsg struct {
	res *engine.QuestResult
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		today := m.svc.Today()
		status, err := m.svc.Status(m.ctx, today)
		if err != nil {
			return loadedMsg{err: err}
		}
		entries, err := m.svc.TodayBoard(m.ctx, today)
		if err != nil {
			return loadedMsg{err: err}
		}
		daily, err := m.svc.DailyQuests(m.ctx, today)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{status: status, entries: entries, quests: daily.Quests}
	}
}

func (m boardModel) checkCmd(habitID int64) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CheckIn(m.ctx, habitID, m.svc.Today(), engine.StatusDone, false)
		return checkedMsg{res: res, err: err}
	}
}

func (m boardModel) questCmd(id string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.CompleteQuest(m.ctx, id)
		return questDoneMsg{res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.status = msg.status
		m.entries = msg.entries
		m.quests = msg.quests
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case checkedMsg:
		if msg.err != nil {
			m.lastLog = "Check-in failed: " + msg.err.Error()
			return m, nil
		}
		log := fmt.Sprintf("Done %q: +%d XP, +%d gold (streak %d)",
			msg.res.Habit.Title, msg.res.XPAwarded, msg.res.GoldAwarded, msg.res.Streak)
		if msg.res.LevelAfter > msg.res.LevelBefore {
			log += fmt.Sprintf(" LEVEL UP %d → %d", msg.res.LevelBefore, msg.res.LevelAfter)
		}
		if msg.res.Drop != nil {
			log += fmt.Sprintf(" | drop: %s (%s)", msg.res.Drop.Name, msg.res.Drop.Rarity)
		}
		m.lastLog = log
		return m, m.loadCmd()
	case questDoneMsg:
		if msg.err != nil {
			m.lastLog = "Quest failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = fmt.Sprintf("Quest %q: +%d XP, +%d gold",
			msg.res.Quest.Quest.Title, msg.res.XPAwarded, msg.res.GoldAwarded)
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < m.rowCount()-1 {
				m.selected++
			}
			return m, nil
		case "c", " ", "enter":
			return m.completeSelected()
		}
	}
	return m, nil
}

// rowCount is habits first, then quests.
func (m boardModel) rowCount() int {
	return len(m.entries) + len(m.quests)
}

func (m boardModel) completeSelected() (tea.Model, tea.Cmd) {
	if m.selected < 0 || m.selected >= m.rowCount() {
		return m, nil
	}
	if m.selected < len(m.entries) {
		e := m.entries[m.selected]
		if e.Today != nil && e.Today.Status == string(engine.StatusDone) {
			m.lastLog = "Already done."
			return m, nil
		}
		m.lastLog = fmt.Sprintf("Completing %q…", e.Habit.Title)
		return m, m.checkCmd(e.Habit.ID)
	}
	q := m.quests[m.selected-len(m.entries)]
	if q.Completed {
		m.lastLog = "Already done."
		return m, nil
	}
	m.lastLog = fmt.Sprintf("Completing %q…", q.Quest.Title)
	return m, m.questCmd(q.ID)
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	// Simple 2-column layout.
	leftW := 26
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.status == nil {
		return "Habitquest — loading…"
	}
	p := m.status.Profile
	bar := progressBar(m.status.XPIntoLevel, m.status.XPNeeded, 30)
	return fmt.Sprintf("Habitquest | %s | Level %d | XP %d %s | Gold %d",
		m.status.Rank.Label(), p.Level, p.XP, bar, p.Gold)
}

func (m boardModel) renderSidebar() string {
	if m.status == nil {
		return "Stats\n\nLoading…"
	}
	lines := []string{"Profile"}
	lines = append(lines, fmt.Sprintf("- weekly %.0f%%", m.status.WeeklyRate))
	lines = append(lines, fmt.Sprintf("- best streak %d", m.status.BestStreak))
	lines = append(lines, fmt.Sprintf("- equipped %d", m.status.EquippedCount))
	if m.status.Effects.XPBoostPercent > 0 {
		lines = append(lines, fmt.Sprintf("- xp boost +%d%%", m.status.Effects.XPBoostPercent))
	}
	if m.status.Effects.GoldBoostPercent > 0 {
		lines = append(lines, fmt.Sprintf("- gold boost +%d%%", m.status.Effects.GoldBoostPercent))
	}
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- c/space: complete")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}

	var out []string
	out = append(out, "Today's Habits")
	if len(m.entries) == 0 {
		out = append(out, "(nothing scheduled)")
	}
	for i, e := range m.entries {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		mark := "[ ]"
		switch {
		case e.Today != nil && e.Today.Status == string(engine.StatusDone):
			mark = "[x]"
		case e.Today != nil:
			mark = "[s]"
		}
		line := fmt.Sprintf("%s%s %s (streak %d)", cursor, mark, e.Habit.Title, e.Streak)
		if e.Warning {
			line += " ! never miss twice"
		}
		out = append(out, line)
	}

	out = append(out, "")
	out = append(out, "Daily Quests")
	if len(m.quests) == 0 {
		out = append(out, "(none)")
	}
	for i, q := range m.quests {
		cursor := "  "
		if len(m.entries)+i == m.selected {
			cursor = "> "
		}
		mark := "[ ]"
		if q.Completed {
			mark = "[x]"
		}
		out = append(out, fmt.Sprintf("%s%s %s (+%d xp, +%d gold)",
			cursor, mark, q.Quest.Title, q.Quest.XPReward, q.Quest.GoldReward))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	ratio := float64(value) / float64(total)
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
