package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/almanac/internal/utils"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.tab {
	case TabToday:
		content = m.viewToday()
	case TabEvents:
		content = m.viewEvents()
	}

	parts := []string{m.viewTabs(), docStyle.Render(content)}
	if m.err != nil {
		parts = append(parts, dangerStyle.Render("Error: "+m.err.Error()))
	}
	parts = append(parts, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Today", "Events"} {
		if m.tab == Tab(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewToday() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", mutedStyle.Render(m.today.String()), titleStyle.Render(m.date.String()))
	fmt.Fprintln(&b, mutedStyle.Render(m.date.DayOfWeek))
	for _, e := range m.events {
		fmt.Fprintf(&b, "  %s\n", eventStyle.Render("★ "+e))
	}
	b.WriteString("\n")

	if len(m.habits) == 0 {
		b.WriteString(mutedStyle.Render("No habits yet. Add one with 'almanac habit add <name>'."))
		return b.String()
	}

	for i, h := range m.habits {
		mark := "[ ]"
		if m.done[h.ID] {
			mark = "[x]"
		} else if h.IsFrozenOn(m.today) {
			mark = "[❄]"
		}
		r := m.results[h.ID]
		line := fmt.Sprintf("%s %s  %d / %d", mark, h.Name, r.CurrentStreak, r.LongestStreak)
		if i == m.cursor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		fmt.Fprintln(&b, line)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewEvents() string {
	if len(m.upcoming) == 0 {
		return mutedStyle.Render(fmt.Sprintf("No observances in the next %d days.", upcomingDays))
	}
	var b strings.Builder
	for _, o := range m.upcoming {
		fmt.Fprintf(&b, "%s  %-28s %s\n",
			mutedStyle.Render(utils.DayOf(o.Date).String()),
			o.Hijri.String(),
			eventStyle.Render(strings.Join(o.Events, ", ")))
	}
	return strings.TrimRight(b.String(), "\n")
}
