// Package render formats calendar and habit data for the terminal.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/almanac/internal/hijri"
	"github.com/julianstephens/almanac/internal/models"
	"github.com/julianstephens/almanac/internal/streak"
	"github.com/julianstephens/almanac/internal/utils"
	"github.com/julianstephens/almanac/internal/watcher"
)

const (
	markDone   = "■"
	markMissed = "·"
	markFrozen = "❄"
)

// styles are bound to the renderer of one writer so colour is only emitted
// to terminals.
type styles struct {
	title  lipgloss.Style
	event  lipgloss.Style
	muted  lipgloss.Style
	warn   lipgloss.Style
	header lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		event:  r.NewStyle().Foreground(lipgloss.Color("42")),
		muted:  r.NewStyle().Foreground(lipgloss.Color("240")),
		warn:   r.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		header: r.NewStyle().Bold(true).Padding(0, 1),
	}
}

// HijriDate prints a Gregorian day, its Hijri equivalent and any observances.
func HijriDate(w io.Writer, day utils.Day, d hijri.Date, events []string) {
	s := newStyles(w)
	fmt.Fprintf(w, "%s  %s\n", s.muted.Render(day.String()), s.title.Render(d.String()))
	fmt.Fprintf(w, "%s\n", s.muted.Render(d.DayOfWeek))
	for _, e := range events {
		fmt.Fprintf(w, "  %s\n", s.event.Render("★ "+e))
	}
}

// Upcoming prints the days of occ that carry at least one observance.
func Upcoming(w io.Writer, occ []hijri.Occurrence) {
	s := newStyles(w)
	if len(occ) == 0 {
		fmt.Fprintln(w, s.muted.Render("No observances in range."))
		return
	}
	for _, o := range occ {
		fmt.Fprintf(w, "%s  %-28s %s\n",
			s.muted.Render(utils.DayOf(o.Date).String()),
			o.Hijri.String(),
			s.event.Render(strings.Join(o.Events, ", ")))
	}
}

// Streaks prints one row per habit with its current and longest streak.
func Streaks(w io.Writer, habits []models.Habit, results map[int64]streak.Result, today utils.Day) {
	s := newStyles(w)
	if len(habits) == 0 {
		fmt.Fprintln(w, "No habits found.")
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("HABIT", "CURRENT", "LONGEST", "STATUS").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.header
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	for _, h := range habits {
		r := results[h.ID]
		t.Row(h.Name, strconv.Itoa(r.CurrentStreak), strconv.Itoa(r.LongestStreak), habitStatus(h, today))
	}

	fmt.Fprintln(w, t.String())
}

func habitStatus(h models.Habit, today utils.Day) string {
	switch {
	case h.ArchivedAt != nil:
		return "archived"
	case h.IsFrozenOn(today):
		from, to, _ := h.FreezeWindow()
		return fmt.Sprintf("frozen %s..%s", from, to)
	default:
		return "active"
	}
}

// HabitLog prints a day-by-day grid of the last days ending at today.
func HabitLog(w io.Writer, habits []models.Habit, logs []models.HabitLog, today utils.Day, days int) {
	s := newStyles(w)
	if len(habits) == 0 {
		fmt.Fprintln(w, "No habits found.")
		return
	}
	if days < 1 {
		days = 1
	}
	start := today.AddDays(-(days - 1))

	done := make(map[int64]map[utils.Day]bool, len(habits))
	for _, l := range logs {
		if done[l.HabitID] == nil {
			done[l.HabitID] = make(map[utils.Day]bool)
		}
		done[l.HabitID][l.Day] = true
	}

	nameWidth := len("Habit")
	for _, h := range habits {
		nameWidth = max(nameWidth, len(h.Name))
	}

	fmt.Fprintf(w, "%s\n\n", s.title.Render(fmt.Sprintf("Habit log (%s to %s)", start, today)))
	var header strings.Builder
	header.WriteString(fmt.Sprintf("%-*s ", nameWidth, "Habit"))
	for d := start; d <= today; d++ {
		_, _, dom := d.Date()
		header.WriteString(fmt.Sprintf("%2d", dom))
	}
	fmt.Fprintln(w, s.muted.Render(header.String()))

	for _, h := range habits {
		var row strings.Builder
		row.WriteString(fmt.Sprintf("%-*s ", nameWidth, h.Name))
		for d := start; d <= today; d++ {
			mark := markMissed
			switch {
			case done[h.ID][d]:
				mark = markDone
			case h.IsFrozenOn(d):
				mark = markFrozen
			}
			row.WriteString(" " + mark)
		}
		fmt.Fprintln(w, row.String())
	}
}

// Report prints the outcome of a watcher check.
func Report(w io.Writer, r watcher.Report) {
	s := newStyles(w)
	fmt.Fprintf(w, "%s  %s\n", s.muted.Render(r.Day.String()), s.title.Render(r.Hijri.String()))
	for _, e := range r.Observances {
		fmt.Fprintf(w, "  %s\n", s.event.Render("★ "+e))
	}
	if len(r.AtRisk) == 0 {
		fmt.Fprintln(w, "All streaks are safe today.")
		return
	}
	for _, a := range r.AtRisk {
		fmt.Fprintln(w, s.warn.Render(fmt.Sprintf("! %s: %d-day streak ends tonight unless logged", a.Habit.Name, a.CurrentStreak)))
	}
}
