// Package tui is the interactive dashboard: today's Hijri date and
// observances, habit streaks with one-key marking, and upcoming events.
package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/almanac/internal/hijri"
	"github.com/julianstephens/almanac/internal/models"
	"github.com/julianstephens/almanac/internal/storage"
	"github.com/julianstephens/almanac/internal/streak"
	"github.com/julianstephens/almanac/internal/utils"
)

type Tab int

const (
	TabToday Tab = iota
	TabEvents
	tabCount
)

const upcomingDays = 30

type Model struct {
	store storage.Provider
	table *hijri.Table
	loc   *time.Location
	now   func() time.Time

	keys     KeyMap
	help     help.Model
	tab      Tab
	cursor   int
	quitting bool
	width    int
	height   int
	err      error

	today    utils.Day
	date     hijri.Date
	events   []string
	upcoming []hijri.Occurrence
	habits   []models.Habit
	results  map[int64]streak.Result
	done     map[int64]bool
}

// NewModel loads the dashboard state from store. A nil now uses time.Now.
func NewModel(store storage.Provider, table *hijri.Table, loc *time.Location, now func() time.Time) Model {
	if table == nil {
		table = hijri.DefaultTable()
	}
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	m := Model{
		store: store,
		table: table,
		loc:   loc,
		now:   now,
		keys:  DefaultKeyMap(),
		help:  help.New(),
	}
	m.reload()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Err returns the last storage error, if any.
func (m Model) Err() error {
	return m.err
}

func (m *Model) reload() {
	m.today = utils.TodayIn(m.now(), m.loc)
	start := m.today.Time(m.loc)
	m.date = hijri.GregorianToHijri(start)
	m.events = m.table.Lookup(m.date)
	m.upcoming = m.table.Upcoming(start, upcomingDays)

	habits, err := m.store.GetAllHabits(false)
	if err != nil {
		m.err = err
		return
	}
	logs, err := m.store.GetAllHabitLogs()
	if err != nil {
		m.err = err
		return
	}

	m.habits = habits
	m.results = streak.CalculateStreaks(habits, logs, streak.WithToday(m.today))
	m.done = make(map[int64]bool)
	for _, l := range logs {
		if l.Day == m.today {
			m.done[l.HabitID] = true
		}
	}
	if m.cursor >= len(m.habits) {
		m.cursor = max(len(m.habits)-1, 0)
	}
	m.err = nil
}

// toggle marks or unmarks the selected habit for today.
func (m *Model) toggle() {
	if m.cursor >= len(m.habits) {
		return
	}
	h := m.habits[m.cursor]

	existing, err := m.store.GetHabitLog(h.ID, m.today)
	switch {
	case err == nil:
		err = m.store.DeleteHabitLog(existing.ID)
	case errors.Is(err, storage.ErrNotFound):
		_, err = m.store.AddHabitLog(models.HabitLog{
			HabitID:   h.ID,
			Day:       m.today,
			CreatedAt: m.now(),
		})
	}
	if err != nil {
		m.err = err
		return
	}
	m.reload()
}
