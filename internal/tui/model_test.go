package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/almanac/internal/models"
	"github.com/julianstephens/almanac/internal/storage/sqlite"
	"github.com/julianstephens/almanac/internal/utils"
)

// 2024-06-16 is 9 Dhu al-Hijjah 1445, the Day of Arafah.
var testNow = time.Date(2024, 6, 16, 12, 0, 0, 0, time.UTC)

func setupModel(t *testing.T, names ...string) (Model, *sqlite.Store) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	for _, name := range names {
		if _, err := store.AddHabit(models.Habit{Name: name, CreatedAt: testNow}); err != nil {
			t.Fatalf("AddHabit(%q) failed: %v", name, err)
		}
	}
	return NewModel(store, nil, time.UTC, func() time.Time { return testNow }), store
}

func press(m Model, msg tea.KeyMsg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewModel(t *testing.T) {
	m, _ := setupModel(t, "read", "walk")

	if m.Err() != nil {
		t.Fatalf("unexpected error: %v", m.Err())
	}
	if len(m.habits) != 2 {
		t.Errorf("loaded %d habits, want 2", len(m.habits))
	}
	view := m.View()
	for _, want := range []string{"9 Dhu al-Hijjah 1445 AH", "Day of Arafah", "[ ] read", "[ ] walk"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestToggleMarksToday(t *testing.T) {
	m, store := setupModel(t, "read", "walk")

	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(m, runes("x"))

	walk, err := store.GetHabitByName("walk")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.GetHabitLog(walk.ID, utils.NewDay(2024, 6, 16)); err != nil {
		t.Fatalf("walk not marked for today: %v", err)
	}
	if !strings.Contains(m.View(), "[x] walk  1 / 1") {
		t.Errorf("view does not show the mark:\n%s", m.View())
	}

	m = press(m, runes("x"))
	if m.done[walk.ID] {
		t.Error("second toggle should unmark the habit")
	}
}

func TestCursorBounds(t *testing.T) {
	m, _ := setupModel(t, "read", "walk")

	m = press(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("cursor = %d after up at top, want 0", m.cursor)
	}
	for i := 0; i < 5; i++ {
		m = press(m, runes("j"))
	}
	if m.cursor != 1 {
		t.Errorf("cursor = %d after moving past the end, want 1", m.cursor)
	}
}

func TestTabs(t *testing.T) {
	m, _ := setupModel(t, "read")

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.tab != TabEvents {
		t.Fatalf("tab = %d, want TabEvents", m.tab)
	}
	if view := m.View(); !strings.Contains(view, "Eid al-Adha") {
		t.Errorf("events view missing Eid al-Adha:\n%s", view)
	}

	// Toggling is ignored outside the Today tab.
	m = press(m, runes("x"))
	if len(m.done) != 0 {
		t.Error("toggle on the events tab marked a habit")
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.tab != TabToday {
		t.Errorf("tab = %d after shift+tab, want TabToday", m.tab)
	}
}

func TestQuit(t *testing.T) {
	m, _ := setupModel(t)
	next, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if got := next.(Model).View(); got != "" {
		t.Errorf("view after quit = %q, want empty", got)
	}
}

func TestEmptyState(t *testing.T) {
	m, _ := setupModel(t)
	m = press(m, runes("x"))
	if !strings.Contains(m.View(), "No habits yet") {
		t.Errorf("view = %q", m.View())
	}
}
