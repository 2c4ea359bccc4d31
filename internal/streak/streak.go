// Package streak computes current and longest completion streaks for habits.
//
// A streak is a run of consecutive calendar days with at least one log. Days
// inside a habit's freeze window are skipped: they neither break a streak nor
// extend it, and logs dated inside the window are ignored.
package streak

import (
	"slices"
	"time"

	"github.com/julianstephens/almanac/internal/models"
	"github.com/julianstephens/almanac/internal/utils"
)

// Result holds the streak lengths of one habit.
type Result struct {
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
}

// Option configures a calculation.
type Option func(*options)

type options struct {
	today    *utils.Day
	clock    func() time.Time
	location *time.Location
}

// WithToday fixes the reference date used for the current streak.
func WithToday(day utils.Day) Option {
	return func(o *options) {
		o.today = &day
	}
}

// WithClock sets the clock used to determine today when WithToday is not given.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithLocation sets the timezone in which the clock's instant is turned into
// a calendar date. Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		o.location = loc
	}
}

// CalculateStreaks returns the streak lengths of every habit, keyed by habit
// id. Logs referencing habits that are not in habits are ignored. Without
// options, today is the current date in the local timezone.
func CalculateStreaks(habits []models.Habit, logs []models.HabitLog, opts ...Option) map[int64]Result {
	o := options{clock: time.Now, location: time.Local}
	for _, opt := range opts {
		opt(&o)
	}

	today := utils.TodayIn(o.clock(), o.location)
	if o.today != nil {
		today = *o.today
	}

	byHabit := make(map[int64][]utils.Day, len(habits))
	for _, l := range logs {
		byHabit[l.HabitID] = append(byHabit[l.HabitID], l.Day)
	}

	results := make(map[int64]Result, len(habits))
	for _, h := range habits {
		results[h.ID] = Calculate(h, byHabit[h.ID], today)
	}
	return results
}

// Calculate returns the streak lengths of a single habit given the days it
// was logged. days may be unsorted and may contain duplicates.
func Calculate(habit models.Habit, days []utils.Day, today utils.Day) Result {
	if len(days) == 0 {
		return Result{}
	}

	sorted := slices.Clone(days)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	w := newWindow(habit)
	return Result{
		CurrentStreak: current(sorted, w, today),
		LongestStreak: longest(sorted, w),
	}
}

// current walks back from today. The chain is alive only if there is a log
// dated today or yesterday, frozen or not; the walk then measures gaps in
// non-frozen days.
func current(days []utils.Day, w window, today utils.Day) int {
	if !slices.Contains(days, today) && !slices.Contains(days, today.AddDays(-1)) {
		return 0
	}

	last := today
	count := 0
	for i := len(days) - 1; i >= 0; i-- {
		d := days[i]
		if d > today || w.contains(d) {
			continue
		}
		if w.gap(d, last) > 1 {
			break
		}
		count++
		last = d
	}
	return count
}

func longest(days []utils.Day, w window) int {
	best, run := 1, 1
	prev := days[0]
	for _, d := range days[1:] {
		if w.contains(d) {
			continue
		}
		if w.gap(prev, d) == 1 {
			run++
		} else {
			run = 1
		}
		best = max(best, run)
		prev = d
	}
	return best
}

// window is an inclusive freeze range. The zero value freezes nothing.
type window struct {
	from, to utils.Day
	ok       bool
}

func newWindow(h models.Habit) window {
	from, to, ok := h.FreezeWindow()
	return window{from: from, to: to, ok: ok}
}

func (w window) contains(d utils.Day) bool {
	return w.ok && w.from <= d && d <= w.to
}

// gap returns the distance from a to b (a <= b) in days, not counting frozen
// days strictly between them.
func (w window) gap(a, b utils.Day) int {
	return int(b-a) - w.frozenBetween(a, b)
}

func (w window) frozenBetween(a, b utils.Day) int {
	if !w.ok {
		return 0
	}
	lo := max(a+1, w.from)
	hi := min(b-1, w.to)
	if hi < lo {
		return 0
	}
	return int(hi-lo) + 1
}
