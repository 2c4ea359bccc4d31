// Package watcher runs a scheduled check that warns about habits whose streak
// will break if they are not logged today, and announces today's observances.
package watcher

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/julianstephens/almanac/internal/constants"
	"github.com/julianstephens/almanac/internal/hijri"
	"github.com/julianstephens/almanac/internal/logger"
	"github.com/julianstephens/almanac/internal/models"
	"github.com/julianstephens/almanac/internal/streak"
	"github.com/julianstephens/almanac/internal/utils"
)

// Source supplies the records a check reads. storage.Provider satisfies it.
type Source interface {
	GetAllHabits(includeArchived bool) ([]models.Habit, error)
	GetAllHabitLogs() ([]models.HabitLog, error)
}

// AtRisk is an active habit with a running streak and no log today.
type AtRisk struct {
	Habit         models.Habit
	CurrentStreak int
}

// Report is the outcome of one check.
type Report struct {
	Day         utils.Day
	Hijri       hijri.Date
	AtRisk      []AtRisk
	Observances []string
}

type Option func(*Checker)

// WithLocation sets the timezone used for "today" and for the schedule.
func WithLocation(loc *time.Location) Option {
	return func(c *Checker) {
		c.location = loc
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Checker) {
		c.now = now
	}
}

// WithReportHandler receives every scheduled report.
func WithReportHandler(fn func(Report)) Option {
	return func(c *Checker) {
		c.onReport = fn
	}
}

// Checker periodically computes streaks and reports habits at risk
type Checker struct {
	source   Source
	table    *hijri.Table
	schedule string
	location *time.Location
	now      func() time.Time
	onReport func(Report)
	cron     *cron.Cron
}

// New creates a checker running on schedule, a standard five-field cron spec.
// A nil table falls back to the built-in observances.
func New(source Source, table *hijri.Table, schedule string, opts ...Option) *Checker {
	c := &Checker{
		source:   source,
		table:    table,
		schedule: schedule,
		location: time.Local,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.table == nil {
		c.table = hijri.DefaultTable()
	}
	if c.schedule == "" {
		c.schedule = constants.DefaultWatchSchedule
	}
	c.cron = cron.New(cron.WithLocation(c.location))
	return c
}

// Start schedules the check and returns immediately.
func (c *Checker) Start() error {
	logger.Info("Starting watcher", "schedule", c.schedule, "location", c.location.String())

	if _, err := c.cron.AddFunc(c.schedule, c.run); err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	c.cron.Start()
	return nil
}

// Stop stops the schedule and waits for a running check to finish.
func (c *Checker) Stop() {
	logger.Info("Stopping watcher")
	<-c.cron.Stop().Done()
	logger.Info("Watcher stopped")
}

func (c *Checker) run() {
	ctx, cancel := context.WithTimeout(context.Background(), constants.WatchCheckTimeout)
	defer cancel()

	report, err := c.Check(ctx)
	if err != nil {
		logger.Error("Watcher check failed", "error", err)
		return
	}
	if c.onReport != nil {
		c.onReport(report)
	}
}

// Check runs one check for the current day.
func (c *Checker) Check(ctx context.Context) (Report, error) {
	now := c.now().In(c.location)
	today := utils.DayOf(now)
	report := Report{
		Day:   today,
		Hijri: hijri.GregorianToHijri(today.Time(c.location)),
	}
	report.Observances = c.table.Lookup(report.Hijri)

	habits, err := c.source.GetAllHabits(false)
	if err != nil {
		return Report{}, fmt.Errorf("failed to load habits: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	logs, err := c.source.GetAllHabitLogs()
	if err != nil {
		return Report{}, fmt.Errorf("failed to load habit logs: %w", err)
	}

	loggedToday := make(map[int64]bool)
	for _, l := range logs {
		if l.Day == today {
			loggedToday[l.HabitID] = true
		}
	}

	results := streak.CalculateStreaks(habits, logs, streak.WithToday(today))
	for _, h := range habits {
		r := results[h.ID]
		if r.CurrentStreak == 0 || loggedToday[h.ID] || h.IsFrozenOn(today) {
			continue
		}
		report.AtRisk = append(report.AtRisk, AtRisk{Habit: h, CurrentStreak: r.CurrentStreak})
		logger.Warn("Streak at risk", "habit", h.Name, "streak", r.CurrentStreak)
	}

	for _, name := range report.Observances {
		logger.Info("Observance today", "event", name, "hijri", report.Hijri.String())
	}
	logger.Debug("Watcher check completed", "day", today.String(), "at_risk", len(report.AtRisk))

	return report, nil
}
