package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/almanac/internal/models"
	"github.com/julianstephens/almanac/internal/render"
	"github.com/julianstephens/almanac/internal/storage"
	"github.com/julianstephens/almanac/internal/streak"
	"github.com/julianstephens/almanac/internal/utils"
)

type HabitCmd struct {
	Add      HabitAddCmd      `cmd:"" help:"Add a new habit."`
	List     HabitListCmd     `cmd:"" help:"List habits."`
	Mark     HabitMarkCmd     `cmd:"" help:"Toggle a habit as done for a day."`
	Freeze   HabitFreezeCmd   `cmd:"" help:"Pause a habit for a range of days."`
	Unfreeze HabitUnfreezeCmd `cmd:"" help:"Remove a habit's freeze window."`
	Archive  HabitArchiveCmd  `cmd:"" help:"Archive a habit."`
	Delete   HabitDeleteCmd   `cmd:"" help:"Delete a habit (soft delete)."`
	Streaks  HabitStreaksCmd  `cmd:"" help:"Show current and longest streaks."`
	Log      HabitLogCmd      `cmd:"" help:"Show habit log (day grid)."`
}

type HabitAddCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habit, err := ctx.Store.AddHabit(models.Habit{Name: c.Name, CreatedAt: ctx.now()})
	if err != nil {
		return err
	}

	ctx.printf("Added habit: %s (id %d)\n", habit.Name, habit.ID)
	return nil
}

type HabitListCmd struct {
	Archived bool `help:"Include archived habits."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.GetAllHabits(c.Archived)
	if err != nil {
		return err
	}

	if len(habits) == 0 {
		ctx.printf("No habits found.\n")
		return nil
	}

	for _, habit := range habits {
		status := ""
		if habit.ArchivedAt != nil {
			status = " [ARCHIVED]"
		} else if from, to, ok := habit.FreezeWindow(); ok {
			status = fmt.Sprintf(" [FROZEN %s..%s]", from, to)
		}
		ctx.printf("%s%s\n", habit.Name, status)
	}

	return nil
}

type HabitMarkCmd struct {
	Name string `arg:"" help:"Habit name."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
	Note string `help:"Optional note for this entry." default:""`
}

func (c *HabitMarkCmd) Run(ctx *Context) error {
	habit, err := ctx.habitByName(c.Name)
	if err != nil {
		return err
	}

	day, err := ctx.parseDay(c.Date)
	if err != nil {
		return err
	}

	existing, err := ctx.Store.GetHabitLog(habit.ID, day)
	switch {
	case err == nil:
		if err := ctx.Store.DeleteHabitLog(existing.ID); err != nil {
			return err
		}
		ctx.printf("Unmarked habit %q for %s\n", c.Name, day)
		return nil
	case !errors.Is(err, storage.ErrNotFound):
		return err
	}

	if _, err := ctx.Store.AddHabitLog(models.HabitLog{
		HabitID:   habit.ID,
		Day:       day,
		Note:      c.Note,
		CreatedAt: ctx.now(),
	}); err != nil {
		return err
	}

	ctx.printf("Marked habit %q for %s\n", c.Name, day)
	if habit.IsFrozenOn(day) {
		ctx.printf("Note: %s falls inside the freeze window and does not count toward streaks.\n", day)
	}
	return nil
}

type HabitFreezeCmd struct {
	Name string `arg:"" help:"Habit name."`
	From string `help:"First paused day, YYYY-MM-DD (default: today)." default:""`
	To   string `help:"Last paused day, YYYY-MM-DD." required:""`
}

func (c *HabitFreezeCmd) Run(ctx *Context) error {
	habit, err := ctx.habitByName(c.Name)
	if err != nil {
		return err
	}

	from, err := ctx.parseDay(c.From)
	if err != nil {
		return err
	}
	to, err := utils.ParseDay(c.To)
	if err != nil {
		return err
	}
	if from > to {
		return fmt.Errorf("freeze window starts (%s) after it ends (%s)", from, to)
	}

	habit.IsFrozen = true
	habit.FrozenFrom = &from
	habit.FrozenTo = &to
	if err := ctx.Store.UpdateHabit(habit); err != nil {
		return err
	}

	ctx.printf("Froze habit %q from %s to %s\n", c.Name, from, to)
	return nil
}

type HabitUnfreezeCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *HabitUnfreezeCmd) Run(ctx *Context) error {
	habit, err := ctx.habitByName(c.Name)
	if err != nil {
		return err
	}

	habit.IsFrozen = false
	habit.FrozenFrom = nil
	habit.FrozenTo = nil
	if err := ctx.Store.UpdateHabit(habit); err != nil {
		return err
	}

	ctx.printf("Unfroze habit %q\n", c.Name)
	return nil
}

type HabitArchiveCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *HabitArchiveCmd) Run(ctx *Context) error {
	habit, err := ctx.habitByName(c.Name)
	if err != nil {
		return err
	}

	if err := ctx.Store.ArchiveHabit(habit.ID); err != nil {
		return err
	}

	ctx.printf("Archived habit: %s\n", c.Name)
	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name."`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	habit, err := ctx.habitByName(c.Name)
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := ctx.confirm(fmt.Sprintf("Delete habit %q and hide its history?", c.Name))
		if err != nil {
			return err
		}
		if !ok {
			ctx.printf("Cancelled.\n")
			return nil
		}
	}

	if err := ctx.Store.DeleteHabit(habit.ID); err != nil {
		return err
	}

	ctx.printf("Deleted habit: %s\n", c.Name)
	return nil
}

type HabitStreaksCmd struct {
	Archived bool `help:"Include archived habits."`
}

func (c *HabitStreaksCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	habits, err := ctx.Store.GetAllHabits(c.Archived)
	if err != nil {
		return err
	}
	logs, err := ctx.Store.GetAllHabitLogs()
	if err != nil {
		return err
	}

	today := ctx.Today()
	results := streak.CalculateStreaks(habits, logs, streak.WithToday(today))
	render.Streaks(ctx.out(), habits, results, today)
	return nil
}

type HabitLogCmd struct {
	Days  int    `help:"Number of days to show." default:"14"`
	Habit string `help:"Show log for specific habit only."`
}

func (c *HabitLogCmd) Validate() error {
	if c.Days < 1 || c.Days > 366 {
		return fmt.Errorf("days must be between 1 and 366")
	}
	return nil
}

func (c *HabitLogCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	var habits []models.Habit
	if c.Habit != "" {
		h, err := ctx.habitByName(c.Habit)
		if err != nil {
			return err
		}
		habits = []models.Habit{h}
	} else {
		all, err := ctx.Store.GetAllHabits(false)
		if err != nil {
			return err
		}
		habits = all
	}

	today := ctx.Today()
	start := today.AddDays(-(c.Days - 1))

	var logs []models.HabitLog
	for _, h := range habits {
		hl, err := ctx.Store.GetHabitLogsForHabit(h.ID, start, today)
		if err != nil {
			return err
		}
		logs = append(logs, hl...)
	}

	render.HabitLog(ctx.out(), habits, logs, today, c.Days)
	return nil
}
