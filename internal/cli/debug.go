package cli

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/almanac/internal/models"
	"github.com/julianstephens/almanac/internal/streak"
)

type DebugCmd struct {
	DBPath    *DebugDBPathCmd    `cmd:"" help:"Show database path."`
	DumpHabit *DebugDumpHabitCmd `cmd:"" help:"Dump a habit, its logs and streaks as JSON."`
	Config    *DebugConfigCmd    `cmd:"" help:"Dump the effective configuration as JSON."`
}

func (c *Context) printJSON(v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	c.printf("%s\n", jsonBytes)
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *Context) error {
	return ctx.printJSON(map[string]string{
		"path": ctx.Store.GetConfigPath(),
	})
}

type DebugDumpHabitCmd struct {
	Name string `arg:"" help:"Name of the habit to dump."`
}

type habitDump struct {
	Habit   models.Habit      `json:"habit"`
	Logs    []models.HabitLog `json:"logs"`
	Streaks streak.Result     `json:"streaks"`
}

func (cmd *DebugDumpHabitCmd) Run(ctx *Context) error {
	habit, err := ctx.habitByName(cmd.Name)
	if err != nil {
		return err
	}

	all, err := ctx.Store.GetAllHabitLogs()
	if err != nil {
		return fmt.Errorf("failed to get habit logs: %w", err)
	}
	logs := []models.HabitLog{}
	for _, l := range all {
		if l.HabitID == habit.ID {
			logs = append(logs, l)
		}
	}

	results := streak.CalculateStreaks([]models.Habit{habit}, logs, streak.WithToday(ctx.Today()))
	return ctx.printJSON(habitDump{
		Habit:   habit,
		Logs:    logs,
		Streaks: results[habit.ID],
	})
}

type DebugConfigCmd struct{}

func (cmd *DebugConfigCmd) Run(ctx *Context) error {
	if ctx.Config == nil {
		return fmt.Errorf("no configuration loaded")
	}
	return ctx.printJSON(ctx.Config)
}
