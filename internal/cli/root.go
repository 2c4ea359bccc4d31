package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/almanac/internal/config"
	"github.com/julianstephens/almanac/internal/constants"
	"github.com/julianstephens/almanac/internal/hijri"
	"github.com/julianstephens/almanac/internal/models"
	"github.com/julianstephens/almanac/internal/storage"
	"github.com/julianstephens/almanac/internal/storage/postgres"
	"github.com/julianstephens/almanac/internal/storage/sqlite"
	"github.com/julianstephens/almanac/internal/utils"
)

type Context struct {
	Store       storage.Provider
	Config      *config.Config
	DSN         string
	Location    *time.Location
	Observances *hijri.Table
	// Now and Out default to time.Now and os.Stdout.
	Now func() time.Time
	Out io.Writer
	// Confirm asks a yes/no question. Defaults to an interactive prompt.
	Confirm func(title string) (bool, error)
}

// Vars are the kong interpolation variables used by the command tags.
func Vars() map[string]string {
	return map[string]string{
		"version":       constants.Version,
		"keyring_user":  constants.DefaultKeyringUser,
		"upcoming_days": strconv.Itoa(constants.DefaultUpcomingDays),
	}
}

// NewStore returns the provider for dsn: PostgreSQL for connection strings,
// SQLite for anything else.
func NewStore(dsn string) storage.Provider {
	if storage.IsPostgresDSN(dsn) {
		return postgres.New(dsn)
	}
	return sqlite.NewStore(dsn)
}

// OpenObservances returns the table at path, or the built-in table when path is empty.
func OpenObservances(path string) (*hijri.Table, error) {
	if path == "" {
		return hijri.DefaultTable(), nil
	}
	return hijri.LoadTable(path)
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *Context) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

func (c *Context) table() *hijri.Table {
	if c.Observances == nil {
		return hijri.DefaultTable()
	}
	return c.Observances
}

// Today returns the current calendar date in the configured timezone.
func (c *Context) Today() utils.Day {
	return utils.TodayIn(c.now(), c.location())
}

// parseDay parses an optional YYYY-MM-DD argument, defaulting to today.
func (c *Context) parseDay(s string) (utils.Day, error) {
	return utils.ParseDayOrToday(s, c.now(), c.location())
}

func (c *Context) confirm(title string) (bool, error) {
	if c.Confirm != nil {
		return c.Confirm(title)
	}
	return confirmPrompt(title)
}

func confirmPrompt(title string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
}

// habitByName loads the store and looks up an active or archived habit.
func (c *Context) habitByName(name string) (models.Habit, error) {
	if err := c.Store.Load(); err != nil {
		return models.Habit{}, err
	}
	h, err := c.Store.GetHabitByName(name)
	if err != nil {
		return models.Habit{}, fmt.Errorf("habit %q: %w", name, err)
	}
	return h, nil
}
