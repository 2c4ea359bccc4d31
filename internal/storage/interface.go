package storage

import (
	"errors"
	"strings"

	"github.com/julianstephens/almanac/internal/models"
	"github.com/julianstephens/almanac/internal/utils"
)

var (
	// ErrNotFound is returned when a habit or log does not exist or was deleted.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when adding a habit whose name is taken.
	ErrAlreadyExists = errors.New("already exists")
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	// Migrate applies pending schema migrations and returns how many ran.
	Migrate(logFn func(string)) (int, error)

	// Habits
	AddHabit(models.Habit) (models.Habit, error)
	GetHabit(id int64) (models.Habit, error)
	GetHabitByName(name string) (models.Habit, error)
	GetAllHabits(includeArchived bool) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	ArchiveHabit(id int64) error
	DeleteHabit(id int64) error

	// Habit logs
	// AddHabitLog stores a completion. A second log for the same habit and day
	// replaces the note of the first and returns the stored record.
	AddHabitLog(models.HabitLog) (models.HabitLog, error)
	GetHabitLog(habitID int64, day utils.Day) (models.HabitLog, error)
	GetHabitLogsForHabit(habitID int64, startDay, endDay utils.Day) ([]models.HabitLog, error)
	GetAllHabitLogs() ([]models.HabitLog, error)
	DeleteHabitLog(id string) error

	// Utils
	GetConfigPath() string
}

// IsPostgresDSN reports whether dsn addresses a PostgreSQL server rather than
// a SQLite file.
func IsPostgresDSN(dsn string) bool {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return true
	}
	for _, field := range strings.Fields(dsn) {
		key, _, ok := strings.Cut(field, "=")
		if !ok {
			continue
		}
		switch strings.ToLower(key) {
		case "host", "dbname", "user":
			return true
		}
	}
	return false
}
