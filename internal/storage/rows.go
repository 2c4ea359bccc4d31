package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/almanac/internal/models"
	"github.com/julianstephens/almanac/internal/utils"
)

// Column lists shared by the SQL providers, in Scan order.
const (
	HabitColumns    = "id, name, is_frozen, frozen_from, frozen_to, created_at, archived_at, deleted_at"
	HabitLogColumns = "id, habit_id, day, note, created_at"
)

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// ScanHabit reads one row selected with HabitColumns.
func ScanHabit(sc Scanner) (models.Habit, error) {
	var h models.Habit
	var createdAt string
	var frozenFrom, frozenTo, archivedAt, deletedAt sql.NullString

	err := sc.Scan(&h.ID, &h.Name, &h.IsFrozen, &frozenFrom, &frozenTo, &createdAt, &archivedAt, &deletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Habit{}, ErrNotFound
		}
		return models.Habit{}, err
	}

	if h.FrozenFrom, err = parseNullDay(frozenFrom); err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse frozen_from for habit %d: %w", h.ID, err)
	}
	if h.FrozenTo, err = parseNullDay(frozenTo); err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse frozen_to for habit %d: %w", h.ID, err)
	}
	if h.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at for habit %d: %w", h.ID, err)
	}
	if h.ArchivedAt, err = parseNullTime(archivedAt); err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse archived_at for habit %d: %w", h.ID, err)
	}
	if h.DeletedAt, err = parseNullTime(deletedAt); err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse deleted_at for habit %d: %w", h.ID, err)
	}

	return h, nil
}

// ScanHabitLog reads one row selected with HabitLogColumns.
func ScanHabitLog(sc Scanner) (models.HabitLog, error) {
	var l models.HabitLog
	var day, createdAt string

	err := sc.Scan(&l.ID, &l.HabitID, &day, &l.Note, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.HabitLog{}, ErrNotFound
		}
		return models.HabitLog{}, err
	}

	if l.Day, err = utils.ParseDay(day); err != nil {
		return models.HabitLog{}, fmt.Errorf("failed to parse day for log %s: %w", l.ID, err)
	}
	if l.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return models.HabitLog{}, fmt.Errorf("failed to parse created_at for log %s: %w", l.ID, err)
	}

	return l, nil
}

// CollectHabits drains rows with ScanHabit and closes them.
func CollectHabits(rows *sql.Rows) ([]models.Habit, error) {
	defer rows.Close()

	habits := []models.Habit{}
	for rows.Next() {
		h, err := ScanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

// CollectHabitLogs drains rows with ScanHabitLog and closes them.
func CollectHabitLogs(rows *sql.Rows) ([]models.HabitLog, error) {
	defer rows.Close()

	logs := []models.HabitLog{}
	for rows.Next() {
		l, err := ScanHabitLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// FormatTime renders a timestamp the way it is stored.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// NullTime converts an optional timestamp to a nullable column value.
func NullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: FormatTime(*t), Valid: true}
}

// NullDay converts an optional day to a nullable column value.
func NullDay(d *utils.Day) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func parseNullTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseNullDay(s sql.NullString) (*utils.Day, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	d, err := utils.ParseDay(s.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
