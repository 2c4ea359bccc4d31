package postgres

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/almanac/internal/models"
	"github.com/julianstephens/almanac/internal/storage"
	"github.com/julianstephens/almanac/internal/utils"
)

func (s *Store) AddHabit(habit models.Habit) (models.Habit, error) {
	if _, err := s.GetHabitByName(habit.Name); err == nil {
		return models.Habit{}, fmt.Errorf("habit %q: %w", habit.Name, storage.ErrAlreadyExists)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return models.Habit{}, err
	}

	if habit.CreatedAt.IsZero() {
		habit.CreatedAt = time.Now()
	}

	row := s.db.QueryRow(`
INSERT INTO habits (name, is_frozen, frozen_from, frozen_to, created_at, archived_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING `+storage.HabitColumns,
		habit.Name, habit.IsFrozen, storage.NullDay(habit.FrozenFrom), storage.NullDay(habit.FrozenTo),
		storage.FormatTime(habit.CreatedAt), storage.NullTime(habit.ArchivedAt))
	return storage.ScanHabit(row)
}

func (s *Store) GetHabit(id int64) (models.Habit, error) {
	row := s.db.QueryRow(`
SELECT `+storage.HabitColumns+`
FROM habits WHERE id = $1 AND deleted_at IS NULL`, id)
	return storage.ScanHabit(row)
}

func (s *Store) GetHabitByName(name string) (models.Habit, error) {
	row := s.db.QueryRow(`
SELECT `+storage.HabitColumns+`
FROM habits WHERE name = $1 AND deleted_at IS NULL`, name)
	return storage.ScanHabit(row)
}

func (s *Store) GetAllHabits(includeArchived bool) ([]models.Habit, error) {
	query := "SELECT " + storage.HabitColumns + " FROM habits WHERE deleted_at IS NULL"
	if !includeArchived {
		query += " AND archived_at IS NULL"
	}
	query += " ORDER BY id"

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	return storage.CollectHabits(rows)
}

func (s *Store) UpdateHabit(habit models.Habit) error {
	result, err := s.db.Exec(`
UPDATE habits SET name = $1, is_frozen = $2, frozen_from = $3, frozen_to = $4, archived_at = $5
WHERE id = $6 AND deleted_at IS NULL`,
		habit.Name, habit.IsFrozen, storage.NullDay(habit.FrozenFrom), storage.NullDay(habit.FrozenTo),
		storage.NullTime(habit.ArchivedAt), habit.ID)
	if err != nil {
		return err
	}
	return expectRow(result.RowsAffected, "habit %d", habit.ID)
}

func (s *Store) ArchiveHabit(id int64) error {
	result, err := s.db.Exec(`
UPDATE habits SET archived_at = $1 WHERE id = $2 AND deleted_at IS NULL AND archived_at IS NULL`,
		storage.FormatTime(time.Now()), id)
	if err != nil {
		return err
	}
	return expectRow(result.RowsAffected, "active habit %d", id)
}

func (s *Store) DeleteHabit(id int64) error {
	result, err := s.db.Exec(`
UPDATE habits SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`,
		storage.FormatTime(time.Now()), id)
	if err != nil {
		return err
	}
	return expectRow(result.RowsAffected, "habit %d", id)
}

func (s *Store) AddHabitLog(log models.HabitLog) (models.HabitLog, error) {
	if _, err := s.GetHabit(log.HabitID); err != nil {
		return models.HabitLog{}, fmt.Errorf("habit %d: %w", log.HabitID, err)
	}

	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}

	row := s.db.QueryRow(`
INSERT INTO habit_logs (id, habit_id, day, note, created_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (habit_id, day) DO UPDATE SET note = EXCLUDED.note
RETURNING `+storage.HabitLogColumns,
		log.ID, log.HabitID, log.Day.String(), log.Note, storage.FormatTime(log.CreatedAt))
	return storage.ScanHabitLog(row)
}

func (s *Store) GetHabitLog(habitID int64, day utils.Day) (models.HabitLog, error) {
	row := s.db.QueryRow(`
SELECT `+storage.HabitLogColumns+`
FROM habit_logs WHERE habit_id = $1 AND day = $2`, habitID, day.String())
	return storage.ScanHabitLog(row)
}

func (s *Store) GetHabitLogsForHabit(habitID int64, startDay, endDay utils.Day) ([]models.HabitLog, error) {
	rows, err := s.db.Query(`
SELECT `+storage.HabitLogColumns+`
FROM habit_logs
WHERE habit_id = $1 AND day >= $2 AND day <= $3
ORDER BY day`, habitID, startDay.String(), endDay.String())
	if err != nil {
		return nil, err
	}
	return storage.CollectHabitLogs(rows)
}

func (s *Store) GetAllHabitLogs() ([]models.HabitLog, error) {
	rows, err := s.db.Query(`
SELECT l.id, l.habit_id, l.day, l.note, l.created_at
FROM habit_logs l
JOIN habits h ON h.id = l.habit_id
WHERE h.deleted_at IS NULL
ORDER BY l.habit_id, l.day`)
	if err != nil {
		return nil, err
	}
	return storage.CollectHabitLogs(rows)
}

func (s *Store) DeleteHabitLog(id string) error {
	result, err := s.db.Exec(`DELETE FROM habit_logs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectRow(result.RowsAffected, "habit log %s", id)
}

func expectRow(rowsAffected func() (int64, error), format string, args ...any) error {
	rows, err := rowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf(format+": %w", append(args, storage.ErrNotFound)...)
	}
	return nil
}
