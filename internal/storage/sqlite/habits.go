package sqlite

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

	result, err := s.db.Exec(`
		INSERT INTO habits (name, is_frozen, frozen_from, frozen_to, created_at, archived_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		habit.Name, habit.IsFrozen, storage.NullDay(habit.FrozenFrom), storage.NullDay(habit.FrozenTo),
		storage.FormatTime(habit.CreatedAt), storage.NullTime(habit.ArchivedAt))
	if err != nil {
		return models.Habit{}, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return models.Habit{}, err
	}
	return s.GetHabit(id)
}

func (s *Store) GetHabit(id int64) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT `+storage.HabitColumns+`
		FROM habits WHERE id = ? AND deleted_at IS NULL`, id)
	return storage.ScanHabit(row)
}

func (s *Store) GetHabitByName(name string) (models.Habit, error) {
	row := s.db.QueryRow(`
		SELECT `+storage.HabitColumns+`
		FROM habits WHERE name = ? AND deleted_at IS NULL`, name)
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

// UpdateHabit saves the name, freeze window and archive state of an existing habit.
func (s *Store) UpdateHabit(habit models.Habit) error {
	result, err := s.db.Exec(`
		UPDATE habits SET
			name = ?,
			is_frozen = ?,
			frozen_from = ?,
			frozen_to = ?,
			archived_at = ?
		WHERE id = ? AND deleted_at IS NULL`,
		habit.Name, habit.IsFrozen, storage.NullDay(habit.FrozenFrom), storage.NullDay(habit.FrozenTo),
		storage.NullTime(habit.ArchivedAt), habit.ID)
	if err != nil {
		return err
	}
	return expectRow(result.RowsAffected, "habit %d", habit.ID)
}

func (s *Store) ArchiveHabit(id int64) error {
	result, err := s.db.Exec(`
		UPDATE habits SET archived_at = ? WHERE id = ? AND deleted_at IS NULL AND archived_at IS NULL`,
		storage.FormatTime(time.Now()), id)
	if err != nil {
		return err
	}
	return expectRow(result.RowsAffected, "active habit %d", id)
}

func (s *Store) DeleteHabit(id int64) error {
	result, err := s.db.Exec(`
		UPDATE habits SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		storage.FormatTime(time.Now()), id)
	if err != nil {
		return err
	}
	return expectRow(result.RowsAffected, "habit %d", id)
}

// Habit logs

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

	_, err := s.db.Exec(`
		INSERT INTO habit_logs (id, habit_id, day, note, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(habit_id, day) DO UPDATE SET
			note = excluded.note`,
		log.ID, log.HabitID, log.Day.String(), log.Note, storage.FormatTime(log.CreatedAt))
	if err != nil {
		return models.HabitLog{}, err
	}

	return s.GetHabitLog(log.HabitID, log.Day)
}

func (s *Store) GetHabitLog(habitID int64, day utils.Day) (models.HabitLog, error) {
	row := s.db.QueryRow(`
		SELECT `+storage.HabitLogColumns+`
		FROM habit_logs WHERE habit_id = ? AND day = ?`,
		habitID, day.String())
	return storage.ScanHabitLog(row)
}

func (s *Store) GetHabitLogsForHabit(habitID int64, startDay, endDay utils.Day) ([]models.HabitLog, error) {
	rows, err := s.db.Query(`
		SELECT `+storage.HabitLogColumns+`
		FROM habit_logs
		WHERE habit_id = ? AND day >= ? AND day <= ?
		ORDER BY day`, habitID, startDay.String(), endDay.String())
	if err != nil {
		return nil, err
	}
	return storage.CollectHabitLogs(rows)
}

// GetAllHabitLogs returns the logs of every habit that has not been deleted.
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
	result, err := s.db.Exec(`DELETE FROM habit_logs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectRow(result.RowsAffected, "habit log %s", id)
}

// expectRow turns a zero-row update into a wrapped storage.ErrNotFound.
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
