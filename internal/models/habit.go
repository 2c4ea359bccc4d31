package models

import (
	"time"

	"github.com/julianstephens/almanac/internal/utils"
)

// Habit represents a recurring practice to track
type Habit struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	IsFrozen   bool       `json:"is_frozen"`
	FrozenFrom *utils.Day `json:"frozen_from,omitempty"`
	FrozenTo   *utils.Day `json:"frozen_to,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}

// FreezeWindow returns the inclusive pause window of the habit. ok is false
// when the habit is not frozen, either bound is missing, or the bounds are
// reversed; all of those mean "no freeze".
func (h Habit) FreezeWindow() (from, to utils.Day, ok bool) {
	if !h.IsFrozen || h.FrozenFrom == nil || h.FrozenTo == nil {
		return 0, 0, false
	}
	if *h.FrozenFrom > *h.FrozenTo {
		return 0, 0, false
	}
	return *h.FrozenFrom, *h.FrozenTo, true
}

// IsFrozenOn reports whether day falls inside the habit's freeze window.
func (h Habit) IsFrozenOn(day utils.Day) bool {
	from, to, ok := h.FreezeWindow()
	return ok && from <= day && day <= to
}

// HabitLog records that a habit was completed on a given day
type HabitLog struct {
	ID        string    `json:"id"`
	HabitID   int64     `json:"habit_id"`
	Day       utils.Day `json:"day"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}
